package project

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/solres/internal/adapters/config"
	"go.trai.ch/solres/internal/adapters/fs"
	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
)

// NodeID is the unique identifier for the project loader Graft node.
const NodeID graft.ID = "adapter.project"

func init() {
	graft.Register(graft.Node[ports.ProjectLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.PortNodeID, config.ConfigNodeID},
		Run: func(ctx context.Context) (ports.ProjectLoader, error) {
			ws, err := graft.Dep[ports.Workspace](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(ws, cfg), nil
		},
	})
}
