package index

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/solres/internal/adapters/config"
	"go.trai.ch/solres/internal/adapters/fs"
	"go.trai.ch/solres/internal/adapters/logger"
	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
)

// NodeID is the unique identifier for the resolution index Graft node.
const NodeID graft.ID = "adapter.index"

func init() {
	graft.Register(graft.Node[ports.ResolutionIndex]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.PortNodeID, logger.NodeID, config.ConfigNodeID},
		Run: func(ctx context.Context) (ports.ResolutionIndex, error) {
			ws, err := graft.Dep[ports.Workspace](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return New(ws, log, cfg.IndexPath), nil
		},
	})
}
