package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/solres/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/solres/internal/adapters/registry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/solres/internal/core/ports"
)

// NodeID is the unique identifier for the version resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{registry.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Resolver, error) {
			reg, err := graft.Dep[ports.Registry](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(reg, log), nil
		},
	})
}
