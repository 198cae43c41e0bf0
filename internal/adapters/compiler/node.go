package compiler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/solres/internal/adapters/config"
	"go.trai.ch/solres/internal/adapters/logger"
	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
)

// NodeID is the unique identifier for the solc compiler Graft node.
const NodeID graft.ID = "adapter.compiler"

func init() {
	graft.Register(graft.Node[*Solc]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Solc, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewSolc(cfg, log), nil
		},
	})
}
