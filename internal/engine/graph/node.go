package graph

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/solres/internal/adapters/cache"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/solres/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/solres/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/solres/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/solres/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
	"go.trai.ch/solres/internal/engine/resolver"
)

// NodeID is the unique identifier for the graph builder Graft node.
const NodeID graft.ID = "engine.graph"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.PortNodeID,
			cache.NodeID,
			resolver.NodeID,
			config.ConfigNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			workspace, err := graft.Dep[ports.Workspace](ctx)
			if err != nil {
				return nil, err
			}

			packages, err := graft.Dep[ports.PackageCache](ctx)
			if err != nil {
				return nil, err
			}

			res, err := graft.Dep[*resolver.Resolver](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(workspace, packages, res, cfg, tracer, log), nil
		},
	})
}
