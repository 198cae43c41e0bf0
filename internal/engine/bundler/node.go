package bundler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/solres/internal/adapters/compiler" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/solres/internal/adapters/config"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/solres/internal/adapters/fs"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/solres/internal/adapters/index"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/solres/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/solres/internal/adapters/project"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
	"go.trai.ch/solres/internal/engine/graph"
)

const (
	// NodeID is the unique identifier for the bundler Graft node.
	NodeID graft.ID = "engine.bundler"

	// CompilerNodeID is the unique identifier for the resolving compiler node.
	CompilerNodeID graft.ID = "engine.bundler.compiler"
)

func init() {
	graft.Register(graft.Node[*Bundler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			compiler.NodeID,
			graph.NodeID,
			project.NodeID,
			index.NodeID,
			fs.PortNodeID,
			config.ConfigNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Bundler, error) {
			solc, err := graft.Dep[*compiler.Solc](ctx)
			if err != nil {
				return nil, err
			}

			builder, err := graft.Dep[*graph.Builder](ctx)
			if err != nil {
				return nil, err
			}

			loader, err := graft.Dep[ports.ProjectLoader](ctx)
			if err != nil {
				return nil, err
			}

			idx, err := graft.Dep[ports.ResolutionIndex](ctx)
			if err != nil {
				return nil, err
			}

			workspace, err := graft.Dep[ports.Workspace](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(solc, builder, loader, idx, workspace, cfg, log), nil
		},
	})

	graft.Register(graft.Node[ports.Compiler]{
		ID:        CompilerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (ports.Compiler, error) {
			b, err := graft.Dep[*Bundler](ctx)
			if err != nil {
				return nil, err
			}
			return b, nil
		},
	})
}
