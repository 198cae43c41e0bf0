package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/solres/internal/adapters/cache"   //nolint:depguard // Wired in app layer
	"go.trai.ch/solres/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/solres/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/solres/internal/adapters/index"   //nolint:depguard // Wired in app layer
	"go.trai.ch/solres/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/solres/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
	"go.trai.ch/solres/internal/engine/bundler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			bundler.NodeID,
			fs.ResolverNodeID,
			fs.PortNodeID,
			fs.SwitcherNodeID,
			index.NodeID,
			cache.NodeID,
			watcher.WatcherNodeID,
			logger.NodeID,
			config.ConfigNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	b, err := graft.Dep[*bundler.Bundler](ctx)
	if err != nil {
		return nil, err
	}

	entries, err := graft.Dep[ports.EntryResolver](ctx)
	if err != nil {
		return nil, err
	}

	workspace, err := graft.Dep[ports.Workspace](ctx)
	if err != nil {
		return nil, err
	}

	switcher, err := graft.Dep[ports.WorkspaceSwitcher](ctx)
	if err != nil {
		return nil, err
	}

	idx, err := graft.Dep[ports.ResolutionIndex](ctx)
	if err != nil {
		return nil, err
	}

	packages, err := graft.Dep[ports.PackageCache](ctx)
	if err != nil {
		return nil, err
	}

	watchers, err := graft.Dep[ports.WatcherFactory](ctx)
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

	return New(b, entries, workspace, switcher, idx, packages, watchers, log, cfg), nil
}
