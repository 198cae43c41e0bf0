package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/solres/internal/adapters/config"
	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
)

const (
	// WorkspaceNodeID is the unique identifier for the workspace Graft node.
	WorkspaceNodeID graft.ID = "adapter.fs.workspace"
	// PortNodeID exposes the workspace as ports.Workspace.
	PortNodeID graft.ID = "adapter.fs.workspace_port"
	// SwitcherNodeID exposes the workspace as ports.WorkspaceSwitcher.
	SwitcherNodeID graft.ID = "adapter.fs.workspace_switcher"
	// WalkerNodeID is the unique identifier for the walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// ResolverNodeID is the unique identifier for the entry resolver Graft node.
	ResolverNodeID graft.ID = "adapter.fs.resolver"
)

func init() {
	graft.Register(graft.Node[*RetryingWorkspace]{
		ID:        WorkspaceNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID},
		Run: func(ctx context.Context) (*RetryingWorkspace, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			ws, err := NewWorkspace(cfg.Root)
			if err != nil {
				return nil, err
			}
			return NewRetryingWorkspace(ws), nil
		},
	})

	graft.Register(graft.Node[ports.Workspace]{
		ID:        PortNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WorkspaceNodeID},
		Run: func(ctx context.Context) (ports.Workspace, error) {
			ws, err := graft.Dep[*RetryingWorkspace](ctx)
			if err != nil {
				return nil, err
			}
			return ws, nil
		},
	})

	graft.Register(graft.Node[ports.WorkspaceSwitcher]{
		ID:        SwitcherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WorkspaceNodeID},
		Run: func(ctx context.Context) (ports.WorkspaceSwitcher, error) {
			ws, err := graft.Dep[*RetryingWorkspace](ctx)
			if err != nil {
				return nil, err
			}
			return ws, nil
		},
	})

	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.EntryResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WorkspaceNodeID, WalkerNodeID, config.ConfigNodeID},
		Run: func(ctx context.Context) (ports.EntryResolver, error) {
			ws, err := graft.Dep[*RetryingWorkspace](ctx)
			if err != nil {
				return nil, err
			}
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(ws, walker, cfg), nil
		},
	})
}
