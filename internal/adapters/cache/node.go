package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/solres/internal/adapters/registry"
	"go.trai.ch/solres/internal/core/ports"
)

// NodeID is the unique identifier for the package cache Graft node.
const NodeID graft.ID = "adapter.cache"

func init() {
	graft.Register(graft.Node[ports.PackageCache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{registry.NodeID},
		Run: func(ctx context.Context) (ports.PackageCache, error) {
			reg, err := graft.Dep[ports.Registry](ctx)
			if err != nil {
				return nil, err
			}
			return New(reg), nil
		},
	})
}
