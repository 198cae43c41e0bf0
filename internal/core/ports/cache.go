package ports

import (
	"context"

	"go.trai.ch/solres/internal/core/domain"
)

// PackageCache holds fetched packages for the lifetime of the process.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type PackageCache interface {
	// GetOrFetch returns the cached node for key, fetching it at most once across concurrent callers.
	GetOrFetch(ctx context.Context, key domain.ResolvedPackageKey) (*domain.ResolvedNode, error)
	// Invalidate drops every cached node.
	Invalidate()
	// Len returns the number of cached nodes.
	Len() int
}
