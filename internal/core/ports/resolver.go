package ports

import "context"

// EntryResolver expands entry patterns into workspace source files.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type EntryResolver interface {
	// ResolveEntries returns the sorted, deduplicated workspace-relative paths
	// matching the glob patterns. With no patterns every source file is returned.
	ResolveEntries(ctx context.Context, patterns []string) ([]string, error)
}
