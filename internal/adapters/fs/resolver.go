package fs

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.EntryResolver = (*Resolver)(nil)

// Resolver implements ports.EntryResolver with filepath.Glob below the
// workspace root.
type Resolver struct {
	workspace ports.Workspace
	walker    *Walker
	cfg       *domain.Config
}

// NewResolver creates a new Resolver.
func NewResolver(workspace ports.Workspace, walker *Walker, cfg *domain.Config) *Resolver {
	return &Resolver{workspace: workspace, walker: walker, cfg: cfg}
}

// ResolveEntries resolves the given patterns to workspace-relative source
// files. Without patterns every source file in the workspace is returned.
func (r *Resolver) ResolveEntries(ctx context.Context, patterns []string) ([]string, error) {
	root := r.workspace.Root()
	unique := make(map[string]struct{})

	if len(patterns) == 0 {
		for file := range r.walker.WalkFiles(root, nil) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if !r.cfg.IsBundled(file) {
				continue
			}
			if rel, err := relative(root, file); err == nil {
				unique[rel] = struct{}{}
			}
		}
		return sortedKeys(unique), nil
	}

	for _, pattern := range patterns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		full := pattern
		if !filepath.IsAbs(full) {
			full = filepath.Join(root, pattern)
		}

		matches, err := filepath.Glob(full)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "pattern", pattern)
		}

		found := false
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || info.IsDir() || !r.cfg.IsBundled(match) {
				continue
			}
			rel, err := relative(root, match)
			if err != nil {
				return nil, err
			}
			unique[rel] = struct{}{}
			found = true
		}
		if !found {
			return nil, domain.Tagged(domain.ErrSourceNotFound, "pattern", pattern)
		}
	}

	return sortedKeys(unique), nil
}

func relative(root, file string) (string, error) {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", file)
	}
	return Clean(rel)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
