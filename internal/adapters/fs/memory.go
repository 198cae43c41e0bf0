package fs

import (
	"context"
	"maps"
	"path"
	"strings"
	"sync"

	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
)

var _ ports.Workspace = (*MemoryWorkspace)(nil)

// MemoryWorkspace is an in-memory ports.Workspace. Directories are implied
// by the files below them and by explicit Mkdir calls.
type MemoryWorkspace struct {
	mu    sync.RWMutex
	root  string
	files map[string]string
	dirs  map[string]struct{}
}

// NewMemoryWorkspace creates a MemoryWorkspace seeded with files.
func NewMemoryWorkspace(root string, files map[string]string) *MemoryWorkspace {
	w := &MemoryWorkspace{
		root:  root,
		files: make(map[string]string, len(files)),
		dirs:  make(map[string]struct{}),
	}
	for p, content := range files {
		w.files[path.Clean(p)] = content
	}
	return w
}

// Root returns the nominal root.
func (w *MemoryWorkspace) Root() string {
	return w.root
}

// Exists reports whether p is a file or a directory.
func (w *MemoryWorkspace) Exists(ctx context.Context, p string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	rel, err := Clean(p)
	if err != nil {
		return false, err
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	if _, ok := w.files[rel]; ok {
		return true, nil
	}
	if _, ok := w.dirs[rel]; ok {
		return true, nil
	}
	prefix := rel + "/"
	for f := range w.files {
		if strings.HasPrefix(f, prefix) {
			return true, nil
		}
	}
	return false, nil
}

// ReadFile returns the content of p.
func (w *MemoryWorkspace) ReadFile(ctx context.Context, p string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rel, err := Clean(p)
	if err != nil {
		return "", err
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	content, ok := w.files[rel]
	if !ok {
		return "", domain.Tagged(domain.ErrWorkspaceRead, "path", p)
	}
	return content, nil
}

// WriteFile stores content at p.
func (w *MemoryWorkspace) WriteFile(ctx context.Context, p, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rel, err := Clean(p)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[rel] = content
	return nil
}

// Mkdir records p as a directory.
func (w *MemoryWorkspace) Mkdir(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rel, err := Clean(p)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.dirs[rel] = struct{}{}
	return nil
}

// Files returns a copy of all stored files.
func (w *MemoryWorkspace) Files() map[string]string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return maps.Clone(w.files)
}
