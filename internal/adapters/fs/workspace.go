// Package fs provides workspace file system adapters.
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.Workspace         = (*Workspace)(nil)
	_ ports.WorkspaceSwitcher = (*Workspace)(nil)
)

// Workspace implements ports.Workspace on the local file system below a
// root directory. The root can be switched while the process runs.
type Workspace struct {
	mu   sync.RWMutex
	root string
}

// NewWorkspace creates a Workspace rooted at root.
func NewWorkspace(root string) (*Workspace, error) {
	w := &Workspace{}
	if err := w.SetRoot(root); err != nil {
		return nil, err
	}
	return w, nil
}

// Root returns the absolute workspace root.
func (w *Workspace) Root() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.root
}

// SetRoot re-roots the workspace.
func (w *Workspace) SetRoot(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve workspace root"), "root", root)
	}
	w.mu.Lock()
	w.root = abs
	w.mu.Unlock()
	return nil
}

// Exists reports whether p exists below the root.
func (w *Workspace) Exists(ctx context.Context, p string) (bool, error) {
	full, err := w.abs(ctx, p)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(full); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(domain.Because(domain.ErrWorkspaceRead, err), "path", p)
	}
	return true, nil
}

// ReadFile returns the content of p.
func (w *Workspace) ReadFile(ctx context.Context, p string) (string, error) {
	full, err := w.abs(ctx, p)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(full) //nolint:gosec // path is contained in the workspace root
	if err != nil {
		return "", zerr.With(domain.Because(domain.ErrWorkspaceRead, err), "path", p)
	}
	return string(data), nil
}

// WriteFile replaces p with content. The file is written to a temporary
// sibling and renamed so readers never observe a partial file.
func (w *Workspace) WriteFile(ctx context.Context, p, content string) error {
	full, err := w.abs(ctx, p)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), "."+filepath.Base(full)+".tmp-*")
	if err != nil {
		return zerr.With(domain.Because(domain.ErrWorkspaceWrite, err), "path", p)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // already renamed on success

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return zerr.With(domain.Because(domain.ErrWorkspaceWrite, err), "path", p)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return zerr.With(domain.Because(domain.ErrWorkspaceWrite, err), "path", p)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(domain.Because(domain.ErrWorkspaceWrite, err), "path", p)
	}
	if err := os.Rename(tmpName, full); err != nil {
		return zerr.With(domain.Because(domain.ErrWorkspaceWrite, err), "path", p)
	}
	return nil
}

// Mkdir creates p and any missing parents.
func (w *Workspace) Mkdir(ctx context.Context, p string) error {
	full, err := w.abs(ctx, p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(full, domain.DirPerm); err != nil {
		return zerr.With(domain.Because(domain.ErrWorkspaceWrite, err), "path", p)
	}
	return nil
}

func (w *Workspace) abs(ctx context.Context, p string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rel, err := Clean(p)
	if err != nil {
		return "", err
	}
	return filepath.Join(w.Root(), filepath.FromSlash(rel)), nil
}

// Clean normalizes a workspace-relative slash path and rejects paths that
// are absolute or climb above the root.
func Clean(p string) (string, error) {
	cleaned := path.Clean(filepath.ToSlash(p))
	if path.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", domain.Tagged(domain.ErrPathOutsideWorkspace, "path", p)
	}
	return cleaned, nil
}
