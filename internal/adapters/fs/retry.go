package fs

import (
	"context"
	"errors"

	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
)

var _ ports.Workspace = (*RetryingWorkspace)(nil)

// RetryingWorkspace decorates a ports.Workspace and retries an operation
// once when it fails with an I/O error.
type RetryingWorkspace struct {
	next ports.Workspace
}

// NewRetryingWorkspace wraps next.
func NewRetryingWorkspace(next ports.Workspace) *RetryingWorkspace {
	return &RetryingWorkspace{next: next}
}

// Root returns the root of the wrapped workspace.
func (w *RetryingWorkspace) Root() string {
	return w.next.Root()
}

// SetRoot forwards to the wrapped workspace when it can be re-rooted.
func (w *RetryingWorkspace) SetRoot(root string) error {
	if s, ok := w.next.(ports.WorkspaceSwitcher); ok {
		return s.SetRoot(root)
	}
	return nil
}

// Exists implements ports.Workspace.
func (w *RetryingWorkspace) Exists(ctx context.Context, p string) (bool, error) {
	var ok bool
	err := retryOnce(ctx, func() error {
		var err error
		ok, err = w.next.Exists(ctx, p)
		return err
	})
	return ok, err
}

// ReadFile implements ports.Workspace.
func (w *RetryingWorkspace) ReadFile(ctx context.Context, p string) (string, error) {
	var content string
	err := retryOnce(ctx, func() error {
		var err error
		content, err = w.next.ReadFile(ctx, p)
		return err
	})
	return content, err
}

// WriteFile implements ports.Workspace.
func (w *RetryingWorkspace) WriteFile(ctx context.Context, p, content string) error {
	return retryOnce(ctx, func() error {
		return w.next.WriteFile(ctx, p, content)
	})
}

// Mkdir implements ports.Workspace.
func (w *RetryingWorkspace) Mkdir(ctx context.Context, p string) error {
	return retryOnce(ctx, func() error {
		return w.next.Mkdir(ctx, p)
	})
}

func retryOnce(ctx context.Context, op func() error) error {
	err := op()
	if err == nil || !isIOError(err) || ctx.Err() != nil {
		return err
	}
	return op()
}

func isIOError(err error) bool {
	return errors.Is(err, domain.ErrWorkspaceRead) || errors.Is(err, domain.ErrWorkspaceWrite)
}
