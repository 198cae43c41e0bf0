package ports

import "context"

//go:generate mockgen -source=workspace.go -destination=mocks/mock_workspace.go -package=mocks

// Workspace is the file-system capability the resolver is given.
// Paths are slash separated and relative to the workspace root.
type Workspace interface {
	// Exists reports whether a file or directory exists at path.
	Exists(ctx context.Context, path string) (bool, error)
	// ReadFile returns the content of the file at path.
	ReadFile(ctx context.Context, path string) (string, error)
	// WriteFile replaces the content of the file at path.
	WriteFile(ctx context.Context, path, content string) error
	// Mkdir creates the directory at path and any missing parents.
	Mkdir(ctx context.Context, path string) error
	// Root returns the absolute workspace root.
	Root() string
}

// WorkspaceSwitcher re-roots a workspace when the active project changes.
type WorkspaceSwitcher interface {
	SetRoot(root string) error
}
