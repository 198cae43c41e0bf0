package ports

import "context"

// Registry is the package registry collaborator.
//
//go:generate mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type Registry interface {
	// FetchVersions returns every published version of the package.
	FetchVersions(ctx context.Context, name string) ([]string, error)
	// FetchPackageFiles returns the files of one package version keyed by path relative to the package root.
	FetchPackageFiles(ctx context.Context, name, version string) (map[string]string, error)
}
