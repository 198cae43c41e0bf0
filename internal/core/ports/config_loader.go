package ports

import "go.trai.ch/solres/internal/core/domain"

// ConfigLoader defines the interface for loading the tool configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the configuration starting at cwd and returns it with defaults applied.
	Load(cwd string) (*domain.Config, error)

	// DiscoverRoot walks up from cwd to find the workspace root.
	// Returns the directory containing solres.yaml or package.json, or cwd.
	DiscoverRoot(cwd string) (string, error)
}
