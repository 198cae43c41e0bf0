package ports

import (
	"context"

	"go.trai.ch/solres/internal/core/domain"
)

// ProjectLoader reads the manifest, lockfile and remapping sources of the workspace.
//
//go:generate mockgen -source=project.go -destination=mocks/mock_project.go -package=mocks
type ProjectLoader interface {
	// Load returns a fresh project snapshot. Parse problems are reported as warnings, not errors.
	Load(ctx context.Context) (*domain.Project, error)
}
