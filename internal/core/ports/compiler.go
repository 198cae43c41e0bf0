package ports

import (
	"context"

	"go.trai.ch/solres/internal/core/domain"
)

// Compiler turns a source bundle into artifacts and diagnostics.
//
//go:generate mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Compile compiles sources with entry as the compilation target.
	Compile(ctx context.Context, sources domain.SourceBundle, entry string) (*domain.CompilationResult, error)
}
