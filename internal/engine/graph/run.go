package graph

import (
	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/engine/resolver"
)

// Recorder receives every non-identity mapping as it is resolved.
type Recorder interface {
	RecordResolution(sourceFile, original, resolved string)
}

// Run carries the state of one resolution. It is created per request and
// never shared between requests.
type Run struct {
	// Entry is the workspace-relative path of the compilation target.
	Entry string
	// Content is the entry text, which may differ from what is on disk.
	Content string
	// Project is the manifest, lockfile and remapping snapshot for this run.
	Project *domain.Project
	// Session holds the canonical versions chosen so far. A nil session
	// starts a fresh one.
	Session *resolver.Session
	// Recorder is optional.
	Recorder Recorder
}

// Result is the output of a completed traversal.
type Result struct {
	Bundle domain.SourceBundle

	// Resolutions are sorted by source file and original import.
	Resolutions []domain.Resolution

	// Graph holds one vertex per bundled file and one edge per import.
	Graph *ImportGraph
}
