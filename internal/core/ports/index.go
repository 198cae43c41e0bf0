package ports

import "context"

// ResolutionIndex maps as-written imports of each source file to resolved paths.
//
//go:generate mockgen -source=index.go -destination=mocks/mock_index.go -package=mocks
type ResolutionIndex interface {
	// Load reads the persisted index once. Later calls return immediately.
	Load(ctx context.Context) error
	// Save persists the index if it changed since the last save.
	Save(ctx context.Context) error
	// Reload discards in-memory state and loads again.
	Reload(ctx context.Context) error
	// RecordResolution stores a mapping. Identity mappings are ignored.
	RecordResolution(sourceFile, original, resolved string)
	// Lookup returns the resolved path of original as imported by sourceFile.
	Lookup(sourceFile, original string) (string, bool)
	// LookupAny returns the first resolved path recorded for original in any file.
	LookupAny(original string) (string, bool)
	// Snapshot returns a copy of the whole index.
	Snapshot() map[string]map[string]string
}
