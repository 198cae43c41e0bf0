package domain

import (
	"maps"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// SourceBundle maps resolved paths to file contents. It is the only input the compiler sees.
type SourceBundle map[string]string

// Paths returns the bundle keys in sorted order.
func (b SourceBundle) Paths() []string {
	return slices.Sorted(maps.Keys(b))
}

// Fingerprint hashes paths and contents in sorted order.
// Two bundles with the same files always share a fingerprint.
func (b SourceBundle) Fingerprint() string {
	d := xxhash.New()
	for _, p := range b.Paths() {
		_, _ = d.WriteString(p)
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(b[p])
		_, _ = d.Write([]byte{0})
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

// Resolution is one non-identity mapping produced while resolving a file.
type Resolution struct {
	SourceFile string
	Original   string
	Resolved   string
}
