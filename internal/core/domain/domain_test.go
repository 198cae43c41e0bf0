package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/solres/internal/core/domain"
)

func TestSourceBundle_Fingerprint(t *testing.T) {
	a := domain.SourceBundle{"A.sol": "contract A {}", "B.sol": "contract B {}"}
	b := domain.SourceBundle{"B.sol": "contract B {}", "A.sol": "contract A {}"}
	c := domain.SourceBundle{"A.sol": "contract A {}", "B.sol": "contract B2 {}"}
	// Moving a byte between path and content must change the digest.
	d := domain.SourceBundle{"A.so": "lcontract A {}", "B.sol": "contract B {}"}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), d.Fingerprint())
	assert.Equal(t, []string{"A.sol", "B.sol"}, a.Paths())
}

func TestLockEntry_Consistent(t *testing.T) {
	tests := []struct {
		entry domain.LockEntry
		want  bool
	}{
		{domain.LockEntry{Name: "p", Range: "^1.0.0", Version: "1.2.3"}, true},
		{domain.LockEntry{Name: "p", Range: "^2.0.0", Version: "1.2.3"}, false},
		{domain.LockEntry{Name: "p", Range: "github:owner/repo", Version: "1.2.3"}, true},
		{domain.LockEntry{Name: "p", Range: "^1.0.0", Version: "not-a-version"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.entry.Range+"/"+tt.entry.Version, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.Consistent())
		})
	}
}

func TestLockfile_Entries(t *testing.T) {
	l := domain.NewLockfile([]domain.LockEntry{
		{Name: "a", Range: "^1.0.0", Version: "1.0.1"},
		{Name: "a", Range: "^2.0.0", Version: "2.1.0"},
		{Name: "b", Range: "1.0.0", Version: "1.0.0"},
	})
	assert.Len(t, l.Entries("a"), 2)
	assert.Empty(t, l.Entries("c"))
	assert.Equal(t, 3, l.Len())

	var nilLock *domain.Lockfile
	assert.Empty(t, nilLock.Entries("a"))
	assert.Zero(t, nilLock.Len())
}

func TestManifest_Range(t *testing.T) {
	m := &domain.Manifest{
		Dependencies:     map[string]string{"a": "^1.0.0"},
		DevDependencies:  map[string]string{"a": "^9.0.0", "b": "~2.0.0"},
		PeerDependencies: map[string]string{"c": ">=3"},
	}
	r, ok := m.Range("a")
	assert.True(t, ok)
	assert.Equal(t, "^1.0.0", r)

	r, _ = m.Range("b")
	assert.Equal(t, "~2.0.0", r)
	r, _ = m.Range("c")
	assert.Equal(t, ">=3", r)

	_, ok = m.Range("d")
	assert.False(t, ok)

	var nilManifest *domain.Manifest
	_, ok = nilManifest.Range("a")
	assert.False(t, ok)
}

func TestConfig_FileKinds(t *testing.T) {
	cfg := domain.DefaultConfig("/ws")
	assert.True(t, cfg.IsSource("contracts/A.sol"))
	assert.True(t, cfg.IsNoDependency("asm/Code.YUL"))
	assert.True(t, cfg.IsBundled("asm/Code.yul"))
	assert.False(t, cfg.IsBundled("README.md"))
}

func TestNewResolutionFailure(t *testing.T) {
	res := domain.NewResolutionFailure("contracts/Main.sol", errors.New("no matching version found"))

	assert.False(t, res.Success)
	errs := res.Errors()
	if assert.Len(t, errs, 1) {
		assert.Equal(t, domain.DiagnosticTypeResolution, errs[0].Type)
		assert.Equal(t, "contracts/Main.sol", errs[0].Location.File)
		assert.Contains(t, errs[0].FormattedMessage, "no matching version found")
	}
}

func TestLayoutPaths(t *testing.T) {
	assert.Equal(t, ".deps/npm", domain.DefaultDepsPath())
	assert.Equal(t, ".deps/.resolution-index.json", domain.DefaultIndexPath())
	assert.Equal(t, ".deps/.bundles", domain.DefaultBundlesPath())
}
