package domain

import (
	"slices"

	"github.com/Masterminds/semver/v3"
)

// LockEntry is one resolved range from a lockfile.
type LockEntry struct {
	// Name is the package name including scope.
	Name string

	// Range is the declared semver range the entry was locked for.
	Range string

	// Version is the exact version the range was resolved to.
	Version string
}

// Consistent reports whether the locked version satisfies the declared range.
// Ranges that are not semver (tags, urls) are trusted.
func (e LockEntry) Consistent() bool {
	v, err := semver.NewVersion(e.Version)
	if err != nil {
		return false
	}
	c, err := semver.NewConstraint(e.Range)
	if err != nil {
		return true
	}
	return c.Check(v)
}

// Lockfile holds every entry of a parsed yarn.lock, grouped by package name.
type Lockfile struct {
	entries map[string][]LockEntry
}

// NewLockfile builds a Lockfile from a flat list of entries.
func NewLockfile(entries []LockEntry) *Lockfile {
	l := &Lockfile{entries: make(map[string][]LockEntry)}
	for _, e := range entries {
		l.entries[e.Name] = append(l.entries[e.Name], e)
	}
	return l
}

// Entries returns the entries locked for name.
func (l *Lockfile) Entries(name string) []LockEntry {
	if l == nil {
		return nil
	}
	return slices.Clone(l.entries[name])
}

// Len returns the number of locked entries.
func (l *Lockfile) Len() int {
	if l == nil {
		return 0
	}
	n := 0
	for _, e := range l.entries {
		n += len(e)
	}
	return n
}
