package watcher

import "sync"

// Fingerprints remembers the last compiled bundle fingerprint per entry so
// that a change which does not alter the bundle can skip the compiler.
type Fingerprints struct {
	mu   sync.Mutex
	last map[string]string
}

// NewFingerprints creates an empty set.
func NewFingerprints() *Fingerprints {
	return &Fingerprints{last: make(map[string]string)}
}

// Changed records fingerprint for entry and reports whether it differs from
// the previous one.
func (f *Fingerprints) Changed(entry, fingerprint string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.last[entry] == fingerprint {
		return false
	}
	f.last[entry] = fingerprint
	return true
}

// Forget drops the fingerprint of entry, forcing the next run to compile.
func (f *Fingerprints) Forget(entry string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.last, entry)
}
