package resolver

import (
	"maps"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Session memoizes chain resolutions for one run. Concurrent lookups of the
// same name share a single resolution.
type Session struct {
	mu       sync.RWMutex
	versions map[string]string
	group    singleflight.Group
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{versions: make(map[string]string)}
}

// Get returns the version chosen for name in this run.
func (s *Session) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.versions[name]
	return v, ok
}

// Versions returns a copy of every decision made so far.
func (s *Session) Versions() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.versions)
}

func (s *Session) resolve(name string, chain func() (string, error)) (string, error) {
	if v, ok := s.Get(name); ok {
		return v, nil
	}
	v, err, _ := s.group.Do(name, func() (any, error) {
		if v, ok := s.Get(name); ok {
			return v, nil
		}
		v, err := chain()
		if err != nil {
			return "", err
		}
		s.mu.Lock()
		s.versions[name] = v
		s.mu.Unlock()
		return v, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil //nolint:forcetypeassert // the group only stores strings
}
