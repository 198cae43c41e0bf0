package domain

// Manifest is the subset of package.json the resolver reads.
type Manifest struct {
	Name             string            `json:"name,omitempty"`
	Dependencies     map[string]string `json:"dependencies,omitempty"`
	DevDependencies  map[string]string `json:"devDependencies,omitempty"`
	PeerDependencies map[string]string `json:"peerDependencies,omitempty"`
}

// Range returns the declared range for name, checking dependencies,
// devDependencies and peerDependencies in that order.
func (m *Manifest) Range(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	for _, deps := range []map[string]string{m.Dependencies, m.DevDependencies, m.PeerDependencies} {
		if r, ok := deps[name]; ok {
			return r, true
		}
	}
	return "", false
}

// Project is the per-run snapshot of workspace files that steer resolution.
type Project struct {
	Manifest   *Manifest
	Lockfile   *Lockfile
	Remappings Remappings

	// Warnings collects the parse errors that were absorbed while loading.
	Warnings []error
}
