package domain

import (
	"maps"
	"path"
	"strings"

	"go.trai.ch/zerr"
)

// PackageReference is a bare import literal split into its package parts.
type PackageReference struct {
	// Scope is the "@scope" segment, empty for unscoped packages.
	Scope string

	// Name is the package name without scope.
	Name string

	// ExplicitVersion is set when the literal pins a version with name@version.
	ExplicitVersion string

	// Subpath is the file path inside the package, possibly empty.
	Subpath string
}

// FullName returns the registry name of the package, including the scope.
func (r PackageReference) FullName() string {
	if r.Scope == "" {
		return r.Name
	}
	return r.Scope + "/" + r.Name
}

// Pinned reports whether the reference carries an explicit version.
func (r PackageReference) Pinned() bool {
	return r.ExplicitVersion != ""
}

// String renders the reference back into literal form.
func (r PackageReference) String() string {
	s := r.FullName()
	if r.ExplicitVersion != "" {
		s += "@" + r.ExplicitVersion
	}
	if r.Subpath != "" {
		s += "/" + r.Subpath
	}
	return s
}

// ParsePackageReference splits a bare import literal into scope, name,
// explicit version and subpath. The version marker is only recognized inside
// the name segment.
func ParsePackageReference(literal string) (PackageReference, error) {
	if strings.TrimSpace(literal) == "" {
		return PackageReference{}, Tagged(ErrMalformedImport, "reason", "empty literal")
	}
	if IsRelativeImport(literal) || strings.HasPrefix(literal, "/") {
		return PackageReference{}, zerr.With(Tagged(ErrMalformedImport, "reason", "not a package path"), "literal", literal)
	}

	var ref PackageReference
	rest := literal
	if strings.HasPrefix(rest, "@") {
		scope, after, found := strings.Cut(rest, "/")
		if !found || scope == "@" || after == "" {
			return PackageReference{}, zerr.With(Tagged(ErrMalformedImport, "reason", "scope without name"), "literal", literal)
		}
		ref.Scope = scope
		rest = after
	}

	segment, subpath, _ := strings.Cut(rest, "/")
	name, version, hasVersion := strings.Cut(segment, "@")
	if name == "" {
		return PackageReference{}, zerr.With(Tagged(ErrMalformedImport, "reason", "empty package name"), "literal", literal)
	}
	if hasVersion && version == "" {
		return PackageReference{}, zerr.With(Tagged(ErrMalformedImport, "reason", "empty version"), "literal", literal)
	}

	ref.Name = name
	ref.ExplicitVersion = version
	ref.Subpath = subpath
	return ref, nil
}

// ResolvedPackageKey identifies one fetched package version.
type ResolvedPackageKey struct {
	// Name is the full registry name including scope.
	Name string

	// Version is a concrete published version.
	Version string
}

// NewResolvedPackageKey builds the key for a reference resolved to version.
func NewResolvedPackageKey(ref PackageReference, version string) ResolvedPackageKey {
	return ResolvedPackageKey{Name: ref.FullName(), Version: version}
}

// String renders the key as scope/name@version.
func (k ResolvedPackageKey) String() string {
	return k.Name + "@" + k.Version
}

// Dir returns the bundle directory of the package below depsDir.
func (k ResolvedPackageKey) Dir(depsDir string) string {
	return path.Join(depsDir, k.String())
}

// FilePath returns the bundle path of a file inside the package.
func (k ResolvedPackageKey) FilePath(depsDir, rel string) string {
	return path.Join(depsDir, k.String(), rel)
}

// ResolvedNode is the fetched content of one package version.
type ResolvedNode struct {
	Key ResolvedPackageKey

	// Files maps paths relative to the package root to their content.
	Files map[string]string
}

// Clone returns a copy whose Files map can be mutated independently.
func (n *ResolvedNode) Clone() *ResolvedNode {
	return &ResolvedNode{Key: n.Key, Files: maps.Clone(n.Files)}
}
