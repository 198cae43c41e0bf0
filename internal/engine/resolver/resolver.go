// Package resolver decides which concrete version a bare package import
// resolves to.
package resolver

import (
	"context"
	"fmt"
	"slices"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver applies the version priority chain: session, lockfile, manifest,
// registry latest. Explicit pins bypass the chain.
type Resolver struct {
	registry ports.Registry
	logger   ports.Logger
}

// New creates a Resolver.
func New(registry ports.Registry, logger ports.Logger) *Resolver {
	return &Resolver{registry: registry, logger: logger}
}

// Resolve returns the concrete version for ref. Unpinned references are
// memoized in session so that every import of a package within one run
// agrees on a version.
func (r *Resolver) Resolve(
	ctx context.Context,
	ref domain.PackageReference,
	project *domain.Project,
	session *Session,
) (string, error) {
	name := ref.FullName()
	if ref.Pinned() {
		return r.resolvePin(ctx, name, ref.ExplicitVersion)
	}
	return session.resolve(name, func() (string, error) {
		return r.resolveChain(ctx, name, project)
	})
}

func (r *Resolver) resolveChain(ctx context.Context, name string, project *domain.Project) (string, error) {
	var (
		manifest *domain.Manifest
		lockfile *domain.Lockfile
	)
	if project != nil {
		manifest = project.Manifest
		lockfile = project.Lockfile
	}
	declared, hasDeclared := manifest.Range(name)

	if v, ok := r.fromLockfile(name, lockfile, declared); ok {
		return v, nil
	}

	if hasDeclared {
		v, ok, err := r.fromManifest(ctx, name, declared)
		if err != nil {
			return "", err
		}
		if ok {
			return v, nil
		}
	}

	return r.latest(ctx, name)
}

// fromLockfile prefers the entry locked for the manifest range, then the
// highest consistent locked version. Entries outside a declared semver range
// are stale and skipped.
func (r *Resolver) fromLockfile(name string, lockfile *domain.Lockfile, declared string) (string, bool) {
	var (
		best    *semver.Version
		bestRaw string
	)
	manifestRange, _ := semver.NewConstraint(declared)
	for _, entry := range lockfile.Entries(name) {
		if !entry.Consistent() {
			r.logger.Warn(fmt.Sprintf("%v: %s@%s does not satisfy %q, ignoring lockfile entry",
				domain.ErrLockfileParse, name, entry.Version, entry.Range))
			continue
		}
		if declared != "" && entry.Range == declared {
			return entry.Version, true
		}
		v, err := semver.NewVersion(entry.Version)
		if err != nil {
			continue
		}
		if declared != "" && manifestRange != nil && !manifestRange.Check(v) {
			r.logger.Warn(fmt.Sprintf("%v: locked %s@%s does not satisfy manifest range %q, ignoring lockfile entry",
				domain.ErrLockfileParse, name, entry.Version, declared))
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best, bestRaw = v, entry.Version
		}
	}
	return bestRaw, best != nil
}

// fromManifest resolves the declared range against the published versions.
// A range that is not semver or that nothing satisfies is reported and the
// chain falls through.
func (r *Resolver) fromManifest(ctx context.Context, name, declared string) (string, bool, error) {
	constraint, err := semver.NewConstraint(declared)
	if err != nil {
		r.logger.Warn(fmt.Sprintf("%v: %s declares %q, falling back to latest",
			domain.ErrInvalidVersionRange, name, declared))
		return "", false, nil
	}

	versions, err := r.fetchVersions(ctx, name)
	if err != nil {
		return "", false, err
	}

	if v, ok := highestSatisfying(versions, constraint); ok {
		return v, true, nil
	}
	r.logger.Warn(fmt.Sprintf("%v: no published version of %s satisfies %q, falling back to latest",
		domain.ErrInvalidVersionRange, name, declared))
	return "", false, nil
}

func (r *Resolver) latest(ctx context.Context, name string) (string, error) {
	versions, err := r.fetchVersions(ctx, name)
	if err != nil {
		return "", err
	}
	if v, ok := Latest(versions); ok {
		return v, nil
	}
	return "", zerr.With(domain.Because(domain.ErrResolution,
		domain.Tagged(domain.ErrVersionNotFound, "package", name)), "package", name)
}

// resolvePin uses an exact version verbatim and resolves partial pins and
// ranges against the registry.
func (r *Resolver) resolvePin(ctx context.Context, name, pin string) (string, error) {
	if _, err := semver.StrictNewVersion(pin); err == nil {
		return pin, nil
	}

	constraint, err := semver.NewConstraint(pin)
	if err != nil {
		return "", zerr.With(domain.Because(domain.ErrResolution,
			domain.Tagged(domain.ErrInvalidVersionRange, "version", pin)), "package", name)
	}

	versions, err := r.fetchVersions(ctx, name)
	if err != nil {
		return "", err
	}
	if v, ok := highestSatisfying(versions, constraint); ok {
		return v, nil
	}
	return "", zerr.With(zerr.With(domain.Because(domain.ErrResolution,
		domain.Tagged(domain.ErrVersionNotFound, "package", name)), "package", name), "version", pin)
}

func (r *Resolver) fetchVersions(ctx context.Context, name string) ([]string, error) {
	versions, err := r.registry.FetchVersions(ctx, name)
	if err != nil {
		return nil, zerr.With(domain.Because(domain.ErrResolution, err), "package", name)
	}
	return versions, nil
}

// Latest returns the highest stable version, or the highest pre-release when
// nothing stable was published. Unparseable versions are ignored.
func Latest(versions []string) (string, bool) {
	var stable, pre []*semver.Version
	for _, raw := range versions {
		v, err := semver.NewVersion(raw)
		if err != nil {
			continue
		}
		if v.Prerelease() == "" {
			stable = append(stable, v)
		} else {
			pre = append(pre, v)
		}
	}
	for _, set := range [][]*semver.Version{stable, pre} {
		if len(set) > 0 {
			return slices.MaxFunc(set, (*semver.Version).Compare).Original(), true
		}
	}
	return "", false
}

// highestSatisfying returns the highest version accepted by constraint.
// Pre-releases only match when the constraint names one.
func highestSatisfying(versions []string, constraint *semver.Constraints) (string, bool) {
	var best *semver.Version
	for _, raw := range versions {
		v, err := semver.NewVersion(raw)
		if err != nil || !constraint.Check(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
		}
	}
	if best == nil {
		return "", false
	}
	return best.Original(), true
}
