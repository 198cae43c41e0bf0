package registry

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"

	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
	"go.trai.ch/zerr"
)

// New returns the registry client for cfg.RegistryURL: a LocalRegistry for
// file:// URLs, an NPMClient otherwise.
func New(cfg *domain.Config) (ports.Registry, error) {
	if strings.HasPrefix(cfg.RegistryURL, "file://") {
		root, err := parseFileURL(cfg.RegistryURL)
		if err != nil {
			return nil, err
		}
		if !filepath.IsAbs(root) {
			root = filepath.Join(cfg.Root, root)
		}
		return NewLocalRegistry(root), nil
	}
	return NewNPMClient(cfg.RegistryURL, cfg.RegistryTimeout), nil
}

// parseFileURL extracts the path from a file:// URL. A relative path such as
// file://registry is kept relative.
func parseFileURL(raw string) (string, error) {
	p := strings.TrimPrefix(raw, "file://")
	unescaped, err := url.PathUnescape(p)
	if err != nil {
		return "", zerr.With(domain.Because(domain.ErrInvalidConfig, err), "url", raw)
	}
	if unescaped == "" {
		return "", zerr.With(domain.Tagged(domain.ErrInvalidConfig, "field", "registry.url"), "url", raw)
	}
	return filepath.Clean(filepath.FromSlash(unescaped)), nil
}

var _ ports.Registry = (*TracedRegistry)(nil)

// TracedRegistry wraps a registry and records a span per request.
type TracedRegistry struct {
	next   ports.Registry
	tracer ports.Tracer
}

// NewTracedRegistry decorates next with tracing.
func NewTracedRegistry(next ports.Registry, tracer ports.Tracer) *TracedRegistry {
	return &TracedRegistry{next: next, tracer: tracer}
}

// FetchVersions implements ports.Registry.
func (r *TracedRegistry) FetchVersions(ctx context.Context, name string) ([]string, error) {
	ctx, span := r.tracer.Start(ctx, "registry.versions", ports.WithAttribute("package", name))
	defer span.End()

	versions, err := r.next.FetchVersions(ctx, name)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("versions", len(versions))
	return versions, nil
}

// FetchPackageFiles implements ports.Registry.
func (r *TracedRegistry) FetchPackageFiles(ctx context.Context, name, version string) (map[string]string, error) {
	ctx, span := r.tracer.Start(ctx, "registry.fetch",
		ports.WithAttribute("package", name),
		ports.WithAttribute("version", version),
	)
	defer span.End()

	files, err := r.next.FetchPackageFiles(ctx, name, version)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("files", len(files))
	return files, nil
}
