// Package registry provides package registry clients: the npm HTTP
// protocol and a local directory layout for offline use.
package registry

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strings"
	"sync"
	"time"

	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// abbreviatedMetadata asks the registry for the install-only packument.
	abbreviatedMetadata = "application/vnd.npm.install-v1+json; q=1.0, application/json; q=0.8"

	maxPackumentSize = 32 << 20
	maxTarballSize   = 64 << 20
)

var _ ports.Registry = (*NPMClient)(nil)

// NPMClient implements ports.Registry against an npm compatible registry.
type NPMClient struct {
	baseURL string
	client  *http.Client
	cache   sync.Map // map[string]*packument keyed by package name
}

type packument struct {
	Name     string                      `json:"name"`
	DistTags map[string]string           `json:"dist-tags"`
	Versions map[string]packumentVersion `json:"versions"`
}

type packumentVersion struct {
	Version string `json:"version"`
	Dist    struct {
		Tarball string `json:"tarball"`
	} `json:"dist"`
}

// NewNPMClient creates a client for the registry at baseURL.
func NewNPMClient(baseURL string, timeout time.Duration) *NPMClient {
	transport := &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	return &NPMClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// BaseURL returns the registry base URL.
func (c *NPMClient) BaseURL() string {
	return c.baseURL
}

// FetchVersions returns every published version of name.
func (c *NPMClient) FetchVersions(ctx context.Context, name string) ([]string, error) {
	doc, err := c.packument(ctx, name)
	if err != nil {
		return nil, err
	}
	versions := make([]string, 0, len(doc.Versions))
	for v := range doc.Versions {
		versions = append(versions, v)
	}
	slices.Sort(versions)
	return versions, nil
}

// FetchPackageFiles downloads the tarball of name@version and returns its
// files keyed by their path relative to the package root.
func (c *NPMClient) FetchPackageFiles(ctx context.Context, name, version string) (map[string]string, error) {
	doc, err := c.packument(ctx, name)
	if err != nil {
		return nil, err
	}
	meta, ok := doc.Versions[version]
	if !ok || meta.Dist.Tarball == "" {
		return nil, zerr.With(domain.Tagged(domain.ErrVersionNotFound, "package", name), "version", version)
	}

	body, err := c.get(ctx, meta.Dist.Tarball, "application/octet-stream", name)
	if err != nil {
		return nil, err
	}
	defer body.Close() //nolint:errcheck // read-only body

	files, err := untar(io.LimitReader(body, maxTarballSize))
	if err != nil {
		return nil, zerr.With(zerr.With(domain.Because(domain.ErrRegistryDecodeFailed, err), "package", name), "version", version)
	}
	return files, nil
}

func (c *NPMClient) packument(ctx context.Context, name string) (*packument, error) {
	if cached, ok := c.cache.Load(name); ok {
		return cached.(*packument), nil
	}

	body, err := c.get(ctx, c.baseURL+"/"+escapeName(name), abbreviatedMetadata, name)
	if err != nil {
		return nil, err
	}
	defer body.Close() //nolint:errcheck // read-only body

	var doc packument
	if err := json.NewDecoder(io.LimitReader(body, maxPackumentSize)).Decode(&doc); err != nil {
		return nil, zerr.With(domain.Because(domain.ErrRegistryDecodeFailed, err), "package", name)
	}

	actual, _ := c.cache.LoadOrStore(name, &doc)
	return actual.(*packument), nil
}

func (c *NPMClient) get(ctx context.Context, rawURL, accept, name string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, zerr.With(domain.Because(domain.ErrRegistryRequestFailed, err), "url", rawURL)
	}
	req.Header.Set("Accept", accept)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, zerr.With(domain.Because(domain.ErrRegistryRequestFailed, err), "url", rawURL)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusNotFound:
		_ = resp.Body.Close()
		return nil, domain.Tagged(domain.ErrPackageNotFound, "package", name)
	default:
		_ = resp.Body.Close()
		return nil, zerr.With(domain.Tagged(domain.ErrRegistryRequestFailed, "status", resp.StatusCode), "url", rawURL)
	}
}

// escapeName keeps the scope marker but encodes the separator, which is
// what the public registry expects for scoped packages.
func escapeName(name string) string {
	if strings.HasPrefix(name, "@") {
		scope, rest, _ := strings.Cut(name, "/")
		return scope + "%2f" + url.PathEscape(rest)
	}
	return url.PathEscape(name)
}

// untar reads a gzipped npm tarball. The leading directory (usually
// "package/") is stripped from every entry.
func untar(r io.Reader) (map[string]string, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer gz.Close() //nolint:errcheck // read-only stream

	files := make(map[string]string)
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return files, nil
		}
		if err != nil {
			return nil, err
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		name := path.Clean(strings.TrimPrefix(hdr.Name, "./"))
		_, rel, found := strings.Cut(name, "/")
		if !found || rel == "" || rel == ".." || strings.HasPrefix(rel, "../") {
			continue
		}

		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, err
		}
		files[rel] = string(data)
	}
}
