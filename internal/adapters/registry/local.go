package registry

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Registry = (*LocalRegistry)(nil)

// LocalRegistry serves packages from a directory. The layout is
//
//	{root}/{name}/{version}/...
//
// where name may carry a scope directory (@scope/name).
type LocalRegistry struct {
	rootPath string
}

// NewLocalRegistry creates a registry for the directory at rootPath.
func NewLocalRegistry(rootPath string) *LocalRegistry {
	return &LocalRegistry{rootPath: filepath.Clean(rootPath)}
}

// BaseURL returns the file:// URL of the registry.
func (r *LocalRegistry) BaseURL() string {
	return "file://" + filepath.ToSlash(r.rootPath)
}

// FetchVersions lists the version directories of name.
func (r *LocalRegistry) FetchVersions(ctx context.Context, name string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir, err := r.packageDir(name)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, domain.Tagged(domain.ErrPackageNotFound, "package", name)
		}
		return nil, zerr.With(domain.Because(domain.ErrRegistryRequestFailed, err), "path", dir)
	}

	var versions []string
	for _, e := range entries {
		if e.IsDir() {
			versions = append(versions, e.Name())
		}
	}
	slices.Sort(versions)
	return versions, nil
}

// FetchPackageFiles reads every file below the version directory.
func (r *LocalRegistry) FetchPackageFiles(ctx context.Context, name, version string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pkgDir, err := r.packageDir(name)
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(pkgDir, version)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() || !contained(pkgDir, dir) {
		return nil, zerr.With(domain.Tagged(domain.ErrVersionNotFound, "package", name), "version", version)
	}

	files := make(map[string]string)
	err = filepath.WalkDir(dir, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		data, err := os.ReadFile(p) //nolint:gosec // path is below the registry root
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		return nil, zerr.With(domain.Because(domain.ErrRegistryRequestFailed, err), "path", dir)
	}
	return files, nil
}

func (r *LocalRegistry) packageDir(name string) (string, error) {
	dir := filepath.Join(r.rootPath, filepath.FromSlash(name))
	if name == "" || !contained(r.rootPath, dir) {
		return "", domain.Tagged(domain.ErrPackageNotFound, "package", name)
	}
	return dir, nil
}

func contained(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	return err == nil && rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
