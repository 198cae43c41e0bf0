// Package config provides the configuration loader for solres.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// DiscoverRoot walks up from cwd looking for solres.yaml. A package.json is
// used as a fallback marker. When neither exists cwd is the root.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve working directory")
	}

	var manifestCandidate string
	currentDir := abs
	for {
		if exists(filepath.Join(currentDir, domain.ConfigFileName)) {
			return currentDir, nil
		}
		if manifestCandidate == "" && exists(filepath.Join(currentDir, domain.ManifestFileName)) {
			manifestCandidate = currentDir
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	if manifestCandidate != "" {
		return manifestCandidate, nil
	}
	return abs, nil
}

// Load discovers the workspace root from cwd and reads its solres.yaml, if
// any. Missing files yield the defaults.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	root, err := l.DiscoverRoot(cwd)
	if err != nil {
		return nil, err
	}

	cfg := domain.DefaultConfig(root)
	configPath := filepath.Join(root, domain.ConfigFileName)
	if !exists(configPath) {
		return cfg, nil
	}

	var file File
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if err := l.apply(cfg, &file, root); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return cfg, nil
}

func (l *Loader) apply(cfg *domain.Config, file *File, root string) error {
	if file.Version != "" && file.Version != "1" {
		l.Logger.Warn(fmt.Sprintf("unknown %s version %q, reading as version 1", domain.ConfigFileName, file.Version))
	}

	if file.Workspace.Root != "" {
		cfg.Root = resolveRoot(root, file.Workspace.Root)
	}
	if file.Workspace.DepsDir != "" {
		dir, err := workspacePath(file.Workspace.DepsDir)
		if err != nil {
			return zerr.With(err, "field", "workspace.depsDir")
		}
		cfg.DepsDir = dir
	}
	if file.Workspace.IndexPath != "" {
		p, err := workspacePath(file.Workspace.IndexPath)
		if err != nil {
			return zerr.With(err, "field", "workspace.indexPath")
		}
		cfg.IndexPath = p
	}
	if file.Workspace.FileConfiguration != nil {
		cfg.FileConfiguration = *file.Workspace.FileConfiguration
	}

	if file.Registry.URL != "" {
		if err := validateRegistryURL(file.Registry.URL); err != nil {
			return err
		}
		cfg.RegistryURL = strings.TrimSuffix(file.Registry.URL, "/")
	}
	if file.Registry.Timeout < 0 {
		return zerr.With(domain.Tagged(domain.ErrInvalidConfig, "field", "registry.timeout"), "value", file.Registry.Timeout.String())
	}
	if file.Registry.Timeout > 0 {
		cfg.RegistryTimeout = file.Registry.Timeout
	}

	if len(file.Resolve.SourceExtensions) > 0 {
		cfg.SourceExtensions = normalizeExtensions(file.Resolve.SourceExtensions)
	}
	if len(file.Resolve.NoDependencyExtensions) > 0 {
		cfg.NoDependencyExtensions = normalizeExtensions(file.Resolve.NoDependencyExtensions)
	}
	for _, ext := range cfg.NoDependencyExtensions {
		if cfg.IsSource("x" + ext) {
			l.Logger.Warn(fmt.Sprintf("extension %s is listed as both source and no-dependency; treating it as no-dependency", ext))
		}
	}
	cfg.DebugSnapshot = file.Resolve.DebugSnapshot

	if file.Compiler.Binary != "" {
		cfg.CompilerBinary = file.Compiler.Binary
	}
	cfg.Optimize = file.Compiler.Optimize
	if file.Compiler.Runs < 0 {
		return zerr.With(domain.Tagged(domain.ErrInvalidConfig, "field", "compiler.runs"), "value", file.Compiler.Runs)
	}
	if file.Compiler.Runs > 0 {
		cfg.OptimizerRuns = file.Compiler.Runs
	}

	cfg.LogJSON = file.Log.JSON
	return nil
}

func validateRegistryURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return domain.Because(domain.Tagged(domain.ErrInvalidConfig, "field", "registry.url"), err)
	}
	switch u.Scheme {
	case "http", "https", "file":
		return nil
	default:
		return zerr.With(domain.Tagged(domain.ErrInvalidConfig, "field", "registry.url"), "scheme", u.Scheme)
	}
}

// workspacePath cleans a workspace-relative path and rejects paths that
// would leave the workspace.
func workspacePath(p string) (string, error) {
	cleaned := path.Clean(filepath.ToSlash(p))
	if path.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", domain.Tagged(domain.ErrPathOutsideWorkspace, "path", p)
	}
	return cleaned, nil
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

func resolveRoot(configDir, root string) string {
	if filepath.IsAbs(root) {
		return filepath.Clean(root)
	}
	return filepath.Join(configDir, root)
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered by the loader
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return domain.Because(domain.ErrConfigReadFailed, err)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return domain.Because(domain.ErrConfigParseFailed, parseErr)
	}

	return nil
}
