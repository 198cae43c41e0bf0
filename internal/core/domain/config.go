package domain

import (
	"path"
	"slices"
	"strings"
	"time"
)

const (
	// DefaultRegistryURL is the public npm registry.
	DefaultRegistryURL = "https://registry.npmjs.org"

	// DefaultRegistryTimeout bounds a single registry request.
	DefaultRegistryTimeout = 30 * time.Second

	// DefaultCompilerBinary is the compiler executable looked up on PATH.
	DefaultCompilerBinary = "solc"
)

// Config is the resolved tool configuration.
type Config struct {
	// Root is the absolute workspace root.
	Root string

	RegistryURL     string
	RegistryTimeout time.Duration

	// DepsDir is the workspace-relative directory package files are bundled under.
	DepsDir string
	// IndexPath is the workspace-relative path of the resolution index.
	IndexPath string
	// FileConfiguration enables reading remappings from the project config file.
	FileConfiguration bool

	SourceExtensions       []string
	NoDependencyExtensions []string
	DebugSnapshot          bool

	CompilerBinary string
	Optimize       bool
	OptimizerRuns  int

	LogJSON bool
}

// DefaultConfig returns the configuration used when no config file is present.
func DefaultConfig(root string) *Config {
	return &Config{
		Root:                   root,
		RegistryURL:            DefaultRegistryURL,
		RegistryTimeout:        DefaultRegistryTimeout,
		DepsDir:                DefaultDepsPath(),
		IndexPath:              DefaultIndexPath(),
		FileConfiguration:      true,
		SourceExtensions:       []string{".sol"},
		NoDependencyExtensions: []string{".yul"},
		CompilerBinary:         DefaultCompilerBinary,
		OptimizerRuns:          200,
	}
}

// IsNoDependency reports whether p is a file kind that has no import grammar.
func (c *Config) IsNoDependency(p string) bool {
	return slices.Contains(c.NoDependencyExtensions, strings.ToLower(path.Ext(p)))
}

// IsSource reports whether p is scanned for imports.
func (c *Config) IsSource(p string) bool {
	return slices.Contains(c.SourceExtensions, strings.ToLower(path.Ext(p)))
}

// IsBundled reports whether a package file of this kind belongs in a bundle.
func (c *Config) IsBundled(p string) bool {
	return c.IsSource(p) || c.IsNoDependency(p)
}
