package config

import "time"

// File represents the structure of the solres.yaml configuration file.
type File struct {
	Version   string       `yaml:"version"`
	Registry  RegistryDTO  `yaml:"registry"`
	Workspace WorkspaceDTO `yaml:"workspace"`
	Resolve   ResolveDTO   `yaml:"resolve"`
	Compiler  CompilerDTO  `yaml:"compiler"`
	Log       LogDTO       `yaml:"log"`
}

// RegistryDTO configures the package registry client.
type RegistryDTO struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// WorkspaceDTO configures workspace-relative locations.
type WorkspaceDTO struct {
	Root              string `yaml:"root"`
	DepsDir           string `yaml:"depsDir"`
	IndexPath         string `yaml:"indexPath"`
	FileConfiguration *bool  `yaml:"fileConfiguration"`
}

// ResolveDTO configures which files take part in resolution.
type ResolveDTO struct {
	SourceExtensions       []string `yaml:"sourceExtensions"`
	NoDependencyExtensions []string `yaml:"noDependencyExtensions"`
	DebugSnapshot          bool     `yaml:"debugSnapshot"`
}

// CompilerDTO configures the compiler backend.
type CompilerDTO struct {
	Binary   string `yaml:"binary"`
	Optimize bool   `yaml:"optimize"`
	Runs     int    `yaml:"runs"`
}

// LogDTO configures log output.
type LogDTO struct {
	JSON bool `yaml:"json"`
}
