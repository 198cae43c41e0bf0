package domain

import "path"

const (
	// DepsDirName is the name of the workspace directory holding resolver state.
	DepsDirName = ".deps"

	// NpmDirName is the directory under DepsDirName where package files are placed.
	NpmDirName = "npm"

	// BundlesDirName is the directory under DepsDirName holding debug bundle snapshots.
	BundlesDirName = ".bundles"

	// IndexFileName is the name of the persisted resolution index.
	IndexFileName = ".resolution-index.json"

	// ConfigFileName is the name of the tool configuration file.
	ConfigFileName = "solres.yaml"

	// ManifestFileName is the npm package manifest.
	ManifestFileName = "package.json"

	// LockfileName is the yarn lockfile.
	LockfileName = "yarn.lock"

	// RemappingsFileName is the plain-text remapping file.
	RemappingsFileName = "remappings.txt"

	// ProjectConfigFileName is the project configuration file that may carry remappings.
	ProjectConfigFileName = "remix.config.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultDepsPath returns the workspace-relative directory for fetched packages.
// It joins .deps and npm.
func DefaultDepsPath() string {
	return path.Join(DepsDirName, NpmDirName)
}

// DefaultIndexPath returns the workspace-relative path of the resolution index.
func DefaultIndexPath() string {
	return path.Join(DepsDirName, IndexFileName)
}

// DefaultBundlesPath returns the workspace-relative directory for debug bundle snapshots.
func DefaultBundlesPath() string {
	return path.Join(DepsDirName, BundlesDirName)
}
