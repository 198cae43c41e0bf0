package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrMalformedImport is returned when an import literal cannot be split into a package reference.
	ErrMalformedImport = zerr.New("malformed import literal")

	// ErrRemappingParse is returned for a remapping line that is not of the form from=to.
	ErrRemappingParse = zerr.New("malformed remapping rule")

	// ErrManifestParse is returned when package.json cannot be decoded.
	ErrManifestParse = zerr.New("failed to parse package manifest")

	// ErrLockfileParse is returned when yarn.lock cannot be decoded.
	ErrLockfileParse = zerr.New("failed to parse lockfile")

	// ErrProjectConfigParse is returned when the project configuration file cannot be decoded.
	ErrProjectConfigParse = zerr.New("failed to parse project configuration")

	// ErrInvalidVersionRange is returned when a declared version is not a usable semver range.
	ErrInvalidVersionRange = zerr.New("invalid version range")

	// ErrResolution is the umbrella error for any failure that prevents a target from being resolved.
	ErrResolution = zerr.New("failed to resolve imports")

	// ErrVersionNotFound is returned when no published version satisfies a request.
	ErrVersionNotFound = zerr.New("no matching version found")

	// ErrPackageNotFound is returned when the registry does not know the package.
	ErrPackageNotFound = zerr.New("package not found in registry")

	// ErrRegistryRequestFailed is returned when the registry cannot be reached or answers unexpectedly.
	ErrRegistryRequestFailed = zerr.New("registry request failed")

	// ErrRegistryDecodeFailed is returned when a registry response cannot be decoded.
	ErrRegistryDecodeFailed = zerr.New("failed to decode registry response")

	// ErrPathOutsideWorkspace is returned when a path escapes the workspace root.
	ErrPathOutsideWorkspace = zerr.New("path is outside workspace root")

	// ErrSourceNotFound is returned when an imported workspace file does not exist.
	ErrSourceNotFound = zerr.New("imported source not found")

	// ErrWorkspaceRead is returned when a workspace file cannot be read.
	ErrWorkspaceRead = zerr.New("failed to read workspace file")

	// ErrWorkspaceWrite is returned when a workspace file or directory cannot be written.
	ErrWorkspaceWrite = zerr.New("failed to write workspace file")

	// ErrIndexCorrupt is returned when the persisted resolution index cannot be decoded.
	ErrIndexCorrupt = zerr.New("resolution index is corrupt")

	// ErrIndexSaveFailed is returned when the resolution index cannot be persisted.
	ErrIndexSaveFailed = zerr.New("failed to save resolution index")

	// ErrSupersededRun is returned when a newer request for the same entry replaced this one.
	ErrSupersededRun = zerr.New("resolution superseded by a newer request")

	// ErrCompilerFailed is returned when the compiler process could not be run.
	ErrCompilerFailed = zerr.New("compiler invocation failed")

	// ErrCompilerOutput is returned when the compiler output cannot be decoded.
	ErrCompilerOutput = zerr.New("failed to decode compiler output")

	// ErrConfigReadFailed is returned when the configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the configuration file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when the configuration contains unusable values.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrEntryRequired is returned when a command needs an entry file and none was given.
	ErrEntryRequired = zerr.New("entry file required")

	// ErrNotIndexed is returned when the resolution index has no mapping for an import.
	ErrNotIndexed = zerr.New("import not found in resolution index")

	// ErrCompilationFailed is returned by the CLI when compilation produced errors.
	ErrCompilationFailed = zerr.New("compilation failed")
)

// Tagged attaches metadata to a sentinel. zerr.With copies the error it is
// given, so the sentinel is wrapped first to keep errors.Is matching it.
func Tagged(sentinel error, key string, value any) error {
	return zerr.With(zerr.Wrap(sentinel, ""), key, value)
}

// Because returns an error that matches both sentinel and cause with errors.Is.
func Because(sentinel, cause error) error {
	return zerr.Wrap(fmt.Errorf("%w: %w", sentinel, cause), "")
}
