package domain

import "encoding/json"

// Severity classifies a compiler diagnostic.
type Severity string

const (
	// SeverityError marks a diagnostic that fails the compilation.
	SeverityError Severity = "error"
	// SeverityWarning marks a non-fatal diagnostic.
	SeverityWarning Severity = "warning"
	// SeverityInfo marks an informational diagnostic.
	SeverityInfo Severity = "info"
)

// DiagnosticTypeResolution is the diagnostic type used for import resolution failures.
const DiagnosticTypeResolution = "ResolutionError"

// SourceLocation points at a byte range in a bundled file.
type SourceLocation struct {
	File  string `json:"file"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Diagnostic is a compiler-shaped message.
type Diagnostic struct {
	Severity         Severity        `json:"severity"`
	Type             string          `json:"type"`
	Component        string          `json:"component"`
	Message          string          `json:"message"`
	FormattedMessage string          `json:"formattedMessage,omitempty"`
	Location         *SourceLocation `json:"sourceLocation,omitempty"`
}

// CompilationResult is what a compiler returns for one bundle.
type CompilationResult struct {
	Success     bool         `json:"success"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`

	// Contracts maps source path to contract name to the raw compiler output.
	Contracts map[string]map[string]json.RawMessage `json:"contracts,omitempty"`

	// Fingerprint identifies the bundle that was compiled.
	Fingerprint string `json:"fingerprint,omitempty"`
}

// Errors returns the error-severity diagnostics.
func (r *CompilationResult) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// NewResolutionFailure builds a failed result that carries err as a single diagnostic.
func NewResolutionFailure(entry string, err error) *CompilationResult {
	return &CompilationResult{
		Success: false,
		Diagnostics: []Diagnostic{{
			Severity:         SeverityError,
			Type:             DiagnosticTypeResolution,
			Component:        "resolver",
			Message:          err.Error(),
			FormattedMessage: DiagnosticTypeResolution + ": " + err.Error() + "\n --> " + entry + "\n",
			Location:         &SourceLocation{File: entry, Start: -1, End: -1},
		}},
	}
}
