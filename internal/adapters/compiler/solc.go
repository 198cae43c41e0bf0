// Package compiler runs solc in standard JSON mode.
package compiler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"

	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Compiler = (*Solc)(nil)

// Solc implements ports.Compiler by piping a standard JSON document through
// the solc binary.
type Solc struct {
	cfg    *domain.Config
	logger ports.Logger
}

// NewSolc creates a new Solc compiler.
func NewSolc(cfg *domain.Config, logger ports.Logger) *Solc {
	return &Solc{cfg: cfg, logger: logger}
}

// Compile implements ports.Compiler.
func (s *Solc) Compile(ctx context.Context, sources domain.SourceBundle, entry string) (*domain.CompilationResult, error) {
	input, err := BuildInput(sources, entry, s.cfg)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, s.cfg.CompilerBinary, "--standard-json") //nolint:gosec // binary is configured by the user
	cmd.Stdin = bytes.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	for line := range strings.SplitSeq(strings.TrimSpace(stderr.String()), "\n") {
		if line != "" {
			s.logger.Warn(line)
		}
	}

	if runErr != nil && stdout.Len() == 0 {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return nil, zerr.With(zerr.With(domain.Because(domain.ErrCompilerFailed, runErr), "exit_code", exitCode), "binary", s.cfg.CompilerBinary)
	}

	return ParseOutput(stdout.Bytes())
}

type standardInput struct {
	Language string                    `json:"language"`
	Sources  map[string]standardSource `json:"sources"`
	Settings standardSettings          `json:"settings"`
}

type standardSource struct {
	Content string `json:"content"`
}

type standardSettings struct {
	Optimizer       optimizerSettings              `json:"optimizer"`
	OutputSelection map[string]map[string][]string `json:"outputSelection"`
}

type optimizerSettings struct {
	Enabled bool `json:"enabled"`
	Runs    int  `json:"runs"`
}

// BuildInput renders the standard JSON input for a bundle. The document is
// stable for a given bundle and configuration.
func BuildInput(sources domain.SourceBundle, entry string, cfg *domain.Config) ([]byte, error) {
	language := "Solidity"
	if cfg.IsNoDependency(entry) {
		language = "Yul"
	}

	in := standardInput{
		Language: language,
		Sources:  make(map[string]standardSource, len(sources)),
		Settings: standardSettings{
			Optimizer: optimizerSettings{Enabled: cfg.Optimize, Runs: cfg.OptimizerRuns},
			OutputSelection: map[string]map[string][]string{
				"*": {"*": {"abi", "evm.bytecode.object", "evm.deployedBytecode.object", "metadata"}},
			},
		},
	}
	for p, content := range sources {
		in.Sources[p] = standardSource{Content: content}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(in); err != nil {
		return nil, zerr.Wrap(err, "failed to encode compiler input")
	}
	return buf.Bytes(), nil
}

type standardOutput struct {
	Errors    []domain.Diagnostic                   `json:"errors"`
	Contracts map[string]map[string]json.RawMessage `json:"contracts"`
}

// ParseOutput decodes the standard JSON output of solc. The result is
// successful when no diagnostic has error severity.
func ParseOutput(data []byte) (*domain.CompilationResult, error) {
	var out standardOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, domain.Because(domain.ErrCompilerOutput, err)
	}

	result := &domain.CompilationResult{
		Diagnostics: out.Errors,
		Contracts:   out.Contracts,
	}
	result.Success = len(result.Errors()) == 0
	return result, nil
}
