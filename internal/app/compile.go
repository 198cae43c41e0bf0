package app

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/ui/output"
	"go.trai.ch/solres/internal/ui/style"
	"go.trai.ch/zerr"
)

// CompileOptions configuration for the Compile method.
type CompileOptions struct {
	JSON bool
}

// Compile resolves and compiles every entry matched by patterns. It returns
// ErrCompilationFailed when any entry produced an error diagnostic.
func (a *App) Compile(ctx context.Context, patterns []string, opts CompileOptions) error {
	if len(patterns) == 0 {
		return domain.ErrEntryRequired
	}
	entries, err := a.entries.ResolveEntries(ctx, patterns)
	if err != nil {
		return err
	}

	failed := false
	for _, entry := range entries {
		result, err := a.bundler.Compile(ctx, nil, entry)
		if err != nil {
			return zerr.With(err, "entry", entry)
		}
		if err := a.printResult(entry, result, opts.JSON); err != nil {
			return err
		}
		failed = failed || !result.Success
	}
	if failed {
		return domain.ErrCompilationFailed
	}
	return nil
}

func (a *App) printResult(entry string, result *domain.CompilationResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(a.out)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(result); err != nil {
			return zerr.Wrap(err, "failed to encode compilation result")
		}
		return nil
	}

	out := output.New(a.out)
	for _, d := range result.Diagnostics {
		icon, color := style.Severity(string(d.Severity))
		msg := strings.TrimRight(d.FormattedMessage, "\n")
		if msg == "" {
			msg = fmt.Sprintf("%s: %s", d.Type, d.Message)
		}
		_, _ = fmt.Fprintf(a.out, "%s %s\n", output.Paint(out, icon, string(color)), msg)
	}

	if !result.Success {
		_, _ = fmt.Fprintf(a.out, "%s %s failed with %d error(s)\n",
			output.Paint(out, style.Cross, string(style.Red)), entry, len(result.Errors()))
		return nil
	}

	var contracts []string
	for file, byName := range result.Contracts {
		for name := range byName {
			contracts = append(contracts, file+":"+name)
		}
	}
	slices.Sort(contracts)
	_, _ = fmt.Fprintf(a.out, "%s %s %s\n",
		output.Paint(out, style.Check, string(style.Green)),
		entry,
		output.Paint(out, fmt.Sprintf("(%d contracts, %s)", len(contracts), result.Fingerprint), string(style.Slate)),
	)
	for _, c := range contracts {
		_, _ = fmt.Fprintf(a.out, "    %s\n", c)
	}
	return nil
}
