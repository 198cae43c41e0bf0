package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"go.trai.ch/solres/internal/adapters/index"
	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/engine/graph"
	"go.trai.ch/solres/internal/ui/output"
	"go.trai.ch/solres/internal/ui/style"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// EntryReport is the outcome of resolving one entry.
type EntryReport struct {
	Entry       string              `json:"entry"`
	Files       int                 `json:"files"`
	Fingerprint string              `json:"fingerprint,omitempty"`
	Resolutions []domain.Resolution `json:"resolutions,omitempty"`
	Error       string              `json:"error,omitempty"`
}

// ResolveOptions configuration for the Resolve method.
type ResolveOptions struct {
	JSON bool
}

// Resolve bundles every entry matched by patterns, or every source file of
// the workspace without patterns, and records the resolutions in the index.
// Entries are resolved concurrently. One failing entry does not stop the
// others.
func (a *App) Resolve(ctx context.Context, patterns []string, opts ResolveOptions) error {
	entries, err := a.entries.ResolveEntries(ctx, patterns)
	if err != nil {
		return err
	}

	reports := make([]EntryReport, len(entries))
	var (
		mu   sync.Mutex
		errs error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, entry := range entries {
		g.Go(func() error {
			reports[i] = EntryReport{Entry: entry}
			result, err := a.bundle(gctx, entry)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				reports[i].Error = err.Error()
				mu.Lock()
				errs = errors.Join(errs, zerr.With(err, "entry", entry))
				mu.Unlock()
				return nil
			}
			reports[i].Files = len(result.Bundle)
			reports[i].Fingerprint = result.Bundle.Fingerprint()
			reports[i].Resolutions = result.Resolutions
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if opts.JSON {
		enc := json.NewEncoder(a.out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return zerr.Wrap(err, "failed to encode resolve report")
		}
	} else {
		a.printReports(reports)
	}

	if errs != nil {
		return errors.Join(domain.ErrResolution, errs)
	}
	return nil
}

func (a *App) printReports(reports []EntryReport) {
	out := output.New(a.out)
	for _, r := range reports {
		if r.Error != "" {
			_, _ = fmt.Fprintf(a.out, "%s %s: %s\n", output.Paint(out, style.Cross, string(style.Red)), r.Entry, r.Error)
			continue
		}
		_, _ = fmt.Fprintf(a.out, "%s %s %s\n",
			output.Paint(out, style.Check, string(style.Green)),
			r.Entry,
			output.Paint(out, fmt.Sprintf("(%d files, %s)", r.Files, r.Fingerprint), string(style.Slate)),
		)
		for _, res := range r.Resolutions {
			if res.SourceFile != r.Entry {
				continue
			}
			_, _ = fmt.Fprintf(a.out, "    %s %s %s\n", res.Original, output.Paint(out, style.Arrow, string(style.Accent)), res.Resolved)
		}
	}
}

// Graph writes the import graph of the entry matched by pattern in DOT.
func (a *App) Graph(ctx context.Context, pattern string) error {
	entry, err := a.singleEntry(ctx, pattern)
	if err != nil {
		return err
	}
	result, err := a.bundle(ctx, entry)
	if err != nil {
		return err
	}
	return result.Graph.WriteDOT(a.out)
}

// Lookup prints the resolved path recorded for an import. With a source
// file only that file's mapping is consulted, otherwise the first file in
// sorted order that imports it.
func (a *App) Lookup(ctx context.Context, original, source string) error {
	if err := a.index.Load(ctx); err != nil {
		return err
	}

	var (
		resolved string
		ok       bool
	)
	if source != "" {
		resolved, ok = a.index.Lookup(source, original)
	} else {
		resolved, ok = a.index.LookupAny(original)
	}
	if !ok {
		err := domain.Tagged(domain.ErrNotIndexed, "import", original)
		if source != "" {
			err = zerr.With(err, "source", source)
		}
		return err
	}
	_, err := fmt.Fprintln(a.out, resolved)
	return err
}

// Index prints the whole resolution index as JSON.
func (a *App) Index(ctx context.Context) error {
	if err := a.index.Load(ctx); err != nil {
		return err
	}
	data, err := index.Marshal(a.index.Snapshot())
	if err != nil {
		return err
	}
	_, err = a.out.Write(data)
	return err
}

func (a *App) bundle(ctx context.Context, entry string) (*graph.Result, error) {
	content, err := a.workspace.ReadFile(ctx, entry)
	if err != nil {
		return nil, err
	}
	return a.bundler.Bundle(ctx, entry, content)
}

func (a *App) singleEntry(ctx context.Context, pattern string) (string, error) {
	if pattern == "" {
		return "", domain.ErrEntryRequired
	}
	entries, err := a.entries.ResolveEntries(ctx, []string{pattern})
	if err != nil {
		return "", err
	}
	if len(entries) != 1 {
		return "", zerr.With(domain.Tagged(domain.ErrEntryRequired, "pattern", pattern), "matches", len(entries))
	}
	return entries[0], nil
}
