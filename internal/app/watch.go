package app

import (
	"context"
	"errors"
	"path/filepath"
	"slices"

	"go.trai.ch/solres/internal/adapters/watcher"
	"go.trai.ch/solres/internal/core/domain"
)

// DefaultDebounce is the default window for coalescing file changes.
const DefaultDebounce = watcher.DefaultDebounceWindow

// projectFiles change resolution without being bundled themselves.
var projectFiles = []string{
	domain.ManifestFileName,
	domain.LockfileName,
	domain.RemappingsFileName,
	domain.ProjectConfigFileName,
}

// Watch compiles the entries matched by pattern and compiles them again
// whenever a source or project file changes. Rebuilds whose bundle did not
// change skip the compiler. It returns when ctx is canceled.
func (a *App) Watch(ctx context.Context, pattern string) error {
	if pattern == "" {
		return domain.ErrEntryRequired
	}
	entries, err := a.entries.ResolveEntries(ctx, []string{pattern})
	if err != nil {
		return err
	}

	w, err := a.watchers()
	if err != nil {
		return err
	}
	if err := w.Start(ctx, a.workspace.Root()); err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	fingerprints := watcher.NewFingerprints()
	rebuild := func([]string) {
		for _, entry := range entries {
			a.rebuild(ctx, entry, fingerprints)
		}
	}
	debouncer := watcher.NewDebouncer(a.debounce, rebuild)

	rebuild(nil)
	a.logger.Info("watching " + a.workspace.Root())

	for event := range w.Events() {
		if a.relevant(event.Path) {
			debouncer.Add(event.Path)
		}
	}
	return nil
}

func (a *App) relevant(p string) bool {
	return a.cfg.IsBundled(p) || slices.Contains(projectFiles, filepath.Base(p))
}

func (a *App) rebuild(ctx context.Context, entry string, fingerprints *watcher.Fingerprints) {
	result, err := a.bundle(ctx, entry)
	switch {
	case ctx.Err() != nil, errors.Is(err, domain.ErrSupersededRun):
		return
	case err != nil:
		fingerprints.Forget(entry)
		_ = a.printResult(entry, domain.NewResolutionFailure(entry, err), false)
		return
	}

	if !fingerprints.Changed(entry, result.Bundle.Fingerprint()) {
		a.logger.Info(entry + " unchanged")
		return
	}

	compiled, err := a.bundler.CompileBundle(ctx, result.Bundle, entry)
	if err != nil {
		fingerprints.Forget(entry)
		if ctx.Err() == nil {
			a.logger.Error(err)
		}
		return
	}
	_ = a.printResult(entry, compiled, false)
}
