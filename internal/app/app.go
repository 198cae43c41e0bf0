// Package app implements the application layer for solres.
package app

import (
	"context"
	"io"
	"os"
	"time"

	"go.trai.ch/solres/internal/adapters/telemetry"
	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
	"go.trai.ch/solres/internal/engine/graph"
)

// Bundler resolves entries into bundles and compiles them.
type Bundler interface {
	Bundle(ctx context.Context, entry, content string) (*graph.Result, error)
	Compile(ctx context.Context, sources domain.SourceBundle, entry string) (*domain.CompilationResult, error)
	CompileBundle(ctx context.Context, bundle domain.SourceBundle, entry string) (*domain.CompilationResult, error)
}

// App represents the main application logic.
type App struct {
	bundler   Bundler
	entries   ports.EntryResolver
	workspace ports.Workspace
	switcher  ports.WorkspaceSwitcher
	index     ports.ResolutionIndex
	cache     ports.PackageCache
	watchers  ports.WatcherFactory
	logger    ports.Logger
	cfg       *domain.Config

	out      io.Writer
	debounce time.Duration
}

// New creates a new App instance.
func New(
	b Bundler,
	entries ports.EntryResolver,
	workspace ports.Workspace,
	switcher ports.WorkspaceSwitcher,
	index ports.ResolutionIndex,
	cache ports.PackageCache,
	watchers ports.WatcherFactory,
	log ports.Logger,
	cfg *domain.Config,
) *App {
	return &App{
		bundler:   b,
		entries:   entries,
		workspace: workspace,
		switcher:  switcher,
		index:     index,
		cache:     cache,
		watchers:  watchers,
		logger:    log,
		cfg:       cfg,
		out:       os.Stdout,
		debounce:  DefaultDebounce,
	}
}

// WithOutput sets the writer that command results are printed to.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithDebounce sets the window used to coalesce file changes in Watch.
func (a *App) WithDebounce(d time.Duration) *App {
	a.debounce = d
	return a
}

// GlobalOptions are the flags shared by every command.
type GlobalOptions struct {
	JSON  bool
	Quiet bool
	Trace bool
}

type configurableLogger interface {
	SetJSON(enable bool)
	SetQuiet(quiet bool)
}

// Configure applies global options. The returned function flushes and stops
// tracing and must be called before exit.
func (a *App) Configure(opts GlobalOptions) func(context.Context) error {
	if l, ok := a.logger.(configurableLogger); ok {
		l.SetJSON(opts.JSON || a.cfg.LogJSON)
		l.SetQuiet(opts.Quiet)
	}
	if !opts.Trace {
		return func(context.Context) error { return nil }
	}
	return telemetry.Setup(telemetry.NewBridge(a.logger))
}

// SwitchWorkspace re-roots the workspace at root. Cached packages are
// dropped and the resolution index of the new workspace is loaded.
func (a *App) SwitchWorkspace(ctx context.Context, root string) error {
	if err := a.switcher.SetRoot(root); err != nil {
		return err
	}
	a.cache.Invalidate()
	if err := a.index.Reload(ctx); err != nil {
		return err
	}
	a.logger.Info("workspace: " + a.workspace.Root())
	return nil
}
