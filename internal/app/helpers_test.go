package app_test

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"go.trai.ch/solres/internal/adapters/fs"
	"go.trai.ch/solres/internal/app"
	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports"
	"go.trai.ch/solres/internal/core/ports/mocks"
	"go.trai.ch/solres/internal/engine/graph"
	"go.uber.org/mock/gomock"
)

// fakeBundler returns canned results keyed by entry.
type fakeBundler struct {
	mu       sync.Mutex
	results  map[string]*graph.Result
	errs     map[string]error
	compiled map[string]*domain.CompilationResult
	bundles  int
	compiles int
}

func newFakeBundler() *fakeBundler {
	return &fakeBundler{
		results:  make(map[string]*graph.Result),
		errs:     make(map[string]error),
		compiled: make(map[string]*domain.CompilationResult),
	}
}

func (f *fakeBundler) Bundle(_ context.Context, entry, _ string) (*graph.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bundles++
	if err := f.errs[entry]; err != nil {
		return nil, err
	}
	return f.results[entry], nil
}

func (f *fakeBundler) Compile(_ context.Context, _ domain.SourceBundle, entry string) (*domain.CompilationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.compiles++
	if err := f.errs[entry]; err != nil {
		return domain.NewResolutionFailure(entry, err), nil
	}
	return f.compiled[entry], nil
}

func (f *fakeBundler) CompileBundle(ctx context.Context, _ domain.SourceBundle, entry string) (*domain.CompilationResult, error) {
	return f.Compile(ctx, nil, entry)
}

func (f *fakeBundler) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bundles, f.compiles
}

func result(t *testing.T, bundle domain.SourceBundle, resolutions ...domain.Resolution) *graph.Result {
	t.Helper()
	var edges []graph.Edge
	for _, r := range resolutions {
		edges = append(edges, graph.Edge{Source: r.SourceFile, Target: r.Resolved})
	}
	ig, err := graph.NewImportGraph(bundle.Paths(), edges)
	if err != nil {
		t.Fatal(err)
	}
	return &graph.Result{Bundle: bundle, Resolutions: resolutions, Graph: ig}
}

type fixture struct {
	app       *app.App
	bundler   *fakeBundler
	entries   *mocks.MockEntryResolver
	switcher  *mocks.MockWorkspaceSwitcher
	index     *mocks.MockResolutionIndex
	cache     *mocks.MockPackageCache
	watcher   *mocks.MockWatcher
	logger    *mocks.MockLogger
	workspace *fs.MemoryWorkspace
	out       *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	ctrl := gomock.NewController(t)
	f := &fixture{
		bundler:  newFakeBundler(),
		entries:  mocks.NewMockEntryResolver(ctrl),
		switcher: mocks.NewMockWorkspaceSwitcher(ctrl),
		index:    mocks.NewMockResolutionIndex(ctrl),
		cache:    mocks.NewMockPackageCache(ctrl),
		watcher:  mocks.NewMockWatcher(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		workspace: fs.NewMemoryWorkspace("/project", map[string]string{
			"contracts/A.sol": "contract A {}",
			"contracts/B.sol": "contract B {}",
		}),
		out: &bytes.Buffer{},
	}
	watchers := func() (ports.Watcher, error) { return f.watcher, nil }
	f.app = app.New(f.bundler, f.entries, f.workspace, f.switcher, f.index, f.cache, watchers, f.logger,
		domain.DefaultConfig("/project")).WithOutput(f.out)
	return f
}
