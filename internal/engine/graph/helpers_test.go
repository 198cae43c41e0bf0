package graph_test

import (
	"context"
	"maps"
	"slices"
	"sync"
	"testing"

	"go.trai.ch/solres/internal/adapters/cache"
	"go.trai.ch/solres/internal/adapters/fs"
	"go.trai.ch/solres/internal/adapters/telemetry"
	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports/mocks"
	"go.trai.ch/solres/internal/engine/graph"
	"go.trai.ch/solres/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

const (
	oz    = "@openzeppelin/contracts"
	oz483 = ".deps/npm/@openzeppelin/contracts@4.8.3"
	oz502 = ".deps/npm/@openzeppelin/contracts@5.0.2"
)

// fakeRegistry serves packages from memory and counts file fetches per key.
type fakeRegistry struct {
	packages map[string]map[string]map[string]string

	mu      sync.Mutex
	fetches map[string]int
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		packages: map[string]map[string]map[string]string{
			oz: {
				"4.8.3": {
					"package.json":           `{"name":"@openzeppelin/contracts","version":"4.8.3"}`,
					"README.md":              "# OpenZeppelin",
					"token/ERC20/ERC20.sol":  "import \"./IERC20.sol\";\nimport \"../../utils/Context.sol\";\ncontract ERC20 is IERC20, Context {}\n",
					"token/ERC20/IERC20.sol": "interface IERC20 {}\n",
					"utils/Context.sol":      "abstract contract Context {}\n",
				},
				"5.0.2": {
					"token/ERC20/IERC20.sol": "interface IERC20 {}\n",
				},
				"5.1.0-rc.0": {
					"token/ERC20/IERC20.sol": "interface IERC20 {}\n",
				},
			},
			"solmate": {
				"6.2.0": {
					"src/tokens/ERC20.sol": "import {IERC20} from \"@openzeppelin/contracts/token/ERC20/IERC20.sol\";\nabstract contract ERC20 {}\n",
					"src/yul/Math.yul":     "object \"Math\" { code { } }\n",
				},
			},
		},
		fetches: make(map[string]int),
	}
}

func (r *fakeRegistry) FetchVersions(_ context.Context, name string) ([]string, error) {
	versions, ok := r.packages[name]
	if !ok {
		return nil, domain.Tagged(domain.ErrPackageNotFound, "package", name)
	}
	return slices.Sorted(maps.Keys(versions)), nil
}

func (r *fakeRegistry) FetchPackageFiles(_ context.Context, name, version string) (map[string]string, error) {
	r.mu.Lock()
	r.fetches[name+"@"+version]++
	r.mu.Unlock()

	files, ok := r.packages[name][version]
	if !ok {
		return nil, domain.Tagged(domain.ErrVersionNotFound, "version", version)
	}
	return maps.Clone(files), nil
}

func (r *fakeRegistry) fetchCounts() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.fetches)
}

type fixture struct {
	builder   *graph.Builder
	registry  *fakeRegistry
	workspace *fs.MemoryWorkspace
	logger    *mocks.MockLogger
}

func newFixture(t *testing.T, files map[string]string) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	reg := newFakeRegistry()
	ws := fs.NewMemoryWorkspace("/project", files)
	cfg := domain.DefaultConfig("/project")
	res := resolver.New(reg, log)

	return &fixture{
		builder:   graph.New(ws, cache.New(reg), res, cfg, telemetry.NewNoOpTracer(), log),
		registry:  reg,
		workspace: ws,
		logger:    log,
	}
}

func ozManifest() *domain.Project {
	return &domain.Project{Manifest: &domain.Manifest{Dependencies: map[string]string{oz: "4.8.3"}}}
}
