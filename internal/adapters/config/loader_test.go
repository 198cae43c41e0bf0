package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solres/internal/adapters/config"
	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeFile(t *testing.T, p, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
}

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return config.NewLoader(log)
}

func TestLoad_Defaults(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := newLoader(t).Load(tmpDir)
	require.NoError(t, err)

	root, err := filepath.Abs(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(root), cfg)
}

func TestLoad_FullFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "solres.yaml"), `
version: "1"
registry:
  url: https://registry.example.com/
  timeout: 5s
workspace:
  depsDir: vendor/npm
  indexPath: vendor/index.json
  fileConfiguration: false
resolve:
  sourceExtensions: [sol, ".SOLX"]
  noDependencyExtensions: [".yul"]
  debugSnapshot: true
compiler:
  binary: /opt/solc
  optimize: true
  runs: 1000
log:
  json: true
`)

	cfg, err := newLoader(t).Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "https://registry.example.com", cfg.RegistryURL)
	assert.Equal(t, 5*time.Second, cfg.RegistryTimeout)
	assert.Equal(t, "vendor/npm", cfg.DepsDir)
	assert.Equal(t, "vendor/index.json", cfg.IndexPath)
	assert.False(t, cfg.FileConfiguration)
	assert.Equal(t, []string{".sol", ".solx"}, cfg.SourceExtensions)
	assert.True(t, cfg.DebugSnapshot)
	assert.Equal(t, "/opt/solc", cfg.CompilerBinary)
	assert.True(t, cfg.Optimize)
	assert.Equal(t, 1000, cfg.OptimizerRuns)
	assert.True(t, cfg.LogJSON)
}

func TestLoad_UnknownVersionWarns(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "solres.yaml"), "version: \"7\"\n")

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	_, err := config.NewLoader(log).Load(tmpDir)
	require.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"malformed yaml", "registry: [", domain.ErrConfigParseFailed},
		{"bad scheme", "registry:\n  url: ftp://example.com\n", domain.ErrInvalidConfig},
		{"negative timeout", "registry:\n  timeout: -1s\n", domain.ErrInvalidConfig},
		{"negative runs", "compiler:\n  runs: -3\n", domain.ErrInvalidConfig},
		{"deps outside workspace", "workspace:\n  depsDir: ../elsewhere\n", domain.ErrPathOutsideWorkspace},
		{"absolute index", "workspace:\n  indexPath: /tmp/index.json\n", domain.ErrPathOutsideWorkspace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			writeFile(t, filepath.Join(tmpDir, "solres.yaml"), tt.content)

			_, err := newLoader(t).Load(tmpDir)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDiscoverRoot(t *testing.T) {
	t.Run("config file wins over nearer manifest", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, filepath.Join(tmpDir, "solres.yaml"), "version: \"1\"\n")
		writeFile(t, filepath.Join(tmpDir, "pkg", "package.json"), "{}")
		nested := filepath.Join(tmpDir, "pkg", "contracts")
		require.NoError(t, os.MkdirAll(nested, 0o750))

		root, err := newLoader(t).DiscoverRoot(nested)
		require.NoError(t, err)
		assert.Equal(t, tmpDir, root)
	})

	t.Run("nearest manifest as fallback", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, filepath.Join(tmpDir, "package.json"), "{}")
		nested := filepath.Join(tmpDir, "contracts", "token")
		require.NoError(t, os.MkdirAll(nested, 0o750))

		root, err := newLoader(t).DiscoverRoot(nested)
		require.NoError(t, err)
		assert.Equal(t, tmpDir, root)
	})

	t.Run("relative workspace root in config", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFile(t, filepath.Join(tmpDir, "solres.yaml"), "workspace:\n  root: packages/core\n")

		cfg, err := newLoader(t).Load(tmpDir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tmpDir, "packages", "core"), cfg.Root)
	})
}
