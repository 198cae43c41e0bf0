package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solres/internal/adapters/fs"
	"go.trai.ch/solres/internal/core/domain"
)

func TestWorkspace_ReadWrite(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	ws, err := fs.NewWorkspace(tmpDir)
	require.NoError(t, err)

	require.NoError(t, ws.Mkdir(ctx, ".deps"))
	require.NoError(t, ws.WriteFile(ctx, ".deps/.resolution-index.json", "{}"))

	got, err := ws.ReadFile(ctx, ".deps/.resolution-index.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", got)

	ok, err := ws.Exists(ctx, ".deps")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ws.Exists(ctx, "missing.sol")
	require.NoError(t, err)
	assert.False(t, ok)

	entries, err := os.ReadDir(filepath.Join(tmpDir, ".deps"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestWorkspace_ReadMissing(t *testing.T) {
	ws, err := fs.NewWorkspace(t.TempDir())
	require.NoError(t, err)

	_, err = ws.ReadFile(context.Background(), "contracts/Nope.sol")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWorkspaceRead)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWorkspace_RejectsEscapes(t *testing.T) {
	ctx := context.Background()
	ws, err := fs.NewWorkspace(t.TempDir())
	require.NoError(t, err)

	for _, p := range []string{"../outside.sol", "/etc/passwd", "contracts/../../x.sol"} {
		_, err := ws.ReadFile(ctx, p)
		assert.ErrorIs(t, err, domain.ErrPathOutsideWorkspace, p)
	}
}

func TestWorkspace_SetRoot(t *testing.T) {
	ctx := context.Background()
	first, second := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(second, "A.sol"), []byte("contract A {}"), 0o600))

	ws, err := fs.NewWorkspace(first)
	require.NoError(t, err)
	ok, err := ws.Exists(ctx, "A.sol")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, ws.SetRoot(second))
	assert.Equal(t, second, ws.Root())
	ok, err = ws.Exists(ctx, "A.sol")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWorkspace_CanceledContext(t *testing.T) {
	ws, err := fs.NewWorkspace(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ws.ReadFile(ctx, "A.sol")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryWorkspace(t *testing.T) {
	ctx := context.Background()
	ws := fs.NewMemoryWorkspace("/ws", map[string]string{
		"contracts/Main.sol": "contract Main {}",
	})

	ok, err := ws.Exists(ctx, "contracts")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, ws.WriteFile(ctx, "./contracts/Other.sol", "contract Other {}"))
	got, err := ws.ReadFile(ctx, "contracts/Other.sol")
	require.NoError(t, err)
	assert.Equal(t, "contract Other {}", got)

	_, err = ws.ReadFile(ctx, "missing.sol")
	assert.ErrorIs(t, err, domain.ErrWorkspaceRead)

	assert.Len(t, ws.Files(), 2)
}
