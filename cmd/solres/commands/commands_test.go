package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solres/cmd/solres/commands"
	"go.trai.ch/solres/internal/app"
	"go.trai.ch/solres/internal/build"
)

type mockApp struct {
	calls     []string
	global    app.GlobalOptions
	workspace string
	patterns  []string
	resolve   app.ResolveOptions
	compile   app.CompileOptions
	lookup    [2]string
	err       error
	shutdowns int
}

func (m *mockApp) Configure(opts app.GlobalOptions) func(context.Context) error {
	m.global = opts
	return func(context.Context) error {
		m.shutdowns++
		return nil
	}
}

func (m *mockApp) SwitchWorkspace(_ context.Context, root string) error {
	m.calls = append(m.calls, "switch")
	m.workspace = root
	return nil
}

func (m *mockApp) Resolve(_ context.Context, patterns []string, opts app.ResolveOptions) error {
	m.calls = append(m.calls, "resolve")
	m.patterns, m.resolve = patterns, opts
	return m.err
}

func (m *mockApp) Compile(_ context.Context, patterns []string, opts app.CompileOptions) error {
	m.calls = append(m.calls, "compile")
	m.patterns, m.compile = patterns, opts
	return m.err
}

func (m *mockApp) Lookup(_ context.Context, original, source string) error {
	m.calls = append(m.calls, "lookup")
	m.lookup = [2]string{original, source}
	return m.err
}

func (m *mockApp) Graph(_ context.Context, pattern string) error {
	m.calls = append(m.calls, "graph")
	m.patterns = []string{pattern}
	return m.err
}

func (m *mockApp) Index(context.Context) error {
	m.calls = append(m.calls, "index")
	return m.err
}

func (m *mockApp) Watch(_ context.Context, pattern string) error {
	m.calls = append(m.calls, "watch")
	m.patterns = []string{pattern}
	return m.err
}

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	require.NoError(t, cli.Shutdown(context.Background()))
	return buf.String(), err
}

func TestCommands_Resolve(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "resolve", "src/*.sol", "--json", "-w", "/ws", "--trace")
		require.NoError(t, err)

		assert.Equal(t, []string{"switch", "resolve"}, m.calls)
		assert.Equal(t, "/ws", m.workspace)
		assert.Equal(t, []string{"src/*.sol"}, m.patterns)
		assert.True(t, m.resolve.JSON)
		assert.Equal(t, app.GlobalOptions{JSON: true, Trace: true}, m.global)
		assert.Equal(t, 1, m.shutdowns)
	})

	t.Run("without entries resolves the workspace", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "resolve")
		require.NoError(t, err)
		assert.Equal(t, []string{"resolve"}, m.calls)
		assert.Empty(t, m.patterns)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		m := &mockApp{err: errors.New("simulated error")}
		_, err := execute(t, m, "resolve", "A.sol")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
		assert.Equal(t, 1, m.shutdowns)
	})
}

func TestCommands_Compile(t *testing.T) {
	t.Run("passes entries", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "compile", "A.sol", "B.sol", "-q")
		require.NoError(t, err)
		assert.Equal(t, []string{"A.sol", "B.sol"}, m.patterns)
		assert.True(t, m.global.Quiet)
		assert.False(t, m.compile.JSON)
	})

	t.Run("shows usage when no entries provided", func(t *testing.T) {
		m := &mockApp{}
		out, err := execute(t, m, "compile")
		require.NoError(t, err)
		assert.Empty(t, m.calls)
		assert.Contains(t, out, "Usage:")
	})
}

func TestCommands_Lookup(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "lookup", "@openzeppelin/contracts/token/ERC20/ERC20.sol", "--source", "src/Token.sol")
	require.NoError(t, err)
	assert.Equal(t, [2]string{"@openzeppelin/contracts/token/ERC20/ERC20.sol", "src/Token.sol"}, m.lookup)
}

func TestCommands_SingleEntry(t *testing.T) {
	for _, name := range []string{"graph", "watch"} {
		t.Run(name, func(t *testing.T) {
			m := &mockApp{}
			_, err := execute(t, m, name, "src/Token.sol")
			require.NoError(t, err)
			assert.Equal(t, []string{name}, m.calls)
			assert.Equal(t, []string{"src/Token.sol"}, m.patterns)

			_, err = execute(t, &mockApp{}, name)
			assert.Error(t, err)
		})
	}
}

func TestCommands_Index(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "index")
	require.NoError(t, err)
	assert.Equal(t, []string{"index"}, m.calls)

	_, err = execute(t, &mockApp{}, "index", "extra")
	assert.Error(t, err)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
}
