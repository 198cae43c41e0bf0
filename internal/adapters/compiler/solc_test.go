package compiler_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solres/internal/adapters/compiler"
	"go.trai.ch/solres/internal/core/domain"
	"go.trai.ch/solres/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const solcOutput = `{
  "errors": [
    {
      "severity": "warning",
      "type": "Warning",
      "component": "general",
      "message": "SPDX license identifier not provided.",
      "sourceLocation": {"file": "contracts/Main.sol", "start": -1, "end": -1}
    }
  ],
  "contracts": {
    "contracts/Main.sol": {"Main": {"abi": []}}
  }
}`

func TestBuildInput(t *testing.T) {
	cfg := domain.DefaultConfig("/ws")
	cfg.Optimize = true

	bundle := domain.SourceBundle{
		"contracts/Main.sol": "import \".deps/npm/@openzeppelin/contracts@4.8.3/token/ERC20/IERC20.sol\";\ncontract Main {}",
		".deps/npm/@openzeppelin/contracts@4.8.3/token/ERC20/IERC20.sol": "interface IERC20 {}",
	}

	input, err := compiler.BuildInput(bundle, "contracts/Main.sol", cfg)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "standard_input", input)
}

func TestBuildInput_YulEntry(t *testing.T) {
	input, err := compiler.BuildInput(domain.SourceBundle{"asm/Code.yul": "{ }"}, "asm/Code.yul", domain.DefaultConfig("/ws"))
	require.NoError(t, err)

	var doc struct {
		Language string `json:"language"`
	}
	require.NoError(t, json.Unmarshal(input, &doc))
	assert.Equal(t, "Yul", doc.Language)
}

func TestParseOutput(t *testing.T) {
	result, err := compiler.ParseOutput([]byte(solcOutput))
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, domain.SeverityWarning, result.Diagnostics[0].Severity)
	assert.Contains(t, result.Contracts["contracts/Main.sol"], "Main")

	failed, err := compiler.ParseOutput([]byte(`{"errors":[{"severity":"error","type":"ParserError","message":"Expected ';'"}]}`))
	require.NoError(t, err)
	assert.False(t, failed.Success)
	assert.Len(t, failed.Errors(), 1)

	_, err = compiler.ParseOutput([]byte("Segmentation fault"))
	assert.ErrorIs(t, err, domain.ErrCompilerOutput)
}

func fakeSolc(t *testing.T, script string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "solc")
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"+script), 0o700)) //nolint:gosec // test executable
	return p
}

func TestSolc_Compile(t *testing.T) {
	cfg := domain.DefaultConfig(t.TempDir())
	cfg.CompilerBinary = fakeSolc(t, "cat > /dev/null\necho 'using fake solc' >&2\ncat <<'JSON'\n"+solcOutput+"\nJSON\n")

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn("using fake solc")

	result, err := compiler.NewSolc(cfg, log).Compile(context.Background(), domain.SourceBundle{"contracts/Main.sol": "contract Main {}"}, "contracts/Main.sol")
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestSolc_Failures(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	bundle := domain.SourceBundle{"A.sol": "contract A {}"}

	cfg := domain.DefaultConfig(t.TempDir())
	cfg.CompilerBinary = filepath.Join(t.TempDir(), "does-not-exist")
	_, err := compiler.NewSolc(cfg, log).Compile(context.Background(), bundle, "A.sol")
	assert.ErrorIs(t, err, domain.ErrCompilerFailed)

	cfg.CompilerBinary = fakeSolc(t, "cat > /dev/null\necho 'boom' >&2\nexit 3\n")
	_, err = compiler.NewSolc(cfg, log).Compile(context.Background(), bundle, "A.sol")
	assert.ErrorIs(t, err, domain.ErrCompilerFailed)
}
