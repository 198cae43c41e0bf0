package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solres/internal/core/domain"
)

func rawPaths(refs []domain.ImportReference) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.RawPath)
	}
	return out
}

func TestParseImports_Forms(t *testing.T) {
	src := `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.20;

import "@openzeppelin/contracts/token/ERC20/ERC20.sol";
import './Local.sol';
import "../lib/Math.sol" as MathLib;
import * as Utils from "./Utils.sol";
import {IERC20, SafeERC20 as Safe} from "@openzeppelin/contracts@5.0.0/token/ERC20/utils/SafeERC20.sol";
import {
    Ownable
} from "@openzeppelin/contracts/access/Ownable.sol";

contract Token is ERC20 {}
`
	refs := domain.ParseImports("contracts/Token.sol", src)

	assert.Equal(t, []string{
		"@openzeppelin/contracts/token/ERC20/ERC20.sol",
		"./Local.sol",
		"../lib/Math.sol",
		"./Utils.sol",
		"@openzeppelin/contracts@5.0.0/token/ERC20/utils/SafeERC20.sol",
		"@openzeppelin/contracts/access/Ownable.sol",
	}, rawPaths(refs))

	for _, r := range refs {
		assert.Equal(t, "contracts/Token.sol", r.SourceFile)
		assert.Equal(t, r.RawPath, src[r.Start:r.End], "offsets must cover the literal")
	}
	assert.False(t, refs[0].IsRelative())
	assert.True(t, refs[1].IsRelative())
	assert.True(t, refs[2].IsRelative())
}

func TestParseImports_IgnoresCommentsAndStrings(t *testing.T) {
	src := `
// import "commented/Out.sol";
/* import "block/Comment.sol";
   import "still/Comment.sol"; */
contract C {
    string constant s = "import \"fake/Import.sol\";";
    function reimport() public {}
}
import "real/Import.sol";
`
	refs := domain.ParseImports("C.sol", src)
	require.Len(t, refs, 1)
	assert.Equal(t, "real/Import.sol", refs[0].RawPath)
}

func TestParseImports_Empty(t *testing.T) {
	assert.Empty(t, domain.ParseImports("Empty.sol", "contract A {}"))
	assert.Empty(t, domain.ParseImports("Empty.sol", ""))
}

func TestRewriteImports(t *testing.T) {
	src := `import "@oz/contracts/A.sol";
import {B} from "./B.sol";
import "@oz/contracts/A.sol" as A2;
`
	refs := domain.ParseImports("Main.sol", src)
	out := domain.RewriteImports(src, refs, map[string]string{
		"@oz/contracts/A.sol": ".deps/npm/@oz/contracts@1.0.0/A.sol",
	})

	assert.Equal(t, `import ".deps/npm/@oz/contracts@1.0.0/A.sol";
import {B} from "./B.sol";
import ".deps/npm/@oz/contracts@1.0.0/A.sol" as A2;
`, out)
	assert.Equal(t, src, domain.RewriteImports(src, refs, nil))
}
