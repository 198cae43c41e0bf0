package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solres/internal/core/domain"
)

func TestParsePackageReference(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		want    domain.PackageReference
	}{
		{
			name:    "scoped with version and subpath",
			literal: "@openzeppelin/contracts@4.8.3/token/ERC20/ERC20.sol",
			want: domain.PackageReference{
				Scope:           "@openzeppelin",
				Name:            "contracts",
				ExplicitVersion: "4.8.3",
				Subpath:         "token/ERC20/ERC20.sol",
			},
		},
		{
			name:    "scoped without version",
			literal: "@openzeppelin/contracts/token/ERC20/ERC20.sol",
			want: domain.PackageReference{
				Scope:   "@openzeppelin",
				Name:    "contracts",
				Subpath: "token/ERC20/ERC20.sol",
			},
		},
		{
			name:    "scoped name only",
			literal: "@openzeppelin/contracts",
			want:    domain.PackageReference{Scope: "@openzeppelin", Name: "contracts"},
		},
		{
			name:    "scoped name with version only",
			literal: "@openzeppelin/contracts@5",
			want:    domain.PackageReference{Scope: "@openzeppelin", Name: "contracts", ExplicitVersion: "5"},
		},
		{
			name:    "unscoped with version",
			literal: "solmate@6.2.0/src/tokens/ERC20.sol",
			want:    domain.PackageReference{Name: "solmate", ExplicitVersion: "6.2.0", Subpath: "src/tokens/ERC20.sol"},
		},
		{
			name:    "unscoped without version",
			literal: "hardhat/console.sol",
			want:    domain.PackageReference{Name: "hardhat", Subpath: "console.sol"},
		},
		{
			name:    "at sign in later segment is part of subpath",
			literal: "@scope/pkg/dir@2/File.sol",
			want:    domain.PackageReference{Scope: "@scope", Name: "pkg", Subpath: "dir@2/File.sol"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParsePackageReference(tt.literal)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePackageReference_Malformed(t *testing.T) {
	for _, literal := range []string{
		"",
		"   ",
		"@scope",
		"@scope/",
		"@/name",
		"@scope/@1.0.0/x.sol",
		"@scope/name@/x.sol",
		"pkg@/x.sol",
		"./local.sol",
		"/abs/file.sol",
	} {
		t.Run(literal, func(t *testing.T) {
			_, err := domain.ParsePackageReference(literal)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedImport)
		})
	}
}

func TestPackageReference_Rendering(t *testing.T) {
	ref, err := domain.ParsePackageReference("@openzeppelin/contracts@4.8.3/token/ERC20/ERC20.sol")
	require.NoError(t, err)

	assert.Equal(t, "@openzeppelin/contracts", ref.FullName())
	assert.True(t, ref.Pinned())
	assert.Equal(t, "@openzeppelin/contracts@4.8.3/token/ERC20/ERC20.sol", ref.String())

	key := domain.NewResolvedPackageKey(ref, "4.8.3")
	assert.Equal(t, "@openzeppelin/contracts@4.8.3", key.String())
	assert.Equal(t, ".deps/npm/@openzeppelin/contracts@4.8.3", key.Dir(".deps/npm"))
	assert.Equal(t, ".deps/npm/@openzeppelin/contracts@4.8.3/token/ERC20/ERC20.sol", key.FilePath(".deps/npm", ref.Subpath))

	unscoped := domain.NewResolvedPackageKey(domain.PackageReference{Name: "solmate"}, "6.2.0")
	assert.Equal(t, "solmate@6.2.0", unscoped.String())
}

func TestResolvedNode_Clone(t *testing.T) {
	node := &domain.ResolvedNode{
		Key:   domain.ResolvedPackageKey{Name: "pkg", Version: "1.0.0"},
		Files: map[string]string{"A.sol": "a"},
	}
	clone := node.Clone()
	clone.Files["B.sol"] = "b"

	assert.Len(t, node.Files, 1)
	assert.Equal(t, node.Key, clone.Key)
}
