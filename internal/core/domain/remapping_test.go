package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solres/internal/core/domain"
)

func TestParseRemappings(t *testing.T) {
	text := `
@openzeppelin/=@openzeppelin/contracts@4.8.3/
# comment
  ds-test/ = lib/ds-test/src/

not-a-rule
=missing-from
`
	rules, errs := domain.ParseRemappings(text)

	assert.Equal(t, domain.Remappings{
		{From: "@openzeppelin/", To: "@openzeppelin/contracts@4.8.3/"},
		{From: "ds-test/", To: "lib/ds-test/src/"},
	}, rules)
	require.Len(t, errs, 2)
	for _, err := range errs {
		assert.ErrorIs(t, err, domain.ErrRemappingParse)
	}
}

func TestRemappings_Apply(t *testing.T) {
	rules := domain.Remappings{
		{From: "@oz/", To: "@openzeppelin/contracts@4.8.3/"},
		{From: "@oz/token/", To: "never/"},
	}

	got, ok := rules.Apply("@oz/token/ERC20/ERC20.sol")
	assert.True(t, ok)
	assert.Equal(t, "@openzeppelin/contracts@4.8.3/token/ERC20/ERC20.sol", got, "first matching rule wins")

	got, ok = rules.Apply("solmate/src/A.sol")
	assert.False(t, ok)
	assert.Equal(t, "solmate/src/A.sol", got)
}

func TestRemappings_TxtBeforeConfig(t *testing.T) {
	txt, _ := domain.ParseRemappings("@oz/=@openzeppelin/contracts@4.8.3/")
	cfg, _ := domain.ParseRemappingLines([]string{"@oz/=@openzeppelin/contracts@5.0.0/"})
	rules := append(txt, cfg...)

	got, ok := rules.Apply("@oz/token/ERC20/IERC20.sol")
	assert.True(t, ok)
	assert.Equal(t, "@openzeppelin/contracts@4.8.3/token/ERC20/IERC20.sol", got)
}
