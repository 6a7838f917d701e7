package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTermApplication(t *testing.T) {
	got, err := ParseTerm("mk tt (pair tt tt)")
	require.NoError(t, err)

	want := Apply(S("mk"), TT(), MkPair(TT(), TT()))
	assert.True(t, Equal(want, got), "got %s", got)
}

func TestParseTermLeftAssociative(t *testing.T) {
	got, err := ParseTerm("f a b c")
	require.NoError(t, err)

	want := Apply(S("f"), S("a"), S("b"), S("c"))
	assert.True(t, Equal(want, got))
}

func TestParseTermNestedParens(t *testing.T) {
	got, err := ParseTerm("f (g (h x)) y")
	require.NoError(t, err)

	want := Apply(S("f"), Apply(S("g"), Apply(S("h"), S("x"))), S("y"))
	assert.True(t, Equal(want, got))
}

func TestParseTermSingleSym(t *testing.T) {
	got, err := ParseTerm("e1")
	require.NoError(t, err)
	assert.True(t, Equal(S("e1"), got))
}

func TestParseTermPrimedIdent(t *testing.T) {
	got, err := ParseTerm("x'")
	require.NoError(t, err)
	assert.True(t, Equal(S("x'"), got))
}

func TestParseTermErrors(t *testing.T) {
	for _, src := range []string{"", "(", "f )", "f ("} {
		_, err := ParseTerm(src)
		assert.Error(t, err, "source %q", src)
	}
}

func TestParseTermStringRoundTrip(t *testing.T) {
	src := "mk tt (pair tt (pair tt tt))"
	parsed := MustParseTerm(src)
	assert.Equal(t, src, parsed.String())
}

func TestParseType(t *testing.T) {
	ty, err := ParseType("unit")
	require.NoError(t, err)
	assert.Equal(t, "unit", ty.Key())

	ty, err = ParseType("pair(unit, pair(unit, unit))")
	require.NoError(t, err)
	assert.Equal(t, "pair(unit,pair(unit,unit))", ty.Key())

	ty, err = ParseType("color")
	require.NoError(t, err)
	assert.Equal(t, "color", ty.Key())
}

func TestParseTypeErrors(t *testing.T) {
	for _, src := range []string{"pair(unit)", "pair(unit,unit,unit)", "unit(unit,unit)", "color(unit,unit)", ""} {
		_, err := ParseType(src)
		assert.Error(t, err, "source %q", src)
	}
}
