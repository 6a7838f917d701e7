package decider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provlab/hedberg/internal/term"
)

func TestRegisterAndLookup(t *testing.T) {
	reg := NewRegistry()

	err := reg.Register(term.Unit{}, UnitDecider)
	require.NoError(t, err)

	fn, ok := reg.Lookup(term.Unit{})
	require.True(t, ok)

	eq, err := fn(term.TT(), term.TT())
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestRegisterAppendOnly(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register(term.Unit{}, UnitDecider))
	err := reg.Register(term.Unit{}, UnitDecider)
	assert.Error(t, err, "re-registration must be rejected")
}

func TestRegisterNilDecider(t *testing.T) {
	reg := NewRegistry()
	assert.Error(t, reg.Register(term.Unit{}, nil))
}

func TestLookupMissing(t *testing.T) {
	reg := NewRegistry()

	_, ok := reg.Lookup(term.Named{Name: "color"})
	assert.False(t, ok)
}

func TestUnitDeciderRejectsNonUnit(t *testing.T) {
	_, err := UnitDecider(term.S("red"), term.TT())
	assert.Error(t, err)
}

func TestPairRuleComposes(t *testing.T) {
	reg := Baseline()

	pp := term.Pair{Fst: term.Unit{}, Snd: term.Pair{Fst: term.Unit{}, Snd: term.Unit{}}}
	fn, ok := reg.Lookup(pp)
	require.True(t, ok, "pair rule must compose recursively")

	a := term.MkPair(term.TT(), term.MkPair(term.TT(), term.TT()))
	b := term.MkPair(term.TT(), term.MkPair(term.TT(), term.TT()))
	eq, err := fn(a, b)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestPairRuleNeedsComponents(t *testing.T) {
	reg := Baseline()

	_, ok := reg.Lookup(term.Pair{Fst: term.Unit{}, Snd: term.Named{Name: "color"}})
	assert.False(t, ok, "missing component fact must block composition")
}

func TestPairRuleUnequalComponents(t *testing.T) {
	reg := Baseline()
	require.NoError(t, reg.Register(term.Named{Name: "color"}, func(a, b term.Term) (bool, error) {
		return term.Equal(a, b), nil
	}))

	fn, ok := reg.Lookup(term.Pair{Fst: term.Unit{}, Snd: term.Named{Name: "color"}})
	require.True(t, ok)

	eq, err := fn(
		term.MkPair(term.TT(), term.S("red")),
		term.MkPair(term.TT(), term.S("blue")),
	)
	require.NoError(t, err)
	assert.False(t, eq)
}

func TestExactFactWinsOverRules(t *testing.T) {
	reg := Baseline()

	called := false
	ty := term.Pair{Fst: term.Unit{}, Snd: term.Unit{}}
	require.NoError(t, reg.Register(ty, func(a, b term.Term) (bool, error) {
		called = true
		return true, nil
	}))

	fn, ok := reg.Lookup(ty)
	require.True(t, ok)
	_, err := fn(term.TT(), term.TT())
	require.NoError(t, err)
	assert.True(t, called)
}

func TestBaselineKeys(t *testing.T) {
	reg := Baseline()
	assert.Equal(t, []string{"unit"}, reg.Keys())
}
