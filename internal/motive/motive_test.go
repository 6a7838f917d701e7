package motive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provlab/hedberg/internal/goal"
	"github.com/provlab/hedberg/internal/hlist"
	"github.com/provlab/hedberg/internal/term"
)

func sampleAnalysis(t *testing.T) *goal.Analysis {
	t.Helper()
	ob := &goal.Obligation{
		Name: "sample",
		Env:  term.Env{"e1": term.Named{Name: "opaque"}},
		Families: map[string]*term.Family{
			"Elem": {
				Name:  "Elem",
				Arity: 2,
				Ctors: []term.Ctor{
					{Name: "here", Indices: []term.Term{term.TT(), term.MkPair(term.TT(), term.TT())}},
				},
			},
		},
		Ty:  term.Apply(term.S("Elem"), term.TT(), term.MkPair(term.TT(), term.TT())),
		Lhs: term.S("e1"),
		Rhs: term.S("here"),
	}
	an, err := goal.Introspect(goal.Orient(ob), 2)
	require.NoError(t, err)
	return an
}

func TestBuildReversesTypes(t *testing.T) {
	m, err := Build(sampleAnalysis(t))
	require.NoError(t, err)

	rev := m.ReversedTypes()
	require.Len(t, rev, 2)
	assert.Equal(t, "pair(unit,unit)", rev[0].Key())
	assert.Equal(t, "unit", rev[1].Key())
}

func TestTargetShape(t *testing.T) {
	an := sampleAnalysis(t)
	m, err := Build(an)
	require.NoError(t, err)

	target, err := m.Target(an)
	require.NoError(t, err)

	hyp, body, ok := term.MatchGiven(target)
	require.True(t, ok, "target must be hypothesis-guarded, got %s", target)

	// Hypothesis is the reflexive equality of the reversed index tuple
	// in computed nested-pair form.
	a, b, ok := term.MatchEq(hyp)
	require.True(t, ok)
	assert.True(t, term.Equal(a, b), "target hypothesis must be reflexive")
	wantRev := term.MkPair(
		term.MkPair(term.TT(), term.TT()),
		term.MkPair(term.TT(), term.TT()),
	)
	assert.True(t, term.Equal(wantRev, a), "got %s", a)

	// Body: the left evidence rewritten as a transport along the
	// hypothesis, equated with the scrutinee.
	lhs, rhs, ok := term.MatchEq(body)
	require.True(t, ok)
	p, x, ok := term.MatchTransport(lhs)
	require.True(t, ok)
	assert.True(t, term.Equal(term.Hyp(), p))
	assert.True(t, term.Equal(term.S("e1"), x))
	assert.True(t, term.Equal(term.S("here"), rhs))
}

func TestInstantiateAtFreshIndices(t *testing.T) {
	an := sampleAnalysis(t)
	m, err := Build(an)
	require.NoError(t, err)

	fresh, err := hlist.FromSlices(an.IndexTypes, []term.Term{
		term.TT(),
		term.MkPair(term.TT(), term.TT()),
	})
	require.NoError(t, err)

	got, err := m.Instantiate(fresh, term.S("other"))
	require.NoError(t, err)

	_, body, ok := term.MatchGiven(got)
	require.True(t, ok)
	_, rhs, ok := term.MatchEq(body)
	require.True(t, ok)
	assert.True(t, term.Equal(term.S("other"), rhs))
}

func TestInstantiateShapeMismatch(t *testing.T) {
	an := sampleAnalysis(t)
	m, err := Build(an)
	require.NoError(t, err)

	short, err := hlist.FromSlices(hlist.TypeList{term.Unit{}}, []term.Term{term.TT()})
	require.NoError(t, err)

	_, err = m.Instantiate(short, term.S("other"))
	assert.Error(t, err)
}

func TestZeroIndexMotive(t *testing.T) {
	ob := &goal.Obligation{
		Env: term.Env{},
		Families: map[string]*term.Family{
			"Flag": {Name: "Flag", Arity: 0, Ctors: []term.Ctor{{Name: "set"}}},
		},
		Ty:  term.S("Flag"),
		Lhs: term.S("p"),
		Rhs: term.S("set"),
	}
	an, err := goal.Introspect(ob, 0)
	require.NoError(t, err)

	m, err := Build(an)
	require.NoError(t, err)

	target, err := m.Target(an)
	require.NoError(t, err)

	hyp, _, ok := term.MatchGiven(target)
	require.True(t, ok)
	a, b, ok := term.MatchEq(hyp)
	require.True(t, ok)
	// Empty tuple normalizes to the terminal unit value.
	assert.True(t, term.Equal(term.TT(), a))
	assert.True(t, term.Equal(term.TT(), b))
}
