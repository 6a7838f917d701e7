package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provlab/hedberg/internal/decider"
	"github.com/provlab/hedberg/internal/term"
)

// Soundness: a closure report substitutes back into the original,
// unmodified obligation.
func TestVerifyClosure(t *testing.T) {
	reg := decider.Baseline()
	e := New(reg)

	ob := memObligation()
	res, err := e.Uniqueness(ob, 2)
	require.NoError(t, err)
	require.True(t, res.Closed)

	assert.NoError(t, Verify(reg, memObligation(), res))
}

func TestVerifyClosureWithPruning(t *testing.T) {
	reg := decider.Baseline()
	e := New(reg)

	ob := shapeObligation()
	res, err := e.Uniqueness(ob, 1)
	require.NoError(t, err)
	require.True(t, res.Closed)

	assert.NoError(t, Verify(reg, shapeObligation(), res))
}

func TestVerifyRejectsOpenResult(t *testing.T) {
	reg := decider.NewRegistry()
	require.NoError(t, reg.Register(term.Unit{}, decider.UnitDecider))
	e := New(reg)

	res, err := e.Uniqueness(memObligation(), 2)
	require.NoError(t, err)
	require.False(t, res.Closed)

	assert.Error(t, Verify(reg, memObligation(), res))
}

func TestVerifyRejectsTamperedStatus(t *testing.T) {
	reg := decider.Baseline()
	e := New(reg)

	res, err := e.Uniqueness(shapeObligation(), 1)
	require.NoError(t, err)

	// Flip the contradicted branch to discharged.
	res.Branches[1].Status = BranchDischarged
	res.Branches[1].Witness = term.Refl()

	assert.Error(t, Verify(reg, shapeObligation(), res))
}

func TestVerifyRejectsForgedWitness(t *testing.T) {
	reg := decider.Baseline()
	e := New(reg)

	res, err := e.Uniqueness(memObligation(), 2)
	require.NoError(t, err)

	// Reflexivity cannot witness an equality of distinct terms.
	res.Branches[0].Witness = term.Refl()

	assert.Error(t, Verify(reg, memObligation(), res))
}

func TestVerifyRejectsMissingDeciderCoverage(t *testing.T) {
	reg := decider.Baseline()
	e := New(reg)

	res, err := e.Uniqueness(memObligation(), 2)
	require.NoError(t, err)
	require.True(t, res.Closed)

	// Re-verify under a registry lacking the pair fact: transport
	// elimination is no longer justified.
	bare := decider.NewRegistry()
	require.NoError(t, bare.Register(term.Unit{}, decider.UnitDecider))

	assert.Error(t, Verify(bare, memObligation(), res))
}

func TestVerifyRejectsWrongObligation(t *testing.T) {
	reg := decider.Baseline()
	e := New(reg)

	res, err := e.Uniqueness(memObligation(), 2)
	require.NoError(t, err)

	other := memObligation()
	other.Rhs = term.S("other_evidence")

	assert.Error(t, Verify(reg, other, res))
}
