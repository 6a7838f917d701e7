// Package motive constructs the generalized case-split statement for
// an introspected obligation.
//
// The motive is a function from an arbitrary index tuple (of the
// reversed-type shape) and an arbitrary evidence term at those indices
// to the proposition: given any proof that the original reversed index
// tuple equals the arbitrary one, the left evidence transported along
// that proof equals the arbitrary evidence. The indirection lets the
// split replace concrete index values with fresh placeholders while
// retaining a propositional link back to the real values.
package motive

import (
	"fmt"

	"github.com/provlab/hedberg/internal/goal"
	"github.com/provlab/hedberg/internal/hlist"
	"github.com/provlab/hedberg/internal/term"
)

// PropType is the result-type descriptor of motive arrows.
var PropType = term.Named{Name: "prop"}

// Motive is the generalized statement, built over the reversed index
// order and instantiated through the reverse/curry duality. It lives
// for one engine invocation and is discarded after the split.
type Motive struct {
	arrow    hlist.Arrow // reversed index params ++ evidence param -> prop
	revTypes hlist.TypeList
	evType   term.Type
	lhs      term.Term
}

// Build constructs the motive for an analysis. The original index
// tuple is reversed (types and values in lock-step) and the statement
// is curried over the reversed shape plus one evidence parameter.
func Build(an *goal.Analysis) (*Motive, error) {
	nat, err := an.IndexTuple()
	if err != nil {
		return nil, fmt.Errorf("index tuple: %w", err)
	}
	rev := hlist.TupleReverse(nat)
	revTypes := rev.Types()
	origRev := rev.Normalize()
	evType := term.Named{Name: an.Family.Name}
	lhs := an.Lhs

	params := make(hlist.TypeList, 0, len(revTypes)+1)
	params = append(params, revTypes...)
	params = append(params, evType)

	arrow := hlist.Curry(params, PropType, func(args []term.Term) term.Term {
		n := len(args) - 1
		ainds, ferr := hlist.FromSlices(revTypes, args[:n])
		if ferr != nil {
			// Arity is enforced by the arrow's parameter list.
			panic(ferr)
		}
		aev := args[n]
		return term.MkGiven(
			term.MkEq(origRev, ainds.Normalize()),
			term.MkEq(term.MkTransport(term.Hyp(), lhs), aev),
		)
	})

	return &Motive{arrow: arrow, revTypes: revTypes, evType: evType, lhs: lhs}, nil
}

// ReversedTypes returns the reversed index-type list the motive ranges
// over.
func (m *Motive) ReversedTypes() hlist.TypeList {
	return m.revTypes
}

// Instantiate applies the motive to index values in natural order plus
// an evidence term, going through the flip path: the reversed-order
// arrow is curried back into natural argument order, then fed the real
// values. This is the reverse/curry duality bridge; feeding the
// reversed arrow a reversed tuple would produce the identical result.
func (m *Motive) Instantiate(indices *hlist.Tuple, ev term.Term) (term.Term, error) {
	flipped := hlist.Flip(m.arrow)
	// Flip puts the evidence parameter first, then the indices in
	// natural order.
	partial, err := flipped.ApplyOne(m.evType, ev)
	if err != nil {
		return nil, fmt.Errorf("instantiate evidence: %w", err)
	}
	out, err := hlist.Apply(partial, indices)
	if err != nil {
		return nil, fmt.Errorf("instantiate indices: %w", err)
	}
	return out, nil
}

// Target produces the literal case-split target: the motive at the
// real index values and the right-hand evidence. Its hypothesis slot
// is the reflexive tuple equality, which is what makes the original
// obligation definitionally an instance of the motive once the left
// evidence is rewritten as itself transported along reflexivity.
func (m *Motive) Target(an *goal.Analysis) (term.Term, error) {
	nat, err := an.IndexTuple()
	if err != nil {
		return nil, err
	}
	return m.Instantiate(nat, an.Rhs)
}
