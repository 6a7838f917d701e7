// Package goal defines equality obligations and their introspection:
// parsing an obligation into a predicate head, ordered index types,
// ordered index values, and the two evidence terms.
package goal

import (
	"fmt"

	"github.com/provlab/hedberg/internal/hlist"
	"github.com/provlab/hedberg/internal/term"
)

// Obligation states that two evidence terms of one common type are
// equal. The common type must be an application spine of a declared
// family's head symbol over index values typable under Env.
//
// Caller preconditions, documented and not statically enforced: later
// indices' types do not depend on earlier indices' values, and the
// obligation is correctly oriented whenever both sides are
// application-shaped (Orient flips only the one specified case).
type Obligation struct {
	Name     string
	Env      term.Env
	Families map[string]*term.Family
	Ty       term.Term
	Lhs      term.Term
	Rhs      term.Term
}

// ID computes the obligation's content-addressed identity.
func (o *Obligation) ID() (string, error) {
	return term.ObligationID(o.Ty, o.Lhs, o.Rhs)
}

// ShapeError reports that an obligation lacks the expected
// equality-of-indexed-evidence shape. Fatal to the whole invocation;
// the engine surfaces it as a structural mismatch with no partial
// effect.
type ShapeError struct {
	Msg string
}

func (e *ShapeError) Error() string {
	return "shape mismatch: " + e.Msg
}

func shapeErrf(format string, args ...any) *ShapeError {
	return &ShapeError{Msg: fmt.Sprintf(format, args...)}
}

// Orient normalizes side order: equality is symmetric, and the
// scrutinee to be case-split is always taken from the right-hand side.
// If the right side is not application-shaped while the left side is,
// the sides are swapped. Any other orientation is taken as given.
// Returns a fresh obligation; the input is never mutated.
func Orient(o *Obligation) *Obligation {
	oriented := *o
	if !term.IsApp(o.Rhs) && term.IsApp(o.Lhs) {
		oriented.Lhs, oriented.Rhs = o.Rhs, o.Lhs
	}
	return &oriented
}

// Analysis is the result of introspecting an oriented obligation with
// an explicit index count.
type Analysis struct {
	// Family is the declared indexed predicate of the scrutinee type.
	Family *term.Family

	// Head is the bare predicate head after stripping exactly icount
	// applications. When icount is below the family's true arity, the
	// surplus leading applications remain part of the head.
	Head term.Term

	// IndexTypes and Indices are the stripped index schema and values
	// in natural (left-to-right) argument order.
	IndexTypes hlist.TypeList
	Indices    []term.Term

	// Lhs is the evidence kept fixed; Rhs is the scrutinee.
	Lhs term.Term
	Rhs term.Term
}

// IndexTuple zips the index values with their types, in natural order.
func (a *Analysis) IndexTuple() (*hlist.Tuple, error) {
	return hlist.FromSlices(a.IndexTypes, a.Indices)
}

// Introspect strips exactly icount applied arguments from the
// scrutinee's type, recovering the predicate head and the ordered
// index types and values. The caller supplies icount because an index
// may itself be a compound term that must not be decomposed further.
//
// Fails outright, with no partial effect, if the type carries fewer
// than icount applications, if its head symbol has no family
// declaration, or if an index value is untypable.
func Introspect(o *Obligation, icount int) (*Analysis, error) {
	if icount < 0 {
		return nil, shapeErrf("negative index count %d", icount)
	}

	headSym, ok := term.Head(o.Ty)
	if !ok {
		return nil, shapeErrf("obligation type %s has no head symbol", o.Ty)
	}
	fam, ok := o.Families[headSym.Name]
	if !ok {
		return nil, shapeErrf("no family declared for head symbol %q", headSym.Name)
	}

	head, indices, ok := term.StripApps(o.Ty, icount)
	if !ok {
		return nil, shapeErrf("type %s carries fewer than %d applied arguments", o.Ty, icount)
	}

	types := make(hlist.TypeList, len(indices))
	for i, idx := range indices {
		ty, err := o.Env.TypeOf(idx)
		if err != nil {
			return nil, shapeErrf("index %d (%s): %v", i, idx, err)
		}
		types[i] = ty
	}

	return &Analysis{
		Family:     fam,
		Head:       head,
		IndexTypes: types,
		Indices:    indices,
		Lhs:        o.Lhs,
		Rhs:        o.Rhs,
	}, nil
}
