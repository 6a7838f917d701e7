package hlist

import (
	"fmt"

	"github.com/provlab/hedberg/internal/term"
)

// Arrow is a curried function value over a TypeList: it consumes the
// parameter list in order, one argument at a time, and yields a term
// of the result type once the list is exhausted.
//
// Arrows are immutable; ApplyOne returns a progressively smaller arrow
// over the remaining parameter suffix.
type Arrow struct {
	params TypeList
	result term.Type
	bound  []term.Term
	fn     func([]term.Term) term.Term
}

// Curry builds an arrow over params whose body receives the fully
// bound argument slice in parameter order.
func Curry(params TypeList, result term.Type, fn func([]term.Term) term.Term) Arrow {
	return Arrow{params: params, result: result, fn: fn}
}

// Params returns the remaining parameter list.
func (a Arrow) Params() TypeList {
	return a.params
}

// Result returns the result type.
func (a Arrow) Result() term.Type {
	return a.result
}

// Saturated reports whether the parameter list is exhausted.
func (a Arrow) Saturated() bool {
	return len(a.params) == 0
}

// ApplyOne feeds one argument, producing the arrow over the remaining
// suffix. The argument's type tag must match the head parameter.
func (a Arrow) ApplyOne(ty term.Type, v term.Term) (Arrow, error) {
	if len(a.params) == 0 {
		return Arrow{}, fmt.Errorf("arrow is saturated, cannot apply %s", v)
	}
	if !term.TypeEqual(a.params[0], ty) {
		return Arrow{}, fmt.Errorf("argument %s has type %s, arrow expects %s",
			v, ty.Key(), a.params[0].Key())
	}
	bound := make([]term.Term, len(a.bound), len(a.bound)+1)
	copy(bound, a.bound)
	bound = append(bound, v)
	return Arrow{params: a.params[1:], result: a.result, bound: bound, fn: a.fn}, nil
}

// Value yields the result of a saturated arrow.
func (a Arrow) Value() (term.Term, error) {
	if len(a.params) != 0 {
		return nil, fmt.Errorf("arrow still expects %d arguments", len(a.params))
	}
	return a.fn(a.bound), nil
}

// Apply consumes args one cell at a time from the front, feeding each
// to f, until the parameter list is exhausted. The tuple's shape must
// equal the arrow's parameter list exactly; well-formed inputs cannot
// fail, the checks guard against malformed construction only.
func Apply(f Arrow, args *Tuple) (term.Term, error) {
	for cell := args; cell != nil; cell = cell.Tail() {
		ty, v, _ := cell.Head()
		next, err := f.ApplyOne(ty, v)
		if err != nil {
			return nil, err
		}
		f = next
	}
	return f.Value()
}

// Flip reverses an arrow's parameter order: the returned arrow ranges
// over Reverse(f.Params()) and computes the same function. Together
// with TupleReverse this is the reverse/curry duality: a motive built
// over discovery order is flipped back into natural argument order.
func Flip(f Arrow) Arrow {
	inner := f
	return Arrow{
		params: Reverse(f.params),
		result: f.result,
		fn: func(args []term.Term) term.Term {
			flipped := make([]term.Term, len(args))
			for i, v := range args {
				flipped[len(args)-1-i] = v
			}
			// Re-run the original body over restored order, keeping
			// any arguments bound before the flip in front.
			all := make([]term.Term, len(inner.bound), len(inner.bound)+len(flipped))
			copy(all, inner.bound)
			all = append(all, flipped...)
			return inner.fn(all)
		},
	}
}
