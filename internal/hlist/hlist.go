package hlist

import (
	"fmt"

	"github.com/provlab/hedberg/internal/term"
)

// TypeList is an ordered sequence of type descriptors. It doubles as a
// function's parameter signature and a tuple's element-type schema.
// Immutable by convention: operations return fresh lists.
type TypeList []term.Type

// Equal reports element-wise type equality.
func (xs TypeList) Equal(ys TypeList) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !term.TypeEqual(xs[i], ys[i]) {
			return false
		}
	}
	return true
}

// Reverse returns the reversed list, accumulator style.
func Reverse(xs TypeList) TypeList {
	acc := make(TypeList, 0, len(xs))
	for i := len(xs) - 1; i >= 0; i-- {
		acc = append(acc, xs[i])
	}
	return acc
}

// Tuple is a fixed-length heterogeneous sequence: right-nested cons
// cells ending in the terminal nil tuple. The i-th cell's value has
// the i-th type of the tuple's TypeList. A nil *Tuple is the empty
// tuple.
type Tuple struct {
	ty   term.Type
	val  term.Term
	tail *Tuple
}

// Cons prepends a typed cell. The type tag travels with the value; it
// is trusted here and validated against an environment by Check.
func Cons(ty term.Type, val term.Term, tail *Tuple) *Tuple {
	return &Tuple{ty: ty, val: val, tail: tail}
}

// FromSlices zips a type list and a value slice into a tuple.
// The lengths must match exactly.
func FromSlices(types TypeList, vals []term.Term) (*Tuple, error) {
	if len(types) != len(vals) {
		return nil, fmt.Errorf("tuple shape mismatch: %d types, %d values", len(types), len(vals))
	}
	var t *Tuple
	for i := len(types) - 1; i >= 0; i-- {
		t = Cons(types[i], vals[i], t)
	}
	return t, nil
}

// Len returns the number of cells.
func (t *Tuple) Len() int {
	n := 0
	for cell := t; cell != nil; cell = cell.tail {
		n++
	}
	return n
}

// Head returns the first cell's type and value. ok is false for the
// empty tuple.
func (t *Tuple) Head() (term.Type, term.Term, bool) {
	if t == nil {
		return nil, nil, false
	}
	return t.ty, t.val, true
}

// Tail returns the tuple without its first cell.
func (t *Tuple) Tail() *Tuple {
	if t == nil {
		return nil
	}
	return t.tail
}

// Types recovers the tuple's TypeList in order.
func (t *Tuple) Types() TypeList {
	var xs TypeList
	for cell := t; cell != nil; cell = cell.tail {
		xs = append(xs, cell.ty)
	}
	return xs
}

// Values returns the elements in order.
func (t *Tuple) Values() []term.Term {
	var vals []term.Term
	for cell := t; cell != nil; cell = cell.tail {
		vals = append(vals, cell.val)
	}
	return vals
}

// Check validates every cell's value against its type tag under env.
// This is the tuple invariant: length and per-slot types match the
// TypeList exactly.
func (t *Tuple) Check(env term.Env) error {
	i := 0
	for cell := t; cell != nil; cell = cell.tail {
		ty, err := env.TypeOf(cell.val)
		if err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
		if !term.TypeEqual(ty, cell.ty) {
			return fmt.Errorf("slot %d: value %s has type %s, tag says %s",
				i, cell.val, ty.Key(), cell.ty.Key())
		}
		i++
	}
	return nil
}

// Normalize unfolds the tuple into its computed form: the right-nested
// pair term ending in the terminal unit value, e.g.
//
//	[a, b] -> (pair a (pair b tt))
//
// Branch hypotheses are stated over these plain nested-pair terms.
func (t *Tuple) Normalize() term.Term {
	if t == nil {
		return term.TT()
	}
	return term.MkPair(t.val, t.tail.Normalize())
}

// NormalizeType is the type-level counterpart of Normalize:
//
//	[A, B] -> pair(A, pair(B, unit))
func NormalizeType(xs TypeList) term.Type {
	if len(xs) == 0 {
		return term.Unit{}
	}
	return term.Pair{Fst: xs[0], Snd: NormalizeType(xs[1:])}
}

// TupleReverse reverses a tuple. Type tags and values move in
// lock-step: the recursion carries an accumulated TypeList and an
// accumulated Tuple of exactly that list, because reversing a
// heterogeneous tuple cannot be done by naive reversal followed by
// retyping.
func TupleReverse(t *Tuple) *Tuple {
	return tupleReverseAcc(t, nil, nil)
}

func tupleReverseAcc(t *Tuple, accTypes TypeList, acc *Tuple) *Tuple {
	if t == nil {
		return acc
	}
	accTypes = append(TypeList{t.ty}, accTypes...)
	acc = Cons(t.ty, t.val, acc)
	return tupleReverseAcc(t.tail, accTypes, acc)
}
