package compiler

import (
	"fmt"

	"github.com/provlab/hedberg/internal/term"
)

// ValidationError is a semantic problem in a bundle that the CUE layer
// cannot catch. Code is a stable identifier for tooling.
type ValidationError struct {
	Code    string
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
}

// Validation error codes.
const (
	ErrDuplicateObligation = "E101" // two obligations share a name
	ErrNegativeICount      = "E102" // obligation icount below zero
	ErrBadObligationHead   = "E103" // obligation type head is not a declared family
	ErrICountExceedsArity  = "E104" // icount larger than the family arity
	ErrUntypedCtorIndex    = "E105" // constructor index not typable in env
)

// Validate runs the semantic checks over a compiled bundle. The first
// failure is returned; bundles are expected to be small enough that
// collecting all of them buys nothing.
func Validate(b *Bundle) error {
	seen := map[string]bool{}
	for i, ob := range b.Obligations {
		path := fmt.Sprintf("obligations[%d]", i)
		if ob.Name != "" {
			if seen[ob.Name] {
				return &ValidationError{
					Code:    ErrDuplicateObligation,
					Path:    path,
					Message: fmt.Sprintf("obligation %q declared twice", ob.Name),
				}
			}
			seen[ob.Name] = true
		}
		if ob.ICount < 0 {
			return &ValidationError{
				Code:    ErrNegativeICount,
				Path:    path,
				Message: fmt.Sprintf("icount %d is negative", ob.ICount),
			}
		}
		head, ok := term.Head(ob.Ty)
		if !ok {
			return &ValidationError{
				Code:    ErrBadObligationHead,
				Path:    path + ".type",
				Message: "type has no symbol head",
			}
		}
		fam, ok := b.Families[head.Name]
		if !ok {
			return &ValidationError{
				Code:    ErrBadObligationHead,
				Path:    path + ".type",
				Message: fmt.Sprintf("unknown family %q", head.Name),
			}
		}
		if ob.ICount > fam.Arity {
			return &ValidationError{
				Code:    ErrICountExceedsArity,
				Path:    path,
				Message: fmt.Sprintf("icount %d exceeds arity %d of family %q",
					ob.ICount, fam.Arity, fam.Name),
			}
		}
	}

	for name, fam := range b.Families {
		for _, ctor := range fam.Ctors {
			for j, idx := range ctor.Indices {
				if _, err := b.Env.TypeOf(idx); err != nil {
					return &ValidationError{
						Code: ErrUntypedCtorIndex,
						Path: fmt.Sprintf("families.%s.ctors.%s.indices[%d]",
							name, ctor.Name, j),
						Message: err.Error(),
					}
				}
			}
		}
	}
	return nil
}
