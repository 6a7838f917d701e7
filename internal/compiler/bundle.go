// Package compiler turns CUE obligation bundles into the term
// representation the engine consumes.
//
// A bundle declares a typing environment, indexed-family definitions,
// decider registrations for named index types, and a list of
// obligations. Terms and types inside the bundle use the compact
// surface syntax of the term package.
package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/provlab/hedberg/internal/goal"
	"github.com/provlab/hedberg/internal/term"
)

// Bundle is a compiled obligation bundle.
type Bundle struct {
	Env         term.Env
	Families    map[string]*term.Family
	Deciders    []term.Type
	Obligations []Obligation
}

// Obligation is one proof obligation of a bundle, with its supplied
// index count.
type Obligation struct {
	Name   string
	ICount int
	Ty     term.Term
	Lhs    term.Term
	Rhs    term.Term
}

// Goal assembles the engine-facing obligation, sharing the bundle's
// environment and family table.
func (o Obligation) Goal(b *Bundle) *goal.Obligation {
	return &goal.Obligation{
		Name:     o.Name,
		Env:      b.Env,
		Families: b.Families,
		Ty:       o.Ty,
		Lhs:      o.Lhs,
		Rhs:      o.Rhs,
	}
}

// CompileBundle parses a CUE value into a Bundle. Uses the CUE SDK's
// Go API directly (not CLI subprocess).
//
// The CUE value should be the bundle struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`bundle: { ... }`)
//	b, err := CompileBundle(v.LookupPath(cue.ParsePath("bundle")))
func CompileBundle(v cue.Value) (*Bundle, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	b := &Bundle{
		Env:      term.Env{},
		Families: map[string]*term.Family{},
	}

	if err := parseEnv(v, b); err != nil {
		return nil, err
	}
	if err := parseFamilies(v, b); err != nil {
		return nil, err
	}
	if err := parseDeciders(v, b); err != nil {
		return nil, err
	}
	if err := parseObligations(v, b); err != nil {
		return nil, err
	}

	if len(b.Obligations) == 0 {
		return nil, &CompileError{
			Field:   "obligations",
			Message: "at least one obligation is required",
			Pos:     v.Pos(),
		}
	}
	return b, nil
}

// parseEnv reads the optional env struct: symbol name -> type expression.
func parseEnv(v cue.Value, b *Bundle) error {
	envVal := v.LookupPath(cue.ParsePath("env"))
	if !envVal.Exists() {
		return nil
	}
	iter, err := envVal.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		name := iter.Label()
		tyStr, err := iter.Value().String()
		if err != nil {
			return formatCUEError(err)
		}
		ty, err := term.ParseType(tyStr)
		if err != nil {
			return &CompileError{
				Field:   "env." + name,
				Message: err.Error(),
				Pos:     iter.Value().Pos(),
			}
		}
		b.Env[name] = ty
	}
	return nil
}

// parseFamilies reads the families struct. Constructors are a list so
// declaration order is preserved; the engine splits in that order.
func parseFamilies(v cue.Value, b *Bundle) error {
	famVal := v.LookupPath(cue.ParsePath("families"))
	if !famVal.Exists() {
		return nil
	}
	iter, err := famVal.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		name := iter.Label()
		fam, err := parseFamily(name, iter.Value())
		if err != nil {
			return err
		}
		if _, dup := b.Families[name]; dup {
			return &CompileError{
				Field:   "families." + name,
				Message: "duplicate family",
				Pos:     iter.Value().Pos(),
			}
		}
		b.Families[name] = fam
	}
	return nil
}

func parseFamily(name string, v cue.Value) (*term.Family, error) {
	arityVal := v.LookupPath(cue.ParsePath("arity"))
	if !arityVal.Exists() {
		return nil, &CompileError{
			Field:   "families." + name + ".arity",
			Message: "arity is required",
			Pos:     v.Pos(),
		}
	}
	arity, err := arityVal.Int64()
	if err != nil {
		return nil, formatCUEError(err)
	}

	fam := &term.Family{Name: name, Arity: int(arity)}

	ctorsVal := v.LookupPath(cue.ParsePath("ctors"))
	if ctorsVal.Exists() {
		ctorIter, err := ctorsVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for ctorIter.Next() {
			ctor, err := parseCtor(name, ctorIter.Value())
			if err != nil {
				return nil, err
			}
			fam.Ctors = append(fam.Ctors, ctor)
		}
	}

	if err := fam.Validate(); err != nil {
		return nil, &CompileError{
			Field:   "families." + name,
			Message: err.Error(),
			Pos:     v.Pos(),
		}
	}
	return fam, nil
}

func parseCtor(family string, v cue.Value) (term.Ctor, error) {
	var ctor term.Ctor

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return ctor, &CompileError{
			Field:   "families." + family + ".ctors",
			Message: "constructor name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return ctor, formatCUEError(err)
	}
	ctor.Name = name

	idxVal := v.LookupPath(cue.ParsePath("indices"))
	if idxVal.Exists() {
		idxIter, err := idxVal.List()
		if err != nil {
			return ctor, formatCUEError(err)
		}
		for idxIter.Next() {
			src, err := idxIter.Value().String()
			if err != nil {
				return ctor, formatCUEError(err)
			}
			idx, err := term.ParseTerm(src)
			if err != nil {
				return ctor, &CompileError{
					Field:   "families." + family + ".ctors." + name,
					Message: err.Error(),
					Pos:     idxIter.Value().Pos(),
				}
			}
			ctor.Indices = append(ctor.Indices, idx)
		}
	}
	return ctor, nil
}

// parseDeciders reads the optional list of type expressions whose
// canonical-value deciders the caller wants registered before proving.
func parseDeciders(v cue.Value, b *Bundle) error {
	decVal := v.LookupPath(cue.ParsePath("deciders"))
	if !decVal.Exists() {
		return nil
	}
	iter, err := decVal.List()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		src, err := iter.Value().String()
		if err != nil {
			return formatCUEError(err)
		}
		ty, err := term.ParseType(src)
		if err != nil {
			return &CompileError{
				Field:   "deciders",
				Message: err.Error(),
				Pos:     iter.Value().Pos(),
			}
		}
		b.Deciders = append(b.Deciders, ty)
	}
	return nil
}

func parseObligations(v cue.Value, b *Bundle) error {
	obVal := v.LookupPath(cue.ParsePath("obligations"))
	if !obVal.Exists() {
		return nil
	}
	iter, err := obVal.List()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		ob, err := parseObligation(iter.Value())
		if err != nil {
			return err
		}
		b.Obligations = append(b.Obligations, ob)
	}
	return nil
}

func parseObligation(v cue.Value) (Obligation, error) {
	var ob Obligation

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if nameVal.Exists() {
		name, err := nameVal.String()
		if err != nil {
			return ob, formatCUEError(err)
		}
		ob.Name = name
	}

	icountVal := v.LookupPath(cue.ParsePath("icount"))
	if !icountVal.Exists() {
		return ob, &CompileError{
			Field:   "obligations." + ob.Name + ".icount",
			Message: "icount is required",
			Pos:     v.Pos(),
		}
	}
	icount, err := icountVal.Int64()
	if err != nil {
		return ob, formatCUEError(err)
	}
	ob.ICount = int(icount)

	for _, field := range []struct {
		name string
		dst  *term.Term
	}{
		{"type", &ob.Ty},
		{"lhs", &ob.Lhs},
		{"rhs", &ob.Rhs},
	} {
		fv := v.LookupPath(cue.ParsePath(field.name))
		if !fv.Exists() {
			return ob, &CompileError{
				Field:   "obligations." + ob.Name + "." + field.name,
				Message: field.name + " is required",
				Pos:     v.Pos(),
			}
		}
		src, err := fv.String()
		if err != nil {
			return ob, formatCUEError(err)
		}
		parsed, err := term.ParseTerm(src)
		if err != nil {
			return ob, &CompileError{
				Field:   "obligations." + ob.Name + "." + field.name,
				Message: err.Error(),
				Pos:     fv.Pos(),
			}
		}
		*field.dst = parsed
	}
	return ob, nil
}

// CompileError is a compile failure with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}
	return firstErr
}
