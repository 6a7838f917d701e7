package compiler

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/provlab/hedberg/internal/decider"
)

// LoadBundle reads a CUE file from disk, compiles it, and validates
// the resulting bundle. The file's top-level struct is the bundle.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}

	ctx := cuecontext.New()
	v := ctx.CompileString(string(data), cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	b, err := CompileBundle(v)
	if err != nil {
		return nil, err
	}
	if err := Validate(b); err != nil {
		return nil, err
	}
	return b, nil
}

// FindObligation returns the bundle obligation with the given name.
func (b *Bundle) FindObligation(name string) (Obligation, bool) {
	for _, ob := range b.Obligations {
		if ob.Name == name {
			return ob, true
		}
	}
	return Obligation{}, false
}

// Registry seeds a fresh decider registry from the bundle's decider
// list: the baseline deciders plus a canonical decider per declared
// type. Types in omit are skipped, as are types the baseline already
// resolves (registries are append-only).
func (b *Bundle) Registry(omit ...string) (*decider.Registry, error) {
	omitted := make(map[string]bool, len(omit))
	for _, key := range omit {
		omitted[key] = true
	}

	reg := decider.Baseline()
	for _, ty := range b.Deciders {
		if omitted[ty.Key()] {
			continue
		}
		if _, ok := reg.Lookup(ty); ok {
			continue
		}
		if err := reg.Register(ty, decider.CanonicalDecider); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
