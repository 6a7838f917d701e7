// Package decider maintains the registry of decidable-equality facts
// the engine consumes during discharge.
//
// The registry is an explicit mapping from a canonical type key to a
// decision procedure. It is append-only: facts can be added, never
// replaced or removed, so any registration happens-before an
// invocation that depends on it and concurrent invocations may read
// freely. The engine only ever consumes facts; it never derives them.
package decider

import (
	"fmt"
	"sync"

	"github.com/provlab/hedberg/internal/term"
)

// Func decides equality of two values of one type: equal is the
// verdict, err reports that the procedure could not decide (malformed
// values for the type it was registered under).
type Func func(a, b term.Term) (equal bool, err error)

// Rule derives a decider for a structured type from deciders of its
// components, or reports that it does not apply. Rules let composite
// facts (the pair rule) live in the registry as content rather than in
// the engine.
type Rule func(ty term.Type, reg *Registry) (Func, bool)

// Registry is a mutex-guarded, append-only fact table. The zero value
// is not usable; call NewRegistry.
type Registry struct {
	mu    sync.RWMutex
	facts map[string]Func
	rules []Rule
}

// NewRegistry creates an empty registry with no facts and no rules.
func NewRegistry() *Registry {
	return &Registry{facts: make(map[string]Func)}
}

// Register adds the fact "equality on ty is decidable by fn".
// Append-only: registering a key twice is an error.
func (r *Registry) Register(ty term.Type, fn Func) error {
	if fn == nil {
		return fmt.Errorf("nil decider for type %s", ty.Key())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := ty.Key()
	if _, exists := r.facts[key]; exists {
		return fmt.Errorf("decider for type %s already registered", key)
	}
	r.facts[key] = fn
	return nil
}

// RegisterRule appends a composition rule. Rules are consulted in
// registration order after exact facts.
func (r *Registry) RegisterRule(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule)
}

// Lookup resolves a decider for ty: an exact fact first, then the
// registered rules in order. Reports ok=false when neither applies.
func (r *Registry) Lookup(ty term.Type) (Func, bool) {
	r.mu.RLock()
	fn, ok := r.facts[ty.Key()]
	rules := r.rules
	r.mu.RUnlock()
	if ok {
		return fn, true
	}
	for _, rule := range rules {
		if fn, ok := rule(ty, r); ok {
			return fn, true
		}
	}
	return nil, false
}

// Keys returns the exact fact keys currently registered. For
// diagnostics; rules are not enumerable.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.facts))
	for k := range r.facts {
		keys = append(keys, k)
	}
	return keys
}
