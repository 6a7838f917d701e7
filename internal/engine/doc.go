// Package engine implements the hedberg uniqueness engine.
//
// The engine mechanically discharges obligations of one shape: two
// pieces of evidence for an indexed predicate are equal, given that
// equality on the predicate's index types is decidable.
//
// ARCHITECTURE:
//
// One invocation is one synchronous state machine run:
//
//  1. Orient - normalize side order so the scrutinee is on the right.
//  2. Introspect - strip exactly icount applied arguments from the
//     scrutinee's type, recovering head, index types, index values.
//  3. Generalize - build the motive over the reversed index tuple and
//     curry it back into natural order; rewrite the left evidence as a
//     transport along reflexivity so the obligation is definitionally
//     an instance of the motive.
//  4. Split - one branch per constructor shape, each carrying a fresh
//     index-tuple equality hypothesis in computed nested-pair form.
//  5. Per branch: destructure the hypothesis (mismatched constructors
//     close the branch as contradicted), then discharge by eliminating
//     the reflexive transport (justified by registered deciders) and
//     running the structural-match search.
//
// The engine is designed for determinism, not throughput: it runs once
// per obligation during proof construction. Branches are evaluated in
// constructor declaration order, single-threaded.
//
// FAILURE MODEL:
//
// A structural mismatch aborts the whole invocation atomically. A
// missing decider or an unresolved residual equality leaves only the
// affected branch open; open branches are surfaced to the caller as
// ordinary unproved obligations, never as crashes.
package engine
