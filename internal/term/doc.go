// Package term provides the canonical term representation for hedberg.
//
// This package contains the small typed syntax tree the engine operates
// on: application nodes and symbol references, plus type descriptors,
// typing environments, and indexed-family declarations. All other
// internal packages import term; term imports nothing internal. This
// ensures the term layer remains foundational with no circular
// dependencies.
//
// Key design constraints:
//   - The Term and Type interfaces are sealed; only the variants in
//     this package implement them.
//   - Terms are immutable after construction. Rewriting produces new
//     trees; nothing mutates in place.
//   - Identity is content-addressed: canonical JSON (RFC 8785 style,
//     NFC-normalized strings) hashed with domain separation.
package term
