// Package store provides SQLite-backed durable storage for the proof
// log.
//
// The log is append-only:
//   - Runs: one record per engine invocation
//   - Branches: per-constructor outcomes of a run, in declaration order
//
// Ordering uses seq INTEGER from a logical clock, never timestamps, so
// queries replay identically. All run listings order by
// seq ASC, id ASC COLLATE BINARY. Branch residuals and witnesses are
// stored as canonical JSON (see the term package) so stored bytes are
// content-stable.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
package store
