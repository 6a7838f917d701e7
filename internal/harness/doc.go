// Package harness provides a conformance testing framework for the
// uniqueness engine.
//
// Scenarios are YAML files that name a CUE obligation bundle, a list
// of obligations to prove, and assertions over the resulting verdicts.
// Each scenario runs against a fresh decider registry seeded from the
// bundle, with optional omissions to exercise missing-decider paths.
//
// Verdicts can additionally be compared against golden files (see
// RunWithGolden); goldens capture the verdict shape of every branch,
// including residual goals and witnesses in surface syntax.
package harness
