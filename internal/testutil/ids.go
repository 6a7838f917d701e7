package testutil

// FixedRunIDGenerator generates the same run ID every time.
//
// Unlike store.FixedGenerator which returns IDs in sequence, this
// generator always returns the same ID. Useful for single-run tests
// whose log output must be byte-identical across executions.
//
// Thread-safety: stateless after construction, safe for concurrent use.
type FixedRunIDGenerator struct {
	id string
}

// NewFixedRunIDGenerator creates a generator pinned to one ID.
// If id is empty, Generate() returns "test-run-default".
func NewFixedRunIDGenerator(id string) *FixedRunIDGenerator {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedRunIDGenerator{id: id}
}

// Generate returns the fixed run ID.
// Implements store.RunIDGenerator.
func (g *FixedRunIDGenerator) Generate() string {
	return g.id
}
