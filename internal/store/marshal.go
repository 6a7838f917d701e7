package store

import (
	"fmt"

	"github.com/provlab/hedberg/internal/term"
)

// marshalTerm converts a term to canonical JSON TEXT for storage.
// Nil terms map to the empty string so NULL-ish columns stay readable.
func marshalTerm(t term.Term) (string, error) {
	if t == nil {
		return "", nil
	}
	data, err := term.MarshalCanonical(t)
	if err != nil {
		return "", fmt.Errorf("marshal term: %w", err)
	}
	return string(data), nil
}

// unmarshalTerm parses canonical JSON TEXT back into a term.
func unmarshalTerm(data string) (term.Term, error) {
	if data == "" {
		return nil, nil
	}
	t, err := term.UnmarshalCanonical([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal term: %w", err)
	}
	return t, nil
}
