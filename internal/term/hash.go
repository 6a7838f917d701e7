package term

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity. The version suffix
// enables future encoding migration.
const (
	DomainObligation = "hedberg/obligation/v1"
	DomainTerm       = "hedberg/term/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// TermID computes the content-addressed ID of a term.
func TermID(t Term) (string, error) {
	data, err := MarshalCanonical(t)
	if err != nil {
		return "", fmt.Errorf("canonical marshal: %w", err)
	}
	return hashWithDomain(DomainTerm, data), nil
}

// ObligationID computes the content-addressed ID of an equality
// obligation from its common type and its two evidence terms. The ID
// is stable across restarts and across proof-log replays given the
// same inputs.
func ObligationID(ty, lhs, rhs Term) (string, error) {
	var data []byte
	for _, t := range []Term{ty, lhs, rhs} {
		enc, err := MarshalCanonical(t)
		if err != nil {
			return "", fmt.Errorf("canonical marshal: %w", err)
		}
		data = append(data, enc...)
		data = append(data, 0x00)
	}
	return hashWithDomain(DomainObligation, data), nil
}
