package engine

import (
	"errors"
	"fmt"
)

// ProofError represents a fatal error detected during an engine
// invocation. Fatal means the whole invocation aborts atomically with
// no partial state retained; branch-local conditions (a missing
// decider, an unresolved residual, a vacuous branch) are not errors
// and are reported on the branch itself.
type ProofError struct {
	// Code identifies the error category.
	Code ProofErrorCode

	// Message is a human-readable description.
	Message string

	// Obligation names the affected obligation, if known.
	Obligation string
}

// ProofErrorCode categorizes fatal proof errors.
type ProofErrorCode string

const (
	// ErrCodeStructuralMismatch indicates the obligation lacks the
	// equality-of-indexed-evidence shape, or its type carries fewer
	// applied arguments than the supplied index count.
	ErrCodeStructuralMismatch ProofErrorCode = "STRUCTURAL_MISMATCH"

	// ErrCodeInternal indicates an engine invariant was violated.
	ErrCodeInternal ProofErrorCode = "INTERNAL"
)

// Error implements the error interface.
func (e *ProofError) Error() string {
	if e.Obligation != "" {
		return fmt.Sprintf("%s: %s (obligation=%s)", e.Code, e.Message, e.Obligation)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsStructuralMismatch returns true if the error is a structural
// mismatch. Uses errors.As to handle wrapped errors.
func IsStructuralMismatch(err error) bool {
	var pe *ProofError
	if errors.As(err, &pe) {
		return pe.Code == ErrCodeStructuralMismatch
	}
	return false
}

// NewStructuralMismatch creates a ProofError for a malformed
// obligation.
func NewStructuralMismatch(obligation string, cause error) *ProofError {
	return &ProofError{
		Code:       ErrCodeStructuralMismatch,
		Message:    cause.Error(),
		Obligation: obligation,
	}
}

func internalErr(obligation, format string, args ...any) *ProofError {
	return &ProofError{
		Code:       ErrCodeInternal,
		Message:    fmt.Sprintf(format, args...),
		Obligation: obligation,
	}
}
