package cli

// Error codes surfaced in CLI output.
const (
	ErrCodeGeneric  = "E001" // unclassified failure
	ErrCodeNotFound = "E002" // bundle, obligation, or database not found
	ErrCodeCompile  = "E003" // bundle compilation or validation failure
	ErrCodeProof    = "E004" // engine rejected the obligation shape
	ErrCodeStore    = "E005" // proof log read/write failure
)
