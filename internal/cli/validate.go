package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provlab/hedberg/internal/compiler"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid       bool   `json:"valid"`
	Obligations int    `json:"obligations"`
	Families    int    `json:"families"`
	Deciders    int    `json:"deciders"`
	Error       string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <bundle.cue>",
		Short: "Validate an obligation bundle without proving",
		Long: `Validate a CUE obligation bundle without running the engine.

Performs syntax checking, term and type parsing, family consistency
checks, and obligation well-formedness checks. Faster than prove for
development feedback.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, bundlePath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	bundle, err := compiler.LoadBundle(bundlePath)
	if err != nil {
		code := ErrCodeCompile
		var cerr *compiler.CompileError
		var verr *compiler.ValidationError
		switch {
		case errors.As(err, &cerr), errors.As(err, &verr):
			// Keep the compile code.
		default:
			code = ErrCodeNotFound
		}
		formatter.Error(code, err.Error(), nil)
		return WrapExitError(ExitFailure, "bundle is invalid", err)
	}

	result := ValidationResult{
		Valid:       true,
		Obligations: len(bundle.Obligations),
		Families:    len(bundle.Families),
		Deciders:    len(bundle.Deciders),
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer,
		"valid: %d obligation(s), %d family(ies), %d decider(s)\n",
		result.Obligations, result.Families, result.Deciders)
	return nil
}
