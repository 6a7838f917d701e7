package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/provlab/hedberg/internal/compiler"
	"github.com/provlab/hedberg/internal/engine"
	"github.com/provlab/hedberg/internal/store"
)

// ProveOptions holds flags for the prove command.
type ProveOptions struct {
	Obligations []string // Obligation names to prove; empty means all
	LogDB       string   // Optional proof-log database path
}

// ProveResult is the JSON payload for one proved obligation.
type ProveResult struct {
	Obligation string        `json:"obligation"`
	ID         string        `json:"obligation_id"`
	ICount     int           `json:"icount"`
	Closed     bool          `json:"closed"`
	Branches   []ProveBranch `json:"branches"`
}

// ProveBranch is one branch verdict in the payload.
type ProveBranch struct {
	Ctor     string `json:"ctor"`
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Residual string `json:"residual,omitempty"`
	Witness  string `json:"witness,omitempty"`
}

// NewProveCommand creates the prove command.
func NewProveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProveOptions{}

	cmd := &cobra.Command{
		Use:   "prove <bundle.cue>",
		Short: "Prove the obligations of a bundle",
		Long: `Prove uniqueness obligations from a CUE bundle.

Each obligation is oriented, introspected, generalized, and split per
constructor; branches are discharged or left open with a residual goal.
Exit code 1 indicates at least one obligation did not fully close.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProve(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Obligations, "obligation", nil,
		"obligation name to prove (repeatable; default all)")
	cmd.Flags().StringVar(&opts.LogDB, "log", "",
		"append run records to this proof-log database")

	return cmd
}

func runProve(rootOpts *RootOptions, opts *ProveOptions, bundlePath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	bundle, err := compiler.LoadBundle(bundlePath)
	if err != nil {
		formatter.Error(ErrCodeCompile, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load bundle", err)
	}

	targets, err := selectObligations(bundle, opts.Obligations)
	if err != nil {
		formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "unknown obligation", err)
	}

	reg, err := bundle.Registry()
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to build registry", err)
	}
	formatter.VerboseLog("registry deciders: %s", strings.Join(reg.Keys(), ", "))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if rootOpts.Verbose {
		logger = slog.New(slog.NewTextHandler(formatter.ErrWriter, nil))
	}
	eng := engine.New(reg, engine.WithLogger(logger))

	var sink *runSink
	if opts.LogDB != "" {
		sink, err = openRunSink(cmd.Context(), opts.LogDB)
		if err != nil {
			formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to open proof log", err)
		}
		defer sink.Close()
	}

	results := make([]ProveResult, 0, len(targets))
	allClosed := true
	for _, ob := range targets {
		report, err := eng.Uniqueness(ob.Goal(bundle), ob.ICount)
		if err != nil {
			formatter.Error(ErrCodeProof, fmt.Sprintf("prove %s: %v", ob.Name, err), nil)
			return WrapExitError(ExitCommandError, "proof failed", err)
		}
		if !report.Closed {
			allClosed = false
		}
		results = append(results, toProveResult(ob.Name, report))

		if sink != nil {
			if err := sink.Append(cmd.Context(), report); err != nil {
				formatter.Error(ErrCodeStore, err.Error(), nil)
				return WrapExitError(ExitCommandError, "failed to append run", err)
			}
		}
	}

	if rootOpts.Format == "json" {
		if err := formatter.Success(results); err != nil {
			return err
		}
	} else {
		printProveText(formatter.Writer, results)
	}

	if !allClosed {
		return NewExitError(ExitFailure, "one or more obligations left open")
	}
	return nil
}

// selectObligations resolves the requested names, defaulting to the
// whole bundle in declaration order.
func selectObligations(bundle *compiler.Bundle, names []string) ([]compiler.Obligation, error) {
	if len(names) == 0 {
		return bundle.Obligations, nil
	}
	targets := make([]compiler.Obligation, 0, len(names))
	for _, name := range names {
		ob, ok := bundle.FindObligation(name)
		if !ok {
			return nil, fmt.Errorf("obligation %q not in bundle", name)
		}
		targets = append(targets, ob)
	}
	return targets, nil
}

func toProveResult(name string, report *engine.Result) ProveResult {
	res := ProveResult{
		Obligation: name,
		ID:         report.ObligationID,
		ICount:     report.ICount,
		Closed:     report.Closed,
		Branches:   []ProveBranch{},
	}
	for _, b := range report.Branches {
		pb := ProveBranch{
			Ctor:   b.Ctor,
			Status: string(b.Status),
			Reason: string(b.Reason),
			Detail: b.Detail,
		}
		if b.Residual != nil {
			pb.Residual = b.Residual.String()
		}
		if b.Witness != nil {
			pb.Witness = b.Witness.String()
		}
		res.Branches = append(res.Branches, pb)
	}
	return res
}

func printProveText(w io.Writer, results []ProveResult) {
	for _, res := range results {
		verdict := "OPEN"
		if res.Closed {
			verdict = "CLOSED"
		}
		fmt.Fprintf(w, "%s: %s\n", res.Obligation, verdict)
		for _, b := range res.Branches {
			fmt.Fprintf(w, "  %s: %s", b.Ctor, b.Status)
			if b.Reason != "" {
				fmt.Fprintf(w, " (%s", b.Reason)
				if b.Detail != "" {
					fmt.Fprintf(w, ": %s", b.Detail)
				}
				fmt.Fprint(w, ")")
			}
			if b.Witness != "" {
				fmt.Fprintf(w, " by %s", b.Witness)
			}
			if b.Residual != "" {
				fmt.Fprintf(w, "\n    residual: %s", b.Residual)
			}
			fmt.Fprintln(w)
		}
	}
}

// runSink appends engine results to a proof-log database, stamping
// them with UUIDv7 identities and a clock resumed from the log.
type runSink struct {
	st    *store.Store
	clock *store.Clock
	ids   store.RunIDGenerator
}

func openRunSink(ctx context.Context, path string) (*runSink, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	last, err := st.LastSeq(ctx)
	if err != nil {
		st.Close()
		return nil, err
	}
	return &runSink{
		st:    st,
		clock: store.NewClockAt(last),
		ids:   store.UUIDv7Generator{},
	}, nil
}

func (s *runSink) Append(ctx context.Context, report *engine.Result) error {
	run, err := store.NewRun(s.ids.Generate(), s.clock.Next(), report)
	if err != nil {
		return err
	}
	return s.st.AppendRun(ctx, run)
}

func (s *runSink) Close() error {
	return s.st.Close()
}
