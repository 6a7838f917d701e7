package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/provlab/hedberg/internal/store"
)

// LogOptions holds flags for the log command.
type LogOptions struct {
	ObligationID string // Filter by obligation identity
	RunID        string // Show a single run
}

// LogEntry is the JSON payload for one logged run.
type LogEntry struct {
	RunID        string        `json:"run_id"`
	Seq          int64         `json:"seq"`
	ObligationID string        `json:"obligation_id"`
	Obligation   string        `json:"obligation"`
	ICount       int           `json:"icount"`
	Phase        string        `json:"phase"`
	Closed       bool          `json:"closed"`
	Branches     []ProveBranch `json:"branches"`
}

// NewLogCommand creates the log command.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogOptions{}

	cmd := &cobra.Command{
		Use:   "log <database>",
		Short: "Inspect the proof log",
		Long: `Read run records from a proof-log database.

With --run, shows a single run. With --obligation-id, lists every run
recorded for that obligation identity in logical-clock order.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ObligationID, "obligation-id", "",
		"list runs for this obligation identity")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show a single run by ID")

	return cmd
}

func runLog(rootOpts *RootOptions, opts *LogOptions, dbPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	if opts.RunID == "" && opts.ObligationID == "" {
		msg := "one of --run or --obligation-id is required"
		formatter.Error(ErrCodeGeneric, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		msg := fmt.Sprintf("database not found: %s", dbPath)
		formatter.Error(ErrCodeNotFound, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open proof log", err)
	}
	defer st.Close()

	var runs []store.Run
	if opts.RunID != "" {
		run, err := st.GetRun(cmd.Context(), opts.RunID)
		if errors.Is(err, sql.ErrNoRows) {
			msg := fmt.Sprintf("run not found: %s", opts.RunID)
			formatter.Error(ErrCodeNotFound, msg, nil)
			return NewExitError(ExitCommandError, msg)
		}
		if err != nil {
			formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to read run", err)
		}
		runs = []store.Run{run}
	} else {
		runs, err = st.ListRuns(cmd.Context(), opts.ObligationID)
		if err != nil {
			formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
	}

	entries := make([]LogEntry, 0, len(runs))
	for _, run := range runs {
		entries = append(entries, toLogEntry(run))
	}

	if rootOpts.Format == "json" {
		return formatter.Success(entries)
	}
	printLogText(formatter.Writer, entries)
	return nil
}

func toLogEntry(run store.Run) LogEntry {
	entry := LogEntry{
		RunID:        run.ID,
		Seq:          run.Seq,
		ObligationID: run.ObligationID,
		Obligation:   run.Name,
		ICount:       run.ICount,
		Phase:        string(run.Phase),
		Closed:       run.Closed,
		Branches:     []ProveBranch{},
	}
	for _, b := range run.Branches {
		entry.Branches = append(entry.Branches, ProveBranch{
			Ctor:     b.Ctor,
			Status:   string(b.Status),
			Reason:   string(b.Reason),
			Detail:   b.Detail,
			Residual: b.ResidualJSON,
			Witness:  b.WitnessJSON,
		})
	}
	return entry
}

func printLogText(w io.Writer, entries []LogEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "no runs recorded")
		return
	}
	for _, e := range entries {
		verdict := "open"
		if e.Closed {
			verdict = "closed"
		}
		fmt.Fprintf(w, "[%d] %s %s (%s) %s\n", e.Seq, e.RunID, e.Obligation, e.ObligationID, verdict)
		for _, b := range e.Branches {
			fmt.Fprintf(w, "  %s: %s", b.Ctor, b.Status)
			if b.Reason != "" {
				fmt.Fprintf(w, " (%s)", b.Reason)
			}
			fmt.Fprintln(w)
		}
	}
}
