package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/patrol/internal/grid"
	"github.com/roach88/patrol/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Digest   string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded runs",
		Long: `List runs recorded by "patrol solve --db", oldest first.

With a run ID, show that run and its loop placements.

Examples:
  patrol history --db ./patrol.db
  patrol history --db ./patrol.db --digest 3f2a...
  patrol history --db ./patrol.db 01920c4e-7b3a-7c1d-9f00-2b8e4d1a6c55`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := ""
			if len(args) == 1 {
				runID = args[0]
			}
			return runHistory(opts, runID, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Digest, "digest", "", "only list runs of the map with this digest")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, runID string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	ctx := commandContext(cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return fail(formatter, ErrCodeStore, ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	if runID != "" {
		run, err := st.ReadRun(ctx, runID)
		if errors.Is(err, store.ErrRunNotFound) {
			return fail(formatter, ErrCodeNotFound, ExitCommandError, fmt.Sprintf("run %s not found", runID), nil)
		}
		if err != nil {
			return fail(formatter, ErrCodeStore, ExitCommandError, "failed to read run", err)
		}
		return formatter.Success(run, func(w io.Writer) {
			writeRunDetail(w, run)
		})
	}

	var runs []store.Run
	if opts.Digest != "" {
		runs, err = st.ListRunsByDigest(ctx, opts.Digest)
	} else {
		runs, err = st.ListRuns(ctx)
	}
	if err != nil {
		return fail(formatter, ErrCodeStore, ExitCommandError, "failed to list runs", err)
	}

	return formatter.Success(runs, func(w io.Writer) {
		if len(runs) == 0 {
			fmt.Fprintln(w, "No runs recorded.")
			return
		}
		for _, r := range runs {
			fmt.Fprintf(w, "%d  %s  %dx%d  %s  visited=%d  %s\n",
				r.Seq, r.ID, r.Width, r.Height, r.Outcome, r.Visited, loopSummary(&r))
		}
	})
}

func loopSummary(r *store.Run) string {
	if !r.Searched {
		return "loops=-"
	}
	return fmt.Sprintf("loops=%d", r.LoopCount())
}

func writeRunDetail(w io.Writer, r *store.Run) {
	fmt.Fprintf(w, "Run:       %s (#%d)\n", r.ID, r.Seq)
	fmt.Fprintf(w, "Map:       %dx%d %s\n", r.Width, r.Height, r.GridDigest)
	fmt.Fprintf(w, "Detection: %s\n", r.Detection)
	fmt.Fprintf(w, "Outcome:   %s\n", r.Outcome)
	fmt.Fprintf(w, "Visited:   %d\n", r.Visited)
	if !r.Searched {
		fmt.Fprintln(w, "Search:    skipped")
		return
	}
	fmt.Fprintf(w, "Trials:    %d\n", r.Trials)
	fmt.Fprintf(w, "Loops:     %d %s\n", r.LoopCount(), pointList(r.Loops))
	if len(r.Blocked) > 0 {
		fmt.Fprintf(w, "Blocked:   %s\n", pointList(r.Blocked))
	}
}

func pointList(ps []grid.Point) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}
