package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/patrol/internal/digest"
	"github.com/roach88/patrol/internal/grid"
	"github.com/roach88/patrol/internal/patrol"
	"github.com/roach88/patrol/internal/search"
	"github.com/roach88/patrol/internal/store"
)

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	*RootOptions
	Workers          int
	Detect           string
	Database         string
	SkipObstructions bool

	// IDGenerator allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDGenerator store.IDGenerator
}

// SolveResult is the solve command's JSON payload.
type SolveResult struct {
	File         string       `json:"file"`
	Digest       string       `json:"digest"`
	Width        int          `json:"width"`
	Height       int          `json:"height"`
	Outcome      string       `json:"outcome"`
	Visited      int          `json:"visited"`
	Steps        int          `json:"steps"`
	Searched     bool         `json:"searched"`
	Trials       int          `json:"trials,omitempty"`
	Loops        int          `json:"loops"`
	Obstructions []grid.Point `json:"obstructions,omitempty"`
	Blocked      []grid.Point `json:"blocked,omitempty"`
	RunID        string       `json:"run_id,omitempty"`
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{RootOptions: rootOpts}
	return newSolveCommand(opts)
}

func newSolveCommand(opts *SolveOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <map-file>",
		Short: "Count visited cells and loop-inducing obstructions",
		Long: `Walk the guard across the map until it leaves, then try an extra
obstacle on every open cell and count the placements that trap it in a loop.

With --db the run and its loop placements are recorded in a SQLite run
history (created if it doesn't exist).

Examples:
  patrol solve input.txt
  patrol solve input.txt --workers 8
  patrol solve input.txt --detect budget --skip-obstructions
  patrol solve input.txt --db ./patrol.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Workers, "workers", 1, "concurrent obstruction trials")
	cmd.Flags().StringVar(&opts.Detect, "detect", "revisit", "loop detection policy (revisit|budget)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")
	cmd.Flags().BoolVar(&opts.SkipObstructions, "skip-obstructions", false, "only walk the unobstructed path")

	return cmd
}

func runSolve(opts *SolveOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	logger := formatter.Logger()

	detection, err := patrol.ParseDetection(opts.Detect)
	if err != nil {
		return fail(formatter, ErrCodeGeneric, ExitCommandError, "invalid --detect", err)
	}
	if opts.Workers < 1 {
		return fail(formatter, ErrCodeGeneric, ExitCommandError,
			fmt.Sprintf("invalid --workers %d: must be at least 1", opts.Workers), nil)
	}

	m, err := LoadGrid(path, true)
	if err != nil {
		return fail(formatter, loadErrorCode(err), ExitCommandError, "failed to load map", err)
	}

	sum, err := digest.Grid(m)
	if err != nil {
		return fail(formatter, ErrCodeGeneric, ExitCommandError, "failed to digest map", err)
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("solving", "file", path, "digest", sum, "width", m.Width(), "height", m.Height())
	sol, err := search.Solve(ctx, m, search.Options{
		Workers:   opts.Workers,
		Detection: detection,
		Logger:    logger,
	}, opts.SkipObstructions)
	if err != nil {
		return fail(formatter, ErrCodeSolveFailed, ExitFailure, "simulation failed", err)
	}

	result := SolveResult{
		File:     path,
		Digest:   sum,
		Width:    m.Width(),
		Height:   m.Height(),
		Outcome:  sol.Outcome.String(),
		Visited:  sol.Visited,
		Steps:    sol.Path.Steps,
		Searched: sol.Obstructions != nil,
		Loops:    sol.LoopCount(),
	}
	if r := sol.Obstructions; r != nil {
		result.Trials = r.Trials
		result.Obstructions = r.Loops
		result.Blocked = r.Blocked
	}

	if opts.Database != "" {
		runID, err := recordRun(ctx, opts, result, detection)
		if err != nil {
			return fail(formatter, ErrCodeStore, ExitCommandError, "failed to record run", err)
		}
		logger.Info("run recorded", "run_id", runID, "db", opts.Database)
		result.RunID = runID
	}

	return formatter.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "Outcome: %s\n", result.Outcome)
		fmt.Fprintf(w, "Visited: %d\n", result.Visited)
		if result.Searched {
			fmt.Fprintf(w, "Loops: %d (of %d placements)\n", result.Loops, result.Trials)
		}
		if result.RunID != "" {
			fmt.Fprintf(w, "Run: %s\n", result.RunID)
		}
	})
}

// recordRun writes a solved map into the run history.
func recordRun(ctx context.Context, opts *SolveOptions, res SolveResult, detection patrol.Detection) (string, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return "", err
	}
	defer st.Close()

	gen := opts.IDGenerator
	if gen == nil {
		gen = store.UUIDv7Generator{}
	}

	run := store.Run{
		ID:         gen.Generate(),
		GridDigest: res.Digest,
		Width:      res.Width,
		Height:     res.Height,
		Detection:  detection.String(),
		Outcome:    res.Outcome,
		Visited:    res.Visited,
		Searched:   res.Searched,
		Trials:     res.Trials,
		Loops:      res.Obstructions,
		Blocked:    res.Blocked,
	}
	if _, err := st.WriteRun(ctx, run); err != nil {
		return "", err
	}
	return run.ID, nil
}

// commandContext returns the command's context, or Background when the
// command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// fail reports err through the formatter and returns an ExitError with the
// given exit code.
func fail(f *OutputFormatter, code string, exit int, message string, err error) error {
	text := message
	if err != nil {
		text = fmt.Sprintf("%s: %v", message, err)
	}
	if outErr := f.Error(code, text, nil); outErr != nil {
		return outErr
	}
	return WrapExitError(exit, message, err)
}
