package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/patrol/internal/grid"
	"github.com/roach88/patrol/internal/patrol"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Trail    bool
	Headings bool
}

// RenderResult is the render command's JSON payload.
type RenderResult struct {
	Rows    []string `json:"rows"`
	Outcome string   `json:"outcome,omitempty"`
	Visited int      `json:"visited,omitempty"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <map-file>",
		Short: "Print a map, optionally with the guard's path",
		Long: `Print the map as parsed.

--trail marks every cell of the unobstructed path with X.
--headings marks each path cell with the last direction the guard faced there.

Examples:
  patrol render input.txt
  patrol render input.txt --trail`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Trail, "trail", false, "paint the visited path")
	cmd.Flags().BoolVar(&opts.Headings, "headings", false, "paint the path with headings")
	cmd.MarkFlagsMutuallyExclusive("trail", "headings")

	return cmd
}

func runRender(opts *RenderOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	walk := opts.Trail || opts.Headings
	m, err := LoadGrid(path, walk)
	if err != nil {
		return fail(formatter, loadErrorCode(err), ExitCommandError, "failed to load map", err)
	}

	result := RenderResult{}
	out := m
	if walk {
		sim := patrol.NewSimulator(patrol.WithLogger(formatter.Logger()))
		res, err := sim.Run(commandContext(cmd), m)
		if err != nil {
			return fail(formatter, ErrCodeSolveFailed, ExitFailure, "simulation failed", err)
		}
		if opts.Headings {
			out = res.Trail.PaintHeadings(m)
		} else {
			out = res.Trail.Paint(m)
		}
		result.Outcome = res.Outcome.String()
		result.Visited = res.Visited()
	}
	result.Rows = out.Rows()

	return formatter.Success(result, func(w io.Writer) {
		writeGrid(w, out)
	})
}

func writeGrid(w io.Writer, m *grid.Grid) {
	fmt.Fprint(w, m.String())
}
