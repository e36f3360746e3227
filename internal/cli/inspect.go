package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/colgraph/pkg/dataset"
	"github.com/matzehuels/colgraph/pkg/graph"
	"github.com/matzehuels/colgraph/pkg/render"
)

type inspectOpts struct {
	chartFlags
	json bool
}

// inspectCommand creates the inspect command, which prints the chart
// geometry without drawing.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the computed chart geometry",
		Long: `Print the axis range, paddings and gridline labels a render would use.

Accepts the same data files and chart flags as render.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), cmd.OutOrStdout(), cmd.Flags(), args[0], &opts)
		},
	}

	opts.chartFlags.register(cmd.Flags())
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the geometry as JSON")

	return cmd
}

func runInspect(ctx context.Context, w io.Writer, fs *pflag.FlagSet, input string, opts *inspectOpts) error {
	st, err := opts.settings(fs)
	if err != nil {
		return err
	}
	ds, err := dataset.Load(input)
	if err != nil {
		return err
	}
	geo, err := render.Measure(ds, st, opts.options())
	if err != nil {
		return err
	}
	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(geo)
	}
	if geo == nil {
		fmt.Fprintln(w, StyleDim.Render(input+" contains no series"))
		return nil
	}

	loggerFromContext(ctx).Debug("measured chart", "series", len(ds.Series), "labels", len(geo.Labels))

	fmt.Fprintln(w, StyleTitle.Render(input))
	fmt.Fprintln(w, keyValue("series", fmt.Sprint(len(ds.Series))))
	fmt.Fprintln(w, keyValue("categories", fmt.Sprint(len(ds.Categories()))))
	fmt.Fprintln(w, keyValue("range", fmt.Sprintf("%s to %s", num(geo.Min), num(geo.Max))))
	fmt.Fprintln(w, keyValue("label width", num(geo.Left)))
	fmt.Fprintln(w, keyValue("chart", fmt.Sprintf("top %s, height %s", num(geo.ChartTop), num(geo.ChartHeight))))
	fmt.Fprintln(w, renderTable([]string{"line", "label", "y"}, gridRows(geo)))
	return nil
}

// gridRows lists each gridline with its label and vertical position.
func gridRows(geo *graph.Geometry) [][]string {
	grid := graph.NewGrid(geo.Labels, geo.GridOptions())
	rows := make([][]string, len(geo.Labels))
	for i, l := range geo.Labels {
		rows[i] = []string{strconv.Itoa(i), l.Left, num(grid.Y(i))}
	}
	return rows
}

// num formats v with at most two decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
