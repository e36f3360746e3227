package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/colgraph/pkg/dataset"
	"github.com/matzehuels/colgraph/pkg/format"
	"github.com/matzehuels/colgraph/pkg/pipeline"
	"github.com/matzehuels/colgraph/pkg/render"
	"github.com/matzehuels/colgraph/pkg/settings"
)

// chartFlags holds the flags shared by render and inspect.
// Chart settings start from --settings (or the defaults) and flags only
// override what was set explicitly.
type chartFlags struct {
	settingsFile string
	valueFormat  string
	gridlines    int
	height       float64
	ticks        int
	noLegend     bool
	noBaseline   bool
	noChart      bool
	border       bool

	width    float64
	margin   float64
	fontSize float64
	palette  []string
}

func (f *chartFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.settingsFile, "settings", "", "TOML settings file")
	fs.StringVar(&f.valueFormat, "format-values", string(format.Default), "axis value format: integer, float, percentage, currency, seconds")
	fs.IntVar(&f.gridlines, "gridlines", settings.DefaultGridlines, "number of grid steps (0 disables the grid)")
	fs.Float64Var(&f.height, "height", settings.DefaultHeight, "chart height")
	fs.IntVar(&f.ticks, "ticks", settings.DefaultTicks, "number of baseline tick intervals (0 disables ticks)")
	fs.BoolVar(&f.noLegend, "no-legend", false, "hide the legend")
	fs.BoolVar(&f.noBaseline, "no-baseline", false, "hide the category baseline")
	fs.BoolVar(&f.noChart, "no-chart", false, "hide the columns")
	fs.BoolVar(&f.border, "border", false, "draw a border around the chart")
	fs.Float64Var(&f.width, "width", render.DefaultWidth, "page width")
	fs.Float64Var(&f.margin, "margin", render.DefaultMargin, "page margin")
	fs.Float64Var(&f.fontSize, "font-size", render.DefaultFontSize, "label font size")
	fs.StringSliceVar(&f.palette, "palette", nil, "series colors as hex (comma-separated)")
}

// settings builds chart settings from the settings file and changed flags.
func (f *chartFlags) settings(fs *pflag.FlagSet) (settings.Settings, error) {
	st := settings.Default()
	if f.settingsFile != "" {
		loaded, err := settings.Load(f.settingsFile)
		if err != nil {
			return settings.Settings{}, err
		}
		st = loaded
	}

	if fs.Changed("format-values") {
		vf, err := format.Parse(f.valueFormat)
		if err != nil {
			return settings.Settings{}, err
		}
		st.Format = vf
	}
	if fs.Changed("gridlines") {
		st.Gridlines = f.gridlines
	}
	if fs.Changed("height") {
		st.Height = f.height
	}
	if fs.Changed("ticks") {
		st.Ticks = f.ticks
	}
	if fs.Changed("no-legend") {
		st.Legend = !f.noLegend
	}
	if fs.Changed("no-baseline") {
		st.Baseline = !f.noBaseline
	}
	if fs.Changed("no-chart") {
		st.Chart = !f.noChart
	}
	if fs.Changed("border") {
		st.Border = f.border
	}
	return st, st.Validate()
}

func (f *chartFlags) options() render.Options {
	return render.Options{
		Width:    f.width,
		Margin:   f.margin,
		FontSize: f.fontSize,
		Palette:  f.palette,
	}
}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	chartFlags
	output  string
	formats string
	scale   float64
	noCache bool
	refresh bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a column chart from a data file",
		Long: `Render a column chart from a JSON, TOML, CSV or XLSX data file.

The first series is drawn as columns; every series name appears in the
legend. Settings come from --settings (TOML) and are overridden by flags.`,
		Example: `  colgraph render sales.csv
  colgraph render sales.json -f svg,png -o out/sales
  colgraph render latency.toml --format-values seconds --gridlines 6 --border`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), cmd.Flags(), args[0], &opts)
		},
	}

	opts.chartFlags.register(cmd.Flags())
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG resolution multiplier (default 2)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, fs *pflag.FlagSet, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	formats, err := render.ParseFormats(opts.formats)
	if err != nil {
		return err
	}
	st, err := opts.settings(fs)
	if err != nil {
		return err
	}
	ds, err := dataset.Load(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %s: %d series, %d values", input, len(ds.Series), len(ds.Values()))
	if ds.Empty() {
		printWarning("%s contains no series; writing empty output", input)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	renderOptions := opts.options()
	renderOptions.Scale = opts.scale
	result, err := runner.Execute(ctx, pipeline.Request{
		Dataset:  ds,
		Settings: st,
		Options:  renderOptions,
		Formats:  formats,
		Refresh:  opts.refresh,
	})
	if err != nil {
		return err
	}

	paths := outputPaths(opts.output, input, formats)
	for _, f := range formats {
		if err := writeOutput(paths[f], result.Artifacts[string(f)]); err != nil {
			return err
		}
	}

	prog.done(fmt.Sprintf("Rendered %d file(s)", len(formats)))
	printSuccess("Rendered %s", input)
	printStats(len(ds.Series), len(ds.Values()), result.CacheInfo.RenderHit)
	for _, f := range formats {
		printFile(paths[f])
	}
	return nil
}

// outputPaths maps each format to its output file.
// A single format with an explicit output uses that path as is; otherwise
// the extension is replaced per format on the output (or input) base path.
func outputPaths(output, input string, formats []render.Format) map[render.Format]string {
	paths := make(map[render.Format]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + f.Extension()
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, err := render.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil && ext != "" {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
