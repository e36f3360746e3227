package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/colgraph/pkg/format"
	"github.com/matzehuels/colgraph/pkg/render"
	"github.com/matzehuels/colgraph/pkg/surface"
)

const sampleCSV = "category,Revenue,Costs\nQ1,120,80\nQ2,98.5,75\nQ3,,60\n"

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	captureStatus(t)
	var out bytes.Buffer
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "data/sales.csv", "data/sales"},
		{"out/chart.svg", "sales.csv", "out/chart"},
		{"out/chart.png", "sales.csv", "out/chart"},
		{"out/chart", "sales.csv", "out/chart"},
		{"out/chart.v2", "sales.csv", "out/chart.v2"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	single := outputPaths("chart.out", "sales.csv", []render.Format{render.FormatSVG})
	if single[render.FormatSVG] != "chart.out" {
		t.Errorf("single output = %q, want chart.out", single[render.FormatSVG])
	}

	multi := outputPaths("", "data/sales.csv", []render.Format{render.FormatSVG, render.FormatPNG})
	if multi[render.FormatSVG] != "data/sales.svg" || multi[render.FormatPNG] != "data/sales.png" {
		t.Errorf("multi outputs = %v", multi)
	}
}

func TestChartFlagsSettings(t *testing.T) {
	dir := t.TempDir()
	settingsFile := filepath.Join(dir, "chart.toml")
	if err := os.WriteFile(settingsFile, []byte("format = \"currency\"\ngridlines = 8\nborder = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var f chartFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd.Flags())
	if err := cmd.Flags().Parse([]string{"--settings", settingsFile, "--gridlines", "3", "--no-legend"}); err != nil {
		t.Fatal(err)
	}

	st, err := f.settings(cmd.Flags())
	if err != nil {
		t.Fatalf("settings() error: %v", err)
	}
	if st.Format != format.Currency || !st.Border {
		t.Errorf("file values lost: %+v", st)
	}
	if st.Gridlines != 3 {
		t.Errorf("Gridlines = %d, want flag value 3", st.Gridlines)
	}
	if st.Legend {
		t.Error("Legend = true, want false from --no-legend")
	}
	if !st.Baseline {
		t.Error("Baseline should keep its default")
	}
}

func TestChartFlagsInvalid(t *testing.T) {
	tests := [][]string{
		{"--format-values", "roman"},
		{"--gridlines", "-2"},
		{"--height", "0"},
	}

	for _, args := range tests {
		var f chartFlags
		cmd := &cobra.Command{Use: "test"}
		f.register(cmd.Flags())
		if err := cmd.Flags().Parse(args); err != nil {
			t.Fatal(err)
		}
		if _, err := f.settings(cmd.Flags()); err == nil {
			t.Errorf("settings(%v) expected error", args)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	input := writeSample(t)
	base := filepath.Join(t.TempDir(), "out", "sales")

	if _, err := runCLI(t, "render", input, "-f", "svg,json", "-o", base, "--ticks", "3"); err != nil {
		t.Fatalf("render error: %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("svg output missing: %v", err)
	}
	if !strings.Contains(string(svg), "Revenue") {
		t.Error("svg output should contain the legend")
	}

	data, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatalf("json output missing: %v", err)
	}
	var rec surface.Recorder
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatal(err)
	}
	// Two legend squares plus two columns; Q3 revenue is absent.
	if got := len(rec.Filter("fill_rect")); got != 4 {
		t.Errorf("fill_rect ops = %d, want 4", got)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	input := writeSample(t)
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"render", filepath.Join(t.TempDir(), "nope.csv")}},
		{"bad format", []string{"render", input, "-f", "gif"}},
		{"bad settings", []string{"render", input, "--gridlines", "-1"}},
		{"no args", []string{"render"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestInspectCommand(t *testing.T) {
	input := writeSample(t)

	out, err := runCLI(t, "inspect", input, "--gridlines", "2")
	if err != nil {
		t.Fatalf("inspect error: %v", err)
	}
	for _, want := range []string{"label", "120", "60", "0"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}

	out, err = runCLI(t, "inspect", input, "--json")
	if err != nil {
		t.Fatalf("inspect --json error: %v", err)
	}
	var geo struct {
		Max    float64 `json:"max"`
		Labels []struct {
			Left string `json:"left"`
		} `json:"labels"`
	}
	if err := json.Unmarshal([]byte(out), &geo); err != nil {
		t.Fatalf("inspect --json output is not JSON: %v", err)
	}
	if geo.Max != 120 || len(geo.Labels) != 5 {
		t.Errorf("geometry = %+v, want max 120 and 5 labels", geo)
	}
}
