package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// statusOut receives status lines. Command output proper goes to
// cmd.OutOrStdout().
var statusOut io.Writer = os.Stdout

var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorValue  = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

// Styles shared by the commands.
var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleDim     = lipgloss.NewStyle().Foreground(colorMuted)
	StyleValue   = lipgloss.NewStyle().Foreground(colorValue)
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)

	styleOK    = lipgloss.NewStyle().Foreground(colorOK)
	styleLabel = lipgloss.NewStyle().Foreground(colorLabel)
	styleKey   = styleLabel.Width(12)
	styleCell  = lipgloss.NewStyle().Padding(0, 1)
)

const (
	markOK   = "✓"
	markWarn = "!"
	markInfo = "›"
	markFile = "→"
	sep      = " · "

	// headerRow is the row index lipgloss tables pass for the header.
	headerRow = -1
)

func status(mark string, markStyle lipgloss.Style, msg string) {
	fmt.Fprintln(statusOut, markStyle.Render(mark)+" "+msg)
}

func printSuccess(format string, args ...any) {
	status(markOK, styleOK, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status(markWarn, StyleWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status(markInfo, styleLabel, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written output file.
func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(markFile)+" "+StyleValue.Render(path))
}

func keyValue(key, value string) string {
	return styleKey.Render(key) + " " + StyleValue.Render(value)
}

// printStats prints "N series · M values · cached|fresh".
func printStats(series, values int, cached bool) {
	state := styleLabel.Render("fresh")
	if cached {
		state = styleOK.Render("cached")
	}
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d series", series)),
		StyleDim.Render(fmt.Sprintf("%d values", values)),
		state,
	}
	fmt.Fprintln(statusOut, "  "+strings.Join(parts, StyleDim.Render(sep)))
}

// renderTable draws rows under headers. Every column after the first is
// highlighted.
func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == headerRow:
				return styleLabel.Bold(true).Padding(0, 1)
			case col > 0:
				return styleCell.Foreground(colorAccent)
			}
			return styleCell
		}).
		String()
}
