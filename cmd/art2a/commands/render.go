package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/art2a/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF99")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Width(16)

	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF99"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5555"))
)

func convergedLabel(ok bool) string {
	if ok {
		return okStyle.Render("converged")
	}

	return warnStyle.Render("not converged")
}

// renderSummary prints the human-readable form of a cluster report.
func renderSummary(w io.Writer, s *report.Summary) {
	fmt.Fprintln(w, titleStyle.Render("ART-2A RESULT"))

	row := func(label, value string) {
		fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value))
	}
	row("vigilance", fmt.Sprintf("%v", s.Vigilance))
	row("vectors", fmt.Sprintf("%d × %d (%d null)", s.Vectors, s.Dimension, s.NullVectors))
	row("clusters", fmt.Sprintf("%d", s.Clusters))
	row("epochs", fmt.Sprintf("%d, %s", s.Epochs, convergedLabel(s.Converged)))
	row("cluster size", fmt.Sprintf("%.2f ± %.2f (min %d, max %d)", s.SizeMean, s.SizeStdDev, s.SizeMin, s.SizeMax))
	fmt.Fprintln(w)

	fmt.Fprintln(w, titleStyle.Render("CLUSTERS"))
	for _, c := range s.Details {
		fmt.Fprintf(w, "  #%-4d size %-6d representative %d\n", c.Index, c.Size, c.Representative)
	}
}

// renderSweep prints one line per sweep run.
func renderSweep(w io.Writer, rows []report.SweepRow) {
	fmt.Fprintln(w, titleStyle.Render("ART-2A SWEEP"))
	fmt.Fprintln(w, labelStyle.Width(0).Render(
		fmt.Sprintf("  %-10s %-9s %-7s %-10s %s", "vigilance", "clusters", "epochs", "time", "status")))
	for _, r := range rows {
		status := convergedLabel(r.Converged)
		if r.Error != "" {
			status = errorStyle.Render(firstLine(r.Error))
		}
		fmt.Fprintf(w, "  %-10v %-9d %-7d %-10s %s\n", r.Vigilance, r.Clusters, r.Epochs, fmt.Sprintf("%dms", r.DurationMS), status)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}

	return s
}
