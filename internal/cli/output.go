package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"toggl-reports/internal/render"
	"toggl-reports/internal/report"
)

var (
	primaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00CFCF"))
	silentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

func Primary(text string) string { return primaryStyle.Render(text) }
func Error(text string) string   { return errorStyle.Render(text) }
func Warning(text string) string { return warningStyle.Render(text) }
func Info(text string) string    { return infoStyle.Render(text) }
func Silent(text string) string  { return silentStyle.Render(text) }

const findingTimeFormat = "2006-01-02 15:04"

// printFindings writes one warning line per finding. Findings never stop a
// run, so everything here is advisory output.
func printFindings(w io.Writer, f report.Findings) {
	for _, ref := range f.MissingDescription {
		_, _ = fmt.Fprintf(w, "%s entry at %s (%s) has no description\n",
			Warning("warning:"), ref.Start.Format(findingTimeFormat), ref.Project)
	}
	for _, ref := range f.MissingProject {
		_, _ = fmt.Fprintf(w, "%s %q at %s has no project\n",
			Warning("warning:"), ref.Description, ref.Start.Format(findingTimeFormat))
	}
	for _, le := range f.LongEntries {
		_, _ = fmt.Fprintf(w, "%s %q at %s runs %s\n",
			Warning("warning:"), le.Entry.Description, le.Entry.Start.Format(findingTimeFormat),
			render.FormatDuration(le.Duration))
	}
	for _, ov := range f.Overlaps {
		_, _ = fmt.Fprintf(w, "%s %q and %q overlap on %s\n",
			Warning("warning:"), ov.First.Description, ov.Second.Description,
			ov.First.Start.Format("2006-01-02"))
	}
}

// printSummary writes the per-project table with the period total.
func printSummary(w io.Writer, s report.Summary) {
	_, _ = fmt.Fprintln(w, Primary(s.Period.Start.Format("January 2006")))

	width := len("total")
	for _, g := range s.Groups {
		if len(g.Label) > width {
			width = len(g.Label)
		}
	}
	for _, g := range s.Groups {
		_, _ = fmt.Fprintf(w, "  %-*s  %10s  %3d entries\n",
			width, g.Label, render.FormatDuration(g.Total), g.EntryCount)
	}
	_, _ = fmt.Fprintf(w, "  %-*s  %10s  %3d entries\n",
		width, "total", render.FormatDuration(s.Total), s.EntryCount())
}

func printArtifacts(w io.Writer, paths []string) {
	for _, p := range paths {
		_, _ = fmt.Fprintf(w, "wrote %s\n", Info(p))
	}
}
