package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/faina/internal/model"
	"github.com/tinytelemetry/faina/internal/resolve"
)

// InputLines is one input and the number of lines read from it.
type InputLines struct {
	Name  string
	Lines int64
}

// SummaryInfo describes the run for the stderr summary.
type SummaryInfo struct {
	Inputs   []InputLines
	Dialect  string
	Workers  int
	Elapsed  time.Duration
	Resolver *resolve.CacheStats // nil when reverse DNS is disabled
}

// WriteSummary prints a styled overview of the run. It is meant for a
// terminal and never written to the report stream.
func WriteSummary(w io.Writer, r model.Report, info SummaryInfo) error {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")
	warn := yellow.Render("●")
	dot := dim.Render("●")

	separator := dim.Render("    ─────────────────────────────────")

	var lines []string
	lines = append(lines, "")
	lines = append(lines, separator)
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Input"))
	lines = append(lines, "")
	if len(info.Inputs) == 0 {
		lines = append(lines, fmt.Sprintf("    %s  Sources        %s", dot, dim.Render("none")))
	}
	for _, in := range info.Inputs {
		lines = append(lines, fmt.Sprintf("    %s  %-14s %s", check, in.Name, cyan.Render(fmt.Sprintf("%d lines", in.Lines))))
	}
	lines = append(lines, fmt.Sprintf("    %s  Dialect        %s", check, dim.Render(info.Dialect)))
	lines = append(lines, fmt.Sprintf("    %s  Workers        %s", check, dim.Render(fmt.Sprint(info.Workers))))
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Lines"))
	lines = append(lines, "")
	s := r.Stats
	lines = append(lines, fmt.Sprintf("    %s  Processed      %s", check, cyan.Render(fmt.Sprint(s.LinesProcessed))))
	skipped := check
	if s.LinesSkipped > 0 {
		skipped = warn
	}
	lines = append(lines, fmt.Sprintf("    %s  Skipped        %s", skipped, dim.Render(fmt.Sprint(s.LinesSkipped))))
	lines = append(lines, fmt.Sprintf("    %s  Ignored        %s", dot, dim.Render(fmt.Sprint(s.LinesIgnored))))
	lines = append(lines, fmt.Sprintf("    %s  Idle (OK)      %s", dot, dim.Render(fmt.Sprint(s.LinesIdle))))
	if r.Span != nil {
		lines = append(lines, fmt.Sprintf("    %s  Captured       %s", dot, dim.Render(formatSpan(*r.Span))))
	}
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Resolver"))
	lines = append(lines, "")
	if info.Resolver != nil {
		rs := info.Resolver
		lines = append(lines, fmt.Sprintf("    %s  Lookups        %s", check, dim.Render(fmt.Sprint(rs.Lookups))))
		lines = append(lines, fmt.Sprintf("    %s  Cache Hits     %s", check, dim.Render(fmt.Sprint(rs.Hits))))
		failed := check
		if rs.Failures > 0 {
			failed = warn
		}
		lines = append(lines, fmt.Sprintf("    %s  Unresolved     %s", failed, dim.Render(fmt.Sprint(rs.Failures))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Reverse DNS    %s", dot, dim.Render("disabled")))
	}
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("    %s  Elapsed        %s", check, dim.Render(info.Elapsed.Round(time.Millisecond).String())))
	lines = append(lines, "")
	lines = append(lines, separator)
	lines = append(lines, "")

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func formatSpan(span model.TimeSpan) string {
	const layout = "2006-01-02 15:04:05"
	return fmt.Sprintf("%s .. %s (%s)",
		span.Start.Format(layout), span.End.Format(layout), span.Duration().Round(time.Millisecond))
}
