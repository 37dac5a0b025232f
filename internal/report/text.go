package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tinytelemetry/faina/internal/model"
)

const ruleWidth = 40

// Section titles, in output order.
const (
	TitleOverall  = "Overall Stats"
	TitleKeys     = "Top Keys"
	TitleCommands = "Top Commands"
)

// row is one label/value line of a text section.
type row struct {
	label string
	count int64
	pct   float64
}

// WriteText renders the report as three aligned plain-text sections.
func WriteText(w io.Writer, r model.Report) error {
	bw := bufio.NewWriter(w)

	writeSection(bw, TitleOverall, []row{{label: "Lines Processed", count: r.Stats.LinesProcessed}}, false)
	writeSection(bw, TitleKeys, rows(r.Keys), true)
	writeSection(bw, TitleCommands, rows(r.Commands), true)

	return bw.Flush()
}

func rows(items []model.RankedItem) []row {
	out := make([]row, len(items))
	for i, it := range items {
		out[i] = row{label: it.Label, count: it.Count, pct: it.Percentage}
	}
	return out
}

// writeSection pads labels to the widest label and, with percentages, pads
// counts to the widest count so the percentage column lines up.
func writeSection(w io.Writer, title string, rows []row, percentages bool) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))
	if len(rows) == 0 {
		fmt.Fprint(w, "n/a\n\n")
		return
	}

	maxLabel, maxCount := 0, 0
	for _, r := range rows {
		maxLabel = max(maxLabel, len(r.label))
		maxCount = max(maxCount, len(strconv.FormatInt(r.count, 10)))
	}

	for _, r := range rows {
		labelPad := strings.Repeat(" ", maxLabel-len(r.label))
		val := strconv.FormatInt(r.count, 10)
		if percentages {
			val = fmt.Sprintf("%s%s\t(%.2f%%)", val, strings.Repeat(" ", maxCount-len(val)), r.pct)
		}
		fmt.Fprintf(w, "%s %s \t%s\n", r.label, labelPad, val)
	}
	fmt.Fprintln(w)
}
