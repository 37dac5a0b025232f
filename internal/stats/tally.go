package stats

import (
	"time"

	"github.com/tinytelemetry/faina/internal/model"
)

// Tally holds everything one run accumulates: the command and key frequency
// tables and the line counters. It is owned by a single goroutine.
type Tally struct {
	Commands Counter
	Keys     Counter
	Lines    model.RunStats

	span    model.TimeSpan
	hasSpan bool
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{
		Commands: make(Counter),
		Keys:     make(Counter),
	}
}

// Merge folds other into t. Counts are summed exactly.
func (t *Tally) Merge(other *Tally) {
	if other == nil {
		return
	}
	t.Commands.Merge(other.Commands)
	t.Keys.Merge(other.Keys)
	t.Lines.LinesProcessed += other.Lines.LinesProcessed
	t.Lines.LinesSkipped += other.Lines.LinesSkipped
	t.Lines.LinesIgnored += other.Lines.LinesIgnored
	t.Lines.LinesIdle += other.Lines.LinesIdle
	if other.hasSpan {
		t.Observe(other.span.Start)
		t.Observe(other.span.End)
	}
}

// Observe widens the time span to include ts.
func (t *Tally) Observe(ts time.Time) {
	if !t.hasSpan {
		t.span = model.TimeSpan{Start: ts, End: ts}
		t.hasSpan = true
		return
	}
	if ts.Before(t.span.Start) {
		t.span.Start = ts
	}
	if ts.After(t.span.End) {
		t.span.End = ts
	}
}

// Report ranks both tables once and annotates each row with its share of
// processed lines. top limits the rows per section; 0 keeps all of them.
func (t *Tally) Report(top int) model.Report {
	r := model.Report{
		Stats:    t.Lines,
		Keys:     t.ranked(t.Keys, top),
		Commands: t.ranked(t.Commands, top),
	}
	if t.hasSpan {
		span := t.span
		r.Span = &span
	}
	return r
}

func (t *Tally) ranked(c Counter, top int) []model.RankedItem {
	items := c.Rank()
	if top > 0 && len(items) > top {
		items = items[:top]
	}
	for i := range items {
		items[i].Percentage = Percentage(items[i].Count, t.Lines.LinesProcessed)
	}
	return items
}

// Percentage returns 100*count/total, or 0 when total is 0.
func Percentage(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
