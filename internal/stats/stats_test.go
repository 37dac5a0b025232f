package stats

import (
	"testing"
	"time"

	"github.com/tinytelemetry/faina/internal/model"
)

func TestCounterRank_DescendingByCount(t *testing.T) {
	t.Parallel()

	c := make(Counter)
	for i := 0; i < 3; i++ {
		c.Inc("GET")
	}
	c.Inc("SET")
	for i := 0; i < 7; i++ {
		c.Inc("HGET")
	}

	got := c.Rank()
	want := []string{"HGET", "GET", "SET"}
	if len(got) != len(want) {
		t.Fatalf("rank len = %d, want %d", len(got), len(want))
	}
	for i, label := range want {
		if got[i].Label != label {
			t.Errorf("rank[%d] = %q, want %q", i, got[i].Label, label)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].Count > got[i-1].Count {
			t.Errorf("rank not descending at %d: %d > %d", i, got[i].Count, got[i-1].Count)
		}
	}
}

func TestCounterRank_TiesOrderedByLabel(t *testing.T) {
	t.Parallel()

	c := Counter{"b": 2, "a": 2, "c": 2}
	got := c.Rank()
	for i, label := range []string{"a", "b", "c"} {
		if got[i].Label != label {
			t.Errorf("rank[%d] = %q, want %q", i, got[i].Label, label)
		}
	}
}

func TestCounterRank_Empty(t *testing.T) {
	t.Parallel()

	if got := make(Counter).Rank(); len(got) != 0 {
		t.Fatalf("rank of empty counter = %v, want empty", got)
	}
}

func TestTallyMerge(t *testing.T) {
	t.Parallel()

	a := NewTally()
	a.Commands.Inc("GET")
	a.Keys.Inc("foo#@localhost")
	a.Lines = model.RunStats{LinesProcessed: 3, LinesSkipped: 1, LinesIdle: 1}

	b := NewTally()
	b.Commands.Inc("GET")
	b.Commands.Inc("SET")
	b.Lines = model.RunStats{LinesProcessed: 4, LinesSkipped: 1, LinesIgnored: 1}

	a.Merge(b)
	a.Merge(nil)

	if a.Commands["GET"] != 2 || a.Commands["SET"] != 1 {
		t.Errorf("commands = %v, want GET=2 SET=1", a.Commands)
	}
	if a.Keys["foo#@localhost"] != 1 {
		t.Errorf("keys = %v", a.Keys)
	}
	want := model.RunStats{LinesProcessed: 7, LinesSkipped: 2, LinesIgnored: 1, LinesIdle: 1}
	if a.Lines != want {
		t.Errorf("lines = %+v, want %+v", a.Lines, want)
	}
}

func TestTallyReport(t *testing.T) {
	t.Parallel()

	tally := NewTally()
	tally.Lines.LinesProcessed = 8
	tally.Commands = Counter{"GET": 4, "SET": 2, "DEL": 1}
	tally.Keys = Counter{"a@h": 1}

	r := tally.Report(2)
	if len(r.Commands) != 2 {
		t.Fatalf("commands len = %d, want 2", len(r.Commands))
	}
	if r.Commands[0].Label != "GET" || r.Commands[0].Percentage != 50 {
		t.Errorf("commands[0] = %+v, want GET at 50%%", r.Commands[0])
	}
	if r.Commands[1].Percentage != 25 {
		t.Errorf("commands[1] percentage = %v, want 25", r.Commands[1].Percentage)
	}
	if r.Keys[0].Percentage != 12.5 {
		t.Errorf("keys[0] percentage = %v, want 12.5", r.Keys[0].Percentage)
	}

	if all := tally.Report(0); len(all.Commands) != 3 {
		t.Errorf("unlimited report commands = %d, want 3", len(all.Commands))
	}
}

func TestPercentage(t *testing.T) {
	t.Parallel()

	if got := Percentage(1, 0); got != 0 {
		t.Errorf("Percentage(1, 0) = %v, want 0", got)
	}
	if got := Percentage(1, 3); got < 33.33 || got > 33.34 {
		t.Errorf("Percentage(1, 3) = %v, want ~33.33", got)
	}
}

func TestTallyObserveAndMergeSpan(t *testing.T) {
	t.Parallel()

	base := time.Unix(1700000000, 0).UTC()

	a := NewTally()
	if a.Report(0).Span != nil {
		t.Fatal("span should be nil before any timestamp is observed")
	}
	a.Observe(base.Add(5 * time.Second))
	a.Observe(base.Add(2 * time.Second))

	b := NewTally()
	b.Observe(base.Add(9 * time.Second))

	a.Merge(b)
	a.Merge(NewTally())

	span := a.Report(0).Span
	if span == nil {
		t.Fatal("expected span")
	}
	if !span.Start.Equal(base.Add(2*time.Second)) || !span.End.Equal(base.Add(9*time.Second)) {
		t.Errorf("span = %v..%v", span.Start, span.End)
	}
	if span.Duration() != 7*time.Second {
		t.Errorf("duration = %s, want 7s", span.Duration())
	}
}
