package model

import "time"

// Entry is one command extracted from a matched monitor line.
// Command is always set; the remaining optional fields are empty when absent.
type Entry struct {
	Timestamp string
	DB        int
	HasDB     bool
	Client    string
	Port      string
	Command   string
	Key       string
	Args      string
}

// HasKey reports whether the line carried a key argument.
func (e Entry) HasKey() bool { return e.Key != "" }

// RankedItem is a label/count pair in a ranked section.
type RankedItem struct {
	Label      string  `json:"label" yaml:"label"`
	Count      int64   `json:"count" yaml:"count"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// RunStats holds the line counters of one run.
type RunStats struct {
	LinesProcessed int64 `json:"lines_processed" yaml:"lines_processed"`
	LinesSkipped   int64 `json:"lines_skipped" yaml:"lines_skipped"`
	LinesIgnored   int64 `json:"lines_ignored" yaml:"lines_ignored"`
	LinesIdle      int64 `json:"lines_idle" yaml:"lines_idle"`
}

// Report is the ranked, immutable result of a run.
type Report struct {
	Stats    RunStats     `json:"overall" yaml:"overall"`
	Keys     []RankedItem `json:"top_keys" yaml:"top_keys"`
	Commands []RankedItem `json:"top_commands" yaml:"top_commands"`
	Span     *TimeSpan    `json:"span,omitempty" yaml:"span,omitempty"`
}

// TimeSpan is the range of monitor timestamps seen in a run.
type TimeSpan struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// Duration returns End - Start.
func (s TimeSpan) Duration() time.Duration { return s.End.Sub(s.Start) }
