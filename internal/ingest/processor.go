package ingest

import (
	"context"
	"strings"

	"github.com/tinytelemetry/faina/internal/logparse"
	"github.com/tinytelemetry/faina/internal/model"
	"github.com/tinytelemetry/faina/internal/resolve"
	"github.com/tinytelemetry/faina/internal/stats"
	"github.com/tinytelemetry/faina/internal/timestamp"
)

// Config selects how lines are parsed and which ones are counted.
type Config struct {
	Dialect         logparse.Dialect
	AggregateByPort bool
	IgnoredCommands IgnoredSet
}

// Processor is the aggregation engine: it matches monitor lines, filters
// ignored commands and counts commands and attributed keys.
// A Processor is not safe for concurrent use; see Pool.
type Processor struct {
	parser  logparse.Parser
	ignored IgnoredSet
	keys    *KeyFormatter
	tally   *stats.Tally
}

// NewProcessor creates a processor. The attributor is shared and may be
// used by several processors at once.
func NewProcessor(cfg Config, attributor resolve.Attributor) *Processor {
	return &Processor{
		parser:  logparse.NewParser(cfg.Dialect),
		ignored: cfg.IgnoredCommands,
		keys:    NewKeyFormatter(attributor, cfg.AggregateByPort),
		tally:   stats.NewTally(),
	}
}

// Name returns the dialect the processor parses.
func (p *Processor) Name() string { return p.parser.Dialect().String() }

// ProcessEnvelope processes one source-tagged line.
func (p *Processor) ProcessEnvelope(ctx context.Context, env model.IngestEnvelope) Outcome {
	return p.ProcessLine(ctx, env.Line)
}

// ProcessLine counts one raw line. Lines that match no grammar are counted
// as skipped unless they are the idle OK reply.
func (p *Processor) ProcessLine(ctx context.Context, line string) Outcome {
	p.tally.Lines.LinesProcessed++
	line = strings.TrimSpace(line)

	entry, ok := p.parser.Parse(line)
	if !ok {
		if logparse.IsIdle(line) {
			p.tally.Lines.LinesIdle++
			return OutcomeIdle
		}
		p.tally.Lines.LinesSkipped++
		return OutcomeSkipped
	}
	if ts, ok := timestamp.ParseMonitor(entry.Timestamp); ok {
		p.tally.Observe(ts)
	}
	return p.ProcessEntry(ctx, entry)
}

// ProcessEntry counts a parsed entry's command and, when present, its key.
func (p *Processor) ProcessEntry(ctx context.Context, entry model.Entry) Outcome {
	if p.ignored.Contains(entry.Command) {
		p.tally.Lines.LinesIgnored++
		return OutcomeIgnored
	}
	p.tally.Commands.Inc(entry.Command)
	if entry.HasKey() {
		p.tally.Keys.Inc(p.keys.Format(ctx, entry.Key, entry.Client, entry.Port))
	}
	return OutcomeCounted
}

// Tally returns the accumulated counters.
func (p *Processor) Tally() *stats.Tally {
	return p.tally
}
