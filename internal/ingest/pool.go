package ingest

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/faina/internal/model"
	"github.com/tinytelemetry/faina/internal/resolve"
	"github.com/tinytelemetry/faina/internal/stats"
)

// Pool runs one Processor per worker over a shared line channel and merges
// their tallies once the input is drained. Counts are exact; only the order
// in which lines are seen differs from a single worker.
type Pool struct {
	processors []*Processor
}

// NewPool creates a pool with the given number of workers (at least one).
func NewPool(cfg Config, attributor resolve.Attributor, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	processors := make([]*Processor, workers)
	for i := range processors {
		processors[i] = NewProcessor(cfg, attributor)
	}
	return &Pool{processors: processors}
}

// Workers returns the number of processors in the pool.
func (p *Pool) Workers() int { return len(p.processors) }

// Run consumes lines until the channel closes or ctx is done, then returns
// the merged tally. On cancellation the tally of everything consumed so far
// is returned together with the context error.
func (p *Pool) Run(ctx context.Context, lines <-chan model.IngestEnvelope) (*stats.Tally, error) {
	g, gctx := errgroup.WithContext(ctx)
	for _, proc := range p.processors {
		proc := proc
		g.Go(func() error {
			return consume(gctx, proc, lines)
		})
	}
	err := g.Wait()

	merged := stats.NewTally()
	for _, proc := range p.processors {
		merged.Merge(proc.Tally())
	}
	if len(p.processors) > 1 {
		log.Printf("ingest: merged tallies from %d workers (%d lines)", len(p.processors), merged.Lines.LinesProcessed)
	}
	return merged, err
}

func consume(ctx context.Context, proc EnvelopeProcessor, lines <-chan model.IngestEnvelope) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case env, ok := <-lines:
			if !ok {
				return nil
			}
			proc.ProcessEnvelope(ctx, env)
		}
	}
}
