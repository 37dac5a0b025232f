package ingest

import (
	"context"

	"github.com/tinytelemetry/faina/internal/model"
)

// EnvelopeProcessor consumes source-tagged monitor lines.
type EnvelopeProcessor interface {
	Name() string
	ProcessEnvelope(ctx context.Context, env model.IngestEnvelope) Outcome
}

// Outcome classifies what happened to one input line.
type Outcome int

const (
	// OutcomeCounted means the command (and key, if any) was counted.
	OutcomeCounted Outcome = iota
	// OutcomeIgnored means the line matched but its command is in the ignored set.
	OutcomeIgnored
	// OutcomeIdle means the line was the bare OK reply.
	OutcomeIdle
	// OutcomeSkipped means the line matched no grammar.
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCounted:
		return "counted"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeIdle:
		return "idle"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}
