package main

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"github.com/tinytelemetry/faina/internal/model"
)

// DefaultMuxBuffer is the default channel buffer size for the source multiplexer.
const DefaultMuxBuffer = 50_000

// InputCount is the number of lines one source contributed to a run.
type InputCount struct {
	Name  string
	Lines int64
}

type muxInput struct {
	src   NamedLogSource
	lines atomic.Int64
}

// SourceMultiplexer fans the lines of every input into one stream and
// counts what each input delivered. Lines, empty ones included, are
// forwarded unchanged and in order per source.
type SourceMultiplexer struct {
	ctx    context.Context
	cancel context.CancelFunc

	inputs []*muxInput
	out    chan model.IngestEnvelope

	startOnce sync.Once
	stopOnce  sync.Once
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewSourceMultiplexer creates a multiplexer over sources with the given output buffer.
func NewSourceMultiplexer(parent context.Context, sources []NamedLogSource, buffer int) *SourceMultiplexer {
	if buffer <= 0 {
		buffer = DefaultMuxBuffer
	}
	inputs := make([]*muxInput, len(sources))
	for i, src := range sources {
		inputs[i] = &muxInput{src: src}
	}
	ctx, cancel := context.WithCancel(parent)
	return &SourceMultiplexer{
		ctx:    ctx,
		cancel: cancel,
		inputs: inputs,
		out:    make(chan model.IngestEnvelope, buffer),
	}
}

// Start begins forwarding. The output closes once every source is drained.
func (m *SourceMultiplexer) Start() {
	m.startOnce.Do(func() {
		m.wg.Add(len(m.inputs))
		for _, in := range m.inputs {
			go m.drain(in)
		}
		go func() {
			m.wg.Wait()
			m.close()
		}()
	})
}

// Stop cancels forwarding and stops every source.
func (m *SourceMultiplexer) Stop() {
	m.stopOnce.Do(func() {
		m.cancel()
		for _, in := range m.inputs {
			in.src.Stop()
		}
		m.wg.Wait()
		m.close()
	})
}

// Lines returns the merged stream.
func (m *SourceMultiplexer) Lines() <-chan model.IngestEnvelope {
	return m.out
}

// SourceNames returns the names of the merged sources in input order.
func (m *SourceMultiplexer) SourceNames() []string {
	names := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		names[i] = in.src.Name()
	}
	return names
}

// Counts returns the lines forwarded so far per source, in input order.
func (m *SourceMultiplexer) Counts() []InputCount {
	counts := make([]InputCount, len(m.inputs))
	for i, in := range m.inputs {
		counts[i] = InputCount{Name: in.src.Name(), Lines: in.lines.Load()}
	}
	return counts
}

func (m *SourceMultiplexer) drain(in *muxInput) {
	defer m.wg.Done()

	src := in.src.Lines()
	for {
		var env model.IngestEnvelope
		var ok bool
		select {
		case <-m.ctx.Done():
			return
		case env, ok = <-src:
		}
		if !ok {
			log.Printf("mux: %s drained after %d lines", in.src.Name(), in.lines.Load())
			return
		}
		select {
		case m.out <- env:
			in.lines.Add(1)
		case <-m.ctx.Done():
			return
		}
	}
}

func (m *SourceMultiplexer) close() {
	m.closeOnce.Do(func() {
		close(m.out)
	})
}
