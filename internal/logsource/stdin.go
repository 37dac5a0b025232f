package logsource

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"os"

	"github.com/tinytelemetry/faina/internal/model"
)

const (
	// DefaultBuffer is the default channel buffer size for source lines.
	DefaultBuffer = 50_000

	// DefaultMaxLineSize is the default maximum size (in bytes) of a single line.
	// Longer lines are forwarded empty so they count as skipped.
	DefaultMaxLineSize = 1024 * 1024 // 1MB
)

// Config holds tunable parameters for reader-backed sources.
type Config struct {
	BufferSize  int
	MaxLineSize int
}

func (c Config) withDefaults() Config {
	if c.BufferSize <= 0 {
		c.BufferSize = DefaultBuffer
	}
	if c.MaxLineSize <= 0 {
		c.MaxLineSize = DefaultMaxLineSize
	}
	return c
}

// readerSource streams lines from an io.Reader in a background goroutine.
// Empty lines are forwarded: they still count as processed input.
type readerSource struct {
	name   string
	ch     chan model.IngestEnvelope
	cancel context.CancelFunc
	closer io.Closer
}

func newReaderSource(ctx context.Context, name string, r io.Reader, closer io.Closer, conf Config) *readerSource {
	conf = conf.withDefaults()
	ctx, cancel := context.WithCancel(ctx)
	s := &readerSource{
		name:   name,
		ch:     make(chan model.IngestEnvelope, conf.BufferSize),
		cancel: cancel,
		closer: closer,
	}
	go s.read(ctx, r, conf.MaxLineSize)
	return s
}

func (s *readerSource) read(ctx context.Context, r io.Reader, maxLineSize int) {
	defer close(s.ch)
	if s.closer != nil {
		defer func() { _ = s.closer.Close() }()
	}

	br := bufio.NewReaderSize(r, maxLineSize+1)

	// Use a single goroutine for blocking reads with a done channel to
	// detect context cancellation without spawning a goroutine per line.
	results := make(chan string)
	go func() {
		defer close(results)
		for {
			line, oversized, err := readLine(br)
			if err != nil {
				if !errors.Is(err, io.EOF) {
					log.Printf("logsource: %s read error: %v", s.name, err)
				}
				return
			}
			if oversized {
				log.Printf("logsource: %s line exceeded max size (%d bytes), counting it as skipped", s.name, maxLineSize)
			}
			select {
			case results <- line:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-results:
			if !ok {
				return
			}
			select {
			case s.ch <- model.IngestEnvelope{Source: s.name, Line: line}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// readLine returns the next line without its line ending. A line that does
// not fit the reader's buffer is consumed up to its newline and returned
// empty with oversized set, so it reads as an unmatched line downstream.
// A final line without a newline is returned as is; io.EOF follows it.
func readLine(br *bufio.Reader) (line string, oversized bool, err error) {
	b, err := br.ReadSlice('\n')
	if errors.Is(err, bufio.ErrBufferFull) {
		for errors.Is(err, bufio.ErrBufferFull) {
			_, err = br.ReadSlice('\n')
		}
		if errors.Is(err, io.EOF) {
			err = nil
		}
		return "", true, err
	}
	if err != nil && !(errors.Is(err, io.EOF) && len(b) > 0) {
		return "", false, err
	}
	b = bytes.TrimSuffix(b, []byte{'\n'})
	b = bytes.TrimSuffix(b, []byte{'\r'})
	return string(b), false, nil
}

func (s *readerSource) Lines() <-chan model.IngestEnvelope { return s.ch }
func (s *readerSource) Stop()                              { s.cancel() }
func (s *readerSource) Name() string                       { return s.name }

// StdinSource reads monitor lines from stdin.
type StdinSource struct {
	*readerSource
}

// NewStdinSource creates a StdinSource that reads from stdin in a background goroutine.
func NewStdinSource(ctx context.Context, conf ...Config) *StdinSource {
	return newStdinSourceWithReader(ctx, os.Stdin, conf...)
}

func newStdinSourceWithReader(ctx context.Context, r io.Reader, conf ...Config) *StdinSource {
	var c Config
	if len(conf) > 0 {
		c = conf[0]
	}
	return &StdinSource{readerSource: newReaderSource(ctx, "stdin", r, nil, c)}
}
