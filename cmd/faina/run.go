package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/tinytelemetry/faina/internal/ingest"
	"github.com/tinytelemetry/faina/internal/report"
	"github.com/tinytelemetry/faina/internal/resolve"
)

// runAnalysis reads every configured input once, aggregates it and writes the
// report to stdout. base answers reverse lookups when resolution is enabled.
func runAnalysis(ctx context.Context, cfg appConfig, base resolve.Resolver, stdout, stderr io.Writer) error {
	cleanupLogger := configureRuntimeLogger(cfg.Verbose, stderr)
	defer cleanupLogger()

	var (
		attributor resolve.Attributor = resolve.RawIP{}
		cache      *resolve.CachingResolver
	)
	if cfg.Resolve {
		var err error
		cache, err = resolve.NewCachingResolver(base, resolve.Config{
			CacheSize: cfg.ResolveCacheSize,
			Timeout:   cfg.ResolveTimeout,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize resolver: %w", err)
		}
		attributor = cache
	}

	plugins := buildInputPlugins(InputPluginConfig{
		Files:       cfg.Inputs,
		MaxLineSize: cfg.MaxLineSize,
	})

	sources := make([]NamedLogSource, 0, len(plugins))
	for _, plugin := range plugins {
		if !plugin.Enabled() {
			continue
		}
		src, err := plugin.Build(ctx)
		if err != nil {
			for _, s := range sources {
				s.Stop()
			}
			return fmt.Errorf("initializing input %q: %w", plugin.Name(), err)
		}
		sources = append(sources, src)
	}
	if len(cfg.Inputs) == 0 && stdinIsTerminal() {
		fmt.Fprintln(stderr, "faina: reading MONITOR output from the terminal, press Ctrl+D to finish")
	}

	mux := NewSourceMultiplexer(ctx, sources, cfg.MuxBufferSize)
	mux.Start()
	defer mux.Stop()

	pool := ingest.NewPool(ingest.Config{
		Dialect:         cfg.dialect,
		AggregateByPort: cfg.WithPort,
		IgnoredCommands: ingest.ParseIgnoredCommands(cfg.IgnoredCommands),
	}, attributor, cfg.Workers)
	log.Printf("faina: %s dialect, %d worker(s), sources %v", cfg.dialect, pool.Workers(), mux.SourceNames())

	start := time.Now()
	tally, err := pool.Run(ctx, mux.Lines())
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			return fmt.Errorf("processing input: %w", err)
		}
		log.Printf("faina: interrupted after %d lines, reporting partial results", tally.Lines.LinesProcessed)
	}
	elapsed := time.Since(start)

	r := tally.Report(cfg.Top)
	if err := report.Write(stdout, cfg.outputFormat, r); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	log.Printf("faina: %d lines processed, %d skipped in %s", r.Stats.LinesProcessed, r.Stats.LinesSkipped, elapsed)

	if cfg.Summary {
		info := report.SummaryInfo{
			Inputs:  inputLines(mux.Counts()),
			Dialect: cfg.dialect.String(),
			Workers: pool.Workers(),
			Elapsed: elapsed,
		}
		if cache != nil {
			stats := cache.Stats()
			info.Resolver = &stats
		}
		if err := report.WriteSummary(stderr, r, info); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}
	return nil
}

func inputLines(counts []InputCount) []report.InputLines {
	out := make([]report.InputLines, len(counts))
	for i, c := range counts {
		out[i] = report.InputLines{Name: c.Name, Lines: c.Lines}
	}
	return out
}

// configureRuntimeLogger routes the standard logger to w when verbose and
// discards it otherwise, so stdout only ever carries the report.
func configureRuntimeLogger(verbose bool, w io.Writer) func() {
	prevFlags, prevOut := log.Flags(), log.Writer()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if verbose {
		log.SetOutput(w)
	} else {
		log.SetOutput(io.Discard)
	}
	return func() {
		log.SetFlags(prevFlags)
		log.SetOutput(prevOut)
	}
}
