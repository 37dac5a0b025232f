package main

import (
	"context"
	"os"

	"github.com/tinytelemetry/faina/internal/logsource"
)

// NamedLogSource aliases the shared source abstraction to keep app-layer APIs explicit.
type NamedLogSource = logsource.LogSource

// InputSourcePlugin is a small plugin primitive for wiring log inputs.
type InputSourcePlugin interface {
	Name() string
	Enabled() bool
	Build(ctx context.Context) (NamedLogSource, error)
}

// InputPluginConfig defines runtime input selection.
type InputPluginConfig struct {
	Files       []string
	MaxLineSize int
}

// buildInputPlugins returns one plugin per input file, or the stdin plugin
// when no files were given. "-" selects stdin; repeats of it are ignored
// since stdin can only be read once.
func buildInputPlugins(cfg InputPluginConfig) []InputSourcePlugin {
	conf := logsource.Config{MaxLineSize: cfg.MaxLineSize}
	if len(cfg.Files) == 0 {
		return []InputSourcePlugin{stdinInputPlugin{conf: conf}}
	}
	plugins := make([]InputSourcePlugin, 0, len(cfg.Files))
	stdinSeen := false
	for _, path := range cfg.Files {
		if path == "-" {
			if !stdinSeen {
				plugins = append(plugins, stdinInputPlugin{conf: conf})
				stdinSeen = true
			}
			continue
		}
		plugins = append(plugins, fileInputPlugin{path: path, conf: conf})
	}
	return plugins
}

type fileInputPlugin struct {
	path string
	conf logsource.Config
}

func (p fileInputPlugin) Name() string { return "file:" + p.path }

func (p fileInputPlugin) Enabled() bool { return p.path != "" }

func (p fileInputPlugin) Build(ctx context.Context) (NamedLogSource, error) {
	return logsource.NewFileSource(ctx, p.path, p.conf)
}

type stdinInputPlugin struct {
	conf logsource.Config
}

func (p stdinInputPlugin) Name() string { return "stdin" }

func (p stdinInputPlugin) Enabled() bool { return true }

func (p stdinInputPlugin) Build(ctx context.Context) (NamedLogSource, error) {
	return logsource.NewStdinSource(ctx, p.conf), nil
}

// stdinIsTerminal reports whether stdin is attached to a terminal rather than a pipe or file.
func stdinIsTerminal() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
