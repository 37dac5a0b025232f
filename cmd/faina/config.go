package main

import (
	"time"

	"github.com/tinytelemetry/faina/internal/logparse"
	"github.com/tinytelemetry/faina/internal/logsource"
	"github.com/tinytelemetry/faina/internal/model"
	"github.com/tinytelemetry/faina/internal/report"
)

const (
	defaultRedisVersion     = model.DefaultRedisVersion
	defaultResolveCacheSize = model.DefaultResolveCacheSize
	defaultWorkers          = model.DefaultWorkers
	defaultFormat           = model.DefaultFormat
	defaultMaxLineSize      = logsource.DefaultMaxLineSize
	defaultMuxBufferSize    = DefaultMuxBuffer
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	RedisVersion     string        `mapstructure:"redis-version"`
	WithPort         bool          `mapstructure:"with-port"`
	IgnoredCommands  string        `mapstructure:"ignored-commands"`
	Resolve          bool          `mapstructure:"resolve"`
	ResolveTimeout   time.Duration `mapstructure:"resolve-timeout"`
	ResolveCacheSize int           `mapstructure:"resolve-cache-size"`
	Top              int           `mapstructure:"top"`
	Format           string        `mapstructure:"format"`
	Workers          int           `mapstructure:"workers"`
	Summary          bool          `mapstructure:"summary"`
	Verbose          bool          `mapstructure:"verbose"`
	MaxLineSize      int           `mapstructure:"max-line-size"`
	MuxBufferSize    int           `mapstructure:"mux-buffer-size"`

	Inputs      []string `mapstructure:"-"` // positional arguments
	ShowVersion bool     `mapstructure:"-"`
	ConfigPath  string   `mapstructure:"-"` // not from config file

	dialect      logparse.Dialect
	outputFormat report.Format
}
