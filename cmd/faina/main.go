package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tinytelemetry/faina/internal/logparse"
	"github.com/tinytelemetry/faina/internal/report"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if cfg.ShowVersion {
		fmt.Printf("faina - Redis MONITOR analyzer\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nStopping input, reporting what was read... (press Ctrl+C again to force)")
		cancel()
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nForce shutdown.")
		os.Exit(1)
	}()

	if err := runAnalysis(ctx, cfg, net.DefaultResolver, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("faina", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: faina [flags] [monitor.log ...]\n\n")
		fmt.Fprintf(os.Stderr, "Reads redis MONITOR output from the given files, or stdin, and reports\n")
		fmt.Fprintf(os.Stderr, "the most frequent commands and keys.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	fs.String("config", "", "config file (default is $HOME/.config/faina/config.yml)")
	fs.Bool("version", false, "print version information")
	fs.String("redis-version", defaultRedisVersion, "version of the monitored server; 2.6 selects the server log format, anything else the proxy format")
	fs.Bool("with-port", false, "aggregate keys by client host and port instead of host only")
	fs.String("ignored-commands", "", "comma-separated commands not to count, e.g. PING,INFO,SLOWLOG")
	fs.Bool("resolve", true, "attribute keys to reverse-DNS host names (false uses client addresses)")
	fs.Duration("resolve-timeout", 0, "timeout for each reverse lookup (0 = none)")
	fs.Int("resolve-cache-size", defaultResolveCacheSize, "number of client addresses kept in the host cache")
	fs.Int("top", 0, "rows per ranked section (0 = all)")
	fs.String("format", defaultFormat, "report format: text, json or yaml")
	fs.Int("workers", defaultWorkers, "parallel parsing workers")
	fs.Bool("summary", false, "print a run summary to stderr")
	fs.Bool("verbose", false, "write runtime logs to stderr")
	fs.Int("max-line-size", defaultMaxLineSize, "maximum input line size in bytes")
	return fs
}

func loadConfig(args []string) (appConfig, error) {
	var cfg appConfig

	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	v := viper.New()
	v.SetEnvPrefix("FAINA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("redis-version", defaultRedisVersion)
	v.SetDefault("with-port", false)
	v.SetDefault("ignored-commands", "")
	v.SetDefault("resolve", true)
	v.SetDefault("resolve-timeout", "0s")
	v.SetDefault("resolve-cache-size", defaultResolveCacheSize)
	v.SetDefault("top", 0)
	v.SetDefault("format", defaultFormat)
	v.SetDefault("workers", defaultWorkers)
	v.SetDefault("summary", false)
	v.SetDefault("verbose", false)
	v.SetDefault("max-line-size", defaultMaxLineSize)
	v.SetDefault("mux-buffer-size", defaultMuxBufferSize)

	if err := v.BindPFlags(fs); err != nil {
		return cfg, fmt.Errorf("binding flags: %w", err)
	}

	configPath, _ := fs.GetString("config")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		v.SetConfigFile(filepath.Join(home, ".config", "faina", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()
	cfg.ShowVersion, _ = fs.GetBool("version")
	cfg.Inputs = fs.Args()

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg *appConfig) validate() error {
	dialect, err := logparse.ParseDialect(cfg.RedisVersion)
	if err != nil {
		return err
	}
	cfg.dialect = dialect

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	cfg.outputFormat = format

	if cfg.Workers < 1 {
		return fmt.Errorf("invalid workers: %d", cfg.Workers)
	}
	if cfg.Top < 0 {
		return fmt.Errorf("invalid top: %d", cfg.Top)
	}
	if cfg.ResolveTimeout < 0 {
		return fmt.Errorf("invalid resolve-timeout: %s", cfg.ResolveTimeout)
	}
	if cfg.ResolveCacheSize <= 0 {
		return fmt.Errorf("invalid resolve-cache-size: %d", cfg.ResolveCacheSize)
	}
	if cfg.MaxLineSize <= 0 {
		return fmt.Errorf("invalid max-line-size: %d", cfg.MaxLineSize)
	}
	return nil
}
