package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/shopfront/internal/adapter/input"
	"github.com/jmylchreest/shopfront/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		source     string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "shopfront",
	Short: "Terminal storefront for a hosted product catalog",
	Long: `shopfront browses the products table of a hosted Postgres database.

It lists products newest first, shows a typing indicator while a fetch is
in flight, and plays a notification sound when new products appear.

Running shopfront without a subcommand launches the interactive TUI.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if globalOpts.source != "" {
			cfg.Catalog.Source = globalOpts.source
		}

		// Log to stderr so stdout is clean for output
		logger = newLogger(cmd.ErrOrStderr(), logLevel(cfg.Log.Level, globalOpts.verbose), cfg.Log.Format)
		slog.SetDefault(logger)

		return nil
	},
	// Default to TUI when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/shopfront/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.source, "source", "",
		"Product source (postgres, stdin; default from config)")
}

// newLogger builds the slog logger: tint for text, slog's JSON handler for json.
func newLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	var handler slog.Handler

	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    !isTerminal(w),
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Value.Kind() == slog.KindAny {
					if _, ok := a.Value.Any().(error); ok {
						return tint.Attr(9, a)
					}
				}
				return a
			},
		})
	}

	return slog.New(handler)
}

// logLevel maps the configured level name; verbose forces debug.
func logLevel(name string, verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelWarn
	}
	return level
}

// isTerminal reports whether w is a character device.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// newSource creates the configured product source. The returned cleanup
// releases any connection pool the source opened.
func newSource(cmd *cobra.Command) (input.Source, func(), error) {
	name := cfg.Catalog.Source

	if name == "stdin" {
		return input.NewStdinSourceWithReader(cmd.InOrStdin()), func() {}, nil
	}

	src, err := input.NewSource(name, cfg)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	if c, ok := src.(interface{ Close() }); ok {
		cleanup = c.Close
	}
	return src, cleanup, nil
}

// getConfig returns the global config instance.
func getConfig() *config.Config {
	return cfg
}
