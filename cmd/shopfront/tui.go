package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/shopfront/internal/audio"
	"github.com/jmylchreest/shopfront/internal/catalog"
	"github.com/jmylchreest/shopfront/internal/config"
	"github.com/jmylchreest/shopfront/internal/tui"
)

var tuiOpts struct {
	logFile string
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI browser",
	Long: `Launch the interactive terminal user interface for browsing products.

The TUI provides:
  - Scrollable list of products, newest first
  - Search, in-stock filter and sort order
  - Detail view with the full product record
  - Copy to clipboard as JSON or YAML
  - A typing indicator while products are loading
  - A notification sound when new products appear
  - Live reload of the config file

Key bindings:
  j/k, ↑/↓    Navigate list
  enter       View product details
  c / y       Copy as JSON / YAML
  /           Search products
  a           Toggle in stock only
  o           Cycle sort order
  r           Refresh from source
  n           Play notification sound
  ?           Show help
  q           Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().StringVar(&tuiOpts.logFile, "log-file", "",
		"Write logs to this file while the TUI runs (default: discarded)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	c := getConfig()
	if c.Catalog.Source == "stdin" {
		return errors.New("the TUI reads the keyboard from stdin; use the products command for the stdin source")
	}

	// The terminal belongs to the TUI, so logs go to a file or nowhere
	tuiLogger := slog.New(slog.DiscardHandler)
	if tuiOpts.logFile != "" {
		f, err := os.OpenFile(tuiOpts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		tuiLogger = newLogger(f, logLevel(c.Log.Level, globalOpts.verbose), c.Log.Format)
	}

	src, cleanup, err := newSource(cmd)
	if err != nil {
		return fmt.Errorf("failed to create source: %w", err)
	}
	defer cleanup()

	sound := audio.NewNotificationSound(tuiLogger,
		audio.WithURL(c.Audio.URL),
		audio.WithVolume(c.SoundVolume()),
	)
	defer func() { _ = sound.Close() }()

	configPath := globalOpts.configPath
	if configPath == "" {
		configPath = config.ConfigPath()
	}

	return tui.Run(tui.RunOptions{
		Config:     c,
		Fetcher:    catalog.NewFetcher(src, tuiLogger),
		Sound:      sound,
		Logger:     tuiLogger,
		ConfigPath: configPath,
	})
}
