package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/shopfront/internal/audio"
)

var soundOpts struct {
	url     string
	volume  int
	timeout time.Duration
}

var soundCmd = &cobra.Command{
	Use:   "sound",
	Short: "Play the notification sound once",
	Long: `Play the new-product notification sound and wait for it to finish.

Playback failures (no audio device, unreachable URL) are logged and do not
change the exit status.

Examples:
  shopfront sound
  shopfront sound --volume 80
  shopfront sound --url https://example.com/ding.mp3`,
	Args: cobra.NoArgs,
	RunE: runSound,
}

func init() {
	rootCmd.AddCommand(soundCmd)

	soundCmd.Flags().StringVar(&soundOpts.url, "url", "",
		"Sound URL (default from config)")
	soundCmd.Flags().IntVar(&soundOpts.volume, "volume", -1,
		"Volume 0-100 (default from config)")
	soundCmd.Flags().DurationVar(&soundOpts.timeout, "timeout", 15*time.Second,
		"Maximum time to wait for playback")
}

func runSound(cmd *cobra.Command, args []string) error {
	volume := getConfig().SoundVolume()
	if soundOpts.volume >= 0 {
		if soundOpts.volume > 100 {
			return fmt.Errorf("volume must be between 0 and 100, got %d", soundOpts.volume)
		}
		volume = float64(soundOpts.volume) / 100.0
	}

	url := soundOpts.url
	if url == "" {
		url = getConfig().Audio.URL
	}

	sound := audio.NewNotificationSound(logger,
		audio.WithURL(url),
		audio.WithVolume(volume),
	)
	defer func() {
		if err := sound.Close(); err != nil {
			logger.Warn("failed to release audio", "error", err)
		}
	}()

	sound.Play()

	ctx, cancel := context.WithTimeout(context.Background(), soundOpts.timeout)
	defer cancel()

	if err := sound.Drain(ctx); err != nil {
		logger.Warn("playback did not finish", "error", err)
	}
	return nil
}
