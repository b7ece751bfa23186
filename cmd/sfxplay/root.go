// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ik5/sfxpbx/output/oto"
	"github.com/ik5/sfxpbx/sfx"

	"github.com/spf13/cobra"
)

var (
	settings = newViper()
	cfg      Config
	logger   = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "sfxplay",
	Short: "Play sound effects with low latency",
	Long: `sfxplay decodes sounds into memory and plays them on the default audio
device. Settings come from flags, SFX_* environment variables or a .env file.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Int("sample-rate", 48000, "device sample rate in Hz")
	flags.Int("channels", 2, "device channels (1 or 2)")
	flags.Duration("buffer", oto.DefaultBufferSize, "device buffer length")
	flags.String("cache-dir", "", "directory for downloaded sounds")
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.String("env-file", ".env", "dotenv file to load")
}

func setup(cmd *cobra.Command, args []string) error {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return err
	}
	if err := loadDotEnv(envFile); err != nil {
		return err
	}

	if err := settings.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	cfg, err = configFrom(settings)
	if err != nil {
		return err
	}

	logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	return nil
}

func openDevice(ctx context.Context) (*oto.Device, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	dev, err := oto.NewDevice(ctx, oto.Options{
		SampleRate: cfg.SampleRate,
		Channels:   cfg.Channels,
		BufferSize: cfg.Buffer,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("audio device ready",
		"sample_rate", cfg.SampleRate,
		"channels", cfg.Channels,
		"buffer", cfg.Buffer)
	return dev, nil
}

func assetOptions(dev *oto.Device, extra ...sfx.Option) []sfx.Option {
	return append([]sfx.Option{
		sfx.WithDevice(dev),
		sfx.WithLogger(logger),
		sfx.WithCacheDir(cfg.CacheDir),
	}, extra...)
}

// waitState polls a until it reaches want, ctx is done or timeout passes.
func waitState(ctx context.Context, a *sfx.Asset, want sfx.State, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for a.State() != want {
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %s: %w", want, ctx.Err())
		case <-ticker.C:
		}
	}
	return nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
