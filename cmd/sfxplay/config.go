// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/ik5/sfxpbx/output"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/viper"
)

const envPrefix = "SFX"

// Config of the audio device and the program.
type Config struct {
	SampleRate int
	Channels   int
	Buffer     time.Duration
	CacheDir   string
	LogLevel   slog.Level
}

// newViper reads SFX_* variables, e.g. SFX_SAMPLE_RATE for --sample-rate.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func configFrom(v *viper.Viper) (Config, error) {
	cfg := Config{
		SampleRate: v.GetInt("sample-rate"),
		Channels:   v.GetInt("channels"),
		Buffer:     v.GetDuration("buffer"),
		CacheDir:   v.GetString("cache-dir"),
	}

	format := output.Format{SampleRate: cfg.SampleRate, Channels: cfg.Channels}
	if err := format.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("log-level"))); err != nil {
		return Config{}, fmt.Errorf("config: log level: %w", err)
	}

	return cfg, nil
}

// loadDotEnv exports the variables of path. A missing file is not an error.
// Variables already set in the environment win.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}))
}
