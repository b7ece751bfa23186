// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"os"

	"github.com/ik5/sfxpbx"
	"github.com/ik5/sfxpbx/formats/wav"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <in> <out.wav>",
	Short: "Write a sound as it would be sent to the device",
	Long: `Decodes a sound, converts it to the configured sample rate and channel
count and writes the result as 16-bit WAV. No audio device is opened.`,
	Args: cobra.ExactArgs(2),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) (err error) {
	clip, err := sfxpbx.DecodeFile(nil, args[0], cfg.SampleRate, cfg.Channels)
	if err != nil {
		return err
	}

	f, err := os.Create(args[1])
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	if err := wav.WriteClip(f, clip); err != nil {
		return err
	}

	logger.Info("rendered",
		"in", args[0],
		"out", args[1],
		"duration", clip.Duration(),
		"sample_rate", clip.SampleRate,
		"channels", clip.Channels)
	return nil
}
