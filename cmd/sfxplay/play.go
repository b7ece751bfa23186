// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"

	"github.com/ik5/sfxpbx/sfx"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Play a sound once",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().Float64("volume", 1, "volume between 0 and 1")
	playCmd.Flags().Int("times", 1, "how many overlapping plays to start")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	volume, _ := cmd.Flags().GetFloat64("volume")
	times, _ := cmd.Flags().GetInt("times")
	times = max(times, 1)

	dev, err := openDevice(ctx)
	if err != nil {
		return err
	}

	finished := make(chan struct{}, times)
	asset, err := sfx.Load(args[0], times, volume, assetOptions(dev,
		sfx.WithOnFinished(func(*sfx.Asset) { finished <- struct{}{} }),
	)...)
	if err != nil {
		return err
	}

	for range times {
		if err := asset.Play(); err != nil {
			return errors.Join(err, asset.Unload())
		}
	}

	for range times {
		select {
		case <-finished:
		case <-ctx.Done():
			return asset.Unload()
		}
	}

	// the device still holds the tail of the clip
	sleep(ctx, cfg.Buffer)
	return asset.Unload()
}
