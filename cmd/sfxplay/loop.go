// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"time"

	"github.com/ik5/sfxpbx/sfx"

	"github.com/spf13/cobra"
)

var loopCmd = &cobra.Command{
	Use:   "loop <file>",
	Short: "Loop a sound, then fade it out",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoop,
}

func init() {
	loopCmd.Flags().Duration("for", 5*time.Second, "how long to loop")
	loopCmd.Flags().Duration("fade-out", 500*time.Millisecond, "fade out length, 0 stops at once")
	loopCmd.Flags().Float64("step", 0.05, "volume change per fade step")
	loopCmd.Flags().Float64("volume", 1, "volume between 0 and 1")
	rootCmd.AddCommand(loopCmd)
}

func runLoop(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	length, _ := cmd.Flags().GetDuration("for")
	fadeOut, _ := cmd.Flags().GetDuration("fade-out")
	step, _ := cmd.Flags().GetFloat64("step")
	volume, _ := cmd.Flags().GetFloat64("volume")

	dev, err := openDevice(ctx)
	if err != nil {
		return err
	}

	asset, err := sfx.Load(args[0], 1, volume, assetOptions(dev)...)
	if err != nil {
		return err
	}

	if err := asset.Loop(); err != nil {
		return errors.Join(err, asset.Unload())
	}
	logger.Info("looping", "file", args[0], "for", length)

	sleep(ctx, length)
	if ctx.Err() != nil {
		return asset.Unload()
	}

	if err := asset.FadeOut(int(fadeOut.Milliseconds()), step); err != nil {
		return errors.Join(err, asset.Unload())
	}
	waitErr := waitState(ctx, asset, sfx.StateIdle, fadeOut+time.Second)
	return errors.Join(waitErr, asset.Unload())
}
