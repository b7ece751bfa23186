// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"time"

	"github.com/ik5/sfxpbx/sfx"

	"github.com/spf13/cobra"
)

var fadeCmd = &cobra.Command{
	Use:   "fade <file>",
	Short: "Fade a looping sound in, hold it, then fade it out",
	Args:  cobra.ExactArgs(1),
	RunE:  runFade,
}

func init() {
	fadeCmd.Flags().Duration("in", time.Second, "fade in length")
	fadeCmd.Flags().Duration("hold", 2*time.Second, "time at full volume")
	fadeCmd.Flags().Duration("out", time.Second, "fade out length")
	fadeCmd.Flags().Float64("step", 0.05, "volume change per fade step")
	fadeCmd.Flags().Float64("volume", 1, "volume reached by the fade in")
	rootCmd.AddCommand(fadeCmd)
}

func runFade(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	in, _ := cmd.Flags().GetDuration("in")
	hold, _ := cmd.Flags().GetDuration("hold")
	out, _ := cmd.Flags().GetDuration("out")
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

	if err := asset.FadeIn(int(in.Milliseconds()), step); err != nil {
		return errors.Join(err, asset.Unload())
	}
	if err := waitState(ctx, asset, sfx.StatePlaying, in+time.Second); err != nil {
		return errors.Join(err, asset.Unload())
	}
	logger.Info("faded in", "file", args[0], "volume", asset.Volume())

	sleep(ctx, hold)
	if ctx.Err() != nil {
		return asset.Unload()
	}

	if err := asset.FadeOut(int(out.Milliseconds()), step); err != nil {
		return errors.Join(err, asset.Unload())
	}
	waitErr := waitState(ctx, asset, sfx.StateIdle, out+time.Second)
	return errors.Join(waitErr, asset.Unload())
}
