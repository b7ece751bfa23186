// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"

	"github.com/ik5/sfxpbx/manifest"
	"github.com/ik5/sfxpbx/sfx"

	"github.com/spf13/cobra"
)

var bankCmd = &cobra.Command{
	Use:   "bank <manifest.yaml>",
	Short: "Preload a sound manifest and reload it when it changes",
	Long: `Loads every sound of the manifest, optionally plays some of them, then
watches the manifest and applies every change until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runBank,
}

func init() {
	bankCmd.Flags().StringSlice("play", nil, "ids to play once loaded")
	rootCmd.AddCommand(bankCmd)
}

func runBank(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()
	path := args[0]
	play, _ := cmd.Flags().GetStringSlice("play")

	m, err := manifest.Load(path)
	if err != nil {
		return err
	}

	dev, err := openDevice(ctx)
	if err != nil {
		return err
	}

	bank := sfx.NewBank(assetOptions(dev)...)
	defer func() { err = errors.Join(err, bank.Close()) }()

	if err := bank.Apply(ctx, m.Sounds()); err != nil {
		logger.Warn("manifest partially loaded", "error", err)
	}
	logger.Info("bank ready", "manifest", path, "sounds", bank.IDs())

	for _, id := range play {
		if err := bank.Play(id); err != nil {
			logger.Warn("play failed", "id", id, "error", err)
		}
	}

	w, err := manifest.NewWatcher(path)
	if err != nil {
		return err
	}
	defer w.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-w.Events:
			if !ok {
				return nil
			}
			reload(cmd, bank, path)
		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watching manifest", "error", werr)
		}
	}
}

func reload(cmd *cobra.Command, bank *sfx.Bank, path string) {
	m, err := manifest.Load(path)
	if err != nil {
		logger.Warn("manifest not reloaded", "error", err)
		return
	}

	if err := bank.Apply(cmd.Context(), m.Sounds()); err != nil {
		logger.Warn("manifest partially applied", "error", err)
	}
	logger.Info("manifest reloaded", "sounds", bank.IDs())
}
