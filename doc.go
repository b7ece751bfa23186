// SPDX-License-Identifier: EPL-2.0

// Package sfxpbx plays short sound effects with low latency.
//
// Sounds are decoded once into memory and converted to the format of the
// output device, so starting a voice never touches the disk. Each loaded
// sound owns a fixed number of voices that are reused round-robin, which
// lets the same effect overlap itself.
//
// # Layout
//
//   - audio: Source interface, resampler, channel mixer and in-memory clips
//   - formats/wav, formats/mp3, formats/vorbis, formats/aiff: decoders
//   - formats: a registry with every built-in decoder
//   - output, output/oto: the playback device abstraction and its oto backend
//   - sfx: Asset (one sound with its voices and fades) and Bank (assets by id)
//   - manifest: YAML description of a bank with a file watcher
//   - cmd/sfxplay: command line player
//
// # Quick Start
//
//	dev, err := oto.NewDevice(ctx, oto.Options{SampleRate: 48000, Channels: 2})
//	if err != nil {
//	    return err
//	}
//
//	laser, err := sfx.Load("sounds/laser.wav", 4, 0.8, sfx.WithDevice(dev))
//	if err != nil {
//	    return err
//	}
//	defer laser.Unload()
//
//	laser.Play()
//	laser.FadeOut(500, 0.05)
//
// DecodeFile is the lower level entry point used by sfx to turn a file into
// a Clip.
package sfxpbx
