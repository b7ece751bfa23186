// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM building blocks used to prepare sound effects
// for playback.
//
// This package contains:
//   - Source interface for streamed audio input
//   - Registry mapping file extensions to decoders
//   - Resampler for sample rate conversion
//   - ChannelMixer for channel count conversion
//   - Clip, fully decoded PCM kept in memory, and Render to build one
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders and processors implement Source so they can be chained.
//
// # Rendering a Clip
//
// Sound effects are decoded once and kept in memory so that starting a voice
// never touches the disk. Render converts any Source to the format of the
// output device:
//
//	clip, err := audio.Render(src, 48000, 2, 4096)
//	if err != nil {
//	    return err
//	}
//	pcm := clip.Bytes() // float32 little endian, interleaved
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.Lookup("sounds/laser.wav")
//
// Keys are file extensions and are matched case-insensitively, with or
// without the leading dot.
//
// # Sample Format
//
// Samples are float32 in the range [-1.0, 1.0], interleaved by channel.
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
