// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes WAV files on top of github.com/go-audio/wav.
//
// # Supported Formats
//
//   - Integer PCM at 8, 16, 24 and 32 bits
//   - Any channel count and sample rate
//   - Extra chunks (LIST, bext, smpl) before or after the fmt chunk
//
// # Decoding
//
//	file, _ := os.Open("laser.wav")
//	src, err := wav.Decoder{}.Decode(file)
//
// The decoder returns an audio.Source yielding float32 samples in [-1.0, 1.0].
// Readers that cannot seek are buffered in memory first.
//
// # Writing
//
//	file, _ := os.Create("tone.wav")
//	err := wav.WriteWAV16(file, 44100, 2, samples)
//
// The writer needs an io.WriteSeeker because the RIFF sizes are patched once
// all samples are written.
//
// # Errors
//
//   - ErrNotWavFile: the input is not a readable RIFF/WAVE file
//   - ErrOnlyPCMSupported: compressed or float WAV data
//   - ErrUnsupportedBitDepth: a PCM depth other than 8/16/24/32
//   - ErrUnsupportedWavChunks: no data chunk could be found
package wav
