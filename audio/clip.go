// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"
)

// maxEmptyReads bounds consecutive (0, nil) reads tolerated by Render.
const maxEmptyReads = 64

// Clip is fully decoded PCM held in memory.
// Samples are interleaved float32 values in [-1,1].
type Clip struct {
	SampleRate int
	Channels   int
	Samples    []float32
}

// Frames is the number of sample frames (samples per channel).
func (c *Clip) Frames() int {
	if c == nil || c.Channels == 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// Duration of the clip at its sample rate.
func (c *Clip) Duration() time.Duration {
	if c == nil || c.SampleRate == 0 {
		return 0
	}
	return time.Duration(c.Frames()) * time.Second / time.Duration(c.SampleRate)
}

// FrameSize is the size in bytes of one frame as returned by Bytes.
func (c *Clip) FrameSize() int {
	return c.Channels * 4
}

// Bytes encodes the samples as 32-bit float little endian.
func (c *Clip) Bytes() []byte {
	out := make([]byte, len(c.Samples)*4)
	for i, s := range c.Samples {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(s))
	}
	return out
}

// Render drains src into a Clip at the given sample rate and channel count.
//
// The pipeline is:
//  1. Resample to sampleRate using cubic interpolation (skipped when rates match)
//  2. Map channels with a ChannelMixer
//  3. Collect every sample until io.EOF
//
// src is not closed.
func Render(src Source, sampleRate, channels, bufferSize int) (*Clip, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, ErrInvalidClipFormat
	}
	if bufferSize <= 0 {
		bufferSize = 4096
	}

	var stage Source = src
	if src.SampleRate() != sampleRate {
		stage = NewResampler(stage, sampleRate)
	}
	stage = NewChannelMixer(stage, channels)

	// buffer must hold whole frames
	bufferSize -= bufferSize % channels
	if bufferSize == 0 {
		bufferSize = channels
	}
	buf := make([]float32, bufferSize)

	clip := &Clip{
		SampleRate: sampleRate,
		Channels:   channels,
		Samples:    make([]float32, 0, sampleRate*channels),
	}

	empty := 0
	for {
		n, err := stage.ReadSamples(buf)
		if n > 0 {
			clip.Samples = append(clip.Samples, buf[:n]...)
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		if n > 0 {
			empty = 0
			continue
		}

		empty++
		if empty > maxEmptyReads {
			// a source stuck on (0, nil) is treated as drained
			break
		}
	}

	// drop a trailing partial frame
	clip.Samples = clip.Samples[:len(clip.Samples)-len(clip.Samples)%channels]

	return clip, nil
}
