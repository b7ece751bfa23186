// SPDX-License-Identifier: EPL-2.0

// Package output defines the playback device that voices are attached to.
//
// A Device hands out one Player per voice. Every player streams 32-bit float
// little endian PCM, interleaved, in the Format reported by the device.
package output

import (
	"errors"
	"io"
)

var ErrInvalidFormat = errors.New("output format must have a positive sample rate and 1 or 2 channels")

// Format of the PCM accepted by a Device.
type Format struct {
	SampleRate int
	Channels   int
}

// FrameSize is the size in bytes of one float32 frame.
func (f Format) FrameSize() int { return f.Channels * 4 }

func (f Format) Validate() error {
	if f.SampleRate <= 0 || f.Channels < 1 || f.Channels > 2 {
		return ErrInvalidFormat
	}
	return nil
}

// Device creates players on a shared audio output.
type Device interface {
	Format() Format
	NewPlayer(src io.ReadSeeker) (Player, error)
}

// Player streams one reader to the device.
// Seek is forwarded to the reader and drops any buffered audio.
type Player interface {
	Play()
	Pause()
	IsPlaying() bool
	SetVolume(volume float64)
	Volume() float64
	Seek(offset int64, whence int) (int64, error)
	Close() error
}
