// SPDX-License-Identifier: EPL-2.0

// Package oto implements output.Device on top of github.com/ebitengine/oto/v3.
//
// oto allows a single context per process, so a program opens one Device
// and shares it between every sound it loads.
package oto

import (
	"context"
	"fmt"
	"io"
	"time"

	otov3 "github.com/ebitengine/oto/v3"
	"github.com/ik5/sfxpbx/output"
)

// DefaultBufferSize keeps device latency low enough for sound effects.
const DefaultBufferSize = 40 * time.Millisecond

type Options struct {
	SampleRate int
	Channels   int
	// BufferSize of the device buffer. Zero uses DefaultBufferSize.
	BufferSize time.Duration
}

// Device is an oto context that accepts float32 PCM.
type Device struct {
	ctx    *otov3.Context
	format output.Format
}

// NewDevice opens the audio output and waits until it is ready or ctx is done.
func NewDevice(ctx context.Context, opts Options) (*Device, error) {
	format := output.Format{SampleRate: opts.SampleRate, Channels: opts.Channels}
	if err := format.Validate(); err != nil {
		return nil, err
	}

	if opts.BufferSize <= 0 {
		opts.BufferSize = DefaultBufferSize
	}

	otoCtx, ready, err := otov3.NewContext(&otov3.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       otov3.FormatFloat32LE,
		BufferSize:   opts.BufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}

	select {
	case <-ready:
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for audio device: %w", ctx.Err())
	}

	return &Device{ctx: otoCtx, format: format}, nil
}

func (d *Device) Format() output.Format { return d.format }

// NewPlayer attaches src to the device. The player starts paused.
func (d *Device) NewPlayer(src io.ReadSeeker) (output.Player, error) {
	if err := d.ctx.Err(); err != nil {
		return nil, fmt.Errorf("audio device: %w", err)
	}
	return d.ctx.NewPlayer(src), nil
}

// Suspend pauses the whole device, e.g. while the program is in the background.
func (d *Device) Suspend() error {
	if err := d.ctx.Suspend(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (d *Device) Resume() error {
	if err := d.ctx.Resume(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

var _ output.Player = (*otov3.Player)(nil)
