// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds fakes shared by the package tests: synthetic PCM
// sources, an in-memory output device and a scheduler driven by hand.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of one sample.
type Waveform func(frame, channel int) float32

// MockSource generates frames from a Waveform.
// It satisfies audio.Source without importing it.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	wave       Waveform

	// failure injection
	stalls  int
	failAt  int
	failErr error
}

// NewMockSource generates frames frames per channel from wave.
func NewMockSource(sampleRate, channels, frames int, wave Waveform) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		wave:       wave,
		failAt:     -1,
	}
}

func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// Stall makes the next n reads return (0, nil).
func (m *MockSource) Stall(n int) *MockSource {
	m.stalls = n
	return m
}

// FailAt makes reads return err once frame is reached.
func (m *MockSource) FailAt(frame int, err error) *MockSource {
	m.failAt = frame
	m.failErr = err
	return m
}

// Reset rewinds to the first frame.
func (m *MockSource) Reset() { m.pos = 0 }

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.stalls > 0 {
		m.stalls--
		return 0, nil
	}
	if m.failAt >= 0 && m.pos >= m.failAt {
		return 0, m.failErr
	}
	if m.pos >= m.frames {
		return 0, io.EOF
	}

	end := min(m.pos+len(dst)/m.channels, m.frames)
	if m.failAt >= 0 {
		end = min(end, m.failAt)
	}

	i := 0
	for ; m.pos < end; m.pos++ {
		for ch := range m.channels {
			dst[i] = m.wave(m.pos, ch)
			i++
		}
	}

	if m.pos >= m.frames {
		return i, io.EOF
	}
	return i, nil
}
