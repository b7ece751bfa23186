// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// mockOggVorbisReader mirrors oggvorbis.Reader: Read returns float values, not frames
type mockOggVorbisReader struct {
	sampleRate int
	channels   int
	samples    []float32
	err        error
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if len(m.samples) == 0 {
		return 0, io.EOF
	}

	n := copy(buf, m.samples)
	n -= n % m.channels
	m.samples = m.samples[n:]
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("OggS but not really vorbis")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("Decode(%q) error = nil, want error", data)
		}
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		samples  []float32
		bufSize  int
		wantN    int
	}{
		{"mono", 1, []float32{0.1, 0.2, 0.3}, 8, 3},
		{"stereo", 2, []float32{0.1, -0.1, 0.2, -0.2}, 4, 4},
		{"stereo trims odd buffer", 2, []float32{0.1, -0.1, 0.2, -0.2}, 3, 2},
		{"six channels", 6, make([]float32, 12), 12, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := &source{
				dec:        &mockOggVorbisReader{sampleRate: 48000, channels: tt.channels, samples: tt.samples},
				sampleRate: 48000,
				channels:   tt.channels,
			}

			dst := make([]float32, tt.bufSize)
			n, err := src.ReadSamples(dst)
			if err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if n != tt.wantN {
				t.Fatalf("ReadSamples() n = %d, want %d", n, tt.wantN)
			}
			for i := range n {
				if dst[i] != tt.samples[i] {
					t.Errorf("dst[%d] = %v, want %v", i, dst[i], tt.samples[i])
				}
			}
		})
	}
}

func TestSource_EOFAndErrors(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockOggVorbisReader{channels: 1}, channels: 1}
	if n, err := src.ReadSamples(make([]float32, 4)); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() on empty = %d, %v; want 0, io.EOF", n, err)
	}

	boom := errors.New("corrupt page")
	src = &source{dec: &mockOggVorbisReader{channels: 1, err: boom}, channels: 1}
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want corrupt page", err)
	}
}
