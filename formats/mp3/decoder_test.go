// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"
)

// mockMP3Reader serves int16 PCM like gomp3.Decoder, a few bytes at a time
type mockMP3Reader struct {
	sampleRate int
	data       []byte
	chunk      int
	err        error
}

func newMockMP3Reader(sampleRate int, samples []int16, chunk int) *mockMP3Reader {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}
	return &mockMP3Reader{sampleRate: sampleRate, data: data, chunk: chunk}
}

func (m *mockMP3Reader) SampleRate() int { return m.sampleRate }

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if len(m.data) == 0 {
		return 0, io.EOF
	}
	n := min(len(buf), len(m.data), m.chunk)
	copy(buf, m.data[:n])
	m.data = m.data[n:]
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := map[string][]byte{
		"empty": {},
		"text":  []byte("This is not MP3 data"),
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
				t.Error("Decode() error = nil, want error")
			}
		})
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 16384, 32767, -16384, -32768, 8192, -8192, 0}
	src := &source{
		dec:        newMockMP3Reader(44100, samples, 3),
		sampleRate: 44100,
	}

	if src.Channels() != 2 || src.SampleRate() != 44100 {
		t.Fatalf("format = %d/%d, want 44100/2", src.SampleRate(), src.Channels())
	}

	dst := make([]float32, 8)
	n, err := src.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 8 {
		t.Fatalf("ReadSamples() n = %d, want 8", n)
	}

	want := []float32{0, 0.5, 1, -0.5, -1, 0.25, -0.25, 0}
	for i := range want {
		if math.Abs(float64(dst[i]-want[i])) > 0.001 {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}

	n, err = src.ReadSamples(dst)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() at end = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestSource_ShortTail(t *testing.T) {
	t.Parallel()

	src := &source{dec: newMockMP3Reader(8000, []int16{100, 200, 300}, 1024), sampleRate: 8000}

	dst := make([]float32, 16)
	n, err := src.ReadSamples(dst)
	if n != 3 || err != io.EOF {
		t.Errorf("ReadSamples() = %d, %v; want 3, io.EOF", n, err)
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := &source{dec: &mockMP3Reader{err: boom}, sampleRate: 8000}

	_, err := src.ReadSamples(make([]float32, 4))
	if !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want boom", err)
	}
}

func TestSource_EmptyDst(t *testing.T) {
	t.Parallel()

	src := &source{dec: newMockMP3Reader(8000, []int16{1}, 2), sampleRate: 8000}
	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v; want 0, nil", n, err)
	}
}
