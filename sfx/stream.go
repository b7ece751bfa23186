// SPDX-License-Identifier: EPL-2.0

package sfx

import (
	"errors"
	"io"
	"sync"
)

var (
	errNegativeSeek  = errors.New("seek before start of clip")
	errInvalidWhence = errors.New("invalid whence")
)

// stream is the reader a voice hands to its player. Every voice of an asset
// has its own stream over the same clip bytes.
type stream struct {
	data      []byte
	frameSize int64
	onEnd     func()

	mu    sync.Mutex
	pos   int
	loop  bool
	ended bool
}

func newStream(data []byte, frameSize int, onEnd func()) *stream {
	return &stream{data: data, frameSize: int64(max(frameSize, 1)), onEnd: onEnd}
}

func (s *stream) setLoop(loop bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loop = loop
}

func (s *stream) isEnded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ended
}

// progress is the read position as a fraction of the clip.
func (s *stream) progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.data) == 0 {
		return 0
	}
	return float64(s.pos) / float64(len(s.data))
}

// Read wraps around at the end of the clip while looping. Otherwise it
// reports io.EOF and calls onEnd once per pass.
func (s *stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	n := 0
	for n < len(p) && len(s.data) > 0 {
		if s.pos >= len(s.data) {
			if !s.loop {
				break
			}
			s.pos = 0
		}
		c := copy(p[n:], s.data[s.pos:])
		s.pos += c
		n += c
	}

	if n > 0 {
		s.mu.Unlock()
		return n, nil
	}

	fire := !s.ended && !s.loop
	s.ended = true
	s.mu.Unlock()

	// onEnd runs on the device goroutine and must not block
	if fire && s.onEnd != nil {
		s.onEnd()
	}
	return 0, io.EOF
}

// Seek moves to a frame boundary inside the clip.
func (s *stream) Seek(offset int64, whence int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(s.pos) + offset
	case io.SeekEnd:
		abs = int64(len(s.data)) + offset
	default:
		return int64(s.pos), errInvalidWhence
	}
	if abs < 0 {
		return int64(s.pos), errNegativeSeek
	}

	abs -= abs % s.frameSize
	abs = min(abs, int64(len(s.data)))

	s.pos = int(abs)
	if s.pos < len(s.data) {
		s.ended = false
	}
	return abs, nil
}
