// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ik5/sfxpbx/output"
)

// FakeDevice is an output.Device that keeps every player in memory.
// Nothing is played until the test calls Pump.
type FakeDevice struct {
	format output.Format

	mu        sync.Mutex
	players   []*FakePlayer
	failAfter int
	failErr   error
}

func NewFakeDevice(sampleRate, channels int) *FakeDevice {
	return &FakeDevice{
		format:    output.Format{SampleRate: sampleRate, Channels: channels},
		failAfter: -1,
	}
}

// FailAfter makes NewPlayer return err once n players exist.
func (d *FakeDevice) FailAfter(n int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.failAfter = n
	d.failErr = err
}

func (d *FakeDevice) Format() output.Format { return d.format }

func (d *FakeDevice) NewPlayer(src io.ReadSeeker) (output.Player, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.failAfter >= 0 && len(d.players) >= d.failAfter {
		return nil, d.failErr
	}

	p := &FakePlayer{src: src, volume: 1, frameSize: d.format.FrameSize()}
	d.players = append(d.players, p)
	return p, nil
}

// Players returns the players in creation order.
func (d *FakeDevice) Players() []*FakePlayer {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]*FakePlayer(nil), d.players...)
}

// Pump advances every playing player by frames frames.
func (d *FakeDevice) Pump(frames int) error {
	var errs []error
	for _, p := range d.Players() {
		if _, err := p.Pump(frames); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var ErrPlayerClosed = errors.New("player closed")

// FakePlayer mimics an oto player: it starts paused and stops by itself
// when its reader returns io.EOF.
type FakePlayer struct {
	src       io.ReadSeeker
	frameSize int

	mu      sync.Mutex
	playing bool
	closed  bool
	volume  float64
	volumes []float64
	seeks   int
	closes  int
}

func (p *FakePlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.playing = true
	}
}

func (p *FakePlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.playing = false
}

func (p *FakePlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.playing
}

func (p *FakePlayer) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = volume
	p.volumes = append(p.volumes, volume)
}

func (p *FakePlayer) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.volume
}

// Volumes lists every value passed to SetVolume.
func (p *FakePlayer) Volumes() []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]float64(nil), p.volumes...)
}

func (p *FakePlayer) Seek(offset int64, whence int) (int64, error) {
	p.mu.Lock()
	closed := p.closed
	p.seeks++
	p.mu.Unlock()

	if closed {
		return 0, ErrPlayerClosed
	}

	n, err := p.src.Seek(offset, whence)
	if err != nil {
		return n, fmt.Errorf("%w", err)
	}
	return n, nil
}

// Seeks counts calls to Seek.
func (p *FakePlayer) Seeks() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.seeks
}

// Position is the current offset of the reader in bytes.
func (p *FakePlayer) Position() int64 {
	pos, err := p.src.Seek(0, io.SeekCurrent)
	if err != nil {
		return -1
	}
	return pos
}

func (p *FakePlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	p.closes++
	p.playing = false
	return nil
}

// CloseCount counts calls to Close.
func (p *FakePlayer) CloseCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.closes
}

func (p *FakePlayer) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.closed
}

// Pump reads up to frames frames from the reader when the player is playing.
// It returns the number of bytes consumed. The reader is read without
// holding the player lock, the same way a device callback would.
func (p *FakePlayer) Pump(frames int) (int, error) {
	if !p.IsPlaying() {
		return 0, nil
	}

	buf := make([]byte, frames*p.frameSize)
	total := 0
	for total < len(buf) {
		n, err := p.src.Read(buf[total:])
		total += n
		if errors.Is(err, io.EOF) {
			p.mu.Lock()
			p.playing = false
			p.mu.Unlock()
			return total, nil
		}
		if err != nil {
			return total, fmt.Errorf("%w", err)
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}
