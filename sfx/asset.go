// SPDX-License-Identifier: EPL-2.0

package sfx

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ik5/sfxpbx"
	"github.com/ik5/sfxpbx/audio"
	"github.com/ik5/sfxpbx/output"
	"github.com/ik5/sfxpbx/utils"
)

// Asset is one sound kept in memory with a fixed pool of voices.
//
// Play and Loop start the next voice round-robin, so up to numVoices copies
// of the sound can overlap. At most one fade runs per asset; starting a fade
// replaces the running one. All methods are safe for concurrent use.
type Asset struct {
	path       string
	clip       *audio.Clip
	logger     *slog.Logger
	scheduler  Scheduler
	onFinished func(*Asset)

	mu        sync.Mutex
	unloaded  bool
	voices    []*voice
	playIndex int
	current   *voice
	volume    float64
	fade      fade
	fadeGen   uint64
}

// Load decodes path and creates numVoices players on the configured device.
//
// numVoices below 1 is treated as 1 and volume is clamped to [0,1].
// Errors wrap ErrResourceLoad, or are ErrNoDevice when WithDevice is missing.
// A file without audio frames fails with ErrEmptyClip.
// On error every player created so far is closed.
func Load(path string, numVoices int, volume float64, opts ...Option) (*Asset, error) {
	o := newOptions(opts)
	if o.device == nil {
		return nil, ErrNoDevice
	}

	format := o.device.Format()
	clip, err := sfxpbx.DecodeFile(o.registry, path, format.SampleRate, format.Channels)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrResourceLoad, path, err)
	}
	if clip.Frames() == 0 {
		return nil, fmt.Errorf("%w: %s: %w", ErrResourceLoad, path, ErrEmptyClip)
	}

	a := &Asset{
		path:       path,
		clip:       clip,
		logger:     o.logger.With("path", path),
		scheduler:  o.scheduler,
		onFinished: o.onFinished,
		volume:     utils.Clamp(volume, 0, 1),
	}

	if err := a.allocate(o.device, max(numVoices, 1)); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrResourceLoad, path, err)
	}

	a.logger.Debug("asset loaded",
		"voices", len(a.voices),
		"duration", clip.Duration(),
		"volume", a.volume)

	return a, nil
}

func (a *Asset) allocate(dev output.Device, numVoices int) error {
	data := a.clip.Bytes()
	frameSize := a.clip.FrameSize()

	a.voices = make([]*voice, 0, numVoices)
	for i := range numVoices {
		v := &voice{index: i}
		v.stream = newStream(data, frameSize, func() { go a.voiceEnded(v) })

		p, err := dev.NewPlayer(v.stream)
		if err != nil {
			err = fmt.Errorf("creating voice %d: %w", i, err)
			return errors.Join(err, a.closeVoices())
		}
		v.player = p
		a.voices = append(a.voices, v)
	}
	return nil
}

func (a *Asset) closeVoices() error {
	var errs []error
	for _, v := range a.voices {
		if err := v.player.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing voice %d: %w", v.index, err))
		}
	}
	a.voices = nil
	return errors.Join(errs...)
}

// voiceEnded runs after a non-looping voice read the end of the clip.
func (a *Asset) voiceEnded(v *voice) {
	a.mu.Lock()
	if a.unloaded {
		a.mu.Unlock()
		return
	}
	// restarted before this ran
	if !v.stream.isEnded() {
		a.mu.Unlock()
		return
	}
	v.playing = false
	handler := a.onFinished
	a.mu.Unlock()

	a.logger.Debug("play finished", "voice", v.index)
	if handler != nil {
		handler(a)
	}
}

// Play starts the next voice once from the beginning.
func (a *Asset) Play() error {
	return a.start(false)
}

// Loop starts the next voice repeating until Stop.
func (a *Asset) Loop() error {
	return a.start(true)
}

func (a *Asset) start(loop bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.unloaded {
		return ErrInvalidState
	}

	v := a.nextVoiceLocked()
	if a.fade.voice == v {
		a.cancelFadeLocked()
	}

	if err := v.start(loop, a.volume); err != nil {
		return err
	}
	a.current = v

	a.logger.Debug("voice started", "voice", v.index, "loop", loop)
	return nil
}

func (a *Asset) nextVoiceLocked() *voice {
	v := a.voices[a.playIndex]
	a.playIndex = (a.playIndex + 1) % len(a.voices)
	return v
}

// Stop cancels any fade, then pauses and rewinds every voice.
func (a *Asset) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.unloaded {
		return ErrInvalidState
	}

	a.cancelFadeLocked()
	return a.stopVoicesLocked()
}

func (a *Asset) stopVoicesLocked() error {
	var errs []error
	for _, v := range a.voices {
		if err := v.stop(); err != nil {
			errs = append(errs, err)
		}
	}
	a.current = nil
	return errors.Join(errs...)
}

// Unload stops and releases every voice. Calls after the first return nil.
func (a *Asset) Unload() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.unloaded {
		return nil
	}
	a.unloaded = true

	a.cancelFadeLocked()
	err := errors.Join(a.stopVoicesLocked(), a.closeVoices())

	a.logger.Debug("asset unloaded")
	return err
}

// State reports the current state. A running fade takes precedence over
// plain playback.
func (a *Asset) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.unloaded {
		return StateUnloaded
	}

	switch a.fade.dir {
	case fadeIn:
		return StateFadingIn
	case fadeOut:
		return StateFadingOut
	}

	for _, v := range a.voices {
		if v.active() {
			return StatePlaying
		}
	}
	return StateIdle
}

// Progress of the most recently started voice in [0,1], or 0 when idle.
func (a *Asset) Progress() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current == nil || !a.current.active() {
		return 0
	}
	return a.current.stream.progress()
}

func (a *Asset) Duration() time.Duration { return a.clip.Duration() }

// Volume is the nominal volume voices start at.
func (a *Asset) Volume() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.volume
}

func (a *Asset) Path() string { return a.path }

// Voices is the size of the voice pool, 0 after Unload.
func (a *Asset) Voices() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.voices)
}
