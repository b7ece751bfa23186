// SPDX-License-Identifier: EPL-2.0

package sfx

import (
	"fmt"
	"math"
	"time"
)

type fadeDir int

const (
	fadeNone fadeDir = iota
	fadeIn
	fadeOut
)

// fade is the single in-flight volume ramp of an asset.
type fade struct {
	dir       fadeDir
	voice     *voice
	ms        int
	increment float64
	level     float64
	target    float64
	cancel    func()
}

// fadeInterval spreads 1/increment steps over ms milliseconds.
func fadeInterval(ms int, increment float64) time.Duration {
	d := time.Duration(increment * float64(ms) * float64(time.Millisecond))
	return max(d, time.Millisecond)
}

// FadeIn starts the next voice looping at volume 0 and raises it by
// increment every increment*ms milliseconds until it reaches the asset
// volume. ms <= 0, or an increment that is not a positive finite number,
// jumps straight to the asset volume. Increments finer than one step per
// millisecond are coarsened so the fade still lasts about ms.
func (a *Asset) FadeIn(ms int, increment float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.unloaded {
		return ErrInvalidState
	}

	v := a.nextVoiceLocked()
	if err := a.supersedeFadeLocked(v); err != nil {
		return err
	}

	if err := v.start(true, 0); err != nil {
		return err
	}
	a.current = v

	a.startFadeLocked(fadeIn, v, ms, increment, 0, a.volume)
	return nil
}

// FadeOut lowers the most recently started voice to silence with the same
// cadence as FadeIn, then stops and rewinds it. It does nothing when that
// voice is not playing.
func (a *Asset) FadeOut(ms int, increment float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.unloaded {
		return ErrInvalidState
	}

	v := a.current
	if v == nil || !v.active() {
		return nil
	}

	if err := a.supersedeFadeLocked(v); err != nil {
		return err
	}

	a.startFadeLocked(fadeOut, v, ms, increment, v.player.Volume(), 0)
	return nil
}

func (a *Asset) startFadeLocked(dir fadeDir, v *voice, ms int, increment, from, to float64) {
	immediate := ms <= 0 || math.IsNaN(increment) || math.IsInf(increment, 0) || increment <= 0
	if !immediate {
		increment = max(increment, 1/float64(ms))
	}

	a.fadeGen++
	a.fade = fade{
		dir:       dir,
		voice:     v,
		ms:        ms,
		increment: increment,
		level:     from,
		target:    to,
	}

	if immediate {
		a.finishFadeLocked()
		return
	}

	interval := fadeInterval(ms, increment)
	gen := a.fadeGen
	a.fade.cancel = a.scheduler.Every(interval, func() bool {
		return a.fadeStep(gen)
	})

	a.logger.Debug("fade started",
		"voice", v.index,
		"in", dir == fadeIn,
		"interval", interval,
		"target", to)
}

// fadeStep moves the level one increment toward the target.
// It returns false once the fade is over or was replaced.
func (a *Asset) fadeStep(gen uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.unloaded || gen != a.fadeGen || a.fade.dir == fadeNone {
		return false
	}

	f := &a.fade
	switch f.dir {
	case fadeIn:
		f.level = min(f.level+f.increment, f.target)
	case fadeOut:
		f.level = max(f.level-f.increment, f.target)
	}
	f.voice.player.SetVolume(f.level)

	if f.level != f.target {
		return true
	}

	a.finishFadeLocked()
	return false
}

// finishFadeLocked applies the target volume and ends the fade.
func (a *Asset) finishFadeLocked() {
	f := a.fade
	a.fade = fade{}

	f.voice.player.SetVolume(f.target)
	if f.dir != fadeOut {
		return
	}

	if err := f.voice.stop(); err != nil {
		a.logger.Warn("stopping faded voice", "voice", f.voice.index, "error", err)
	}
	if a.current == f.voice {
		a.current = nil
	}
}

// cancelFadeLocked drops the running fade and leaves its voice as it is.
func (a *Asset) cancelFadeLocked() {
	if a.fade.cancel != nil {
		a.fade.cancel()
	}
	a.fadeGen++
	a.fade = fade{}
}

// supersedeFadeLocked cancels the running fade before a new one on next.
// A voice left behind by the old fade is settled: a fade-in jumps to its
// target and a fade-out stops.
func (a *Asset) supersedeFadeLocked(next *voice) error {
	old := a.fade
	a.cancelFadeLocked()

	if old.dir == fadeNone || old.voice == next {
		return nil
	}

	switch old.dir {
	case fadeIn:
		old.voice.player.SetVolume(old.target)
	case fadeOut:
		if err := old.voice.stop(); err != nil {
			return fmt.Errorf("settling previous fade: %w", err)
		}
	}
	return nil
}
