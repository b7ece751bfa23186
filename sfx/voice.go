// SPDX-License-Identifier: EPL-2.0

package sfx

import (
	"fmt"
	"io"

	"github.com/ik5/sfxpbx/output"
)

// voice is one player of an asset. playing is guarded by the asset mutex.
type voice struct {
	index   int
	player  output.Player
	stream  *stream
	playing bool
}

// start rewinds the voice and plays it at volume.
func (v *voice) start(loop bool, volume float64) error {
	v.player.Pause()
	v.stream.setLoop(loop)
	if _, err := v.player.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding voice %d: %w", v.index, err)
	}
	v.player.SetVolume(volume)
	v.player.Play()
	v.playing = true
	return nil
}

// stop pauses and rewinds the voice.
func (v *voice) stop() error {
	v.player.Pause()
	v.stream.setLoop(false)
	v.playing = false
	if _, err := v.player.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding voice %d: %w", v.index, err)
	}
	return nil
}

func (v *voice) active() bool {
	return v.playing && !v.stream.isEnded()
}
