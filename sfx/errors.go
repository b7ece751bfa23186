// SPDX-License-Identifier: EPL-2.0

package sfx

import "errors"

var (
	ErrResourceLoad  = errors.New("cannot load audio resource")
	ErrInvalidState  = errors.New("asset is unloaded")
	ErrNoDevice      = errors.New("no output device configured")
	ErrNoAudioID     = errors.New("audio id not found")
	ErrAudioIDExists = errors.New("audio id already exists")
	ErrDownload      = errors.New("download failed")
	ErrEmptyClip     = errors.New("clip has no audio frames")
)
