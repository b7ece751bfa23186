// SPDX-License-Identifier: EPL-2.0

// Package formats wires every decoder in this module into one registry.
package formats

import (
	"github.com/ik5/sfxpbx/audio"
	"github.com/ik5/sfxpbx/formats/aiff"
	"github.com/ik5/sfxpbx/formats/mp3"
	"github.com/ik5/sfxpbx/formats/vorbis"
	"github.com/ik5/sfxpbx/formats/wav"
)

// NewRegistry returns a registry keyed by file extension with all built-in decoders.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	return reg
}
