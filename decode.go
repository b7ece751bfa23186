// SPDX-License-Identifier: EPL-2.0

package sfxpbx

import (
	"fmt"
	"os"

	"github.com/ik5/sfxpbx/audio"
	"github.com/ik5/sfxpbx/formats"
)

const renderBufferSize = 4096

// DecodeFile decodes the file at path with the decoder registered for its
// extension and renders it at the given rate and channel count.
// A nil reg uses formats.NewRegistry.
func DecodeFile(reg *audio.Registry, path string, sampleRate, channels int) (*audio.Clip, error) {
	if reg == nil {
		reg = formats.NewRegistry()
	}

	dec, err := reg.Lookup(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer src.Close()

	bufSize := src.BufSize()
	if bufSize <= 0 {
		bufSize = renderBufferSize
	}

	clip, err := audio.Render(src, sampleRate, channels, bufSize)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return clip, nil
}
