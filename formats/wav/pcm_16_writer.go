// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/sfxpbx/audio"
	"github.com/ik5/sfxpbx/utils"
)

// WriteClip writes clip as 16-bit PCM.
func WriteClip(w io.WriteSeeker, clip *audio.Clip) error {
	samples := make([]int16, len(clip.Samples))
	for i, v := range clip.Samples {
		samples[i] = utils.Float32ToInt16(v)
	}
	return WriteWAV16(w, clip.SampleRate, clip.Channels, samples)
}

// WriteWAV16 writes interleaved 16-bit PCM samples as a WAV file.
// The writer must be seekable so the header sizes can be patched on close.
func WriteWAV16(w io.WriteSeeker, sampleRate, channels int, samples []int16) error {
	if channels < 1 {
		return ErrInvalidChannelCount
	}

	enc := gowav.NewEncoder(w, sampleRate, 16, channels, wavFormatPCM)

	// Convert in chunks to bound the intermediate []int
	const chunkSize = 8192
	chunk := chunkSize - chunkSize%channels
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           make([]int, 0, min(len(samples), chunk)),
		SourceBitDepth: 16,
	}

	// at least one Write so the header and data chunk exist
	for i := 0; i == 0 || i < len(samples); i += chunk {
		end := min(i+chunk, len(samples))
		buf.Data = buf.Data[:0]
		for _, s := range samples[i:end] {
			buf.Data = append(buf.Data, int(s))
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
