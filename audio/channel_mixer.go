// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMixer maps the interleaved channels of src onto a fixed output channel count.
// Downmixing to mono averages every source channel; upmixing from mono copies the
// single channel everywhere; other layouts map output channel c to source channel
// c modulo the source channel count.
type ChannelMixer struct {
	src      Source
	channels int
	tmp      []float32
}

func NewChannelMixer(src Source, channels int) *ChannelMixer {
	if channels < 1 {
		channels = 1
	}
	return &ChannelMixer{
		src:      src,
		channels: channels,
		tmp:      make([]float32, 4096),
	}
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.channels }
func (m *ChannelMixer) BufSize() int    { return m.src.BufSize() }
func (m *ChannelMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	srcChannels := m.src.Channels()
	if srcChannels == m.channels {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.channels
	samplesNeeded := frames * srcChannels

	// Grow tmp buffer if needed (but don't shrink to avoid thrashing)
	if cap(m.tmp) < samplesNeeded {
		m.tmp = make([]float32, max(samplesNeeded, 8192))
	}
	m.tmp = m.tmp[:samplesNeeded]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	got := n / srcChannels

	switch {
	case m.channels == 1:
		inv := float32(1.0) / float32(srcChannels)
		for f := range got {
			sum := float32(0)
			base := f * srcChannels
			for c := range srcChannels {
				sum += m.tmp[base+c]
			}
			dst[f] = sum * inv
		}
	case srcChannels == 1:
		for f := range got {
			v := m.tmp[f]
			base := f * m.channels
			for c := range m.channels {
				dst[base+c] = v
			}
		}
	default:
		for f := range got {
			in := f * srcChannels
			out := f * m.channels
			for c := range m.channels {
				dst[out+c] = m.tmp[in+c%srcChannels]
			}
		}
	}

	return got * m.channels, err
}
