// SPDX-License-Identifier: EPL-2.0

package sfx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/sfxpbx/formats/wav"
	"github.com/ik5/sfxpbx/internal/audiotest"

	"github.com/stretchr/testify/require"
)

const (
	testRate   = 8000
	testFrames = 800 // 100ms
	frameBytes = 4   // mono float32
)

// writeTone writes a mono 16-bit WAV at testRate into dir.
func writeTone(t *testing.T, dir, name string, frames int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	samples := make([]int16, frames)
	for i := range samples {
		samples[i] = 16384
	}
	require.NoError(t, wav.WriteWAV16(f, testRate, 1, samples))
	return path
}

type fixture struct {
	asset *Asset
	dev   *audiotest.FakeDevice
	sched *audiotest.ManualScheduler
	path  string
}

func newFixture(t *testing.T, voices int, volume float64, opts ...Option) *fixture {
	t.Helper()

	fx := &fixture{
		dev:   audiotest.NewFakeDevice(testRate, 1),
		sched: &audiotest.ManualScheduler{},
		path:  writeTone(t, t.TempDir(), "tone.wav", testFrames),
	}

	opts = append([]Option{WithDevice(fx.dev), WithScheduler(fx.sched)}, opts...)
	a, err := Load(fx.path, voices, volume, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Unload() })

	fx.asset = a
	return fx
}

func (fx *fixture) player(t *testing.T, i int) *audiotest.FakePlayer {
	t.Helper()

	players := fx.dev.Players()
	require.Greater(t, len(players), i)
	return players[i]
}
