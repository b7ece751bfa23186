// SPDX-License-Identifier: EPL-2.0

package sfx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ik5/sfxpbx/internal/audiotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBank(t *testing.T, opts ...Option) (*Bank, *audiotest.FakeDevice) {
	t.Helper()

	dev := audiotest.NewFakeDevice(testRate, 1)
	opts = append([]Option{
		WithDevice(dev),
		WithScheduler(&audiotest.ManualScheduler{}),
		WithCacheDir(t.TempDir()),
	}, opts...)

	b := NewBank(opts...)
	t.Cleanup(func() { _ = b.Close() })
	return b, dev
}

func TestBank_PreloadFX(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b, dev := newTestBank(t)
	path := writeTone(t, t.TempDir(), "laser.wav", testFrames)

	require.NoError(t, b.PreloadFX(ctx, "laser", path))
	assert.Len(t, dev.Players(), DefaultPolyphonyVoices)
	assert.Equal(t, []string{"laser"}, b.IDs())

	a, err := b.Asset("laser")
	require.NoError(t, err)
	assert.InDelta(t, 1, a.Volume(), 1e-12)

	err = b.PreloadFX(ctx, "laser", path)
	assert.ErrorIs(t, err, ErrAudioIDExists)
	assert.Len(t, dev.Players(), DefaultPolyphonyVoices, "duplicate id must not allocate voices")
}

func TestBank_Transport(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b, _ := newTestBank(t)
	path := writeTone(t, t.TempDir(), "music.wav", testFrames)

	require.NoError(t, b.PreloadAudio(ctx, "music", path, 2, 0.5))
	a, err := b.Asset("music")
	require.NoError(t, err)
	assert.Equal(t, 2, a.Voices())

	require.NoError(t, b.Play("music"))
	assert.Equal(t, StatePlaying, a.State())
	require.NoError(t, b.Stop("music"))
	require.NoError(t, b.Loop("music"))
	require.NoError(t, b.FadeIn("music", 1000, 0.05))
	assert.Equal(t, StateFadingIn, a.State())
	require.NoError(t, b.FadeOut("music", 1000, 0.05))
	assert.Equal(t, StateFadingOut, a.State())

	for _, err := range []error{
		b.Play("nope"),
		b.Loop("nope"),
		b.Stop("nope"),
		b.FadeIn("nope", 1, 1),
		b.FadeOut("nope", 1, 1),
		b.Unload("nope"),
	} {
		assert.ErrorIs(t, err, ErrNoAudioID)
	}
}

func TestBank_Unload(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b, dev := newTestBank(t)
	path := writeTone(t, t.TempDir(), "hit.wav", testFrames)

	require.NoError(t, b.PreloadAudio(ctx, "hit", path, 3, 1))
	a, err := b.Asset("hit")
	require.NoError(t, err)
	require.NoError(t, b.Loop("hit"))

	require.NoError(t, b.Unload("hit"))
	assert.Empty(t, b.IDs())
	assert.Equal(t, StateUnloaded, a.State())
	for _, p := range dev.Players() {
		assert.Equal(t, 1, p.CloseCount())
	}

	assert.ErrorIs(t, b.Unload("hit"), ErrNoAudioID)

	// the id is free again
	require.NoError(t, b.PreloadAudio(ctx, "hit", path, 1, 1))
}

func TestBank_PreloadMissingFile(t *testing.T) {
	t.Parallel()

	b, dev := newTestBank(t)

	err := b.PreloadFX(context.Background(), "ghost", filepath.Join(t.TempDir(), "ghost.wav"))
	assert.ErrorIs(t, err, ErrResourceLoad)
	assert.Empty(t, b.IDs())
	assert.Empty(t, dev.Players())
}

func TestBank_Close(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b, dev := newTestBank(t)
	dir := t.TempDir()

	require.NoError(t, b.PreloadAudio(ctx, "a", writeTone(t, dir, "a.wav", 10), 1, 1))
	require.NoError(t, b.PreloadAudio(ctx, "b", writeTone(t, dir, "b.wav", 10), 2, 1))

	require.NoError(t, b.Close())
	assert.Empty(t, b.IDs())
	for _, p := range dev.Players() {
		assert.True(t, p.Closed())
	}
}

func TestBank_Apply(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b, _ := newTestBank(t)
	dir := t.TempDir()
	pathA := writeTone(t, dir, "a.wav", 10)
	pathB := writeTone(t, dir, "b.wav", 10)
	pathC := writeTone(t, dir, "c.wav", 10)

	require.NoError(t, b.Apply(ctx, []Sound{
		{ID: "a", Path: pathA, Voices: 2, Volume: 1},
		{ID: "b", Path: pathB, Voices: 1, Volume: 1},
	}))
	assert.Equal(t, []string{"a", "b"}, b.IDs())

	oldA, err := b.Asset("a")
	require.NoError(t, err)
	oldB, err := b.Asset("b")
	require.NoError(t, err)

	require.NoError(t, b.Apply(ctx, []Sound{
		{ID: "a", Path: pathA, Voices: 2, Volume: 1},
		{ID: "b", Path: pathB, Voices: 1, Volume: 0.5},
		{ID: "c", Path: pathC, Voices: 1, Volume: 1},
	}))
	assert.Equal(t, []string{"a", "b", "c"}, b.IDs())

	newA, err := b.Asset("a")
	require.NoError(t, err)
	assert.Same(t, oldA, newA, "unchanged sound is kept")

	newB, err := b.Asset("b")
	require.NoError(t, err)
	assert.NotSame(t, oldB, newB, "changed sound is reloaded")
	assert.InDelta(t, 0.5, newB.Volume(), 1e-12)
	assert.Equal(t, StateUnloaded, oldB.State())

	require.NoError(t, b.Apply(ctx, []Sound{{ID: "c", Path: pathC, Voices: 1, Volume: 1}}))
	assert.Equal(t, []string{"c"}, b.IDs())
	assert.Equal(t, StateUnloaded, newA.State())
}

func TestBank_ApplyContinuesAfterFailure(t *testing.T) {
	t.Parallel()

	b, _ := newTestBank(t)
	dir := t.TempDir()

	err := b.Apply(context.Background(), []Sound{
		{ID: "bad", Path: filepath.Join(dir, "missing.wav"), Voices: 1, Volume: 1},
		{ID: "good", Path: writeTone(t, dir, "good.wav", 10), Voices: 1, Volume: 1},
	})
	assert.ErrorIs(t, err, ErrResourceLoad)
	assert.Equal(t, []string{"good"}, b.IDs())
}

func TestBank_RemoteDownload(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile(writeTone(t, t.TempDir(), "src.wav", testFrames))
	require.NoError(t, err)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/sounds/coin.wav" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)

	ctx := context.Background()
	cache := t.TempDir()
	b, _ := newTestBank(t, WithCacheDir(cache), WithHTTPClient(srv.Client()))

	coinURL := srv.URL + "/sounds/coin.wav"
	cached := filepath.Join(cache, cacheName("coin", coinURL))
	assert.Equal(t, ".wav", filepath.Ext(cached))

	require.NoError(t, b.PreloadFX(ctx, "coin", coinURL))
	assert.FileExists(t, cached)
	assert.EqualValues(t, 1, hits.Load())

	a, err := b.Asset("coin")
	require.NoError(t, err)
	assert.Equal(t, cached, a.Path())

	// a second bank on the same cache reuses the file
	other, _ := newTestBank(t, WithCacheDir(cache), WithHTTPClient(srv.Client()))
	require.NoError(t, other.PreloadFX(ctx, "coin", coinURL))
	assert.EqualValues(t, 1, hits.Load())
}

func TestBank_RemoteDownloadFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	cache := t.TempDir()
	b, _ := newTestBank(t, WithCacheDir(cache), WithHTTPClient(srv.Client()))

	err := b.PreloadFX(context.Background(), "coin", srv.URL+"/coin.wav")
	assert.ErrorIs(t, err, ErrResourceLoad)
	assert.ErrorIs(t, err, ErrDownload)

	entries, err := os.ReadDir(cache)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, b.IDs())
}

func TestBank_ApplyRemotePathChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	short, err := os.ReadFile(writeTone(t, dir, "short.wav", testFrames))
	require.NoError(t, err)
	long, err := os.ReadFile(writeTone(t, dir, "long.wav", 4*testFrames))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/coin.wav":
			_, _ = w.Write(short)
		case "/v2/coin.wav":
			_, _ = w.Write(long)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	ctx := context.Background()
	b, _ := newTestBank(t, WithHTTPClient(srv.Client()))

	require.NoError(t, b.Apply(ctx, []Sound{{ID: "coin", Path: srv.URL + "/v1/coin.wav", Voices: 1, Volume: 1}}))
	a, err := b.Asset("coin")
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, a.Duration())

	require.NoError(t, b.Apply(ctx, []Sound{{ID: "coin", Path: srv.URL + "/v2/coin.wav", Voices: 1, Volume: 1}}))
	a, err = b.Asset("coin")
	require.NoError(t, err)
	assert.Equal(t, 400*time.Millisecond, a.Duration())
}

func TestCacheName(t *testing.T) {
	t.Parallel()

	a := cacheName("coin", "https://example.com/v1/coin.wav")
	b := cacheName("coin", "https://example.com/v2/coin.wav")

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, cacheName("coin", "https://example.com/v1/coin.wav"))
	assert.Equal(t, ".wav", filepath.Ext(a))
	assert.Equal(t, "a%2Fb-", cacheName("a/b", "https://example.com/x")[:6])
}
