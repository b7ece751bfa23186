// SPDX-License-Identifier: EPL-2.0

package sfx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// DefaultPolyphonyVoices is the voice count PreloadFX uses.
const DefaultPolyphonyVoices = 15

// Sound describes one entry of a Bank.
type Sound struct {
	ID     string
	Path   string
	Voices int
	Volume float64
}

// Bank keeps assets by id. Remote paths (http and https) are downloaded
// into a cache directory before loading.
type Bank struct {
	opts       []Option
	logger     *slog.Logger
	cacheDir   string
	downloader *downloader

	mu     sync.Mutex
	assets map[string]*Asset
	sounds map[string]Sound
}

// NewBank returns an empty bank. opts are also passed to every Load.
func NewBank(opts ...Option) *Bank {
	o := newOptions(opts)
	return &Bank{
		opts:       opts,
		logger:     o.logger,
		cacheDir:   o.cacheDir,
		downloader: &downloader{client: o.httpClient},
		assets:     make(map[string]*Asset),
		sounds:     make(map[string]Sound),
	}
}

// PreloadFX loads a short effect with DefaultPolyphonyVoices voices at full volume.
func (b *Bank) PreloadFX(ctx context.Context, id, path string) error {
	return b.Preload(ctx, Sound{ID: id, Path: path, Voices: DefaultPolyphonyVoices, Volume: 1})
}

// PreloadAudio loads a sound with the given voice count and volume.
func (b *Bank) PreloadAudio(ctx context.Context, id, path string, voices int, volume float64) error {
	return b.Preload(ctx, Sound{ID: id, Path: path, Voices: voices, Volume: volume})
}

// Preload loads s under s.ID. It fails with ErrAudioIDExists when the id is taken.
func (b *Bank) Preload(ctx context.Context, s Sound) error {
	if b.has(s.ID) {
		return fmt.Errorf("%w: %s", ErrAudioIDExists, s.ID)
	}

	local := s.Path
	if isRemote(s.Path) {
		var err error
		local, err = b.download(ctx, s.ID, s.Path)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrResourceLoad, s.Path, err)
		}
	}

	asset, err := Load(local, s.Voices, s.Volume, b.opts...)
	if err != nil {
		return err
	}

	b.mu.Lock()
	if _, ok := b.assets[s.ID]; ok {
		b.mu.Unlock()
		return errors.Join(fmt.Errorf("%w: %s", ErrAudioIDExists, s.ID), asset.Unload())
	}
	b.assets[s.ID] = asset
	b.sounds[s.ID] = s
	b.mu.Unlock()

	b.logger.Info("sound preloaded", "id", s.ID, "path", s.Path, "voices", asset.Voices())
	return nil
}

func (b *Bank) has(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.assets[id]
	return ok
}

// Asset returns the asset loaded under id.
func (b *Bank) Asset(id string) (*Asset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.assets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoAudioID, id)
	}
	return a, nil
}

// IDs lists loaded ids in order.
func (b *Bank) IDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	ids := make([]string, 0, len(b.assets))
	for id := range b.assets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (b *Bank) Play(id string) error {
	return b.with(id, (*Asset).Play)
}

func (b *Bank) Loop(id string) error {
	return b.with(id, (*Asset).Loop)
}

func (b *Bank) Stop(id string) error {
	return b.with(id, (*Asset).Stop)
}

func (b *Bank) FadeIn(id string, ms int, increment float64) error {
	return b.with(id, func(a *Asset) error { return a.FadeIn(ms, increment) })
}

func (b *Bank) FadeOut(id string, ms int, increment float64) error {
	return b.with(id, func(a *Asset) error { return a.FadeOut(ms, increment) })
}

func (b *Bank) with(id string, fn func(*Asset) error) error {
	a, err := b.Asset(id)
	if err != nil {
		return err
	}
	return fn(a)
}

// Unload stops and releases the asset under id and forgets the id.
func (b *Bank) Unload(id string) error {
	b.mu.Lock()
	a, ok := b.assets[id]
	delete(b.assets, id)
	delete(b.sounds, id)
	b.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNoAudioID, id)
	}

	b.logger.Info("sound unloaded", "id", id)
	return a.Unload()
}

// Close unloads every asset.
func (b *Bank) Close() error {
	var errs []error
	for _, id := range b.IDs() {
		if err := b.Unload(id); err != nil && !errors.Is(err, ErrNoAudioID) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Apply makes the bank hold exactly sounds. Ids that vanished are unloaded,
// changed ones reloaded and new ones preloaded. Failures are joined and do
// not stop the remaining entries.
func (b *Bank) Apply(ctx context.Context, sounds []Sound) error {
	want := make(map[string]Sound, len(sounds))
	order := make([]string, 0, len(sounds))
	for _, s := range sounds {
		if _, dup := want[s.ID]; !dup {
			order = append(order, s.ID)
		}
		want[s.ID] = s
	}

	b.mu.Lock()
	have := make(map[string]Sound, len(b.sounds))
	for id, s := range b.sounds {
		have[id] = s
	}
	b.mu.Unlock()

	var errs []error
	for id, old := range have {
		if s, ok := want[id]; ok && s == old {
			continue
		}
		if err := b.Unload(id); err != nil && !errors.Is(err, ErrNoAudioID) {
			errs = append(errs, err)
		}
	}

	for _, id := range order {
		if old, ok := have[id]; ok && old == want[id] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		if err := b.Preload(ctx, want[id]); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
