// SPDX-License-Identifier: EPL-2.0

// Package manifest reads the YAML description of a sound bank:
//
//	sounds:
//	  - id: laser
//	    path: sfx/laser.wav
//	    fx: true
//	  - id: theme
//	    path: https://example.com/theme.ogg
//	    voices: 1
//	    volume: 0.6
//
// Relative paths are resolved against the manifest directory. fx entries
// default to sfx.DefaultPolyphonyVoices voices, other entries to one.
// volume defaults to 1.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/sfxpbx/sfx"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyID     = errors.New("sound id is empty")
	ErrDuplicateID = errors.New("duplicate sound id")
	ErrEmptyPath   = errors.New("sound path is empty")
	ErrBadVolume   = errors.New("sound volume must be within [0,1]")
)

type Manifest struct {
	Entries []SoundSpec `yaml:"sounds"`
}

type SoundSpec struct {
	ID     string   `yaml:"id"`
	Path   string   `yaml:"path"`
	Voices int      `yaml:"voices"`
	Volume *float64 `yaml:"volume"`
	FX     bool     `yaml:"fx"`
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: load %s: %w", path, err)
	}

	m, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("manifest: %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a manifest and resolves relative local paths against baseDir.
func Parse(data []byte, baseDir string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	if err := m.validate(); err != nil {
		return nil, err
	}

	for i := range m.Entries {
		s := &m.Entries[i]
		if !isURL(s.Path) && !filepath.IsAbs(s.Path) && baseDir != "" {
			s.Path = filepath.Join(baseDir, s.Path)
		}
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	seen := make(map[string]struct{}, len(m.Entries))
	for i, s := range m.Entries {
		switch {
		case strings.TrimSpace(s.ID) == "":
			return fmt.Errorf("sound %d: %w", i, ErrEmptyID)
		case strings.TrimSpace(s.Path) == "":
			return fmt.Errorf("sound %q: %w", s.ID, ErrEmptyPath)
		case s.Volume != nil && (*s.Volume < 0 || *s.Volume > 1):
			return fmt.Errorf("sound %q: %w", s.ID, ErrBadVolume)
		}

		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("sound %q: %w", s.ID, ErrDuplicateID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}

// Sounds converts the entries to bank sounds with defaults applied.
func (m *Manifest) Sounds() []sfx.Sound {
	out := make([]sfx.Sound, 0, len(m.Entries))
	for _, s := range m.Entries {
		voices := s.Voices
		if voices <= 0 {
			voices = 1
			if s.FX {
				voices = sfx.DefaultPolyphonyVoices
			}
		}

		volume := 1.0
		if s.Volume != nil {
			volume = *s.Volume
		}

		out = append(out, sfx.Sound{ID: s.ID, Path: s.Path, Voices: voices, Volume: volume})
	}
	return out
}

func isURL(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}
