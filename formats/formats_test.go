// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"testing"

	"github.com/ik5/sfxpbx/formats/aiff"
	"github.com/ik5/sfxpbx/formats/mp3"
	"github.com/ik5/sfxpbx/formats/vorbis"
	"github.com/ik5/sfxpbx/formats/wav"
)

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	tests := []struct {
		path string
		want any
	}{
		{"a.wav", wav.Decoder{}},
		{"a.WAV", wav.Decoder{}},
		{"b.mp3", mp3.Decoder{}},
		{"c.ogg", vorbis.Decoder{}},
		{"d.aiff", aiff.Decoder{}},
		{"d.aif", aiff.Decoder{}},
	}

	for _, tt := range tests {
		got, err := reg.Lookup(tt.path)
		if err != nil {
			t.Errorf("Lookup(%q) error = %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Lookup(%q) = %T, want %T", tt.path, got, tt.want)
		}
	}

	if _, err := reg.Lookup("e.flac"); err == nil {
		t.Error("Lookup(e.flac) error = nil, want error")
	}
}
