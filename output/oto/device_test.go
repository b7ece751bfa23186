// SPDX-License-Identifier: EPL-2.0

package oto

import (
	"context"
	"errors"
	"testing"

	"github.com/ik5/sfxpbx/output"
)

func TestNewDevice_InvalidFormat(t *testing.T) {
	t.Parallel()

	tests := []Options{
		{SampleRate: 0, Channels: 2},
		{SampleRate: 48000, Channels: 0},
		{SampleRate: 48000, Channels: 3},
	}

	for _, opts := range tests {
		_, err := NewDevice(context.Background(), opts)
		if !errors.Is(err, output.ErrInvalidFormat) {
			t.Errorf("NewDevice(%+v) error = %v, want ErrInvalidFormat", opts, err)
		}
	}
}
