// SPDX-License-Identifier: EPL-2.0

package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsManifestChanges(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "sounds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	// other files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte(sample+"\n"), 0o600))

	select {
	case got := <-w.Events:
		assert.Equal(t, path, got)
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for manifest write")
	}
}

func TestWatcher_Close(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sounds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	w, err := NewWatcher(path)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	select {
	case _, ok := <-w.Events:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("Events not closed")
	}
}

func TestNewWatcher_MissingDir(t *testing.T) {
	t.Parallel()

	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "sounds.yaml"))
	assert.Error(t, err)
}
