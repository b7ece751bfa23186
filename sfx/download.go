// SPDX-License-Identifier: EPL-2.0

package sfx

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const cacheDirName = "sfxpbx"

func isRemote(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

type downloader struct {
	client *http.Client
}

// cacheName names the cached copy of rawURL. The URL hash keeps an id that
// moves to another URL from reusing the old download.
func cacheName(id, rawURL string) string {
	u, err := url.Parse(rawURL)
	ext := ""
	if err == nil {
		ext = path.Ext(u.Path)
	}
	sum := sha256.Sum256([]byte(rawURL))
	return url.PathEscape(id) + "-" + hex.EncodeToString(sum[:])[:12] + ext
}

// download stores rawURL in the bank cache and returns the local path.
// A file already cached for the same id and URL is reused.
func (b *Bank) download(ctx context.Context, id, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDownload, err)
	}

	dir, err := b.resolveCacheDir()
	if err != nil {
		return "", err
	}

	dst := filepath.Join(dir, cacheName(id, rawURL))
	if _, err := os.Stat(dst); err == nil {
		b.logger.Debug("using cached sound", "id", id, "file", dst)
		return dst, nil
	}

	b.logger.Info("downloading sound", "id", id, "url", rawURL)
	if err := b.downloader.fetch(ctx, u.String(), dst); err != nil {
		return "", err
	}
	return dst, nil
}

func (b *Bank) resolveCacheDir() (string, error) {
	dir := b.cacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("resolving cache dir: %w", err)
		}
		dir = filepath.Join(base, cacheDirName)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating cache dir: %w", err)
	}
	return dir, nil
}

// fetch writes the body of rawURL to dst through a temporary file so a
// failed transfer never leaves a partial sound in the cache.
func (d *downloader) fetch(ctx context.Context, rawURL, dst string) (err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDownload, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: %s", ErrDownload, rawURL, resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".*.part")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDownload, err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, os.Remove(tmp.Name()))
		}
	}()

	if _, err = io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", ErrDownload, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrDownload, err)
	}

	if err = os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("%w: %w", ErrDownload, err)
	}
	return nil
}
