// SPDX-License-Identifier: EPL-2.0

package sfx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ik5/sfxpbx/audio"
	"github.com/ik5/sfxpbx/output"
)

const defaultDownloadTimeout = 30 * time.Second

// Option configures Load and NewBank.
type Option func(*options)

type options struct {
	device     output.Device
	registry   *audio.Registry
	logger     *slog.Logger
	scheduler  Scheduler
	onFinished func(*Asset)

	// bank only
	cacheDir   string
	httpClient *http.Client
}

func newOptions(opts []Option) options {
	o := options{
		logger:     slog.New(slog.DiscardHandler),
		scheduler:  tickerScheduler{},
		httpClient: &http.Client{Timeout: defaultDownloadTimeout},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithDevice sets the device voices play on. Required.
func WithDevice(d output.Device) Option {
	return func(o *options) { o.device = d }
}

// WithRegistry replaces the built-in decoders.
func WithRegistry(r *audio.Registry) Option {
	return func(o *options) { o.registry = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithScheduler sets what drives fade steps.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		if s != nil {
			o.scheduler = s
		}
	}
}

// WithOnFinished is called on its own goroutine each time a voice started
// by Play reaches the end of the clip.
func WithOnFinished(fn func(*Asset)) Option {
	return func(o *options) { o.onFinished = fn }
}

// WithCacheDir sets where a Bank stores downloaded sounds.
// The default is a sfxpbx directory under os.UserCacheDir.
func WithCacheDir(dir string) Option {
	return func(o *options) { o.cacheDir = dir }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}
