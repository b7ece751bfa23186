// SPDX-License-Identifier: EPL-2.0

package sfx

import (
	"sync"
	"time"
)

// Scheduler runs fade steps.
//
// Every calls tick once per interval until tick returns false or the returned
// cancel func is called. A tick may still run once after cancel returns, so
// callers check their own state inside tick.
type Scheduler interface {
	Every(interval time.Duration, tick func() bool) (cancel func())
}

// tickerScheduler runs each task on its own goroutine driven by a time.Ticker.
type tickerScheduler struct{}

func (tickerScheduler) Every(interval time.Duration, tick func() bool) func() {
	ticker := time.NewTicker(interval)
	stop := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if !tick() {
					return
				}
			}
		}
	}()

	return func() {
		once.Do(func() { close(stop) })
	}
}
