// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"sync"
	"time"
)

// ManualScheduler runs periodic tasks only when Tick is called.
type ManualScheduler struct {
	mu    sync.Mutex
	tasks []*task
}

type task struct {
	interval time.Duration
	tick     func() bool
	done     bool
}

// Every registers tick. The task ends when tick returns false or cancel is called.
func (s *ManualScheduler) Every(interval time.Duration, tick func() bool) func() {
	t := &task{interval: interval, tick: tick}

	s.mu.Lock()
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		t.done = true
	}
}

// Tick runs one step of every live task and reports how many ran.
// Tasks are called without holding the scheduler lock.
func (s *ManualScheduler) Tick() int {
	s.mu.Lock()
	live := make([]*task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.done {
			live = append(live, t)
		}
	}
	s.mu.Unlock()

	ran := 0
	for _, t := range live {
		s.mu.Lock()
		done := t.done
		s.mu.Unlock()
		if done {
			continue
		}

		ran++
		if !t.tick() {
			s.mu.Lock()
			t.done = true
			s.mu.Unlock()
		}
	}
	return ran
}

// Drain ticks until no task is live or limit ticks have run.
func (s *ManualScheduler) Drain(limit int) int {
	n := 0
	for n < limit && s.Active() > 0 {
		s.Tick()
		n++
	}
	return n
}

// Active counts live tasks.
func (s *ManualScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.tasks {
		if !t.done {
			n++
		}
	}
	return n
}

// Intervals lists the interval of every task ever registered.
func (s *ManualScheduler) Intervals() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]time.Duration, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.interval
	}
	return out
}
