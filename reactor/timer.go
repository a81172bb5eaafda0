/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package reactor

import (
	"sync"
	"time"

	"github/sabouaram/reactorkit/signal"
)

// Timer holds an interval, an optional absolute start time, a next-fire
// timestamp, and an active flag. Registered with at most one Selector;
// relocating an active Timer updates the owning Selector's view on the
// next Wait/WaitUntil call.
type Timer struct {
	mu       sync.Mutex
	sel      *Selector
	interval time.Duration
	next     time.Time
	active   bool
	periodic bool

	// Timeout fires with the Timer itself each time the deadline elapses.
	Timeout signal.Signal1[*Timer]
}

// NewTimer returns an inactive Timer ready to be Start()ed and Add()ed to a
// Selector.
func NewTimer() *Timer {
	return &Timer{}
}

// Start arms the timer to fire once after interval, or every interval when
// periodic is true. Calling Start on an already-active timer reschedules it
// from now.
func (t *Timer) Start(interval time.Duration, periodic bool) {
	t.StartAt(time.Now().Add(interval), interval, periodic)
}

// StartAt arms the timer to first fire at "at", then every interval after
// that when periodic is true.
func (t *Timer) StartAt(at time.Time, interval time.Duration, periodic bool) {
	t.mu.Lock()
	t.interval = interval
	t.next = at
	t.periodic = periodic
	t.active = true
	t.mu.Unlock()
}

// Stop disarms the timer. It stays registered with its Selector but will
// not fire again until Start/StartAt is called.
func (t *Timer) Stop() {
	t.mu.Lock()
	t.active = false
	t.mu.Unlock()
}

// Active reports whether the timer is currently armed.
func (t *Timer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

func (t *Timer) nextFire() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.next, t.active
}

// fire is invoked by the owning Selector once this timer's deadline has
// passed. Periodic timers are rescheduled before Timeout is emitted so a
// slot that queries Active()/nextFire() sees the post-reschedule state.
func (t *Timer) fire(now time.Time) {
	t.mu.Lock()
	if !t.active {
		t.mu.Unlock()
		return
	}
	if t.periodic {
		t.next = t.next.Add(t.interval)
		if !t.next.After(now) {
			t.next = now.Add(t.interval)
		}
	} else {
		t.active = false
	}
	t.mu.Unlock()

	t.Timeout.Emit(t)
}

func (t *Timer) attach(s *Selector) {
	t.mu.Lock()
	t.sel = s
	t.mu.Unlock()
}

func (t *Timer) detach() {
	t.mu.Lock()
	t.sel = nil
	t.mu.Unlock()
}
