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
	"os"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	"github/sabouaram/reactorkit/reactor/rpoll"
	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/rlog"
	"github/sabouaram/reactorkit/signal"
)

// Selector multiplexes I/O readiness on Selectables, timer expirations, and
// an external wake signal onto a single cooperative run loop (spec §4.1).
// Only Wait/WaitUntil block; every other method returns immediately after
// updating state. Wake is the sole method declared safe to call from a
// goroutine other than the one driving Wait/WaitUntil.
type Selector struct {
	mu          sync.Mutex
	selectables map[Selectable]struct{}
	registered  map[int]Selectable
	timers      map[*Timer]struct{}
	poller      rpoll.Poller
	wakeR       *os.File
	wakeW       *os.File
	closed      bool
	log         rlog.FuncLog

	// OnWake fires once per drained Wake() batch, after the Wait call that
	// observed it returns.
	OnWake signal.Signal0
}

// Option configures a Selector at construction time.
type Option func(*Selector)

// WithLogger overrides the default no-op logger.
func WithLogger(f rlog.FuncLog) Option {
	return func(s *Selector) { s.log = f }
}

// New constructs a Selector backed by the platform's readiness primitive:
// a real epoll on Linux (reactor/rpoll, build-tagged), poll(2) elsewhere.
func New(opts ...Option) (*Selector, error) {
	p, err := rpoll.New()
	if err != nil {
		return nil, rerr.Wrap(rerr.KindIO, "reactor: create poller", err)
	}

	r, w, err := os.Pipe()
	if err != nil {
		_ = p.Close()
		return nil, rerr.Wrap(rerr.KindIO, "reactor: create wake pipe", err)
	}

	s := &Selector{
		selectables: make(map[Selectable]struct{}),
		registered:  make(map[int]Selectable),
		timers:      make(map[*Timer]struct{}),
		poller:      p,
		wakeR:       r,
		wakeW:       w,
		log:         rlog.Default(),
	}
	for _, o := range opts {
		o(s)
	}

	if err := s.poller.Register(int(r.Fd()), true, false); err != nil {
		_ = p.Close()
		_ = r.Close()
		_ = w.Close()
		return nil, rerr.Wrap(rerr.KindIO, "reactor: register wake pipe", err)
	}

	return s, nil
}

// Add registers sel with this Selector. Its change flag is set on attach,
// so the first Wait/WaitUntil call rebuilds its OS registration.
func (s *Selector) Add(sel Selectable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return rerr.New(rerr.KindLogic, "reactor: selector is closed")
	}
	s.selectables[sel] = struct{}{}
	sel.Base().attach(s)
	return s.syncOneLocked(sel)
}

// Remove detaches sel from this Selector and drops its OS registration, if
// any.
func (s *Selector) Remove(sel Selectable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selectables, sel)
	if fd := sel.Fd(); fd >= 0 {
		if _, ok := s.registered[fd]; ok {
			delete(s.registered, fd)
			if err := s.poller.Unregister(fd); err != nil {
				sel.Base().detach()
				return rerr.Wrap(rerr.KindIO, "reactor: unregister interest", err)
			}
		}
	}
	sel.Base().detach()
	return nil
}

// AddTimer registers t with this Selector.
func (s *Selector) AddTimer(t *Timer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return rerr.New(rerr.KindLogic, "reactor: selector is closed")
	}
	s.timers[t] = struct{}{}
	t.attach(s)
	return nil
}

// RemoveTimer detaches t from this Selector.
func (s *Selector) RemoveTimer(t *Timer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.timers, t)
	t.detach()
	return nil
}

// syncOneLocked rebuilds sel's OS registration if its interest set changed
// since the last Wait. Caller must hold s.mu.
func (s *Selector) syncOneLocked(sel Selectable) error {
	b := sel.Base()
	if !b.takeChanged() {
		return nil
	}
	fd := sel.Fd()
	if fd < 0 {
		return nil
	}

	state := b.State()
	read := state == StateReading || state == StateAvail
	write := state == StateWriting

	if _, ok := s.registered[fd]; ok {
		if err := s.poller.Modify(fd, read, write); err != nil {
			return rerr.Wrap(rerr.KindIO, "reactor: modify interest", err)
		}
		return nil
	}

	if err := s.poller.Register(fd, read, write); err != nil {
		return rerr.Wrap(rerr.KindIO, "reactor: register interest", err)
	}
	s.registered[fd] = sel
	return nil
}

// Wait blocks for up to timeout for I/O readiness, a timer expiration, or a
// Wake(). A negative timeout blocks indefinitely. Returns true iff at least
// one event fired.
func (s *Selector) Wait(timeout time.Duration) (bool, error) {
	var deadline time.Time
	bounded := timeout >= 0
	if bounded {
		deadline = time.Now().Add(timeout)
	}
	return s.run(deadline, bounded)
}

// WaitUntil blocks until deadline for the same events as Wait.
func (s *Selector) WaitUntil(deadline time.Time) (bool, error) {
	return s.run(deadline, true)
}

// Wake interrupts a blocked Wait/WaitUntil. Safe to call concurrently from
// any goroutine; this is the only such guarantee the Selector makes.
func (s *Selector) Wake() {
	_, _ = s.wakeW.Write([]byte{0})
}

// Close releases the poller and wake pipe. A closed Selector rejects
// further Add/AddTimer calls.
func (s *Selector) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true

	var result error
	if err := s.poller.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := s.wakeR.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := s.wakeW.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	s.mu.Unlock()

	if result != nil {
		return rerr.Wrap(rerr.KindIO, "reactor: close", result)
	}
	return nil
}

func (s *Selector) run(deadline time.Time, bounded bool) (bool, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, rerr.New(rerr.KindLogic, "reactor: selector is closed")
	}

	for sel := range s.selectables {
		if err := s.syncOneLocked(sel); err != nil {
			s.mu.Unlock()
			return false, err
		}
	}

	effective := s.effectiveDeadlineLocked(deadline, bounded)
	s.mu.Unlock()

	timeout := time.Duration(-1)
	if effective != nil {
		timeout = time.Until(*effective)
		if timeout < 0 {
			timeout = 0
		}
	}

	events, err := s.poller.Wait(timeout)
	if err != nil {
		return false, rerr.Wrap(rerr.KindIO, "reactor: poll wait", err)
	}

	fired := false
	wakeFd := int(s.wakeR.Fd())
	ioEvents := make([]rpoll.Event, 0, len(events))
	for _, ev := range events {
		if ev.Fd == wakeFd {
			fired = true
			s.drainWake()
			s.OnWake.Emit()
			continue
		}
		ioEvents = append(ioEvents, ev)
	}

	if len(ioEvents) > 0 {
		fired = true
		s.dispatchIO(ioEvents)
	}

	if s.dispatchTimers(time.Now()) {
		fired = true
	}

	return fired, nil
}

// effectiveDeadlineLocked computes min(caller deadline, nearest active
// timer). Caller must hold s.mu.
func (s *Selector) effectiveDeadlineLocked(deadline time.Time, bounded bool) *time.Time {
	var nearest *time.Time
	for t := range s.timers {
		next, active := t.nextFire()
		if !active {
			continue
		}
		if nearest == nil || next.Before(*nearest) {
			n := next
			nearest = &n
		}
	}

	if !bounded {
		return nearest
	}
	if nearest == nil || deadline.Before(*nearest) {
		return &deadline
	}
	return nearest
}

func (s *Selector) dispatchIO(events []rpoll.Event) {
	s.mu.Lock()
	type target struct {
		sel      Selectable
		readable bool
		writable bool
	}
	targets := make([]target, 0, len(events))
	for _, ev := range events {
		if sel, ok := s.registered[ev.Fd]; ok {
			targets = append(targets, target{sel: sel, readable: ev.Readable, writable: ev.Writable})
		}
	}
	s.mu.Unlock()

	for _, t := range targets {
		if t.readable {
			t.sel.OnReadable()
		}
		if t.writable {
			t.sel.OnWritable()
		}
	}
}

// dispatchTimers fires every timer due at or before now, in strict deadline
// order (ordering guarantee, spec §4.1).
func (s *Selector) dispatchTimers(now time.Time) bool {
	s.mu.Lock()
	due := make([]*Timer, 0)
	for t := range s.timers {
		if next, active := t.nextFire(); active && !next.After(now) {
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	if len(due) == 0 {
		return false
	}

	sort.Slice(due, func(i, j int) bool {
		ni, _ := due[i].nextFire()
		nj, _ := due[j].nextFire()
		return ni.Before(nj)
	})

	for _, t := range due {
		t.fire(now)
	}
	return true
}

func (s *Selector) drainWake() {
	buf := make([]byte, 64)
	for {
		n, err := s.wakeR.Read(buf)
		if err != nil || n < len(buf) {
			return
		}
	}
}
