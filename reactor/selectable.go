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

import "sync"

// State is the logical state of a Selectable: Idle, Reading, Writing, or
// Avail (readable without a pending caller-owned buffer — used by listening
// sockets and other "ready, come pull from me" items).
type State int

const (
	StateIdle State = iota
	StateReading
	StateWriting
	StateAvail
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReading:
		return "reading"
	case StateWriting:
		return "writing"
	case StateAvail:
		return "avail"
	default:
		return "unknown"
	}
}

// Base is embedded by every concrete Selectable. It holds the bookkeeping
// the original keeps directly on the Selectable base class: the owning
// Selector, the logical state, and the "interest set changed" flag that
// tells the next Wait to rebuild this item's OS registration.
type Base struct {
	mu      sync.Mutex
	sel     *Selector
	state   State
	changed bool
}

// Base satisfies the Selectable interface's embedding requirement: a
// concrete type embeds reactor.Base and is then usable as a Selectable
// without exposing any unexported reactor machinery across package
// boundaries.
func (b *Base) Base() *Base { return b }

func (b *Base) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// SetState updates the logical state and marks the interest set changed.
func (b *Base) SetState(s State) {
	b.mu.Lock()
	b.state = s
	b.changed = true
	b.mu.Unlock()
}

// Selector returns the Selector this item is currently attached to, or nil.
func (b *Base) Selector() *Selector {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sel
}

func (b *Base) attach(s *Selector) {
	b.mu.Lock()
	b.sel = s
	b.changed = true
	b.mu.Unlock()
}

func (b *Base) detach() {
	b.mu.Lock()
	b.sel = nil
	b.mu.Unlock()
}

func (b *Base) takeChanged() bool {
	b.mu.Lock()
	c := b.changed
	b.changed = false
	b.mu.Unlock()
	return c
}

// Selectable is the base contract of everything a Selector can wait on. A
// Selectable is attached to at most one Selector at a time; detaching must
// happen before any owned OS handle is released (spec invariant).
type Selectable interface {
	// Fd returns the OS descriptor this item waits on, or -1 for a pure
	// software item that never participates in OS readiness polling.
	Fd() int

	Base() *Base

	// OnReadable/OnWritable are invoked by the owning Selector's run loop
	// when the underlying descriptor reports readiness in that direction.
	OnReadable()
	OnWritable()
}
