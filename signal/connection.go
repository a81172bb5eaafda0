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

package signal

import "sync"

// slotEntry is one registered callback. fn is stored as `any` because the
// connectable itself is signature-agnostic (spec §3: "A Connectable owns a
// list of Connections"); the concrete SignalN wrapper knows how to type
// assert it back before calling.
type slotEntry struct {
	valid bool
	fn    any
}

// connectable is the shared machinery behind every SignalN: it owns the
// connection list and the dispatch/compaction bookkeeping. A component's
// concurrency contract (spec §5: single selector thread) means this mutex
// is rarely contended; it exists so signals remain safe to use outside a
// reactor loop too (tests, ad-hoc notifications).
type connectable struct {
	mu          sync.Mutex
	entries     []*slotEntry
	dispatching int
	dirty       bool
}

func (c *connectable) connect(fn any) *Connection {
	e := &slotEntry{valid: true, fn: fn}

	c.mu.Lock()
	c.entries = append(c.entries, e)
	c.mu.Unlock()

	return &Connection{owner: c, entry: e}
}

// clear invalidates and removes every connection, mirroring
// Connectable::clear() in the original.
func (c *connectable) clear() {
	c.mu.Lock()
	for _, e := range c.entries {
		e.valid = false
	}
	if c.dispatching > 0 {
		c.dirty = true
		c.mu.Unlock()
		return
	}
	c.entries = c.entries[:0]
	c.mu.Unlock()
}

// snapshot returns the entry pointers valid for this dispatch pass, along
// with a finish function implementing the Sentry's deferred-compaction
// contract (spec §4.2 dispatch algorithm).
func (c *connectable) snapshot() (entries []*slotEntry, finish func()) {
	c.mu.Lock()
	entries = append([]*slotEntry(nil), c.entries...)
	c.dispatching++
	c.mu.Unlock()

	return entries, func() {
		c.mu.Lock()
		c.dispatching--
		if c.dispatching == 0 && c.dirty {
			c.compactLocked()
			c.dirty = false
		}
		c.mu.Unlock()
	}
}

// compactLocked removes invalidated entries. Caller must hold c.mu.
func (c *connectable) compactLocked() {
	kept := c.entries[:0]
	for _, e := range c.entries {
		if e.valid {
			kept = append(kept, e)
		}
	}
	c.entries = kept
}

func (c *connectable) close(e *slotEntry) {
	c.mu.Lock()
	e.valid = false
	if c.dispatching > 0 {
		c.dirty = true
	} else {
		c.compactLocked()
	}
	c.mu.Unlock()
}

func (c *connectable) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		if e.valid {
			n++
		}
	}
	return n
}

// Connection is the handle returned by Connect; closing it removes the
// slot from its signal. Closing twice is a no-op (spec §3: "closing a
// Connection flips its valid flag to false").
type Connection struct {
	owner *connectable
	entry *slotEntry
}

// Close invalidates the connection. Idempotent.
func (c *Connection) Close() {
	if c == nil || c.owner == nil {
		return
	}
	c.owner.close(c.entry)
}

// Valid reports whether the connection is still active.
func (c *Connection) Valid() bool {
	if c == nil || c.entry == nil {
		return false
	}
	c.owner.mu.Lock()
	defer c.owner.mu.Unlock()
	return c.entry.valid
}
