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

package rpoll

import "time"

// Event reports readiness for one registered descriptor.
type Event struct {
	Fd       int
	Readable bool
	Writable bool
}

// Poller is the minimal OS readiness-wait contract the Selector needs.
// Implementations are not required to be safe for concurrent Wait calls;
// the Selector never makes two at once.
type Poller interface {
	// Register begins watching fd for the given directions.
	Register(fd int, read, write bool) error
	// Modify updates the watched directions for an already-registered fd.
	Modify(fd int, read, write bool) error
	// Unregister stops watching fd.
	Unregister(fd int) error
	// Wait blocks up to timeout (or indefinitely, if negative) and returns
	// every descriptor that became ready.
	Wait(timeout time.Duration) ([]Event, error)
	Close() error
}
