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

// Package reactor implements a single-threaded, cooperative event loop that
// multiplexes I/O readiness on Selectables, timer expirations, and an
// external wake signal, dispatching every callback on its own goroutine-free
// run loop so nothing downstream needs locking (see reactorkit/signal).
//
// A Selector is the loop. Selectable is the base contract for anything the
// loop can wait on (sockets, pipes); Timer is a scheduled, optionally
// periodic, one-shot notification. Registering either with a Selector only
// takes effect on the next Wait/WaitUntil call; callbacks invoked from
// within a Wait may freely add or remove Selectables and Timers on the
// same Selector.
//
// The actual OS readiness wait is delegated to reactorkit/reactor/rpoll,
// which offers a real epoll backend on Linux (build-tagged) and a portable
// poll(2)-based fallback everywhere else.
package reactor
