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

// Package iodevice implements the byte-oriented, non-blocking transfer
// contract every reactorkit I/O endpoint builds on: a state machine
// (Idle/Reading/Writing/Avail) layered over reactor.Selectable, driving a
// caller-provided buffer through beginRead/endRead and beginWrite/endWrite.
//
// A Device never blocks. beginRead either completes eagerly (entering Avail
// and emitting InputReady synchronously) or registers read interest with
// its Selector and completes later from OnReadable, again ending in Avail
// and an InputReady emission. endRead/endWrite hand the transferred byte
// count back to the caller and return the device to Idle. cancel forces
// Idle from any state, discarding whatever transfer was in flight.
package iodevice
