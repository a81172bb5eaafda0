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

package iodevice

import "errors"

// ErrWouldBlock is returned by a RawIO when a non-blocking Read/Write has no
// data/capacity available right now. Device treats it as "arm readiness and
// wait", never as a failure.
var ErrWouldBlock = errors.New("iodevice: operation would block")

// RawIO is the non-blocking byte source/sink a Device drives. Implementations
// must return (0, ErrWouldBlock) instead of blocking when no data or buffer
// space is currently available (e.g. a socket in non-blocking mode
// translating EAGAIN), and (n, io.EOF) when the peer has closed cleanly.
type RawIO interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}
