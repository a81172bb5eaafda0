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

package bufsocket

import (
	"sync"

	"github/sabouaram/reactorkit/iodevice"
	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/signal"
	"github/sabouaram/reactorkit/tcpsock"
)

// BufferedSocket chains two output vectors (current and next) ahead of a
// tcpsock connection and accumulates inbound bytes into a single input
// buffer the caller drains at its own pace. Embedding *iodevice.Device
// makes a BufferedSocket a reactor.Selectable directly: Fd/OnReadable/
// OnWritable are promoted straight through to the device.
type BufferedSocket struct {
	*iodevice.Device

	conn  *tcpsock.Conn
	chunk []byte

	mu      sync.Mutex
	state   ConnState
	outCur  []byte
	outNext []byte
	writing bool
	input   []byte

	// OutputBufferEmpty fires exactly once per drain cycle, when the
	// output vectors both go empty and writing stops.
	OutputBufferEmpty signal.Signal0
	// OutputFailed carries any error raised by the underlying connection
	// while writing.
	OutputFailed signal.Signal1[error]
	// InputAvailable fires each time new bytes are appended to the
	// accumulated input buffer.
	InputAvailable signal.Signal0
	// InputFailed carries any error raised by the underlying connection
	// while reading.
	InputFailed signal.Signal1[error]
}

// New wraps conn, ready to be registered with a reactor.Selector via its
// promoted Fd/OnReadable/OnWritable methods.
func New(conn *tcpsock.Conn) *BufferedSocket {
	dev := iodevice.New(conn, conn.Fd())
	bs := &BufferedSocket{
		Device: dev,
		conn:   conn,
		chunk:  make([]byte, DefaultBufferSize),
		state:  ConnectionNew,
	}

	dev.InputReady.Connect(bs.onEndRead)
	dev.ReadFailed.Connect(bs.onReadFailed)
	dev.OutputReady.Connect(bs.onEndWrite)
	dev.WriteFailed.Connect(bs.onWriteFailed)

	return bs
}

// State reports the phase this socket is currently passing through.
func (bs *BufferedSocket) State() ConnState {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return bs.state
}

// StartReading arms the device for the first read; onEndRead re-arms it
// after every completed cycle until EOF.
func (bs *BufferedSocket) StartReading() error {
	bs.mu.Lock()
	bs.state = ConnectionRead
	bs.mu.Unlock()
	return bs.Device.BeginRead(bs.chunk)
}

// InputBuffer returns the currently accumulated, unread input. The slice
// aliases internal storage and is only valid until the next Consume or
// read completion; copy it if retaining past that point.
func (bs *BufferedSocket) InputBuffer() []byte {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return bs.input
}

// Consume removes the first n bytes of the accumulated input buffer.
func (bs *BufferedSocket) Consume(n int) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	if n <= 0 {
		return
	}
	if n >= len(bs.input) {
		bs.input = bs.input[:0]
		return
	}
	bs.input = append(bs.input[:0], bs.input[n:]...)
}

// OutputSize reports the total bytes still queued for write, across both
// the current and next output vectors, for back-pressure decisions.
func (bs *BufferedSocket) OutputSize() int {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return len(bs.outCur) + len(bs.outNext)
}

// Write appends p to the output. While a write is already in flight, p is
// appended to outputBufferNext; it becomes current once the present
// transfer drains (spec's chained-output-vector contract).
func (bs *BufferedSocket) Write(p []byte) error {
	bs.mu.Lock()
	bs.state = ConnectionWrite
	if bs.writing {
		bs.outNext = append(bs.outNext, p...)
		bs.mu.Unlock()
		return nil
	}
	bs.writing = true
	bs.outCur = append(bs.outCur[:0], p...)
	cur := bs.outCur
	bs.mu.Unlock()

	if err := bs.Device.BeginWrite(cur); err != nil {
		bs.fail(err)
		return err
	}
	return nil
}

func (bs *BufferedSocket) onEndRead() {
	n, eof, err := bs.Device.EndRead()
	if err != nil {
		bs.onReadFailed(err)
		return
	}

	if n > 0 {
		bs.mu.Lock()
		bs.input = append(bs.input, bs.chunk[:n]...)
		bs.mu.Unlock()
		bs.InputAvailable.Emit()
	}

	if eof {
		bs.mu.Lock()
		bs.state = ConnectionCloseRead
		bs.mu.Unlock()
		return
	}

	if err := bs.Device.BeginRead(bs.chunk); err != nil {
		bs.onReadFailed(err)
	}
}

func (bs *BufferedSocket) onEndWrite() {
	n, err := bs.Device.EndWrite()
	if err != nil {
		bs.onWriteFailed(err)
		return
	}

	bs.mu.Lock()
	if n < len(bs.outCur) {
		bs.outCur = bs.outCur[n:]
		cur := bs.outCur
		bs.mu.Unlock()
		if err := bs.Device.BeginWrite(cur); err != nil {
			bs.fail(err)
		}
		return
	}

	if len(bs.outNext) > 0 {
		bs.outCur, bs.outNext = bs.outNext, bs.outCur[:0]
		cur := bs.outCur
		bs.mu.Unlock()
		if err := bs.Device.BeginWrite(cur); err != nil {
			bs.fail(err)
		}
		return
	}

	bs.writing = false
	bs.outCur = bs.outCur[:0]
	bs.state = ConnectionCloseWrite
	bs.mu.Unlock()
	bs.OutputBufferEmpty.Emit()
}

func (bs *BufferedSocket) onReadFailed(err error) {
	if filtered := ErrorFilter(unwrapForFilter(err)); filtered == nil {
		return
	}
	bs.InputFailed.Emit(err)
}

func (bs *BufferedSocket) onWriteFailed(err error) {
	bs.fail(err)
}

func (bs *BufferedSocket) fail(err error) {
	if filtered := ErrorFilter(unwrapForFilter(err)); filtered == nil {
		bs.mu.Lock()
		bs.writing = false
		bs.mu.Unlock()
		return
	}
	bs.mu.Lock()
	bs.writing = false
	bs.mu.Unlock()
	bs.OutputFailed.Emit(err)
}

// unwrapForFilter recovers the underlying net error ErrorFilter expects to
// inspect, since iodevice.Device wraps transfer failures in a rerr.Error
// before emitting ReadFailed/WriteFailed.
func unwrapForFilter(err error) error {
	if ce, ok := err.(rerr.Error); ok {
		if parents := ce.Unwrap(); len(parents) > 0 {
			return parents[0]
		}
	}
	return err
}

// Close releases the underlying connection.
func (bs *BufferedSocket) Close() error {
	bs.mu.Lock()
	bs.state = ConnectionClose
	bs.mu.Unlock()
	return bs.conn.Close()
}
