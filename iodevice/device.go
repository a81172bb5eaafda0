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

import (
	"io"
	"sync"

	"github/sabouaram/reactorkit/reactor"
	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/signal"
)

// Device drives a RawIO through the Idle/Reading/Writing/Avail state
// machine. It embeds reactor.Base so it satisfies reactor.Selectable and
// can be registered with a Selector directly.
type Device struct {
	reactor.Base

	raw RawIO
	fd  int

	mu       sync.Mutex
	readBuf  []byte
	readN    int
	readEOF  bool
	writeBuf []byte
	writeN   int

	// InputReady fires when a read completes (Reading or eager path) and
	// the device enters Avail with data ready to be consumed via EndRead.
	InputReady signal.Signal0
	// OutputReady fires symmetrically once a write completes.
	OutputReady signal.Signal0
	// ReadFailed/WriteFailed fire whenever a transfer fails: from
	// OnReadable/OnWritable, where no caller waits on a return value, and
	// also on the eager path inside BeginRead/BeginWrite, which in addition
	// returns the same error to its caller.
	ReadFailed  signal.Signal1[error]
	WriteFailed signal.Signal1[error]
}

// New wraps raw, using fd as the descriptor registered with a Selector.
// Pass fd = -1 for a RawIO with no OS descriptor (it will never be woken
// by OnReadable/OnWritable and must complete eagerly every time).
func New(raw RawIO, fd int) *Device {
	d := &Device{raw: raw, fd: fd}
	d.SetState(reactor.StateIdle)
	return d
}

// Fd implements reactor.Selectable.
func (d *Device) Fd() int { return d.fd }

// BeginRead starts a transfer into buf. Idle -> Reading (or eagerly ->
// Avail, emitting InputReady before BeginRead returns, if the data is
// already available).
func (d *Device) BeginRead(buf []byte) error {
	if d.State() != reactor.StateIdle {
		return rerr.New(rerr.KindLogic, "iodevice: beginRead from non-idle state")
	}

	d.mu.Lock()
	d.readBuf = buf
	d.readN = 0
	d.readEOF = false
	d.mu.Unlock()

	return d.tryRead()
}

// EndRead returns the bytes transferred and whether EOF was observed, and
// returns the device to Idle. Valid only while Avail.
func (d *Device) EndRead() (n int, eof bool, err error) {
	if d.State() != reactor.StateAvail {
		return 0, false, rerr.New(rerr.KindLogic, "iodevice: endRead outside Avail")
	}

	d.mu.Lock()
	n, eof = d.readN, d.readEOF
	d.readBuf = nil
	d.mu.Unlock()

	d.SetState(reactor.StateIdle)
	return n, eof, nil
}

// BeginWrite starts a transfer of buf. Idle -> Writing (or eagerly ->
// Avail, emitting OutputReady, if the write completes immediately).
func (d *Device) BeginWrite(buf []byte) error {
	if d.State() != reactor.StateIdle {
		return rerr.New(rerr.KindLogic, "iodevice: beginWrite from non-idle state")
	}

	d.mu.Lock()
	d.writeBuf = buf
	d.writeN = 0
	d.mu.Unlock()

	return d.tryWrite()
}

// EndWrite returns the bytes transferred and returns the device to Idle.
// Valid only while Avail.
func (d *Device) EndWrite() (n int, err error) {
	if d.State() != reactor.StateAvail {
		return 0, rerr.New(rerr.KindLogic, "iodevice: endWrite outside Avail")
	}

	d.mu.Lock()
	n = d.writeN
	d.writeBuf = nil
	d.mu.Unlock()

	d.SetState(reactor.StateIdle)
	return n, nil
}

// Cancel forces Idle from any state, discarding whatever transfer was in
// flight. Buffers are not released, only detached from the device.
func (d *Device) Cancel() {
	d.mu.Lock()
	d.readBuf = nil
	d.writeBuf = nil
	d.mu.Unlock()
	d.SetState(reactor.StateIdle)
}

// OnReadable implements reactor.Selectable; invoked by the owning Selector
// once the descriptor reports read readiness while in the Reading state.
func (d *Device) OnReadable() {
	if d.State() != reactor.StateReading {
		return
	}
	_ = d.tryRead()
}

// OnWritable implements reactor.Selectable; symmetric to OnReadable.
func (d *Device) OnWritable() {
	if d.State() != reactor.StateWriting {
		return
	}
	_ = d.tryWrite()
}

func (d *Device) tryRead() error {
	d.mu.Lock()
	buf := d.readBuf
	d.mu.Unlock()

	n, err := d.raw.Read(buf)
	switch {
	case err == ErrWouldBlock:
		d.SetState(reactor.StateReading)
		return nil
	case err != nil && err != io.EOF:
		d.SetState(reactor.StateIdle)
		wrapped := rerr.Wrap(rerr.KindIO, "iodevice: read", err)
		d.ReadFailed.Emit(wrapped)
		return wrapped
	}

	d.mu.Lock()
	d.readN = n
	d.readEOF = err == io.EOF
	d.mu.Unlock()

	d.SetState(reactor.StateAvail)
	d.InputReady.Emit()
	return nil
}

func (d *Device) tryWrite() error {
	d.mu.Lock()
	buf := d.writeBuf
	d.mu.Unlock()

	n, err := d.raw.Write(buf)
	if err == ErrWouldBlock {
		d.SetState(reactor.StateWriting)
		return nil
	}
	if err != nil {
		d.SetState(reactor.StateIdle)
		wrapped := rerr.Wrap(rerr.KindIO, "iodevice: write", err)
		d.WriteFailed.Emit(wrapped)
		return wrapped
	}

	d.mu.Lock()
	d.writeN = n
	d.mu.Unlock()

	d.SetState(reactor.StateAvail)
	d.OutputReady.Emit()
	return nil
}
