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

package tcpsock

import (
	"crypto/tls"
	"net"
	"syscall"
	"time"

	"github/sabouaram/reactorkit/iodevice"
)

// Conn wraps a net.Conn as an iodevice.RawIO: Read/Write apply a
// past deadline before each attempt so a call that would otherwise block
// instead returns iodevice.ErrWouldBlock immediately, letting the owning
// iodevice.Device arm readiness on the reactor and retry from OnReadable/
// OnWritable.
type Conn struct {
	nc net.Conn
	fd int
}

var _ iodevice.RawIO = (*Conn)(nil)

func newConn(nc net.Conn) (*Conn, error) {
	var raw any = nc
	if tc, ok := nc.(*tls.Conn); ok {
		raw = tc.NetConn()
	}
	fd, err := fdOf(raw)
	if err != nil {
		return nil, err
	}
	return &Conn{nc: nc, fd: fd}, nil
}

// Fd returns the descriptor backing this connection, for registration with
// a reactor.Selector.
func (c *Conn) Fd() int { return c.fd }

// Raw returns the underlying net.Conn, for callers that need
// LocalAddr/RemoteAddr or to set socket options directly.
func (c *Conn) Raw() net.Conn { return c.nc }

func (c *Conn) Read(p []byte) (int, error) {
	if err := c.nc.SetReadDeadline(time.Now()); err != nil {
		return 0, err
	}
	n, err := c.nc.Read(p)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return 0, iodevice.ErrWouldBlock
		}
		return n, err
	}
	return n, nil
}

func (c *Conn) Write(p []byte) (int, error) {
	if err := c.nc.SetWriteDeadline(time.Now()); err != nil {
		return 0, err
	}
	n, err := c.nc.Write(p)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return n, iodevice.ErrWouldBlock
		}
		return n, err
	}
	return n, nil
}

// Close releases the underlying connection.
func (c *Conn) Close() error {
	return c.nc.Close()
}

// fdOf extracts the OS descriptor behind anything implementing
// syscall.Conn (net.Conn and net.Listener both qualify for TCP), the same
// SyscallConn-based idiom used by direct-epoll reactor implementations in
// the wild to integrate standard net package types with a custom poller.
func fdOf(v any) (int, error) {
	sc, ok := v.(syscall.Conn)
	if !ok {
		return -1, nil
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		return -1, err
	}
	var fd int
	ctlErr := raw.Control(func(f uintptr) { fd = int(f) })
	if ctlErr != nil {
		return -1, ctlErr
	}
	return fd, nil
}
