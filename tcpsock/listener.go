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
	"time"

	"github/sabouaram/reactorkit/reactor"
	"github/sabouaram/reactorkit/signal"
)

// Listener is a reactor.Selectable wrapping a TCP listener. It sits in
// StateAvail: whenever the OS reports it readable, a connection is pending
// and can be accepted without blocking.
type Listener struct {
	reactor.Base

	ln   net.Listener
	fd   int
	tlsC *tls.Config

	// Accepted fires with a freshly accepted connection.
	Accepted signal.Signal1[*Conn]
	// AcceptFailed fires when Accept returns a non-spurious error.
	AcceptFailed signal.Signal1[error]
}

// Listen binds address over TCP. If tlsConfig is non-nil, accepted
// connections are TLS-wrapped before being handed to Accepted.
func Listen(address string, tlsConfig *tls.Config) (*Listener, error) {
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return nil, err
	}

	l := &Listener{ln: ln, tlsC: tlsConfig}
	l.fd, _ = fdOf(ln)
	l.SetState(reactor.StateAvail)
	return l, nil
}

// Fd implements reactor.Selectable.
func (l *Listener) Fd() int { return l.fd }

// Addr returns the listener's bound address.
func (l *Listener) Addr() net.Addr { return l.ln.Addr() }

// OnReadable implements reactor.Selectable: a pending connection is
// accepted without blocking and handed to Accepted (or AcceptFailed).
func (l *Listener) OnReadable() {
	type deadliner interface {
		SetDeadline(time.Time) error
	}
	if d, ok := l.ln.(deadliner); ok {
		_ = d.SetDeadline(time.Now())
	}

	nc, err := l.ln.Accept()
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return
		}
		l.AcceptFailed.Emit(err)
		return
	}

	if l.tlsC != nil {
		nc = tls.Server(nc, l.tlsC)
	}

	c, err := newConn(nc)
	if err != nil {
		l.AcceptFailed.Emit(err)
		return
	}
	l.Accepted.Emit(c)
}

// OnWritable implements reactor.Selectable; a listening socket never
// registers write interest.
func (l *Listener) OnWritable() {}

// Close stops accepting new connections.
func (l *Listener) Close() error {
	return l.ln.Close()
}
