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

package httpd

import (
	"fmt"
	"sync"

	"github/sabouaram/reactorkit/bufsocket"
	"github/sabouaram/reactorkit/httpwire"
	"github/sabouaram/reactorkit/reactor"
	"github/sabouaram/reactorkit/signal"
	"github/sabouaram/reactorkit/tcpsock"
)

// connPhase tracks where a connection sits in the request lifecycle
// described by the Connection lifecycle contract: reading headers (which
// doubles as the idle phase between keep-alive requests) or reading a body.
type connPhase int

const (
	phaseHeaders connPhase = iota
	phaseBody
)

// conn drives one accepted socket through parse -> route -> body -> reply
// -> (keep-alive reset | close), per the Connection lifecycle contract.
type conn struct {
	srv   *Server
	sel   *reactor.Selector
	bs    *bufsocket.BufferedSocket
	cfg   Config
	timer *reactor.Timer

	mu        sync.Mutex
	phase     connPhase
	parser    *httpwire.Parser
	msg       *httpwire.Message
	bodyWant  int64
	body      []byte
	destroyed bool
}

func newConn(srv *Server, sel *reactor.Selector, c *tcpsock.Conn, cfg Config) *conn {
	co := &conn{
		srv:    srv,
		sel:    sel,
		bs:     bufsocket.New(c),
		cfg:    cfg,
		timer:  reactor.NewTimer(),
		parser: httpwire.NewRequestParser(),
	}

	co.bs.InputAvailable.Connect(co.onInput)
	co.bs.InputFailed.Connect(func(error) { co.destroy() })
	co.bs.OutputFailed.Connect(func(error) { co.destroy() })
	co.timer.Timeout.Connect(func(*reactor.Timer) { co.onTimeout() })

	return co
}

func (co *conn) armReadTimeout() {
	co.timer.Start(co.cfg.ReadTimeout, false)
}

func (co *conn) armKeepAliveTimeout() {
	co.timer.Start(co.cfg.KeepAliveTimeout, false)
}

func (co *conn) onTimeout() {
	co.destroy()
}

// onInput drains whatever bytes have accumulated since the last call,
// feeding the parser one byte at a time (httpwire.Parser's restartable
// contract means any chunking here is safe) and then the body once the
// header block is done.
func (co *conn) onInput() {
	co.mu.Lock()
	if co.destroyed {
		co.mu.Unlock()
		return
	}
	co.armReadTimeout()
	buf := co.bs.InputBuffer()
	consumed := 0

	if co.phase == phaseHeaders {
		for consumed < len(buf) {
			status, err := co.parser.Feed(buf[consumed])
			consumed++
			if err != nil {
				co.mu.Unlock()
				co.bs.Consume(consumed)
				co.sendFixedError(400)
				return
			}
			if status == httpwire.StatusDone {
				co.msg = co.parser.Message()
				n, _ := co.msg.ContentLength()
				co.bodyWant = n
				co.body = co.body[:0]
				co.phase = phaseBody
				break
			}
		}
	}

	if co.phase == phaseBody {
		remaining := int(co.bodyWant) - len(co.body)
		take := len(buf) - consumed
		if take > remaining {
			take = remaining
		}
		if take > 0 {
			co.body = append(co.body, buf[consumed:consumed+take]...)
			consumed += take
		}
	}

	bodyReady := co.phase == phaseBody && int64(len(co.body)) >= co.bodyWant
	msg := co.msg
	if bodyReady {
		msg.Body = append([]byte(nil), co.body...)
	}
	co.mu.Unlock()

	co.bs.Consume(consumed)

	if bodyReady {
		co.dispatch(msg)
	}
}

func (co *conn) dispatch(msg *httpwire.Message) {
	svc, ok := co.srv.route(msg.Path)
	var factory FuncResponder
	if ok {
		factory = svc.New
	} else {
		co.srv.mu.RLock()
		factory = co.srv.notFound
		co.srv.mu.RUnlock()
	}

	responder := factory()
	w := newResponseWriter(co.bs)

	if err := co.safeBeginRequest(responder, msg); err != nil {
		co.replyError(w, msg, err)
		return
	}
	if err := co.safeReply(responder, w, msg); err != nil {
		co.replyError(w, msg, err)
		return
	}
	if err := w.Flush(); err != nil {
		co.destroy()
		return
	}

	co.afterReply(msg)
}

func (co *conn) safeBeginRequest(r Responder, msg *httpwire.Message) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("httpd: panic in BeginRequest: %v", rec)
		}
	}()
	return r.BeginRequest(msg)
}

func (co *conn) safeReply(r Responder, w *ResponseWriter, msg *httpwire.Message) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("httpd: panic in Reply: %v", rec)
		}
	}()
	return r.Reply(w, msg)
}

// replyError implements the failure-semantics contract: a responder error
// degrades to a 500 reply with Connection: close appended, after which the
// connection is torn down once the reply drains.
func (co *conn) replyError(w *ResponseWriter, _ *httpwire.Message, _ error) {
	if !w.flushed {
		w.WriteHeader(500)
		w.Set("Connection", "close")
		w.Set("Content-Length", "0")
		_ = w.Flush()
	}
	co.closeAfterDrain()
}

func (co *conn) sendFixedError(status int) {
	w := newResponseWriter(co.bs)
	w.WriteHeader(status)
	w.Set("Connection", "close")
	w.Set("Content-Length", "0")
	_ = w.Flush()
	co.closeAfterDrain()
}

// afterReply implements step 5 of the Connection lifecycle contract: reset
// and keep the connection open on a negotiated keep-alive, otherwise close
// once the reply has drained.
func (co *conn) afterReply(msg *httpwire.Message) {
	if !msg.KeepAlive() {
		co.closeAfterDrain()
		return
	}

	co.mu.Lock()
	co.parser.Reset()
	co.phase = phaseHeaders
	co.bodyWant = 0
	co.body = co.body[:0]
	co.msg = nil
	co.mu.Unlock()

	co.armKeepAliveTimeout()
}

func (co *conn) closeAfterDrain() {
	if co.bs.OutputSize() == 0 {
		co.destroy()
		return
	}
	var c *signal.Connection
	c = co.bs.OutputBufferEmpty.Connect(func() {
		co.destroy()
		c.Close()
	})
}

func (co *conn) destroy() {
	co.mu.Lock()
	if co.destroyed {
		co.mu.Unlock()
		return
	}
	co.destroyed = true
	co.mu.Unlock()

	co.timer.Stop()
	_ = co.sel.RemoveTimer(co.timer)
	_ = co.sel.Remove(co.bs)
	_ = co.bs.Close()
}

// defaultNotFound is the stock Responder used when no HttpService matches
// and the server hasn't registered its own SetNotFound override.
func defaultNotFound(w *ResponseWriter, _ *httpwire.Message) error {
	w.WriteHeader(404)
	w.Set("Content-Length", "0")
	return nil
}
