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

package binrpc

import (
	"context"
	"io"
	"net"
	"time"

	"github/sabouaram/reactorkit/reactor"
	"github/sabouaram/reactorkit/rlog"
	"github/sabouaram/reactorkit/rpc"
	"github/sabouaram/reactorkit/tcpsock"
)

// Server accepts binrpc connections through a reactor.Selector (so
// accept itself stays on the cooperative event loop like every other
// reactorkit listener) and hands each accepted connection to its own
// goroutine for the actual request/response exchange: a binary RPC
// conversation blocks waiting for full frames rather than yielding
// between partial reads, so a goroutine-per-connection model suits it
// better than folding the whole exchange into OnReadable callbacks.
type Server struct {
	sel      *reactor.Selector
	ln       *tcpsock.Listener
	registry *rpc.Registry
	log      rlog.FuncLog
}

// NewServer binds address and prepares it to dispatch against reg once
// Serve runs. log may be nil.
func NewServer(sel *reactor.Selector, address string, reg *rpc.Registry, log rlog.FuncLog) (*Server, error) {
	ln, err := tcpsock.Listen(address, nil)
	if err != nil {
		return nil, err
	}
	s := &Server{sel: sel, ln: ln, registry: reg, log: log}
	ln.Accepted.Connect(func(c *tcpsock.Conn) { go s.handle(c.Raw()) })
	ln.AcceptFailed.Connect(func(err error) {
		rlog.Call(s.log).Warn("binrpc: accept failed", err)
	})
	if err := sel.Add(ln); err != nil {
		return nil, err
	}
	return s, nil
}

// Addr returns the listener's bound address.
func (s *Server) Addr() net.Addr { return s.ln.Addr() }

// Close stops accepting new connections.
func (s *Server) Close() error { return s.ln.Close() }

// Serve drives the selector until ctx is done. The caller is expected
// to run this on its own goroutine; accepted connections are handled
// independently of this loop.
func (s *Server) Serve(ctx context.Context) error {
	for ctx.Err() == nil {
		if _, err := s.sel.Wait(100 * time.Millisecond); err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	ctx := context.Background()
	for {
		data, err := readFrame(conn)
		if err != nil {
			if err != io.EOF {
				rlog.Call(s.log).Debug("binrpc: connection ended", err)
			}
			return
		}

		method, args, err := DecodeRequest(data)
		if err != nil {
			reply, encErr := EncodeException(rpc.CodeParseError, err.Error())
			if encErr == nil {
				_ = writeFrame(conn, reply)
			}
			continue
		}

		result, rpcErr := rpc.Dispatch(ctx, s.registry, method, args)
		var reply []byte
		if rpcErr != nil {
			reply, err = EncodeException(rpcErr.Code, rpcErr.Message)
		} else {
			reply, err = EncodeResponse(result)
		}
		if err != nil {
			rlog.Call(s.log).Error("binrpc: encode reply", err)
			return
		}
		if err := writeFrame(conn, reply); err != nil {
			return
		}
	}
}
