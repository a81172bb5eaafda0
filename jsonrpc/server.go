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

package jsonrpc

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net"
	"time"

	"github/sabouaram/reactorkit/reactor"
	"github/sabouaram/reactorkit/rlog"
	"github/sabouaram/reactorkit/rpc"
	"github/sabouaram/reactorkit/tcpsock"
)

// TCPServer accepts connections through a reactor.Selector, exactly like
// binrpc.Server and every other reactorkit listener, then hands each
// accepted connection to its own goroutine: a JSON-RPC/TCP exchange
// blocks for a whole newline-terminated envelope, so it fits a
// goroutine-per-connection model better than an OnReadable callback.
type TCPServer struct {
	sel      *reactor.Selector
	ln       *tcpsock.Listener
	registry *rpc.Registry
	log      rlog.FuncLog
}

// NewTCPServer binds address and prepares it to dispatch against reg
// once Serve runs. log may be nil.
func NewTCPServer(sel *reactor.Selector, address string, reg *rpc.Registry, log rlog.FuncLog) (*TCPServer, error) {
	ln, err := tcpsock.Listen(address, nil)
	if err != nil {
		return nil, err
	}
	s := &TCPServer{sel: sel, ln: ln, registry: reg, log: log}
	ln.Accepted.Connect(func(c *tcpsock.Conn) { go s.handle(c.Raw()) })
	ln.AcceptFailed.Connect(func(err error) {
		rlog.Call(s.log).Warn("jsonrpc: accept failed", err)
	})
	if err := sel.Add(ln); err != nil {
		return nil, err
	}
	return s, nil
}

// Addr returns the listener's bound address.
func (s *TCPServer) Addr() net.Addr { return s.ln.Addr() }

// Close stops accepting new connections.
func (s *TCPServer) Close() error { return s.ln.Close() }

// Serve drives the selector until ctx is done.
func (s *TCPServer) Serve(ctx context.Context) error {
	for ctx.Err() == nil {
		if _, err := s.sel.Wait(100 * time.Millisecond); err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (s *TCPServer) handle(conn net.Conn) {
	defer conn.Close()
	ctx := context.Background()
	r := bufio.NewReader(conn)

	for {
		line, err := r.ReadBytes('\n')
		if len(line) == 0 {
			if err != nil && err != io.EOF {
				rlog.Call(s.log).Debug("jsonrpc: connection ended", err)
			}
			return
		}
		line = bytes.TrimRight(line, "\r\n")

		method, args, id, decErr := DecodeRequest(line)
		if decErr != nil {
			if id == nil {
				continue
			}
			reply, encErr := EncodeError(id, rpc.ParseError(decErr.Error()))
			if encErr == nil {
				_ = writeLine(conn, reply)
			}
			continue
		}

		result, rpcErr := rpc.Dispatch(ctx, s.registry, method, args)
		if id == nil {
			continue
		}

		var reply []byte
		if rpcErr != nil {
			reply, err = EncodeError(id, rpcErr)
		} else {
			reply, err = EncodeResult(id, result)
		}
		if err != nil {
			rlog.Call(s.log).Error("jsonrpc: encode reply", err)
			return
		}
		if err := writeLine(conn, reply); err != nil {
			return
		}
	}
}

func writeLine(conn net.Conn, body []byte) error {
	_, err := conn.Write(append(body, '\n'))
	return err
}
