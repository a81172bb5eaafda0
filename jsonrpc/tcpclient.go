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
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github/sabouaram/reactorkit/rpc"
	"github/sabouaram/reactorkit/serial"
	"github/sabouaram/reactorkit/tcpsock"
)

// TCPClient is a jsonrpc connection to a single TCP server. Like
// binrpc.Client, calls on one connection are serialized by mu; callers
// wanting concurrency dial multiple TCPClients.
type TCPClient struct {
	mu     sync.Mutex
	conn   net.Conn
	r      *bufio.Reader
	nextID atomic.Int64
}

var (
	_ rpc.Client      = (*TCPClient)(nil)
	_ rpc.AsyncClient = (*TCPClient)(nil)
)

// DialTCP connects to a jsonrpc TCP server at address.
func DialTCP(ctx context.Context, address string, timeout time.Duration) (*TCPClient, error) {
	c, err := tcpsock.Dial(ctx, address, timeout, nil)
	if err != nil {
		return nil, err
	}
	raw := c.Raw()
	return &TCPClient{conn: raw, r: bufio.NewReader(raw)}, nil
}

// Close releases the underlying connection.
func (c *TCPClient) Close() error { return c.conn.Close() }

func (c *TCPClient) Call(ctx context.Context, method string, args []*serial.SI) (*serial.SI, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetDeadline(deadline)
		defer c.conn.SetDeadline(time.Time{})
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := serial.NewInt64("", c.nextID.Add(1))
	body, err := EncodeRequest(method, args, id)
	if err != nil {
		return nil, err
	}
	if _, err := c.conn.Write(append(body, '\n')); err != nil {
		return nil, err
	}

	line, err := c.r.ReadBytes('\n')
	if err != nil {
		return nil, err
	}
	line = bytes.TrimRight(line, "\r\n")

	result, rpcErr, _, err := DecodeReply(line)
	if err != nil {
		return nil, err
	}
	if rpcErr != nil {
		return nil, rpcErr
	}
	return result, nil
}

func (c *TCPClient) Begin(ctx context.Context, method string, args []*serial.SI) (*rpc.Call, error) {
	callCtx, cancel := context.WithCancel(ctx)
	call := rpc.NewCall(cancel)
	go func() {
		result, err := c.Call(callCtx, method, args)
		call.Resolve(result, err)
	}()
	return call, nil
}
