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
	"net"
	"sync"
	"time"

	"github/sabouaram/reactorkit/rpc"
	"github/sabouaram/reactorkit/serial"
	"github/sabouaram/reactorkit/tcpsock"
)

// Client is a binrpc connection to a single server. The wire protocol
// carries no request id, so concurrent calls on one Client are
// serialized by mu - callers wanting concurrency open multiple Clients,
// exactly as a single cxxtools RemoteClient is bound to one connection.
type Client struct {
	mu   sync.Mutex
	conn net.Conn
}

var (
	_ rpc.Client      = (*Client)(nil)
	_ rpc.AsyncClient = (*Client)(nil)
)

// Dial connects to a binrpc server at address.
func Dial(ctx context.Context, address string, timeout time.Duration) (*Client, error) {
	c, err := tcpsock.Dial(ctx, address, timeout, nil)
	if err != nil {
		return nil, err
	}
	return &Client{conn: c.Raw()}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error { return c.conn.Close() }

// Call sends method(args) and blocks for the reply.
func (c *Client) Call(ctx context.Context, method string, args []*serial.SI) (*serial.SI, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetDeadline(deadline)
		defer c.conn.SetDeadline(time.Time{})
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	req, err := EncodeRequest(method, args)
	if err != nil {
		return nil, err
	}
	if err := writeFrame(c.conn, req); err != nil {
		return nil, err
	}

	data, err := readFrame(c.conn)
	if err != nil {
		return nil, err
	}
	if IsException(data) {
		code, message, err := DecodeException(data)
		if err != nil {
			return nil, err
		}
		return nil, &rpc.Error{Code: code, Message: message}
	}
	return DecodeResponse(data)
}

// Begin starts method(args) on its own goroutine and returns
// immediately with a handle whose End blocks for the result.
func (c *Client) Begin(ctx context.Context, method string, args []*serial.SI) (*rpc.Call, error) {
	callCtx, cancel := context.WithCancel(ctx)
	call := rpc.NewCall(cancel)
	go func() {
		result, err := c.Call(callCtx, method, args)
		call.Resolve(result, err)
	}()
	return call, nil
}
