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

package rclient

import (
	"context"
	"net/http"
	"time"

	"github/sabouaram/reactorkit/binrpc"
	"github/sabouaram/reactorkit/jsonrpc"
	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/rpc"
	"github/sabouaram/reactorkit/serial"
	"github/sabouaram/reactorkit/xmlrpc"
)

// Protocol selects which of the four wire encodings a Client speaks.
type Protocol int

const (
	XMLRPCHTTP Protocol = iota
	JSONRPCHTTP
	JSONRPCTCP
	BinaryRPC
)

// Trace holds optional instrumentation callbacks fired around a call.
// Any of them may be nil.
type Trace struct {
	// OnConnect fires once, right after a TCP/binary transport dials.
	// HTTP transports have no persistent connection to report and never
	// call it.
	OnConnect func(address string)
	// OnRequest fires immediately before a call is sent.
	OnRequest func(method string)
	// OnResponse fires once the call has resolved, successfully or not.
	OnResponse func(method string, elapsed time.Duration, err error)
}

// Config selects a transport and its connection parameters.
type Config struct {
	Protocol Protocol
	// Address is a URL for the HTTP protocols, a host:port for
	// JSONRPCTCP and BinaryRPC.
	Address string
	// Timeout is the default per-call deadline applied when the
	// caller's context carries none. Zero means no default.
	Timeout time.Duration
	// DialTimeout bounds the initial connect for JSONRPCTCP and
	// BinaryRPC. Ignored by the HTTP protocols.
	DialTimeout time.Duration
	// HTTPClient overrides the *http.Client used by the HTTP
	// protocols. Nil uses http.DefaultClient.
	HTTPClient *http.Client
	Trace      Trace
}

// Client is the unified sync/async call surface: one type regardless
// of which Protocol it was dialed with.
type Client struct {
	address string
	sync    rpc.Client
	async   rpc.AsyncClient
	timeout time.Duration
	trace   Trace
	closeFn func() error
}

// Dial builds a Client for cfg.Protocol, connecting eagerly for the
// two connection-oriented transports and lazily (on first Call) for
// the two HTTP-based ones.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	c := &Client{address: cfg.Address, timeout: cfg.Timeout, trace: cfg.Trace, closeFn: func() error { return nil }}

	switch cfg.Protocol {
	case XMLRPCHTTP:
		cl := xmlrpc.NewHTTPClient(cfg.Address, cfg.HTTPClient)
		c.sync, c.async = cl, cl

	case JSONRPCHTTP:
		cl := jsonrpc.NewHTTPClient(cfg.Address, cfg.HTTPClient)
		c.sync, c.async = cl, cl

	case JSONRPCTCP:
		cl, err := jsonrpc.DialTCP(ctx, cfg.Address, cfg.DialTimeout)
		if err != nil {
			return nil, err
		}
		if cfg.Trace.OnConnect != nil {
			cfg.Trace.OnConnect(cfg.Address)
		}
		c.sync, c.async, c.closeFn = cl, cl, cl.Close

	case BinaryRPC:
		cl, err := binrpc.Dial(ctx, cfg.Address, cfg.DialTimeout)
		if err != nil {
			return nil, err
		}
		if cfg.Trace.OnConnect != nil {
			cfg.Trace.OnConnect(cfg.Address)
		}
		c.sync, c.async, c.closeFn = cl, cl, cl.Close

	default:
		return nil, rerr.New(rerr.KindLogic, "rclient: unknown protocol")
	}

	return c, nil
}

// Close releases the underlying transport. It is a no-op for the
// HTTP-based protocols, which own no persistent connection.
func (c *Client) Close() error { return c.closeFn() }

// Call invokes method synchronously, marshaling args and, if out is
// non-nil, assigning the result into it. ctx's deadline wins when
// present; otherwise the Client's configured Timeout applies.
func (c *Client) Call(ctx context.Context, method string, out any, args ...any) error {
	siArgs, err := rpc.ToArgs(args...)
	if err != nil {
		return err
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if c.trace.OnRequest != nil {
		c.trace.OnRequest(method)
	}
	start := time.Now()
	result, err := c.sync.Call(ctx, method, siArgs)
	if c.trace.OnResponse != nil {
		c.trace.OnResponse(method, time.Since(start), err)
	}
	if err != nil {
		return err
	}
	if out == nil || result == nil {
		return nil
	}
	return serial.Assign(result, out)
}

// Begin starts method asynchronously and returns immediately with a
// handle whose End blocks for the reply and whose Cancel abandons the
// call, the async counterpart to Call.
func (c *Client) Begin(ctx context.Context, method string, args ...any) (*rpc.Call, error) {
	siArgs, err := rpc.ToArgs(args...)
	if err != nil {
		return nil, err
	}

	ctx, _ = c.withTimeout(ctx)
	if c.trace.OnRequest != nil {
		c.trace.OnRequest(method)
	}

	call, err := c.async.Begin(ctx, method, siArgs)
	if err != nil {
		return nil, err
	}
	if c.trace.OnResponse != nil {
		go func() {
			start := time.Now()
			_, endErr := call.End(context.Background())
			c.trace.OnResponse(method, time.Since(start), endErr)
		}()
	}
	return call, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}
