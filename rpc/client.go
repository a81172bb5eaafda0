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

package rpc

import (
	"context"

	"github/sabouaram/reactorkit/serial"
)

// Client is what every transport's client side implements: send method
// with args and block for the reply. xmlrpc, jsonrpc and binrpc each
// provide one, wrapping an httpd/tcpsock/bufsocket connection.
type Client interface {
	Call(ctx context.Context, method string, args []*serial.SI) (*serial.SI, error)
}

// AsyncClient is the non-blocking counterpart: Begin hands back a Call
// handle immediately, and the caller decides when (or whether) to wait
// for it.
type AsyncClient interface {
	Begin(ctx context.Context, method string, args []*serial.SI) (*Call, error)
}

// Call is an in-flight asynchronous request. Exactly one of End or
// Cancel should be used to retire it.
type Call struct {
	done   chan struct{}
	result *serial.SI
	err    error
	cancel func()
}

// NewCall constructs a Call whose result is delivered by calling
// Resolve exactly once. Transport client implementations use this to
// build the handle Begin returns.
func NewCall(cancel func()) *Call {
	if cancel == nil {
		cancel = func() {}
	}
	return &Call{done: make(chan struct{}), cancel: cancel}
}

// Resolve delivers the call's outcome and wakes any End waiting on it.
// Calling it more than once is a no-op.
func (c *Call) Resolve(result *serial.SI, err error) {
	select {
	case <-c.done:
		return
	default:
	}
	c.result, c.err = result, err
	close(c.done)
}

// End blocks until the call resolves or ctx is done, whichever comes
// first.
func (c *Call) End(ctx context.Context) (*serial.SI, error) {
	select {
	case <-c.done:
		return c.result, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cancel abandons the call: it asks the underlying transport to drop
// the in-flight request and unblocks any pending End with
// context.Canceled.
func (c *Call) Cancel() {
	c.cancel()
	c.Resolve(nil, context.Canceled)
}

// RemoteProcedure binds a Client to a fixed method name, the client
// analogue of ServiceProcedure on the server side.
type RemoteProcedure struct {
	client Client
	method string
}

// NewRemoteProcedure returns a RemoteProcedure that calls method on c.
func NewRemoteProcedure(c Client, method string) *RemoteProcedure {
	return &RemoteProcedure{client: c, method: method}
}

// Call marshals args to SI, invokes the procedure and, if out is not
// nil, assigns the result into it.
func (r *RemoteProcedure) Call(ctx context.Context, out any, args ...any) error {
	siArgs, err := ToArgs(args...)
	if err != nil {
		return err
	}
	result, err := r.client.Call(ctx, r.method, siArgs)
	if err != nil {
		return err
	}
	if out == nil || result == nil {
		return nil
	}
	return serial.Assign(result, out)
}

// ToArgs converts a list of Go values into the SI slice every
// transport's Client.Call expects.
func ToArgs(args ...any) ([]*serial.SI, error) {
	out := make([]*serial.SI, len(args))
	for i, a := range args {
		si, err := serial.ToSI(a)
		if err != nil {
			return nil, err
		}
		out[i] = si
	}
	return out, nil
}
