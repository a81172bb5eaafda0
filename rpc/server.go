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

	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/serial"
)

// Dispatch runs the server-side invocation pipeline every transport
// shares: look the method up, invoke it with the decoded arguments,
// and normalize whatever comes back into either a result SI or a
// *rpc.Error ready to be written back on the wire. A transport only
// has to decode a request down to (method, args) and encode the
// (result, *Error) pair back out.
func Dispatch(ctx context.Context, reg *Registry, method string, args []*serial.SI) (*serial.SI, *Error) {
	proc, ok := reg.Lookup(method)
	if !ok {
		return nil, MethodNotFound(method)
	}

	result, err := proc.EndCall(ctx, args)
	if err == nil {
		return result, nil
	}

	if rpcErr, ok := err.(*Error); ok {
		return nil, rpcErr
	}
	if rerr.HasKind(err, rerr.KindLogic) || rerr.HasKind(err, rerr.KindSerialization) {
		return nil, InvalidParams(err.Error())
	}
	return nil, InternalError(err.Error())
}
