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
	"context"
	"strconv"

	"github/sabouaram/reactorkit/httpd"
	"github/sabouaram/reactorkit/httpwire"
	"github/sabouaram/reactorkit/rpc"
)

// HTTPHandler answers one JSON-RPC envelope per POST body. It holds no
// per-request state, so the same instance can back every call a
// FuncResponder factory makes.
type HTTPHandler struct {
	registry *rpc.Registry
}

// NewHTTPHandler builds a handler dispatching against reg.
func NewHTTPHandler(reg *rpc.Registry) *HTTPHandler {
	return &HTTPHandler{registry: reg}
}

// Route returns a FuncResponder suitable for Server.Route.
func (h *HTTPHandler) Route() httpd.FuncResponder {
	return func() httpd.Responder { return h }
}

func (h *HTTPHandler) BeginRequest(_ *httpwire.Message) error { return nil }

func (h *HTTPHandler) Reply(w *httpd.ResponseWriter, req *httpwire.Message) error {
	if req.Method != "POST" {
		w.WriteHeader(405)
		w.Set("Allow", "POST")
		w.Set("Content-Length", "0")
		return nil
	}

	method, args, id, err := DecodeRequest(req.Body)
	if err != nil {
		body, encErr := EncodeError(nil, rpc.ParseError(err.Error()))
		if encErr != nil {
			return encErr
		}
		writeJSON(w, 200, body)
		return nil
	}

	result, rpcErr := rpc.Dispatch(context.Background(), h.registry, method, args)

	if id == nil {
		w.WriteHeader(204)
		w.Set("Content-Length", "0")
		return nil
	}

	var body []byte
	if rpcErr != nil {
		body, err = EncodeError(id, rpcErr)
	} else {
		body, err = EncodeResult(id, result)
	}
	if err != nil {
		return err
	}
	writeJSON(w, 200, body)
	return nil
}

func writeJSON(w *httpd.ResponseWriter, status int, body []byte) {
	w.WriteHeader(status)
	w.Set("Content-Type", "application/json")
	w.Set("Content-Length", strconv.Itoa(len(body)))
	_, _ = w.Write(body)
}
