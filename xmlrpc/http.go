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

package xmlrpc

import (
	"context"
	"strconv"

	"github/sabouaram/reactorkit/httpd"
	"github/sabouaram/reactorkit/httpwire"
	"github/sabouaram/reactorkit/rpc"
)

// HTTPHandler answers one XML-RPC methodCall per POST body, the
// protocol's only transport. A fault always rides back as HTTP 200
// with a <methodResponse><fault> body, per the XML-RPC convention of
// keeping the RPC-level error channel inside the envelope.
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

	method, args, err := DecodeCall(req.Body)
	if err != nil {
		body, encErr := EncodeFault(rpc.ParseError(err.Error()))
		if encErr != nil {
			return encErr
		}
		writeXML(w, 200, body)
		return nil
	}

	result, rpcErr := rpc.Dispatch(context.Background(), h.registry, method, args)

	var body []byte
	if rpcErr != nil {
		body, err = EncodeFault(rpcErr)
	} else {
		body, err = EncodeResponse(result)
	}
	if err != nil {
		return err
	}
	writeXML(w, 200, body)
	return nil
}

func writeXML(w *httpd.ResponseWriter, status int, body []byte) {
	w.WriteHeader(status)
	w.Set("Content-Type", "text/xml")
	w.Set("Content-Length", strconv.Itoa(len(body)))
	_, _ = w.Write(body)
}
