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
	"regexp"

	"github/sabouaram/reactorkit/httpwire"
)

// Responder handles one request once a HttpService has matched its path.
// BeginRequest and Reply are both invoked only once the header block is
// parsed and the Content-Length body (if any) has been fully accumulated:
// BeginRequest first, then Reply, which writes the response through w.
// Neither is called while body bytes are still arriving.
type Responder interface {
	BeginRequest(req *httpwire.Message) error
	Reply(w *ResponseWriter, req *httpwire.Message) error
}

// FuncResponder builds a fresh Responder for each matching request, mirroring
// the teacher's per-request handler-factory convention.
type FuncResponder func() Responder

// HttpService pairs a URL pattern with the Responder factory invoked for
// requests whose path matches it.
type HttpService struct {
	Name    string
	Pattern *regexp.Regexp
	New     FuncResponder
}

func (s HttpService) matches(path string) bool {
	if s.Pattern == nil {
		return false
	}
	return s.Pattern.MatchString(path)
}

// ResponderFunc adapts a plain reply function to the Responder interface
// for simple routes that don't need BeginRequest bookkeeping.
type ResponderFunc func(w *ResponseWriter, req *httpwire.Message) error

func (f ResponderFunc) BeginRequest(*httpwire.Message) error { return nil }
func (f ResponderFunc) Reply(w *ResponseWriter, req *httpwire.Message) error {
	return f(w, req)
}
