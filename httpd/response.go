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
	"fmt"
	"net/textproto"
	"strconv"

	"github/sabouaram/reactorkit/bufsocket"
)

// ResponseWriter accumulates a status line, headers, and body, and flushes
// all three through the connection's BufferedSocket on the first Write or
// on Flush, whichever comes first. Writes after the header block has been
// flushed go straight to the socket.
type ResponseWriter struct {
	conn    *bufsocket.BufferedSocket
	header  map[string][]string
	status  int
	flushed bool
	closed  bool
}

func newResponseWriter(conn *bufsocket.BufferedSocket) *ResponseWriter {
	return &ResponseWriter{conn: conn, header: make(map[string][]string), status: 200}
}

// Set replaces any existing values for key with value.
func (w *ResponseWriter) Set(key, value string) {
	w.header[textproto.CanonicalMIMEHeaderKey(key)] = []string{value}
}

// Add appends value to key's existing values.
func (w *ResponseWriter) Add(key, value string) {
	k := textproto.CanonicalMIMEHeaderKey(key)
	w.header[k] = append(w.header[k], value)
}

// WriteHeader sets the status code to send once the header block flushes.
// Calling it after the header block has already flushed has no effect.
func (w *ResponseWriter) WriteHeader(status int) {
	if w.flushed {
		return
	}
	w.status = status
}

// Write flushes the header block (if not already flushed) and writes p to
// the connection's output.
func (w *ResponseWriter) Write(p []byte) (int, error) {
	if err := w.Flush(); err != nil {
		return 0, err
	}
	if err := w.conn.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Flush serializes the status line and headers exactly once; a no-op on
// subsequent calls.
func (w *ResponseWriter) Flush() error {
	if w.flushed {
		return nil
	}
	w.flushed = true

	line := fmt.Sprintf("HTTP/1.1 %d %s\r\n", w.status, statusText(w.status))
	buf := []byte(line)
	for k, vs := range w.header {
		for _, v := range vs {
			buf = append(buf, k...)
			buf = append(buf, ':', ' ')
			buf = append(buf, v...)
			buf = append(buf, '\r', '\n')
		}
	}
	buf = append(buf, '\r', '\n')
	return w.conn.Write(buf)
}

func statusText(code int) string {
	switch code {
	case 200:
		return "OK"
	case 204:
		return "No Content"
	case 301:
		return "Moved Permanently"
	case 302:
		return "Found"
	case 400:
		return "Bad Request"
	case 404:
		return "Not Found"
	case 405:
		return "Method Not Allowed"
	case 408:
		return "Request Timeout"
	case 500:
		return "Internal Server Error"
	default:
		return "Status " + strconv.Itoa(code)
	}
}
