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

package httpwire

import (
	"net/textproto"
	"strconv"
	"strings"

	"github/sabouaram/reactorkit/rstr"
)

// Message holds everything the parser extracted from a request line (or
// status line) plus headers. Content-Length, chunked transfer, and
// keep-alive are derived on demand rather than stored, mirroring the
// MessageHeader contract.
type Message struct {
	IsResponse bool

	Method string
	URI    string
	Path   string
	Query  rstr.QueryParams

	StatusCode int
	StatusText string

	Major, Minor int

	Headers map[string][]string

	// Body holds the request (or response) body once the connection has
	// read ContentLength bytes past the header block. Empty for bodyless
	// requests such as a GET with no Content-Length.
	Body []byte
}

func newMessage(isResponse bool) *Message {
	return &Message{IsResponse: isResponse, Headers: make(map[string][]string)}
}

// Get returns the first value for a case-insensitively matched header, or
// "" if absent.
func (m *Message) Get(key string) string {
	vs := m.Headers[textproto.CanonicalMIMEHeaderKey(key)]
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

func (m *Message) add(name, value string) {
	k := textproto.CanonicalMIMEHeaderKey(name)
	m.Headers[k] = append(m.Headers[k], value)
}

// ContentLength returns the parsed Content-Length header, if present and
// well-formed.
func (m *Message) ContentLength() (int64, bool) {
	v := m.Get("Content-Length")
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Chunked reports whether Transfer-Encoding names "chunked" as its final
// (innermost-to-outermost-applied, i.e. last listed) coding.
func (m *Message) Chunked() bool {
	v := m.Get("Transfer-Encoding")
	if v == "" {
		return false
	}
	parts := rstr.Split(v, ",")
	last := strings.TrimSpace(parts[len(parts)-1])
	return strings.EqualFold(last, "chunked")
}

// KeepAlive reports whether the connection should remain open after this
// message: HTTP/1.1 defaults to keep-alive unless "Connection: close" is
// present; HTTP/1.0 defaults to close unless "Connection: keep-alive" is
// present.
func (m *Message) KeepAlive() bool {
	conn := strings.ToLower(m.Get("Connection"))
	switch {
	case strings.Contains(conn, "close"):
		return false
	case strings.Contains(conn, "keep-alive"):
		return true
	default:
		return m.Major > 1 || (m.Major == 1 && m.Minor >= 1)
	}
}
