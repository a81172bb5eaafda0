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

import "fmt"

// Reserved error codes shared by every transport. Transport-level
// faults use the negative range; a procedure that wants to report a
// domain-specific failure returns one of these wrapped, or any
// positive code of its own choosing.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Error is a remote procedure fault: a code plus a human-readable
// message, optionally carrying extra structured detail. Every
// transport decodes its wire-level fault representation (an
// xmlrpc <fault>, a JSON-RPC "error" member, a binrpc RpcException
// record) into one of these so callers see the same shape regardless
// of which transport carried the reply.
type Error struct {
	Code    int
	Message string
	Data    any
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc: %s (code %d)", e.Message, e.Code)
}

// NewError builds a procedure-defined fault. Use a positive code for
// application errors; the negative range below -32000 is reserved for
// transport-level faults (see the Code* constants).
func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// ParseError reports that the transport could not decode the request
// body at all.
func ParseError(message string) *Error { return &Error{Code: CodeParseError, Message: message} }

// InvalidRequest reports a structurally malformed request (missing
// method name, wrong envelope shape).
func InvalidRequest(message string) *Error {
	return &Error{Code: CodeInvalidRequest, Message: message}
}

// MethodNotFound reports that no procedure is registered under method.
func MethodNotFound(method string) *Error {
	return &Error{Code: CodeMethodNotFound, Message: fmt.Sprintf("method %q not found", method)}
}

// InvalidParams reports that the decoded arguments don't match the
// procedure's expected shape.
func InvalidParams(message string) *Error { return &Error{Code: CodeInvalidParams, Message: message} }

// InternalError reports a server-side failure unrelated to the
// request itself (the callable returned a plain Go error, a panic was
// recovered, and so on).
func InternalError(message string) *Error {
	return &Error{Code: CodeInternalError, Message: message}
}
