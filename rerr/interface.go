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

package rerr

// Error extends the standard error interface with a Kind, an optional
// numeric code (used by the RPC transports to carry JSON-RPC / XML-RPC
// fault codes) and a parent chain, mirroring the teacher's errors.Error
// shape (code + hierarchy + stack trace) but reduced to the seven kinds
// spec §7 names.
type Error interface {
	error

	// Kind returns the classification of this error.
	Kind() Kind

	// Code returns the remote/application error code, when set (remote
	// errors and protocol-level RPC faults). Zero when not applicable.
	Code() int

	// Unwrap supports errors.Is/errors.As against the parent chain.
	Unwrap() []error

	// Add appends additional parent errors to this one.
	Add(parent ...error)

	// WithCode returns a copy of the error carrying the given numeric code.
	WithCode(code int) Error
}

type ers struct {
	kind   Kind
	code   int
	msg    string
	parent []error
	file   string
	line   int
}

func (e *ers) Error() string {
	return e.msg
}

func (e *ers) Kind() Kind {
	return e.kind
}

func (e *ers) Code() int {
	return e.code
}

func (e *ers) Unwrap() []error {
	return e.parent
}

func (e *ers) Add(parent ...error) {
	for _, p := range parent {
		if p != nil {
			e.parent = append(e.parent, p)
		}
	}
}

func (e *ers) WithCode(code int) Error {
	return &ers{
		kind:   e.kind,
		code:   code,
		msg:    e.msg,
		parent: e.parent,
		file:   e.file,
		line:   e.line,
	}
}
