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

import (
	"errors"
	"fmt"
	"runtime"
)

// New creates an Error of the given Kind with a plain message.
func New(kind Kind, message string) Error {
	file, line := frame()
	return &ers{kind: kind, msg: message, file: file, line: line}
}

// Newf creates an Error of the given Kind, formatting message like fmt.Sprintf.
func Newf(kind Kind, pattern string, args ...any) Error {
	file, line := frame()
	return &ers{kind: kind, msg: fmt.Sprintf(pattern, args...), file: file, line: line}
}

// Wrap creates an Error of the given Kind wrapping an existing error as parent.
func Wrap(kind Kind, message string, parent error) Error {
	file, line := frame()
	e := &ers{kind: kind, msg: message, file: file, line: line}
	if parent != nil {
		e.parent = append(e.parent, parent)
	}
	return e
}

// Remote builds a KindRemote error carrying a protocol error code. The RPC
// client transports report fault replies as *rpc.Error rather than
// through Remote.
func Remote(code int, message string) Error {
	file, line := frame()
	return &ers{kind: KindRemote, code: code, msg: message, file: file, line: line}
}

// Is reports whether e is (or wraps) a rerr.Error.
func Is(e error) bool {
	var err Error
	return errors.As(e, &err)
}

// Get returns e as an Error, or nil if e does not carry that interface.
func Get(e error) Error {
	var err Error
	if errors.As(e, &err) {
		return err
	}
	return nil
}

// HasKind reports whether e is a rerr.Error of the given Kind.
func HasKind(e error, kind Kind) bool {
	err := Get(e)
	return err != nil && err.Kind() == kind
}

// Make converts any error into an Error, preserving it unchanged if it
// already is one, otherwise wrapping it with KindNone.
func Make(e error) Error {
	if e == nil {
		return nil
	}
	if err := Get(e); err != nil {
		return err
	}
	file, line := frame()
	return &ers{kind: KindNone, msg: e.Error(), file: file, line: line}
}

func frame() (file string, line int) {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "", 0
	}
	return file, line
}
