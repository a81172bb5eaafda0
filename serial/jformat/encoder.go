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

package jformat

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"strconv"
	"unicode/utf8"

	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/serial"
)

// Options controls the Encoder's output shape.
type Options struct {
	// Beautify inserts newlines and two-space indentation between members.
	Beautify bool
	// AllowUnicode writes non-ASCII characters verbatim (UTF-8) instead of
	// escaping them to \uXXXX.
	AllowUnicode bool
	// PlainKey omits quotes around object keys that are valid JS
	// identifiers. Off by default, since plain JSON always quotes keys.
	PlainKey bool
}

type frameKind byte

const (
	frameObject frameKind = 'o'
	frameArray  frameKind = 'a'
)

type frame struct {
	kind  frameKind
	count int
}

// Encoder implements serial.Formatter, writing JSON as events arrive.
type Encoder struct {
	w     *bufio.Writer
	opts  Options
	stack []frame
	depth int
}

func NewEncoder(w io.Writer, opts Options) *Encoder {
	return &Encoder{w: bufio.NewWriter(w), opts: opts}
}

// Marshal decomposes v and returns its canonical JSON encoding.
func Marshal(v any, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, opts)
	if err := serial.Decompose(v, enc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Encoder) top() *frame {
	if len(e.stack) == 0 {
		return nil
	}
	return &e.stack[len(e.stack)-1]
}

func (e *Encoder) indent() {
	if !e.opts.Beautify {
		return
	}
	e.w.WriteByte('\n')
	for i := 0; i < e.depth; i++ {
		e.w.WriteString("  ")
	}
}

// beforeValue handles the comma/indent bookkeeping needed only when a
// value appears directly as an array element; object member values are
// already positioned by BeginMember.
func (e *Encoder) beforeValue() {
	top := e.top()
	if top == nil || top.kind != frameArray {
		return
	}
	if top.count > 0 {
		e.w.WriteByte(',')
	}
	top.count++
	e.indent()
}

func (e *Encoder) AddValue(_, _ string, v *serial.SI, _ string) error {
	e.beforeValue()
	return e.writeScalar(v)
}

func (e *Encoder) AddReference(_, target string) error {
	e.beforeValue()
	e.w.WriteString(`{"$ref":`)
	e.writeString(target)
	e.w.WriteByte('}')
	return nil
}

func (e *Encoder) BeginObject(_, _, _ string) error {
	e.beforeValue()
	e.w.WriteByte('{')
	e.depth++
	e.stack = append(e.stack, frame{kind: frameObject})
	return nil
}

func (e *Encoder) BeginMember(name string) error {
	top := e.top()
	if top == nil || top.kind != frameObject {
		return rerr.New(rerr.KindSerialization, "jformat: BeginMember outside object")
	}
	if top.count > 0 {
		e.w.WriteByte(',')
	}
	top.count++
	e.indent()
	e.writeKey(name)
	e.w.WriteByte(':')
	if e.opts.Beautify {
		e.w.WriteByte(' ')
	}
	return nil
}

func (e *Encoder) FinishMember() error { return nil }

func (e *Encoder) FinishObject() error {
	if len(e.stack) == 0 || e.top().kind != frameObject {
		return rerr.New(rerr.KindSerialization, "jformat: unbalanced FinishObject")
	}
	empty := e.top().count == 0
	e.depth--
	e.stack = e.stack[:len(e.stack)-1]
	if !empty {
		e.indent()
	}
	e.w.WriteByte('}')
	return nil
}

func (e *Encoder) BeginArray(_, _, _ string) error {
	e.beforeValue()
	e.w.WriteByte('[')
	e.depth++
	e.stack = append(e.stack, frame{kind: frameArray})
	return nil
}

func (e *Encoder) FinishArray() error {
	if len(e.stack) == 0 || e.top().kind != frameArray {
		return rerr.New(rerr.KindSerialization, "jformat: unbalanced FinishArray")
	}
	empty := e.top().count == 0
	e.depth--
	e.stack = e.stack[:len(e.stack)-1]
	if !empty {
		e.indent()
	}
	e.w.WriteByte(']')
	return nil
}

func (e *Encoder) Finish() error {
	if len(e.stack) != 0 {
		return rerr.New(rerr.KindSerialization, "jformat: Finish with open object/array")
	}
	return e.w.Flush()
}

func (e *Encoder) writeScalar(v *serial.SI) error {
	switch v.Kind {
	case serial.KindEmpty:
		e.w.WriteString("null")
	case serial.KindString:
		s, _ := v.String()
		e.writeString(s)
	case serial.KindInt:
		n, _ := v.Int64()
		e.w.WriteString(strconv.FormatInt(n, 10))
	case serial.KindUint:
		n, _ := v.Uint64()
		e.w.WriteString(strconv.FormatUint(n, 10))
	case serial.KindFloat:
		f, _ := v.Float64()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			e.w.WriteString("null")
		} else {
			e.w.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		}
	case serial.KindBool:
		b, _ := v.Bool()
		if b {
			e.w.WriteString("true")
		} else {
			e.w.WriteString("false")
		}
	default:
		return rerr.New(rerr.KindSerialization, "jformat: unknown scalar kind")
	}
	return nil
}

func (e *Encoder) writeKey(name string) {
	if e.opts.PlainKey && isPlainIdent(name) {
		e.w.WriteString(name)
		return
	}
	e.writeString(name)
}

func isPlainIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}

func (e *Encoder) writeString(s string) {
	e.w.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			e.w.WriteString(`\"`)
		case '\\':
			e.w.WriteString(`\\`)
		case '\n':
			e.w.WriteString(`\n`)
		case '\r':
			e.w.WriteString(`\r`)
		case '\t':
			e.w.WriteString(`\t`)
		default:
			switch {
			case r < 0x20:
				e.w.WriteString(`\u`)
				writeHex4(e.w, uint16(r))
			case r < utf8.RuneSelf || e.opts.AllowUnicode:
				e.w.WriteRune(r)
			case r > 0xFFFF:
				r1, r2 := utf16Pair(r)
				e.w.WriteString(`\u`)
				writeHex4(e.w, r1)
				e.w.WriteString(`\u`)
				writeHex4(e.w, r2)
			default:
				e.w.WriteString(`\u`)
				writeHex4(e.w, uint16(r))
			}
		}
	}
	e.w.WriteByte('"')
}

const hexDigits = "0123456789abcdef"

func writeHex4(w *bufio.Writer, v uint16) {
	w.WriteByte(hexDigits[(v>>12)&0xF])
	w.WriteByte(hexDigits[(v>>8)&0xF])
	w.WriteByte(hexDigits[(v>>4)&0xF])
	w.WriteByte(hexDigits[v&0xF])
}

func utf16Pair(r rune) (uint16, uint16) {
	r -= 0x10000
	return uint16(0xD800 + (r >> 10)), uint16(0xDC00 + (r & 0x3FF))
}
