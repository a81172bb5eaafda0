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

package propformat

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github/sabouaram/reactorkit/serial"
)

// frame tracks one open Object/Array container while walking toward a
// leaf, so a dotted path can be rebuilt without a buffered tree.
type frame struct {
	isArray bool
	idx     int
	pending string // set by BeginMember, consumed by the next child event
	hasSeg  bool   // true if this frame itself occupies a path segment
}

// Encoder implements serial.Formatter, writing one "path = value" line
// per leaf.
type Encoder struct {
	w        *bufio.Writer
	segments []string
	stack    []*frame
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Marshal decomposes v and returns its propformat encoding.
func Marshal(v any) ([]byte, error) {
	var buf strings.Builder
	enc := NewEncoder(&buf)
	if err := serial.Decompose(v, enc); err != nil {
		return nil, err
	}
	if err := enc.w.Flush(); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

func (e *Encoder) top() *frame {
	if len(e.stack) == 0 {
		return nil
	}
	return e.stack[len(e.stack)-1]
}

// segmentFor computes the path segment this child occupies within its
// parent container, consuming the parent's pending member name or
// incrementing its array index as appropriate.
func (e *Encoder) segmentFor(parent *frame) string {
	if parent == nil {
		return ""
	}
	if parent.isArray {
		s := strconv.Itoa(parent.idx)
		parent.idx++
		return s
	}
	return parent.pending
}

func (e *Encoder) path(seg string, parent *frame) string {
	if parent == nil {
		return seg
	}
	full := append(append([]string{}, e.segments...), seg)
	return strings.Join(full, ".")
}

func (e *Encoder) enter(isArray bool) *frame {
	parent := e.top()
	seg := e.segmentFor(parent)
	f := &frame{isArray: isArray, hasSeg: parent != nil}
	if f.hasSeg {
		e.segments = append(e.segments, seg)
	}
	e.stack = append(e.stack, f)
	return f
}

func (e *Encoder) leave() {
	f := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	if f.hasSeg {
		e.segments = e.segments[:len(e.segments)-1]
	}
}

func (e *Encoder) BeginObject(string, string, string) error {
	e.enter(false)
	return nil
}

func (e *Encoder) FinishObject() error {
	e.leave()
	return nil
}

func (e *Encoder) BeginArray(string, string, string) error {
	e.enter(true)
	return nil
}

func (e *Encoder) FinishArray() error {
	e.leave()
	return nil
}

func (e *Encoder) BeginMember(name string) error {
	e.top().pending = name
	return nil
}

func (e *Encoder) FinishMember() error {
	return nil
}

func (e *Encoder) AddValue(_, _ string, v *serial.SI, _ string) error {
	parent := e.top()
	seg := e.segmentFor(parent)
	p := e.path(seg, parent)
	s, err := v.String()
	if err != nil {
		return err
	}
	return e.writeEntry(p, quote(s))
}

func (e *Encoder) AddReference(_, target string) error {
	parent := e.top()
	seg := e.segmentFor(parent)
	p := e.path(seg, parent)
	return e.writeEntry(p, "$ref("+target+")")
}

func (e *Encoder) writeEntry(path, value string) error {
	if path != "" {
		if _, err := e.w.WriteString(path); err != nil {
			return err
		}
		if _, err := e.w.WriteString(" = "); err != nil {
			return err
		}
	}
	if _, err := e.w.WriteString(value); err != nil {
		return err
	}
	return e.w.WriteByte('\n')
}

func (e *Encoder) Finish() error {
	return e.w.Flush()
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
