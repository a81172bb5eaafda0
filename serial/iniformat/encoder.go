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

package iniformat

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github/sabouaram/reactorkit/serial"
)

type kind int

const (
	kindRoot kind = iota
	kindSection
	kindNested
)

type frame struct {
	k       kind
	isArray bool
	idx     int
	pending string
	hasSeg  bool
}

// Encoder implements serial.Formatter, writing the root object's scalar
// members as an implicit global section followed by one "[name]" block
// per nested object member.
type Encoder struct {
	w        *bufio.Writer
	segments []string
	stack    []*frame
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Marshal decomposes v and returns its ini encoding.
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

func (e *Encoder) enter(isArray bool) error {
	parent := e.top()
	seg := e.segmentFor(parent)

	switch {
	case parent == nil:
		e.stack = append(e.stack, &frame{k: kindRoot, isArray: isArray})
	case parent.k == kindRoot:
		if _, err := e.w.WriteString("\n[" + seg + "]\n"); err != nil {
			return err
		}
		e.stack = append(e.stack, &frame{k: kindSection, isArray: isArray})
	default:
		e.segments = append(e.segments, seg)
		e.stack = append(e.stack, &frame{k: kindNested, isArray: isArray, hasSeg: true})
	}
	return nil
}

func (e *Encoder) leave() {
	f := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	if f.hasSeg {
		e.segments = e.segments[:len(e.segments)-1]
	}
}

func (e *Encoder) BeginObject(string, string, string) error { return e.enter(false) }
func (e *Encoder) FinishObject() error                      { e.leave(); return nil }
func (e *Encoder) BeginArray(string, string, string) error  { return e.enter(true) }
func (e *Encoder) FinishArray() error                       { e.leave(); return nil }

func (e *Encoder) BeginMember(name string) error {
	e.top().pending = name
	return nil
}

func (e *Encoder) FinishMember() error { return nil }

func (e *Encoder) AddValue(_, _ string, v *serial.SI, _ string) error {
	parent := e.top()
	seg := e.segmentFor(parent)
	s, err := v.String()
	if err != nil {
		return err
	}

	key := seg
	if parent != nil && parent.k == kindNested {
		full := append(append([]string{}, e.segments...), seg)
		key = strings.Join(full, ".")
	}
	return e.writeEntry(key, quoteValue(s))
}

func (e *Encoder) AddReference(_, target string) error {
	parent := e.top()
	seg := e.segmentFor(parent)
	key := seg
	if parent != nil && parent.k == kindNested {
		full := append(append([]string{}, e.segments...), seg)
		key = strings.Join(full, ".")
	}
	return e.writeEntry(key, "$ref("+target+")")
}

func (e *Encoder) writeEntry(key, value string) error {
	if _, err := e.w.WriteString(key + " = " + value + "\n"); err != nil {
		return err
	}
	return nil
}

func (e *Encoder) Finish() error {
	return e.w.Flush()
}

func quoteValue(s string) string {
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
