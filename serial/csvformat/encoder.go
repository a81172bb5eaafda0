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

package csvformat

import (
	"bytes"
	"io"
	"strings"

	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/serial"
)

// Options controls column selection and dialect.
type Options struct {
	// Columns, if non-empty, fixes the header row and column order.
	// Otherwise columns are taken from the first row's member order.
	Columns []string
	// Delimiter defaults to ',' when zero.
	Delimiter rune
}

func (o Options) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

type row struct {
	keys   []string
	values map[string]string
}

// Encoder implements serial.Formatter for the single supported shape:
// a root Array of flat Objects.
type Encoder struct {
	w       io.Writer
	opts    Options
	rows    []*row
	cur     *row
	inArray bool
	depth   int
}

func NewEncoder(w io.Writer, opts Options) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Marshal decomposes v (expected to be a slice of flat structs/maps) and
// returns its CSV encoding.
func Marshal(v any, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, opts)
	if err := serial.Decompose(v, enc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Encoder) BeginArray(_, _, _ string) error {
	e.depth++
	if e.depth != 1 {
		return rerr.New(rerr.KindSerialization, "csvformat: only a single top-level array is supported")
	}
	e.inArray = true
	return nil
}

func (e *Encoder) FinishArray() error {
	e.depth--
	return nil
}

func (e *Encoder) BeginObject(_, _, _ string) error {
	if !e.inArray || e.depth != 1 {
		return rerr.New(rerr.KindSerialization, "csvformat: rows must be flat objects directly inside the array")
	}
	e.cur = &row{values: make(map[string]string)}
	return nil
}

func (e *Encoder) FinishObject() error {
	if e.cur == nil {
		return rerr.New(rerr.KindSerialization, "csvformat: unbalanced object")
	}
	e.rows = append(e.rows, e.cur)
	e.cur = nil
	return nil
}

func (e *Encoder) BeginMember(string) error { return nil }
func (e *Encoder) FinishMember() error      { return nil }

func (e *Encoder) AddValue(name, _ string, v *serial.SI, _ string) error {
	if e.cur == nil {
		return rerr.New(rerr.KindSerialization, "csvformat: value outside of a row")
	}
	s, err := v.String()
	if err != nil {
		return err
	}
	e.cur.keys = append(e.cur.keys, name)
	e.cur.values[name] = s
	return nil
}

func (e *Encoder) AddReference(string, string) error {
	return rerr.New(rerr.KindSerialization, "csvformat: references are not representable")
}

func (e *Encoder) Finish() error {
	columns := e.opts.Columns
	if len(columns) == 0 && len(e.rows) > 0 {
		columns = e.rows[0].keys
	}

	delim := e.opts.delimiter()
	if err := e.writeRow(columns, delim); err != nil {
		return err
	}
	for _, r := range e.rows {
		vals := make([]string, len(columns))
		for i, c := range columns {
			vals[i] = r.values[c]
		}
		if err := e.writeRow(vals, delim); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeRow(fields []string, delim rune) error {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = quoteField(f, delim)
	}
	_, err := io.WriteString(e.w, strings.Join(parts, string(delim))+"\r\n")
	return err
}

func quoteField(s string, delim rune) string {
	if strings.ContainsRune(s, delim) || strings.ContainsRune(s, '"') ||
		strings.ContainsAny(s, "\r\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
