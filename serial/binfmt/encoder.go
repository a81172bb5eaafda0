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

package binfmt

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/serial"
)

// Encoder implements serial.Formatter, writing the proprietary binary
// TLV encoding. Each Encoder owns its own name dictionary, reset only
// by constructing a new Encoder (the dictionary is meant to live for
// the lifetime of one encoded stream).
type Encoder struct {
	w      io.Writer
	dict   map[string]uint16
	nextID uint16
	// stack tracks whether the enclosing container is an Object ('o'),
	// an Array ('a'), or absent (root). Only Object contexts write the
	// Full (named) record variant; everything else writes Plain.
	stack []byte
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, dict: make(map[string]uint16)}
}

// Marshal decomposes v and returns its binfmt encoding.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := serial.Decompose(v, enc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Encoder) inObject() bool {
	return len(e.stack) > 0 && e.stack[len(e.stack)-1] == 'o'
}

func (e *Encoder) writeName(buf *bytes.Buffer, name string) {
	if idx, ok := e.dict[name]; ok {
		buf.WriteByte(dictIndexed)
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], idx)
		buf.Write(b[:])
		return
	}
	buf.WriteByte(dictLiteral)
	buf.WriteString(name)
	buf.WriteByte(0)
	e.dict[name] = e.nextID
	e.nextID++
}

func writeZString(buf *bytes.Buffer, s string) {
	buf.WriteString(s)
	buf.WriteByte(0)
}

func (e *Encoder) writeNode(base Tag, name, id string, payload []byte) error {
	var buf bytes.Buffer
	if e.inObject() {
		buf.WriteByte(base.full())
		e.writeName(&buf, name)
		writeZString(&buf, id)
	} else {
		buf.WriteByte(base.plain())
	}
	buf.Write(payload)
	_, err := e.w.Write(buf.Bytes())
	return err
}

func (e *Encoder) AddValue(name, _ string, v *serial.SI, id string) error {
	tag, payload, err := encodeScalar(v)
	if err != nil {
		return err
	}
	return e.writeNode(tag, name, id, payload)
}

func (e *Encoder) AddReference(name, target string) error {
	var payload bytes.Buffer
	payload.Write(protowire.AppendVarint(nil, uint64(len(target))))
	payload.WriteString(target)
	return e.writeNode(CategoryReferenceTag, name, "", payload.Bytes())
}

func (e *Encoder) BeginObject(name, _, id string) error {
	if err := e.writeNode(CategoryObjectTag, name, id, nil); err != nil {
		return err
	}
	e.stack = append(e.stack, 'o')
	return nil
}

func (e *Encoder) BeginMember(string) error { return nil }
func (e *Encoder) FinishMember() error      { return nil }

func (e *Encoder) FinishObject() error {
	return e.finishContainer()
}

func (e *Encoder) BeginArray(name, _, id string) error {
	if err := e.writeNode(CategoryArrayTag, name, id, nil); err != nil {
		return err
	}
	e.stack = append(e.stack, 'a')
	return nil
}

func (e *Encoder) FinishArray() error {
	return e.finishContainer()
}

func (e *Encoder) finishContainer() error {
	if len(e.stack) == 0 {
		return rerr.New(rerr.KindSerialization, "binfmt: unbalanced Finish call")
	}
	e.stack = e.stack[:len(e.stack)-1]
	_, err := e.w.Write([]byte{Eod})
	return err
}

func (e *Encoder) Finish() error {
	if len(e.stack) != 0 {
		return rerr.New(rerr.KindSerialization, "binfmt: Finish with open object/array")
	}
	return nil
}

// encodeScalar picks the tag and payload for a Value-category node,
// choosing the smallest float encoding (MediumFloat/float32, else
// LongFloat/float64) that round-trips the value losslessly.
func encodeScalar(v *serial.SI) (Tag, []byte, error) {
	switch v.Kind {
	case serial.KindEmpty:
		return TagEmpty, nil, nil
	case serial.KindBool:
		b, _ := v.Bool()
		if b {
			return TagBool, []byte{1}, nil
		}
		return TagBool, []byte{0}, nil
	case serial.KindString:
		s, _ := v.String()
		var buf bytes.Buffer
		buf.Write(protowire.AppendVarint(nil, uint64(len(s))))
		buf.WriteString(s)
		return TagString, buf.Bytes(), nil
	case serial.KindInt:
		n, _ := v.Int64()
		return TagInt64, protowire.AppendVarint(nil, protowire.EncodeZigZag(n)), nil
	case serial.KindUint:
		n, _ := v.Uint64()
		return TagUInt64, protowire.AppendVarint(nil, n), nil
	case serial.KindFloat:
		f, _ := v.Float64()
		if float64(float32(f)) == f || math.IsNaN(f) {
			var b [4]byte
			binary.BigEndian.PutUint32(b[:], math.Float32bits(float32(f)))
			return TagMediumFloat, b[:], nil
		}
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], math.Float64bits(f))
		return TagLongFloat, b[:], nil
	default:
		return 0, nil, rerr.New(rerr.KindSerialization, "binfmt: unknown scalar kind")
	}
}
