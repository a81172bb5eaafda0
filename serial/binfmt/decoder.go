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
	"encoding/binary"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/serial"
)

type binnode struct {
	base Tag
	name string
	id   string
	si   *serial.SI
	ref  string
	kids []*binnode
}

type reader struct {
	buf  []byte
	pos  int
	dict []string
}

func (r *reader) readByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, rerr.New(rerr.KindSerialization, "binfmt: unexpected end of input")
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) peekByte() (byte, bool) {
	if r.pos >= len(r.buf) {
		return 0, false
	}
	return r.buf[r.pos], true
}

func (r *reader) readZString() (string, error) {
	start := r.pos
	for r.pos < len(r.buf) && r.buf[r.pos] != 0 {
		r.pos++
	}
	if r.pos >= len(r.buf) {
		return "", rerr.New(rerr.KindSerialization, "binfmt: unterminated string")
	}
	s := string(r.buf[start:r.pos])
	r.pos++
	return s, nil
}

func (r *reader) readName() (string, error) {
	flag, err := r.readByte()
	if err != nil {
		return "", err
	}
	switch flag {
	case dictLiteral:
		s, err := r.readZString()
		if err != nil {
			return "", err
		}
		r.dict = append(r.dict, s)
		return s, nil
	case dictIndexed:
		if r.pos+2 > len(r.buf) {
			return "", rerr.New(rerr.KindSerialization, "binfmt: truncated dictionary index")
		}
		idx := binary.BigEndian.Uint16(r.buf[r.pos : r.pos+2])
		r.pos += 2
		if int(idx) >= len(r.dict) {
			return "", rerr.New(rerr.KindSerialization, "binfmt: dictionary index out of range")
		}
		return r.dict[idx], nil
	default:
		return "", rerr.New(rerr.KindSerialization, "binfmt: invalid name field flag")
	}
}

func (r *reader) readLenPrefixed() ([]byte, error) {
	n, sz := protowire.ConsumeVarint(r.buf[r.pos:])
	if sz < 0 {
		return nil, rerr.New(rerr.KindSerialization, "binfmt: invalid length prefix")
	}
	r.pos += sz
	if r.pos+int(n) > len(r.buf) {
		return nil, rerr.New(rerr.KindSerialization, "binfmt: truncated payload")
	}
	b := r.buf[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return b, nil
}

// Decode parses a single binfmt record (and its subtree) out of data
// and pushes the reconstructed SI events into f.
func Decode(data []byte, f serial.Formatter) error {
	r := &reader{buf: data}
	n, err := parseRecord(r)
	if err != nil {
		return err
	}
	if err := pushEvents(n, f); err != nil {
		return err
	}
	return f.Finish()
}

// DecodeAt parses a single record starting at offset pos within data
// and pushes its events into f, returning the offset immediately past
// the record. Unlike Decode it does not call f.Finish and does not
// require the record to span the rest of data - callers that frame
// several independent records back-to-back (as the binary RPC
// transport does for a procedure's argument list) use this to walk
// them one at a time, stopping when data[pos] == Eod.
func DecodeAt(data []byte, pos int, f serial.Formatter) (int, error) {
	r := &reader{buf: data, pos: pos}
	n, err := parseRecord(r)
	if err != nil {
		return 0, err
	}
	if err := pushEvents(n, f); err != nil {
		return 0, err
	}
	return r.pos, nil
}

// Unmarshal decodes data and assigns the result into out.
func Unmarshal(data []byte, out any) error {
	d := serial.NewDeserializer()
	if err := Decode(data, d); err != nil {
		return err
	}
	si, err := d.Result()
	if err != nil {
		return err
	}
	return serial.Assign(si, out)
}

func parseRecord(r *reader) (*binnode, error) {
	tag, err := r.readByte()
	if err != nil {
		return nil, err
	}
	plain := tag&plainBit != 0
	base := Tag(tag)
	if plain {
		base = Tag(tag &^ plainBit)
	}

	n := &binnode{base: base}
	if !plain {
		n.name, err = r.readName()
		if err != nil {
			return nil, err
		}
		n.id, err = r.readZString()
		if err != nil {
			return nil, err
		}
	}

	switch {
	case isScalar(base):
		si, err := decodeScalar(r, base)
		if err != nil {
			return nil, err
		}
		n.si = si
		return n, nil

	case base == CategoryObjectTag || base == CategoryArrayTag:
		for {
			b, ok := r.peekByte()
			if !ok {
				return nil, rerr.New(rerr.KindSerialization, "binfmt: missing Eod")
			}
			if b == Eod {
				r.pos++
				return n, nil
			}
			child, err := parseRecord(r)
			if err != nil {
				return nil, err
			}
			n.kids = append(n.kids, child)
		}

	case base == CategoryReferenceTag:
		payload, err := r.readLenPrefixed()
		if err != nil {
			return nil, err
		}
		n.ref = string(payload)
		return n, nil

	default:
		return nil, rerr.Newf(rerr.KindSerialization, "binfmt: unsupported tag %d", base)
	}
}

func decodeScalar(r *reader, base Tag) (*serial.SI, error) {
	switch base {
	case TagEmpty:
		return &serial.SI{Category: serial.CategoryValue}, nil
	case TagBool:
		b, err := r.readByte()
		if err != nil {
			return nil, err
		}
		return serial.NewBool("", b != 0), nil
	case TagString:
		payload, err := r.readLenPrefixed()
		if err != nil {
			return nil, err
		}
		return serial.NewString("", string(payload)), nil
	case TagInt64:
		n, sz := protowire.ConsumeVarint(r.buf[r.pos:])
		if sz < 0 {
			return nil, rerr.New(rerr.KindSerialization, "binfmt: invalid varint")
		}
		r.pos += sz
		return serial.NewInt64("", protowire.DecodeZigZag(n)), nil
	case TagUInt64:
		n, sz := protowire.ConsumeVarint(r.buf[r.pos:])
		if sz < 0 {
			return nil, rerr.New(rerr.KindSerialization, "binfmt: invalid varint")
		}
		r.pos += sz
		return serial.NewUint64("", n), nil
	case TagMediumFloat:
		if r.pos+4 > len(r.buf) {
			return nil, rerr.New(rerr.KindSerialization, "binfmt: truncated MediumFloat")
		}
		bits := binary.BigEndian.Uint32(r.buf[r.pos : r.pos+4])
		r.pos += 4
		return serial.NewFloat64("", float64(math.Float32frombits(bits))), nil
	case TagLongFloat:
		if r.pos+8 > len(r.buf) {
			return nil, rerr.New(rerr.KindSerialization, "binfmt: truncated LongFloat")
		}
		bits := binary.BigEndian.Uint64(r.buf[r.pos : r.pos+8])
		r.pos += 8
		return serial.NewFloat64("", math.Float64frombits(bits)), nil
	default:
		return nil, rerr.Newf(rerr.KindSerialization, "binfmt: unsupported scalar tag %d", base)
	}
}

func pushEvents(n *binnode, f serial.Formatter) error {
	switch n.base {
	case CategoryReferenceTag:
		return f.AddReference(n.name, n.ref)
	case CategoryObjectTag:
		if err := f.BeginObject(n.name, "", n.id); err != nil {
			return err
		}
		for _, c := range n.kids {
			if err := f.BeginMember(c.name); err != nil {
				return err
			}
			if err := pushEvents(c, f); err != nil {
				return err
			}
			if err := f.FinishMember(); err != nil {
				return err
			}
		}
		return f.FinishObject()
	case CategoryArrayTag:
		if err := f.BeginArray(n.name, "", n.id); err != nil {
			return err
		}
		for _, c := range n.kids {
			if err := pushEvents(c, f); err != nil {
				return err
			}
		}
		return f.FinishArray()
	default:
		return f.AddValue(n.name, "", n.si, n.id)
	}
}
