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

package serial

import (
	"strconv"

	"github/sabouaram/reactorkit/rerr"
)

// Category classifies a node of the SerializationInfo tree.
type Category int

const (
	CategoryVoid Category = iota
	CategoryValue
	CategoryObject
	CategoryArray
	CategoryReference
)

func (c Category) String() string {
	switch c {
	case CategoryVoid:
		return "void"
	case CategoryValue:
		return "value"
	case CategoryObject:
		return "object"
	case CategoryArray:
		return "array"
	case CategoryReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Kind tags which scalar representation a Value-category node currently
// holds. Conversion between kinds is lazy: the stored representation is
// kept as written, and a reader asking for a different kind gets an
// on-demand, idempotent conversion rather than a mutation of the node.
type Kind int

const (
	KindEmpty Kind = iota
	KindString
	KindInt
	KindUint
	KindFloat
	KindBool
)

// SI is one node of a SerializationInfo tree: either a scalar Value, an
// Object (named members), an Array (positional members), a Reference
// (an alias to a previously emitted node's ID), or Void (absent).
type SI struct {
	Category Category
	Name     string
	TypeName string
	ID       string

	Kind Kind
	sval string
	ival int64
	uval uint64
	fval float64
	bval bool

	Members []*SI
}

// NewObject returns an empty Object node.
func NewObject(name, typeName string) *SI {
	return &SI{Category: CategoryObject, Name: name, TypeName: typeName}
}

// NewArray returns an empty Array node.
func NewArray(name, typeName string) *SI {
	return &SI{Category: CategoryArray, Name: name, TypeName: typeName}
}

// NewReference returns a node that aliases the node previously emitted
// under the id targetID.
func NewReference(name, targetID string) *SI {
	return &SI{Category: CategoryReference, Name: name, sval: targetID}
}

// Target returns the id a Reference node points at.
func (si *SI) Target() string {
	return si.sval
}

func newValue(name string) *SI {
	return &SI{Category: CategoryValue, Name: name}
}

func NewString(name, v string) *SI {
	si := newValue(name)
	si.SetString(v)
	return si
}

func NewInt64(name string, v int64) *SI {
	si := newValue(name)
	si.SetInt64(v)
	return si
}

func NewUint64(name string, v uint64) *SI {
	si := newValue(name)
	si.SetUint64(v)
	return si
}

func NewFloat64(name string, v float64) *SI {
	si := newValue(name)
	si.SetFloat64(v)
	return si
}

func NewBool(name string, v bool) *SI {
	si := newValue(name)
	si.SetBool(v)
	return si
}

func (si *SI) SetString(v string) { si.Kind = KindString; si.sval = v }
func (si *SI) SetInt64(v int64)   { si.Kind = KindInt; si.ival = v }
func (si *SI) SetUint64(v uint64) { si.Kind = KindUint; si.uval = v }
func (si *SI) SetFloat64(v float64) { si.Kind = KindFloat; si.fval = v }
func (si *SI) SetBool(v bool)     { si.Kind = KindBool; si.bval = v }

// AddMember appends a new, empty Object member and returns it so the
// caller can populate it in place.
func (si *SI) AddMember(name string) *SI {
	m := newValue(name)
	si.Members = append(si.Members, m)
	return m
}

// AddElement appends a new, empty Array element and returns it.
func (si *SI) AddElement() *SI {
	m := newValue("")
	si.Members = append(si.Members, m)
	return m
}

// Find returns the named member of an Object node.
func (si *SI) Find(name string) (*SI, bool) {
	for _, m := range si.Members {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// String returns the node's scalar value as a string, converting from
// whatever representation is stored.
func (si *SI) String() (string, error) {
	switch si.Kind {
	case KindEmpty:
		return "", nil
	case KindString:
		return si.sval, nil
	case KindInt:
		return strconv.FormatInt(si.ival, 10), nil
	case KindUint:
		return strconv.FormatUint(si.uval, 10), nil
	case KindFloat:
		return strconv.FormatFloat(si.fval, 'g', -1, 64), nil
	case KindBool:
		return strconv.FormatBool(si.bval), nil
	default:
		return "", rerr.New(rerr.KindSerialization, "serial: unknown kind")
	}
}

// Int64 returns the node's scalar value as an int64, parsing a string
// representation if that is what is stored.
func (si *SI) Int64() (int64, error) {
	switch si.Kind {
	case KindInt:
		return si.ival, nil
	case KindUint:
		return int64(si.uval), nil
	case KindFloat:
		return int64(si.fval), nil
	case KindString:
		v, err := strconv.ParseInt(si.sval, 10, 64)
		if err != nil {
			return 0, rerr.Wrap(rerr.KindSerialization, "serial: not an int", err)
		}
		return v, nil
	case KindBool:
		if si.bval {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, rerr.New(rerr.KindSerialization, "serial: empty value has no int")
	}
}

// Uint64 returns the node's scalar value as a uint64.
func (si *SI) Uint64() (uint64, error) {
	switch si.Kind {
	case KindUint:
		return si.uval, nil
	case KindInt:
		return uint64(si.ival), nil
	case KindFloat:
		return uint64(si.fval), nil
	case KindString:
		v, err := strconv.ParseUint(si.sval, 10, 64)
		if err != nil {
			return 0, rerr.Wrap(rerr.KindSerialization, "serial: not a uint", err)
		}
		return v, nil
	default:
		return 0, rerr.New(rerr.KindSerialization, "serial: empty value has no uint")
	}
}

// Float64 returns the node's scalar value as a float64.
func (si *SI) Float64() (float64, error) {
	switch si.Kind {
	case KindFloat:
		return si.fval, nil
	case KindInt:
		return float64(si.ival), nil
	case KindUint:
		return float64(si.uval), nil
	case KindString:
		v, err := strconv.ParseFloat(si.sval, 64)
		if err != nil {
			return 0, rerr.Wrap(rerr.KindSerialization, "serial: not a float", err)
		}
		return v, nil
	default:
		return 0, rerr.New(rerr.KindSerialization, "serial: empty value has no float")
	}
}

// Bool returns the node's scalar value as a bool.
func (si *SI) Bool() (bool, error) {
	switch si.Kind {
	case KindBool:
		return si.bval, nil
	case KindString:
		v, err := strconv.ParseBool(si.sval)
		if err != nil {
			return false, rerr.Wrap(rerr.KindSerialization, "serial: not a bool", err)
		}
		return v, nil
	case KindInt:
		return si.ival != 0, nil
	case KindUint:
		return si.uval != 0, nil
	default:
		return false, rerr.New(rerr.KindSerialization, "serial: empty value has no bool")
	}
}

// IsEmpty reports whether the node is Void or an unset Value.
func (si *SI) IsEmpty() bool {
	return si == nil || si.Category == CategoryVoid || (si.Category == CategoryValue && si.Kind == KindEmpty)
}
