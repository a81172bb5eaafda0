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
	"github.com/mitchellh/mapstructure"

	"github/sabouaram/reactorkit/rerr"
)

// Unmarshaler lets a user type populate itself from an SI tree instead
// of going through the generic reflection/mapstructure path.
type Unmarshaler interface {
	UnmarshalSI(si *SI) error
}

// Assign reconstructs out from si: via Unmarshaler if out implements it,
// otherwise by flattening si into a generic tree of maps/slices/scalars
// and handing that to mapstructure for the struct-field matching.
func Assign(si *SI, out any) error {
	if si == nil {
		return rerr.New(rerr.KindSerialization, "serial: nil SI node")
	}
	if u, ok := out.(Unmarshaler); ok {
		return u.UnmarshalSI(si)
	}

	generic, err := toGeneric(si)
	if err != nil {
		return err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "si",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return rerr.Wrap(rerr.KindSerialization, "serial: build decoder", err)
	}
	if err := dec.Decode(generic); err != nil {
		return rerr.Wrap(rerr.KindSerialization, "serial: decode into target", err)
	}
	return nil
}

func toGeneric(si *SI) (any, error) {
	switch si.Category {
	case CategoryObject:
		m := make(map[string]any, len(si.Members))
		for _, c := range si.Members {
			v, err := toGeneric(c)
			if err != nil {
				return nil, err
			}
			m[c.Name] = v
		}
		return m, nil
	case CategoryArray:
		arr := make([]any, 0, len(si.Members))
		for _, c := range si.Members {
			v, err := toGeneric(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case CategoryReference:
		return si.Target(), nil
	case CategoryVoid:
		return nil, nil
	default:
		switch si.Kind {
		case KindString:
			return si.sval, nil
		case KindInt:
			return si.ival, nil
		case KindUint:
			return si.uval, nil
		case KindFloat:
			return si.fval, nil
		case KindBool:
			return si.bval, nil
		default:
			return nil, nil
		}
	}
}
