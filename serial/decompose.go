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
	"reflect"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github/sabouaram/reactorkit/rerr"
)

// Marshaler lets a user type build its own SI tree instead of going
// through the generic reflection path.
type Marshaler interface {
	MarshalSI() (*SI, error)
}

// Decompose builds an SI tree from v (via Marshaler if implemented,
// otherwise via reflection), walks f through it, and calls f.Finish.
func Decompose(v any, f Formatter) error {
	si, err := ToSI(v)
	if err != nil {
		return err
	}
	if err := Walk(si, f); err != nil {
		return err
	}
	return f.Finish()
}

// ToSI converts a Go value into an SI tree. Struct and map fields become
// Object members, slices and arrays become Array elements, and pointers
// to structs that recur within the same call are collapsed into
// Reference nodes keyed by a freshly minted id, so a cyclic object graph
// decomposes into a finite tree.
func ToSI(v any) (*SI, error) {
	seen := make(map[uintptr]string)
	return toSI("", reflect.ValueOf(v), seen)
}

func toSI(name string, rv reflect.Value, seen map[uintptr]string) (*SI, error) {
	if !rv.IsValid() {
		return &SI{Category: CategoryVoid, Name: name}, nil
	}

	if m, ok := marshalerOf(rv); ok {
		si, err := m.MarshalSI()
		if err != nil {
			return nil, err
		}
		if si != nil {
			si.Name = name
		}
		return si, nil
	}

	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return &SI{Category: CategoryVoid, Name: name}, nil
		}
		if rv.Kind() == reflect.Ptr && rv.Elem().Kind() == reflect.Struct {
			ptr := rv.Pointer()
			if id, ok := seen[ptr]; ok {
				return NewReference(name, id), nil
			}
			id := uuid.NewString()
			seen[ptr] = id
			si, err := toSI(name, rv.Elem(), seen)
			if err != nil {
				return nil, err
			}
			si.ID = id
			return si, nil
		}
		return toSI(name, rv.Elem(), seen)

	case reflect.Struct:
		obj := NewObject(name, rv.Type().Name())
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if field.PkgPath != "" {
				continue
			}
			fieldName, skip := siFieldName(field)
			if skip {
				continue
			}
			child, err := toSI(fieldName, rv.Field(i), seen)
			if err != nil {
				return nil, err
			}
			obj.Members = append(obj.Members, child)
		}
		return obj, nil

	case reflect.Map:
		obj := NewObject(name, "")
		keys := rv.MapKeys()
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = keyString(k)
		}
		sort.Strings(names)
		byName := make(map[string]reflect.Value, len(keys))
		for i, k := range keys {
			byName[names[i]] = k
		}
		for _, n := range names {
			child, err := toSI(n, rv.MapIndex(byName[n]), seen)
			if err != nil {
				return nil, err
			}
			obj.Members = append(obj.Members, child)
		}
		return obj, nil

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return NewString(name, string(rv.Bytes())), nil
		}
		arr := NewArray(name, "")
		for i := 0; i < rv.Len(); i++ {
			child, err := toSI("", rv.Index(i), seen)
			if err != nil {
				return nil, err
			}
			arr.Members = append(arr.Members, child)
		}
		return arr, nil

	case reflect.String:
		return NewString(name, rv.String()), nil

	case reflect.Bool:
		return NewBool(name, rv.Bool()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewInt64(name, rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return NewUint64(name, rv.Uint()), nil

	case reflect.Float32, reflect.Float64:
		return NewFloat64(name, rv.Float()), nil

	default:
		return nil, rerr.Newf(rerr.KindSerialization, "serial: cannot decompose kind %s", rv.Kind())
	}
}

func marshalerOf(rv reflect.Value) (Marshaler, bool) {
	if !rv.CanInterface() {
		return nil, false
	}
	if m, ok := rv.Interface().(Marshaler); ok {
		return m, true
	}
	if rv.Kind() != reflect.Ptr && rv.CanAddr() {
		if m, ok := rv.Addr().Interface().(Marshaler); ok {
			return m, true
		}
	}
	return nil, false
}

func keyString(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	si, err := toSI("", k, make(map[uintptr]string))
	if err != nil {
		return ""
	}
	s, _ := si.String()
	return s
}

// siFieldName resolves the member name for a struct field from its `si`
// tag (name, or "-" to skip), falling back to the field's own name.
func siFieldName(field reflect.StructField) (string, bool) {
	tag, ok := field.Tag.Lookup("si")
	if !ok {
		return field.Name, false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return "", true
	}
	if name == "" {
		return field.Name, false
	}
	return name, false
}
