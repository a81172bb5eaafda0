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

package main

import (
	"bytes"
	"fmt"

	"github/sabouaram/reactorkit/rstr"
	"github/sabouaram/reactorkit/serial"
	"github/sabouaram/reactorkit/serial/binfmt"
	"github/sabouaram/reactorkit/serial/csvformat"
	"github/sabouaram/reactorkit/serial/jformat"
	"github/sabouaram/reactorkit/serial/propformat"
	"github/sabouaram/reactorkit/serial/xformat"
)

func decode(in format, f flags, data []byte) (*serial.SI, error) {
	if in == formatQuery {
		return decodeQuery(data), nil
	}

	d := serial.NewDeserializer()
	var err error
	switch in {
	case formatBinary:
		err = binfmt.Decode(data, d)
	case formatXML:
		err = xformat.Decode(data, d)
	case formatJSON:
		err = jformat.Decode(data, d)
	case formatCSV:
		err = csvformat.Decode(data, csvformat.Options{}, d)
	default:
		return nil, fmt.Errorf("siconvert: unsupported input format %s", in)
	}
	if err != nil {
		return nil, err
	}
	return d.Result()
}

func encode(out format, f flags, si *serial.SI) ([]byte, error) {
	var buf bytes.Buffer

	switch out {
	case formatBinary:
		enc := binfmt.NewEncoder(&buf)
		if err := serial.Walk(si, enc); err != nil {
			return nil, err
		}
		if err := enc.Finish(); err != nil {
			return nil, err
		}

	case formatXML, formatXMLPlain:
		mode := xformat.AttributeMode
		if out == formatXMLPlain {
			mode = xformat.ElementMode
		}
		enc := xformat.NewEncoder(&buf, mode)
		if err := serial.Walk(si, enc); err != nil {
			return nil, err
		}
		if err := enc.Finish(); err != nil {
			return nil, err
		}

	case formatJSON:
		enc := jformat.NewEncoder(&buf, jformat.Options{Beautify: f.beautify})
		if err := serial.Walk(si, enc); err != nil {
			return nil, err
		}
		if err := enc.Finish(); err != nil {
			return nil, err
		}

	case formatCSV:
		enc := csvformat.NewEncoder(&buf, csvformat.Options{})
		if err := serial.Walk(si, enc); err != nil {
			return nil, err
		}
		if err := enc.Finish(); err != nil {
			return nil, err
		}

	case formatProperties:
		enc := propformat.NewEncoder(&buf)
		if err := serial.Walk(si, enc); err != nil {
			return nil, err
		}
		if err := enc.Finish(); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("siconvert: unsupported output format %s", out)
	}

	return buf.Bytes(), nil
}

// decodeQuery treats data as one URL query string ("a=1&b=2&bare"),
// turning named parameters into string (or array, if repeated) members
// and any bare tokens into an "unnamed" array member.
func decodeQuery(data []byte) *serial.SI {
	qp := rstr.ParseQuery(string(data))
	obj := serial.NewObject("", "")

	for _, key := range sortedKeys(qp.Named) {
		values := qp.Named[key]
		if len(values) == 1 {
			obj.Members = append(obj.Members, serial.NewString(key, values[0]))
			continue
		}
		arr := serial.NewArray(key, "")
		for _, v := range values {
			arr.Members = append(arr.Members, serial.NewString("", v))
		}
		obj.Members = append(obj.Members, arr)
	}

	if len(qp.Unnamed) > 0 {
		arr := serial.NewArray("unnamed", "")
		for _, v := range qp.Unnamed {
			arr.Members = append(arr.Members, serial.NewString("", v))
		}
		obj.Members = append(obj.Members, arr)
	}

	return obj
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// applyWindow slices a top-level array's members to [skip, skip+num).
// Non-array values pass through unchanged; num<=0 means "no limit", so
// only skip is applied.
func applyWindow(si *serial.SI, skip, num int) *serial.SI {
	if si == nil || si.Category != serial.CategoryArray {
		return si
	}
	members := si.Members
	if skip > 0 {
		if skip >= len(members) {
			members = nil
		} else {
			members = members[skip:]
		}
	}
	if num > 0 && num < len(members) {
		members = members[:num]
	}
	out := *si
	out.Members = members
	return &out
}

// countOf reports the element count the same way across shapes: an
// array's member count, or 1 for any other value.
func countOf(si *serial.SI) int {
	if si == nil {
		return 0
	}
	if si.Category == serial.CategoryArray {
		return len(si.Members)
	}
	return 1
}
