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
	"encoding/csv"

	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/serial"
)

// Decode parses a CSV table (header row + data rows) out of data and
// pushes an Array-of-Objects SI event sequence into f. Delimiter
// defaults to ',' when opts.Delimiter is zero.
func Decode(data []byte, opts Options, f serial.Formatter) error {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = opts.delimiter()
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return rerr.Wrap(rerr.KindSerialization, "csvformat: parse failed", err)
	}
	if len(records) == 0 {
		return rerr.New(rerr.KindSerialization, "csvformat: empty input has no header row")
	}
	header := records[0]

	if err := f.BeginArray("", "", ""); err != nil {
		return err
	}
	for _, rec := range records[1:] {
		if err := f.BeginObject("", "", ""); err != nil {
			return err
		}
		for i, col := range header {
			var val string
			if i < len(rec) {
				val = rec[i]
			}
			if err := f.BeginMember(col); err != nil {
				return err
			}
			if err := f.AddValue(col, "", serial.NewString(col, val), ""); err != nil {
				return err
			}
			if err := f.FinishMember(); err != nil {
				return err
			}
		}
		if err := f.FinishObject(); err != nil {
			return err
		}
	}
	if err := f.FinishArray(); err != nil {
		return err
	}
	return f.Finish()
}

// Unmarshal decodes data and assigns the result into out.
func Unmarshal(data []byte, opts Options, out any) error {
	d := serial.NewDeserializer()
	if err := Decode(data, opts, d); err != nil {
		return err
	}
	si, err := d.Result()
	if err != nil {
		return err
	}
	return serial.Assign(si, out)
}
