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

// Formatter is the sink every format package (xformat, jformat, binfmt,
// csvformat, propformat, iniformat) implements. Walk drives a Formatter
// from an SI tree; a format-specific Parser drives the same interface
// in reverse by pushing events into a Deserializer.
type Formatter interface {
	AddValue(name, typeName string, v *SI, id string) error
	AddReference(name, target string) error
	BeginObject(name, typeName, id string) error
	BeginMember(name string) error
	FinishMember() error
	FinishObject() error
	BeginArray(name, typeName, id string) error
	FinishArray() error
	Finish() error
}

// Walk drives f through si and its descendants, in the order a formatter
// needs to serialize or re-serialize the tree. It does not call Finish;
// callers that want a single self-contained encode should use Decompose.
func Walk(si *SI, f Formatter) error {
	if si == nil {
		return nil
	}
	return walk(si, f)
}

func walk(si *SI, f Formatter) error {
	switch si.Category {
	case CategoryReference:
		return f.AddReference(si.Name, si.Target())
	case CategoryObject:
		if err := f.BeginObject(si.Name, si.TypeName, si.ID); err != nil {
			return err
		}
		for _, m := range si.Members {
			if err := f.BeginMember(m.Name); err != nil {
				return err
			}
			if err := walk(m, f); err != nil {
				return err
			}
			if err := f.FinishMember(); err != nil {
				return err
			}
		}
		return f.FinishObject()
	case CategoryArray:
		if err := f.BeginArray(si.Name, si.TypeName, si.ID); err != nil {
			return err
		}
		for _, m := range si.Members {
			if err := walk(m, f); err != nil {
				return err
			}
		}
		return f.FinishArray()
	default:
		return f.AddValue(si.Name, si.TypeName, si, si.ID)
	}
}
