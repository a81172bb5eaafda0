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

import "github/sabouaram/reactorkit/rerr"

// Deserializer is the mirror of Walk: a format-specific parser pushes
// the same Formatter event sequence a Decompose call would have
// produced, and Deserializer reconstructs the SI tree from it.
type Deserializer struct {
	root  *SI
	stack []*SI
	names []string
}

func NewDeserializer() *Deserializer {
	return &Deserializer{}
}

func (d *Deserializer) current() *SI {
	if len(d.stack) == 0 {
		return nil
	}
	return d.stack[len(d.stack)-1]
}

func (d *Deserializer) attach(si *SI) error {
	if len(d.stack) == 0 {
		if d.root != nil {
			return rerr.New(rerr.KindSerialization, "serial: deserializer already has a root node")
		}
		d.root = si
		return nil
	}
	parent := d.current()
	parent.Members = append(parent.Members, si)
	return nil
}

func (d *Deserializer) AddValue(name, typeName string, v *SI, id string) error {
	si := newValue(name)
	si.TypeName = typeName
	si.ID = id
	si.Kind = v.Kind
	si.sval, si.ival, si.uval, si.fval, si.bval = v.sval, v.ival, v.uval, v.fval, v.bval
	return d.attach(si)
}

func (d *Deserializer) AddReference(name, target string) error {
	return d.attach(NewReference(name, target))
}

func (d *Deserializer) BeginObject(name, typeName, id string) error {
	si := NewObject(name, typeName)
	si.ID = id
	if err := d.attach(si); err != nil {
		return err
	}
	d.stack = append(d.stack, si)
	return nil
}

func (d *Deserializer) BeginMember(name string) error {
	d.names = append(d.names, name)
	return nil
}

func (d *Deserializer) FinishMember() error {
	if len(d.names) == 0 {
		return rerr.New(rerr.KindSerialization, "serial: FinishMember without BeginMember")
	}
	d.names = d.names[:len(d.names)-1]
	return nil
}

func (d *Deserializer) FinishObject() error {
	return d.pop()
}

func (d *Deserializer) BeginArray(name, typeName, id string) error {
	si := NewArray(name, typeName)
	si.ID = id
	if err := d.attach(si); err != nil {
		return err
	}
	d.stack = append(d.stack, si)
	return nil
}

func (d *Deserializer) FinishArray() error {
	return d.pop()
}

func (d *Deserializer) pop() error {
	if len(d.stack) == 0 {
		return rerr.New(rerr.KindSerialization, "serial: unbalanced Finish call")
	}
	d.stack = d.stack[:len(d.stack)-1]
	return nil
}

func (d *Deserializer) Finish() error {
	if len(d.stack) != 0 {
		return rerr.New(rerr.KindSerialization, "serial: Finish called with open object/array")
	}
	return nil
}

// Result returns the reconstructed SI tree. It is only valid after the
// driving parser has called Finish.
func (d *Deserializer) Result() (*SI, error) {
	if len(d.stack) != 0 {
		return nil, rerr.New(rerr.KindSerialization, "serial: incomplete tree")
	}
	return d.root, nil
}
