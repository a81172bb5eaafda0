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

package xformat

import (
	"bytes"
	"io"
	"strings"

	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/serial"
)

// Mode selects how Encoder renders Object-node scalar members.
type Mode int

const (
	// ElementMode renders every member, scalar or not, as a child element.
	ElementMode Mode = iota
	// AttributeMode renders scalar members as attributes of the
	// enclosing element; nested objects, arrays and references still
	// render as child elements.
	AttributeMode
)

type nodeKind int

const (
	nodeValue nodeKind = iota
	nodeObject
	nodeArray
	nodeReference
)

// node mirrors the shape of an SI subtree in terms an XML element can
// render, built up on a stack exactly like serial.Deserializer builds an
// SI tree, then rendered in one pass once Finish closes the root.
type node struct {
	kind     nodeKind
	name     string
	typeName string
	id       string
	text     string
	children []*node
}

// Encoder implements serial.Formatter, buffering a node tree and
// rendering it to XML on Finish.
type Encoder struct {
	w    io.Writer
	mode Mode
	root *node
	stack []*node
}

func NewEncoder(w io.Writer, mode Mode) *Encoder {
	return &Encoder{w: w, mode: mode}
}

// Marshal decomposes v and returns its XML encoding in the given mode.
func Marshal(v any, mode Mode) ([]byte, error) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, mode)
	if err := serial.Decompose(v, enc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Encoder) current() *node {
	if len(e.stack) == 0 {
		return nil
	}
	return e.stack[len(e.stack)-1]
}

func (e *Encoder) attach(n *node) error {
	if len(e.stack) == 0 {
		if e.root != nil {
			return rerr.New(rerr.KindSerialization, "xformat: encoder already produced a root element")
		}
		e.root = n
		return nil
	}
	e.current().children = append(e.current().children, n)
	return nil
}

func (e *Encoder) AddValue(name, typeName string, v *serial.SI, id string) error {
	s, err := v.String()
	if err != nil {
		return err
	}
	return e.attach(&node{kind: nodeValue, name: name, typeName: typeName, id: id, text: s})
}

func (e *Encoder) AddReference(name, target string) error {
	return e.attach(&node{kind: nodeReference, name: name, text: target})
}

func (e *Encoder) BeginObject(name, typeName, id string) error {
	n := &node{kind: nodeObject, name: name, typeName: typeName, id: id}
	if err := e.attach(n); err != nil {
		return err
	}
	e.stack = append(e.stack, n)
	return nil
}

func (e *Encoder) BeginMember(string) error { return nil }
func (e *Encoder) FinishMember() error      { return nil }

func (e *Encoder) FinishObject() error {
	return e.pop()
}

func (e *Encoder) BeginArray(name, typeName, id string) error {
	n := &node{kind: nodeArray, name: name, typeName: typeName, id: id}
	if err := e.attach(n); err != nil {
		return err
	}
	e.stack = append(e.stack, n)
	return nil
}

func (e *Encoder) FinishArray() error {
	return e.pop()
}

func (e *Encoder) pop() error {
	if len(e.stack) == 0 {
		return rerr.New(rerr.KindSerialization, "xformat: unbalanced Finish call")
	}
	e.stack = e.stack[:len(e.stack)-1]
	return nil
}

func (e *Encoder) Finish() error {
	if len(e.stack) != 0 {
		return rerr.New(rerr.KindSerialization, "xformat: Finish with open object/array")
	}
	if e.root == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := e.render(&buf, e.root, rootTag(e.root)); err != nil {
		return err
	}
	_, err := e.w.Write(buf.Bytes())
	return err
}

func rootTag(n *node) string {
	if n.name != "" {
		return n.name
	}
	if n.typeName != "" {
		return n.typeName
	}
	return "value"
}

func childTag(parent *node, c *node) string {
	if c.name != "" {
		return c.name
	}
	if parent.typeName != "" {
		return parent.typeName
	}
	return "item"
}

func (e *Encoder) render(buf *bytes.Buffer, n *node, tag string) error {
	switch n.kind {
	case nodeReference:
		buf.WriteByte('<')
		buf.WriteString(tag)
		buf.WriteString(` ref="`)
		writeAttrValue(buf, n.text)
		buf.WriteString(`"/>`)
		return nil
	case nodeValue:
		buf.WriteByte('<')
		buf.WriteString(tag)
		buf.WriteByte('>')
		writeText(buf, n.text)
		buf.WriteString("</")
		buf.WriteString(tag)
		buf.WriteByte('>')
		return nil
	case nodeArray:
		buf.WriteByte('<')
		buf.WriteString(tag)
		if n.id != "" {
			buf.WriteString(` id="`)
			writeAttrValue(buf, n.id)
			buf.WriteByte('"')
		}
		buf.WriteString(` type="array"`)
		if len(n.children) == 0 {
			buf.WriteString("/>")
			return nil
		}
		buf.WriteByte('>')
		for _, c := range n.children {
			if err := e.render(buf, c, childTag(n, c)); err != nil {
				return err
			}
		}
		buf.WriteString("</")
		buf.WriteString(tag)
		buf.WriteByte('>')
		return nil
	case nodeObject:
		var attrs bytes.Buffer
		var elements []*node
		if n.id != "" {
			attrs.WriteString(` id="`)
			writeAttrValue(&attrs, n.id)
			attrs.WriteByte('"')
		}
		if n.typeName != "" {
			attrs.WriteString(` type="`)
			writeAttrValue(&attrs, n.typeName)
			attrs.WriteByte('"')
		}
		for _, c := range n.children {
			if e.mode == AttributeMode && c.kind == nodeValue && c.name != "" {
				attrs.WriteByte(' ')
				attrs.WriteString(c.name)
				attrs.WriteString(`="`)
				writeAttrValue(&attrs, c.text)
				attrs.WriteByte('"')
				continue
			}
			elements = append(elements, c)
		}
		buf.WriteByte('<')
		buf.WriteString(tag)
		buf.Write(attrs.Bytes())
		if len(elements) == 0 {
			buf.WriteString("/>")
			return nil
		}
		buf.WriteByte('>')
		for _, c := range elements {
			if err := e.render(buf, c, childTag(n, c)); err != nil {
				return err
			}
		}
		buf.WriteString("</")
		buf.WriteString(tag)
		buf.WriteByte('>')
		return nil
	default:
		return rerr.New(rerr.KindSerialization, "xformat: unknown node kind")
	}
}

func writeText(buf *bytes.Buffer, s string) {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	buf.WriteString(r.Replace(s))
}

func writeAttrValue(buf *bytes.Buffer, s string) {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	buf.WriteString(r.Replace(s))
}
