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
	"encoding/xml"
	"io"

	"golang.org/x/net/html/charset"

	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/serial"
)

// xnode is a fully-buffered parse of one XML element and its subtree,
// built by a single forward pass over the xml.Decoder stream. Decode
// parses into this shape first and pushes Formatter events from it in a
// second pass, since telling an array from an object from a leaf value
// requires having already seen every child.
type xnode struct {
	name  string
	id    string
	typ   string
	ref   string
	isRef bool
	attrs []xml.Attr
	text  string
	kids  []*xnode
}

// Decode parses an XML document (auto-detecting non-UTF-8 charsets via
// its XML or HTTP-style declaration) and pushes the reconstructed SI
// events into f, regardless of whether Encoder wrote it in ElementMode
// or AttributeMode.
func Decode(data []byte, f serial.Formatter) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	se, err := nextElement(dec)
	if err != nil {
		return err
	}
	if se == nil {
		return rerr.New(rerr.KindSerialization, "xformat: empty document")
	}
	root, err := parseElement(dec, se)
	if err != nil {
		return err
	}
	if err := pushEvents(root, f); err != nil {
		return err
	}
	return f.Finish()
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

func nextElement(dec *xml.Decoder) (*xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, rerr.Wrap(rerr.KindSerialization, "xformat: tokenize", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			se = se.Copy()
			return &se, nil
		}
	}
}

func parseElement(dec *xml.Decoder, se *xml.StartElement) (*xnode, error) {
	n := &xnode{name: se.Name.Local}
	for _, a := range se.Attr {
		switch a.Name.Local {
		case "id":
			n.id = a.Value
		case "type":
			n.typ = a.Value
		case "ref":
			n.ref = a.Value
			n.isRef = true
		default:
			n.attrs = append(n.attrs, a)
		}
	}
	if n.isRef {
		if err := skipElement(dec); err != nil {
			return nil, err
		}
		return n, nil
	}

	var text bytes.Buffer
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, rerr.Wrap(rerr.KindSerialization, "xformat: tokenize", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := parseElement(dec, &t)
			if err != nil {
				return nil, err
			}
			n.kids = append(n.kids, child)
		case xml.EndElement:
			n.text = text.String()
			return n, nil
		case xml.CharData:
			text.Write(t)
		}
	}
}

func skipElement(dec *xml.Decoder) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return rerr.Wrap(rerr.KindSerialization, "xformat: tokenize", err)
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

// pushEvents emits the serial.Formatter event sequence for n, used both
// for n itself (the AddValue/BeginObject/BeginArray/AddReference call)
// and, from BeginObject/BeginArray's caller, wrapped in BeginMember for
// named object members.
func pushEvents(n *xnode, f serial.Formatter) error {
	if n.isRef {
		return f.AddReference(n.name, n.ref)
	}

	isArray := n.typ == "array"
	if len(n.kids) == 0 && len(n.attrs) == 0 && !isArray {
		return f.AddValue(n.name, n.typ, serial.NewString("", n.text), n.id)
	}

	if isArray {
		if err := f.BeginArray(n.name, n.typ, n.id); err != nil {
			return err
		}
		for _, c := range n.kids {
			if err := pushEvents(c, f); err != nil {
				return err
			}
		}
		return f.FinishArray()
	}

	if err := f.BeginObject(n.name, n.typ, n.id); err != nil {
		return err
	}
	for _, a := range n.attrs {
		if err := f.BeginMember(a.Name.Local); err != nil {
			return err
		}
		if err := f.AddValue(a.Name.Local, "", serial.NewString("", a.Value), ""); err != nil {
			return err
		}
		if err := f.FinishMember(); err != nil {
			return err
		}
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
}
