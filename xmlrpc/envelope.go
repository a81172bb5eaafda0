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

package xmlrpc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/rpc"
	"github/sabouaram/reactorkit/serial"
	"github/sabouaram/reactorkit/serial/xformat"
)

// EncodeCall builds a <methodCall> document for method(args).
func EncodeCall(method string, args []*serial.SI) ([]byte, error) {
	call := serial.NewObject("methodCall", "")
	call.Members = append(call.Members, serial.NewString("methodName", method))

	params := serial.NewObject("params", "")
	for _, a := range args {
		v, err := buildValue(a)
		if err != nil {
			return nil, err
		}
		param := serial.NewObject("param", "")
		param.Members = append(param.Members, v)
		params.Members = append(params.Members, param)
	}
	call.Members = append(call.Members, params)
	return encodeDoc(call)
}

// DecodeCall parses a <methodCall> document.
func DecodeCall(data []byte) (method string, args []*serial.SI, err error) {
	root, err := decodeDoc(data, "methodCall")
	if err != nil {
		return "", nil, err
	}
	mn, ok := root.Find("methodName")
	if !ok {
		return "", nil, rerr.New(rerr.KindProtocol, "xmlrpc: methodCall missing methodName")
	}
	method, err = mn.String()
	if err != nil {
		return "", nil, err
	}

	if p, ok := root.Find("params"); ok {
		for _, param := range p.Members {
			if param.Name != "param" {
				continue
			}
			vNode, ok := param.Find("value")
			if !ok {
				continue
			}
			v, err := decodeValue(vNode)
			if err != nil {
				return "", nil, err
			}
			args = append(args, v)
		}
	}
	return method, args, nil
}

// EncodeResponse builds a successful <methodResponse> document. A nil
// result encodes as an empty string, XML-RPC having no native void type.
func EncodeResponse(result *serial.SI) ([]byte, error) {
	var v *serial.SI
	if result == nil {
		v = serial.NewObject("value", "")
		v.Members = append(v.Members, serial.NewString("string", ""))
	} else {
		var err error
		v, err = buildValue(result)
		if err != nil {
			return nil, err
		}
	}

	param := serial.NewObject("param", "")
	param.Members = append(param.Members, v)
	params := serial.NewObject("params", "")
	params.Members = append(params.Members, param)

	resp := serial.NewObject("methodResponse", "")
	resp.Members = append(resp.Members, params)
	return encodeDoc(resp)
}

// EncodeFault builds a <methodResponse><fault>...</fault></methodResponse>
// document from an application or taxonomy rpc.Error.
func EncodeFault(rpcErr *rpc.Error) ([]byte, error) {
	st := serial.NewObject("struct", "")

	codeMember := serial.NewObject("member", "")
	codeMember.Members = append(codeMember.Members, serial.NewString("name", "faultCode"))
	codeVal, err := buildValue(serial.NewInt64("", int64(rpcErr.Code)))
	if err != nil {
		return nil, err
	}
	codeMember.Members = append(codeMember.Members, codeVal)
	st.Members = append(st.Members, codeMember)

	msgMember := serial.NewObject("member", "")
	msgMember.Members = append(msgMember.Members, serial.NewString("name", "faultString"))
	msgVal, err := buildValue(serial.NewString("", rpcErr.Message))
	if err != nil {
		return nil, err
	}
	msgMember.Members = append(msgMember.Members, msgVal)
	st.Members = append(st.Members, msgMember)

	v := serial.NewObject("value", "")
	v.Members = append(v.Members, st)

	fault := serial.NewObject("fault", "")
	fault.Members = append(fault.Members, v)

	resp := serial.NewObject("methodResponse", "")
	resp.Members = append(resp.Members, fault)
	return encodeDoc(resp)
}

// DecodeResponse parses a <methodResponse> document, returning either a
// result or an rpc.Error built from its fault struct.
func DecodeResponse(data []byte) (result *serial.SI, rpcErr *rpc.Error, err error) {
	root, err := decodeDoc(data, "methodResponse")
	if err != nil {
		return nil, nil, err
	}

	if f, ok := root.Find("fault"); ok {
		vNode, ok := f.Find("value")
		if !ok {
			return nil, nil, rerr.New(rerr.KindProtocol, "xmlrpc: fault missing value")
		}
		decoded, err := decodeValue(vNode)
		if err != nil {
			return nil, nil, err
		}
		out := &rpc.Error{}
		if c, ok := decoded.Find("faultCode"); ok {
			n, err := c.Int64()
			if err != nil {
				return nil, nil, err
			}
			out.Code = int(n)
		}
		if m, ok := decoded.Find("faultString"); ok {
			out.Message, _ = m.String()
		}
		return nil, out, nil
	}

	p, ok := root.Find("params")
	if !ok {
		return nil, nil, rerr.New(rerr.KindProtocol, "xmlrpc: methodResponse missing params")
	}
	if len(p.Members) == 0 {
		return nil, nil, nil
	}
	vNode, ok := p.Members[0].Find("value")
	if !ok {
		return nil, nil, rerr.New(rerr.KindProtocol, "xmlrpc: param missing value")
	}
	result, err = decodeValue(vNode)
	return result, nil, err
}

// buildValue wraps si in a <value> element, recursing into struct and
// array members as cxxtools' SerializationInfo-to-XML-RPC mapping does.
func buildValue(si *serial.SI) (*serial.SI, error) {
	v := serial.NewObject("value", "")

	switch si.Category {
	case serial.CategoryValue:
		scalar, err := scalarNode(si)
		if err != nil {
			return nil, err
		}
		v.Members = append(v.Members, scalar)

	case serial.CategoryObject:
		st := serial.NewObject("struct", "")
		for _, m := range si.Members {
			mv, err := buildValue(m)
			if err != nil {
				return nil, err
			}
			member := serial.NewObject("member", "")
			member.Members = append(member.Members, serial.NewString("name", m.Name))
			member.Members = append(member.Members, mv)
			st.Members = append(st.Members, member)
		}
		v.Members = append(v.Members, st)

	case serial.CategoryArray:
		data := serial.NewObject("data", "")
		for _, m := range si.Members {
			mv, err := buildValue(m)
			if err != nil {
				return nil, err
			}
			data.Members = append(data.Members, mv)
		}
		arr := serial.NewObject("array", "")
		arr.Members = append(arr.Members, data)
		v.Members = append(v.Members, arr)

	default:
		return nil, rerr.New(rerr.KindSerialization, "xmlrpc: unsupported value category")
	}
	return v, nil
}

// scalarNode maps one scalar SI to its XML-RPC tag and text
// representation; boolean notably renders as "0"/"1", not "true"/
// "false", which is why this can't just call SI.String.
func scalarNode(si *serial.SI) (*serial.SI, error) {
	switch si.Kind {
	case serial.KindString:
		s, _ := si.String()
		return serial.NewString("string", s), nil
	case serial.KindInt:
		s, _ := si.String()
		return serial.NewString("int", s), nil
	case serial.KindUint:
		s, _ := si.String()
		return serial.NewString("int", s), nil
	case serial.KindFloat:
		s, _ := si.String()
		return serial.NewString("double", s), nil
	case serial.KindBool:
		b, err := si.Bool()
		if err != nil {
			return nil, err
		}
		if b {
			return serial.NewString("boolean", "1"), nil
		}
		return serial.NewString("boolean", "0"), nil
	case serial.KindEmpty:
		return serial.NewString("string", ""), nil
	default:
		return nil, rerr.New(rerr.KindSerialization, "xmlrpc: unknown scalar kind")
	}
}

// decodeValue interprets a decoded <value> element back into an SI,
// recursing through struct and array the same way buildValue descends.
func decodeValue(vNode *serial.SI) (*serial.SI, error) {
	if vNode.Category == serial.CategoryValue {
		s, err := vNode.String()
		if err != nil {
			return nil, err
		}
		return serial.NewString("", s), nil
	}
	if vNode.Category != serial.CategoryObject || len(vNode.Members) != 1 {
		return nil, rerr.New(rerr.KindProtocol, "xmlrpc: malformed value element")
	}
	child := vNode.Members[0]

	switch child.Name {
	case "int", "i4":
		s, _ := child.String()
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, rerr.Wrap(rerr.KindSerialization, "xmlrpc: parse int", err)
		}
		return serial.NewInt64("", n), nil
	case "double":
		s, _ := child.String()
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, rerr.Wrap(rerr.KindSerialization, "xmlrpc: parse double", err)
		}
		return serial.NewFloat64("", f), nil
	case "boolean":
		s, _ := child.String()
		return serial.NewBool("", strings.TrimSpace(s) == "1"), nil
	case "string":
		s, _ := child.String()
		return serial.NewString("", s), nil
	case "struct":
		out := serial.NewObject("", "")
		for _, member := range child.Members {
			if member.Name != "member" {
				continue
			}
			nameNode, ok := member.Find("name")
			if !ok {
				continue
			}
			name, err := nameNode.String()
			if err != nil {
				return nil, err
			}
			valNode, ok := member.Find("value")
			if !ok {
				continue
			}
			mv, err := decodeValue(valNode)
			if err != nil {
				return nil, err
			}
			mv.Name = name
			out.Members = append(out.Members, mv)
		}
		return out, nil
	case "array":
		out := serial.NewArray("", "")
		dataNode, ok := child.Find("data")
		if !ok {
			return out, nil
		}
		for _, elem := range dataNode.Members {
			if elem.Name != "value" {
				continue
			}
			ev, err := decodeValue(elem)
			if err != nil {
				return nil, err
			}
			out.Members = append(out.Members, ev)
		}
		return out, nil
	default:
		return nil, rerr.New(rerr.KindProtocol, fmt.Sprintf("xmlrpc: unsupported value type %q", child.Name))
	}
}

func encodeDoc(si *serial.SI) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xformat.NewEncoder(&buf, xformat.ElementMode)
	if err := serial.Walk(si, enc); err != nil {
		return nil, err
	}
	if err := enc.Finish(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeDoc(data []byte, rootName string) (*serial.SI, error) {
	d := serial.NewDeserializer()
	if err := xformat.Decode(data, d); err != nil {
		return nil, err
	}
	root, err := d.Result()
	if err != nil {
		return nil, err
	}
	if root == nil || root.Category != serial.CategoryObject || root.Name != rootName {
		return nil, rerr.New(rerr.KindProtocol, fmt.Sprintf("xmlrpc: expected <%s> root element", rootName))
	}
	return root, nil
}
