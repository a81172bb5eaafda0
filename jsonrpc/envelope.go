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

package jsonrpc

import (
	"bytes"

	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/rpc"
	"github/sabouaram/reactorkit/serial"
	"github/sabouaram/reactorkit/serial/jformat"
)

// EncodeRequest builds a {"jsonrpc":"2.0","method":...,"params":...,"id":...}
// envelope. A nil id produces a notification: the member is omitted
// entirely rather than written as null, per the JSON-RPC contract that
// a notification is identified by the absence of "id".
func EncodeRequest(method string, args []*serial.SI, id *serial.SI) ([]byte, error) {
	obj := serial.NewObject("", "")
	obj.Members = append(obj.Members, serial.NewString("jsonrpc", "2.0"))
	obj.Members = append(obj.Members, serial.NewString("method", method))

	params := serial.NewArray("params", "")
	params.Members = args
	obj.Members = append(obj.Members, params)

	if id != nil {
		obj.Members = append(obj.Members, renamed(id, "id"))
	}
	return encodeEnvelope(obj)
}

// DecodeRequest parses a request envelope. id is nil when the envelope
// carries no "id" member (a notification).
func DecodeRequest(data []byte) (method string, args []*serial.SI, id *serial.SI, err error) {
	obj, err := decodeEnvelope(data)
	if err != nil {
		return "", nil, nil, err
	}
	m, ok := obj.Find("method")
	if !ok {
		return "", nil, nil, rerr.New(rerr.KindProtocol, "jsonrpc: request missing method")
	}
	method, err = m.String()
	if err != nil {
		return "", nil, nil, err
	}
	if p, ok := obj.Find("params"); ok {
		args = p.Members
	}
	id, _ = obj.Find("id")
	return method, args, id, nil
}

// EncodeResult builds a {"jsonrpc":"2.0","result":...,"id":...} envelope.
// A nil result encodes as a JSON null, matching a void procedure.
func EncodeResult(id *serial.SI, result *serial.SI) ([]byte, error) {
	obj := serial.NewObject("", "")
	obj.Members = append(obj.Members, serial.NewString("jsonrpc", "2.0"))
	if result != nil {
		obj.Members = append(obj.Members, renamed(result, "result"))
	} else {
		obj.Members = append(obj.Members, &serial.SI{Category: serial.CategoryValue, Name: "result"})
	}
	obj.Members = append(obj.Members, idOrNull(id))
	return encodeEnvelope(obj)
}

// EncodeError builds a {"jsonrpc":"2.0","error":{"code":...,"message":...},"id":...}
// envelope from an application or taxonomy rpc.Error.
func EncodeError(id *serial.SI, rpcErr *rpc.Error) ([]byte, error) {
	obj := serial.NewObject("", "")
	obj.Members = append(obj.Members, serial.NewString("jsonrpc", "2.0"))

	errObj := serial.NewObject("error", "")
	errObj.Members = append(errObj.Members, serial.NewInt64("code", int64(rpcErr.Code)))
	errObj.Members = append(errObj.Members, serial.NewString("message", rpcErr.Message))
	if rpcErr.Data != nil {
		if dataSI, ok := rpcErr.Data.(*serial.SI); ok {
			errObj.Members = append(errObj.Members, renamed(dataSI, "data"))
		} else if dataSI, err := serial.ToSI(rpcErr.Data); err == nil {
			errObj.Members = append(errObj.Members, renamed(dataSI, "data"))
		}
	}
	obj.Members = append(obj.Members, errObj)
	obj.Members = append(obj.Members, idOrNull(id))
	return encodeEnvelope(obj)
}

// DecodeReply parses a result or error envelope. Exactly one of result
// and rpcErr is non-nil on success.
func DecodeReply(data []byte) (result *serial.SI, rpcErr *rpc.Error, id *serial.SI, err error) {
	obj, err := decodeEnvelope(data)
	if err != nil {
		return nil, nil, nil, err
	}
	id, _ = obj.Find("id")

	if e, ok := obj.Find("error"); ok {
		code, message := 0, ""
		if c, ok := e.Find("code"); ok {
			n, cErr := c.Int64()
			if cErr != nil {
				return nil, nil, nil, cErr
			}
			code = int(n)
		}
		if m, ok := e.Find("message"); ok {
			message, _ = m.String()
		}
		out := &rpc.Error{Code: code, Message: message}
		if d, ok := e.Find("data"); ok {
			out.Data = d
		}
		return nil, out, id, nil
	}

	result, _ = obj.Find("result")
	return result, nil, id, nil
}

func renamed(si *serial.SI, name string) *serial.SI {
	c := *si
	c.Name = name
	return &c
}

func idOrNull(id *serial.SI) *serial.SI {
	if id == nil {
		return &serial.SI{Category: serial.CategoryValue, Name: "id"}
	}
	return renamed(id, "id")
}

func encodeEnvelope(si *serial.SI) ([]byte, error) {
	var buf bytes.Buffer
	enc := jformat.NewEncoder(&buf, jformat.Options{})
	if err := serial.Walk(si, enc); err != nil {
		return nil, err
	}
	if err := enc.Finish(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeEnvelope(data []byte) (*serial.SI, error) {
	d := serial.NewDeserializer()
	if err := jformat.Decode(data, d); err != nil {
		return nil, err
	}
	si, err := d.Result()
	if err != nil {
		return nil, err
	}
	if si == nil || si.Category != serial.CategoryObject {
		return nil, rerr.New(rerr.KindProtocol, "jsonrpc: envelope is not a JSON object")
	}
	return si, nil
}
