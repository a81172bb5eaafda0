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

package binrpc

import (
	"bytes"

	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/serial"
	"github/sabouaram/reactorkit/serial/binfmt"
)

const (
	tagRequest   byte = 0xC0
	tagResponse  byte = 0xC1
	tagException byte = 0xC2
)

func writeZString(buf *bytes.Buffer, s string) {
	buf.WriteString(s)
	buf.WriteByte(0)
}

func readZString(data []byte, pos int) (string, int, error) {
	end := bytes.IndexByte(data[pos:], 0)
	if end < 0 {
		return "", 0, rerr.New(rerr.KindProtocol, "binrpc: unterminated method name")
	}
	return string(data[pos : pos+end]), pos + end + 1, nil
}

func encodeValue(buf *bytes.Buffer, si *serial.SI) error {
	enc := binfmt.NewEncoder(buf)
	if err := serial.Walk(si, enc); err != nil {
		return err
	}
	return enc.Finish()
}

func decodeValues(data []byte, pos int) ([]*serial.SI, int, error) {
	var values []*serial.SI
	for pos < len(data) && data[pos] != binfmt.Eod {
		d := serial.NewDeserializer()
		next, err := binfmt.DecodeAt(data, pos, d)
		if err != nil {
			return nil, 0, err
		}
		si, err := d.Result()
		if err != nil {
			return nil, 0, err
		}
		values = append(values, si)
		pos = next
	}
	if pos >= len(data) {
		return nil, 0, rerr.New(rerr.KindProtocol, "binrpc: missing Eod terminator")
	}
	return values, pos + 1, nil
}

// EncodeRequest renders a RpcRequest message: method name, one record
// per argument, terminated by Eod.
func EncodeRequest(method string, args []*serial.SI) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(tagRequest)
	writeZString(&buf, method)
	for _, a := range args {
		if err := encodeValue(&buf, a); err != nil {
			return nil, err
		}
	}
	buf.WriteByte(binfmt.Eod)
	return buf.Bytes(), nil
}

// DecodeRequest parses a RpcRequest message produced by EncodeRequest.
func DecodeRequest(data []byte) (method string, args []*serial.SI, err error) {
	if len(data) == 0 || data[0] != tagRequest {
		return "", nil, rerr.New(rerr.KindProtocol, "binrpc: not a RpcRequest message")
	}
	method, pos, err := readZString(data, 1)
	if err != nil {
		return "", nil, err
	}
	args, _, err = decodeValues(data, pos)
	if err != nil {
		return "", nil, err
	}
	return method, args, nil
}

// EncodeResponse renders a RpcResponse message: one record for the
// result (or none, for a void result), terminated by Eod.
func EncodeResponse(result *serial.SI) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(tagResponse)
	if result != nil {
		if err := encodeValue(&buf, result); err != nil {
			return nil, err
		}
	}
	buf.WriteByte(binfmt.Eod)
	return buf.Bytes(), nil
}

// DecodeResponse parses a RpcResponse message. result is nil for a
// void reply.
func DecodeResponse(data []byte) (result *serial.SI, err error) {
	if len(data) == 0 || data[0] != tagResponse {
		return nil, rerr.New(rerr.KindProtocol, "binrpc: not a RpcResponse message")
	}
	values, _, err := decodeValues(data, 1)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values[0], nil
}

// EncodeException renders a RpcException message: a binfmt int64 code
// followed by a binfmt string message, terminated by Eod.
func EncodeException(code int, message string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(tagException)
	if err := encodeValue(&buf, serial.NewInt64("", int64(code))); err != nil {
		return nil, err
	}
	if err := encodeValue(&buf, serial.NewString("", message)); err != nil {
		return nil, err
	}
	buf.WriteByte(binfmt.Eod)
	return buf.Bytes(), nil
}

// DecodeException parses a RpcException message.
func DecodeException(data []byte) (code int, message string, err error) {
	if len(data) == 0 || data[0] != tagException {
		return 0, "", rerr.New(rerr.KindProtocol, "binrpc: not a RpcException message")
	}
	values, _, err := decodeValues(data, 1)
	if err != nil {
		return 0, "", err
	}
	if len(values) != 2 {
		return 0, "", rerr.New(rerr.KindProtocol, "binrpc: malformed RpcException payload")
	}
	c, err := values[0].Int64()
	if err != nil {
		return 0, "", err
	}
	msg, err := values[1].String()
	if err != nil {
		return 0, "", err
	}
	return int(c), msg, nil
}

// IsResponse reports whether data's leading tag is RpcResponse.
func IsResponse(data []byte) bool { return len(data) > 0 && data[0] == tagResponse }

// IsException reports whether data's leading tag is RpcException.
func IsException(data []byte) bool { return len(data) > 0 && data[0] == tagException }
