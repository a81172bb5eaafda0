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

package jformat

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/serial"
)

// Decode parses a single JSON text out of data and pushes the
// corresponding events into f. A top-level {"$ref": "..."} object is
// reported as AddReference rather than AddValue/BeginObject, mirroring
// what Encoder produces for serial.CategoryReference nodes.
func Decode(data []byte, f serial.Formatter) error {
	p := &parser{buf: data}
	p.skipWS()
	if err := p.parseValue("", f); err != nil {
		return err
	}
	p.skipWS()
	if p.pos != len(p.buf) {
		return rerr.New(rerr.KindSerialization, "jformat: trailing data after JSON value")
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

type parser struct {
	buf []byte
	pos int
}

func (p *parser) skipWS() {
	for p.pos < len(p.buf) {
		switch p.buf[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) errf(msg string) error {
	return rerr.Newf(rerr.KindSerialization, "jformat: %s at offset %d", msg, p.pos)
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.buf) {
		return 0, false
	}
	return p.buf[p.pos], true
}

func (p *parser) expect(c byte) error {
	b, ok := p.peek()
	if !ok || b != c {
		return p.errf("expected '" + string(c) + "'")
	}
	p.pos++
	return nil
}

func (p *parser) parseValue(name string, f serial.Formatter) error {
	p.skipWS()
	b, ok := p.peek()
	if !ok {
		return p.errf("unexpected end of input")
	}
	switch {
	case b == '{':
		return p.parseObject(name, f)
	case b == '[':
		return p.parseArray(name, f)
	case b == '"':
		s, err := p.parseStringLiteral()
		if err != nil {
			return err
		}
		return f.AddValue(name, "", serial.NewString("", s), "")
	case b == 't' || b == 'f':
		return p.parseBool(name, f)
	case b == 'n':
		return p.parseNull(name, f)
	case b == '-' || (b >= '0' && b <= '9'):
		return p.parseNumber(name, f)
	default:
		return p.errf("unexpected character")
	}
}

// parseObject special-cases the single-key {"$ref": "..."} shape that
// Encoder emits for references, so reference round-tripping doesn't
// depend on the Deserializer guessing from shape after the fact.
func (p *parser) parseObject(name string, f serial.Formatter) error {
	start := p.pos
	p.pos++ // consume '{'
	p.skipWS()

	if b, ok := p.peek(); ok && b == '"' {
		keyStart := p.pos
		key, err := p.parseStringLiteral()
		if err == nil && key == "$ref" {
			p.skipWS()
			if err := p.expect(':'); err == nil {
				p.skipWS()
				target, err := p.parseStringLiteral()
				if err == nil {
					p.skipWS()
					if b, ok := p.peek(); ok && b == '}' {
						p.pos++
						return f.AddReference(name, target)
					}
				}
			}
		}
		p.pos = keyStart
	}
	p.pos = start

	p.pos++ // consume '{'
	if err := f.BeginObject(name, "", ""); err != nil {
		return err
	}
	p.skipWS()
	if b, ok := p.peek(); ok && b == '}' {
		p.pos++
		return f.FinishObject()
	}
	for {
		p.skipWS()
		key, err := p.parseStringLiteral()
		if err != nil {
			return err
		}
		p.skipWS()
		if err := p.expect(':'); err != nil {
			return err
		}
		if err := f.BeginMember(key); err != nil {
			return err
		}
		if err := p.parseValue(key, f); err != nil {
			return err
		}
		if err := f.FinishMember(); err != nil {
			return err
		}
		p.skipWS()
		b, ok := p.peek()
		if !ok {
			return p.errf("unterminated object")
		}
		if b == ',' {
			p.pos++
			continue
		}
		if b == '}' {
			p.pos++
			return f.FinishObject()
		}
		return p.errf("expected ',' or '}'")
	}
}

func (p *parser) parseArray(name string, f serial.Formatter) error {
	p.pos++ // consume '['
	if err := f.BeginArray(name, "", ""); err != nil {
		return err
	}
	p.skipWS()
	if b, ok := p.peek(); ok && b == ']' {
		p.pos++
		return f.FinishArray()
	}
	for {
		if err := p.parseValue("", f); err != nil {
			return err
		}
		p.skipWS()
		b, ok := p.peek()
		if !ok {
			return p.errf("unterminated array")
		}
		if b == ',' {
			p.pos++
			continue
		}
		if b == ']' {
			p.pos++
			return f.FinishArray()
		}
		return p.errf("expected ',' or ']'")
	}
}

func (p *parser) parseBool(name string, f serial.Formatter) error {
	if strings.HasPrefix(string(p.buf[p.pos:]), "true") {
		p.pos += 4
		return f.AddValue(name, "", serial.NewBool("", true), "")
	}
	if strings.HasPrefix(string(p.buf[p.pos:]), "false") {
		p.pos += 5
		return f.AddValue(name, "", serial.NewBool("", false), "")
	}
	return p.errf("invalid literal")
}

func (p *parser) parseNull(name string, f serial.Formatter) error {
	if strings.HasPrefix(string(p.buf[p.pos:]), "null") {
		p.pos += 4
		return f.AddValue(name, "", &serial.SI{Category: serial.CategoryValue}, "")
	}
	return p.errf("invalid literal")
}

func (p *parser) parseNumber(name string, f serial.Formatter) error {
	start := p.pos
	if b, _ := p.peek(); b == '-' {
		p.pos++
	}
	isFloat := false
	for p.pos < len(p.buf) {
		b := p.buf[p.pos]
		switch {
		case b >= '0' && b <= '9':
			p.pos++
		case b == '.' || b == 'e' || b == 'E' || b == '+' || b == '-':
			isFloat = true
			p.pos++
		default:
			goto done
		}
	}
done:
	text := string(p.buf[start:p.pos])
	if !isFloat {
		n, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			return f.AddValue(name, "", serial.NewInt64("", n), "")
		}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return p.errf("invalid number")
	}
	return f.AddValue(name, "", serial.NewFloat64("", v), "")
}

func (p *parser) parseStringLiteral() (string, error) {
	if err := p.expect('"'); err != nil {
		return "", err
	}
	var sb strings.Builder
	for {
		b, ok := p.peek()
		if !ok {
			return "", p.errf("unterminated string")
		}
		if b == '"' {
			p.pos++
			return sb.String(), nil
		}
		if b != '\\' {
			r, size := utf8.DecodeRune(p.buf[p.pos:])
			sb.WriteRune(r)
			p.pos += size
			continue
		}
		p.pos++
		esc, ok := p.peek()
		if !ok {
			return "", p.errf("unterminated escape")
		}
		switch esc {
		case '"', '\\', '/':
			sb.WriteByte(esc)
			p.pos++
		case 'n':
			sb.WriteByte('\n')
			p.pos++
		case 't':
			sb.WriteByte('\t')
			p.pos++
		case 'r':
			sb.WriteByte('\r')
			p.pos++
		case 'b':
			sb.WriteByte('\b')
			p.pos++
		case 'f':
			sb.WriteByte('\f')
			p.pos++
		case 'u':
			p.pos++
			r1, err := p.parseHex4()
			if err != nil {
				return "", err
			}
			if utf16.IsSurrogate(rune(r1)) {
				if err := p.expect('\\'); err != nil {
					return "", err
				}
				if err := p.expect('u'); err != nil {
					return "", err
				}
				r2, err := p.parseHex4()
				if err != nil {
					return "", err
				}
				sb.WriteRune(utf16.DecodeRune(rune(r1), rune(r2)))
			} else {
				sb.WriteRune(rune(r1))
			}
		default:
			return "", p.errf("invalid escape")
		}
	}
}

func (p *parser) parseHex4() (uint32, error) {
	if p.pos+4 > len(p.buf) {
		return 0, p.errf("truncated \\u escape")
	}
	v, err := strconv.ParseUint(string(p.buf[p.pos:p.pos+4]), 16, 32)
	if err != nil {
		return 0, p.errf("invalid \\u escape")
	}
	p.pos += 4
	return uint32(v), nil
}
