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

package rstr

import "strings"

// QueryParams holds the result of parsing a URL query string: bare tokens
// with no '=' (Unnamed) and key=value pairs, a key possibly repeated
// (Named), matching cxxtools's query_params split between unnamed and
// named parameters.
type QueryParams struct {
	Unnamed []string
	Named   map[string][]string
}

type queryState int

const (
	queryStateKey queryState = iota
	queryStateValue
	queryStateKeyEsc
	queryStateValueEsc
)

// ParseQuery parses a query string of the form "a=1&b=2&bare&c=3", with
// '+' decoded as space and "%XX" as a hex-escaped byte, exactly as
// cxxtools's query_params::parse_url does.
func ParseQuery(s string) QueryParams {
	qp := QueryParams{Named: make(map[string][]string)}

	state := queryStateKey
	var key, value strings.Builder
	var esc byte
	escCount := -1

	flushUnnamed := func() {
		if key.Len() > 0 {
			qp.Unnamed = append(qp.Unnamed, key.String())
		}
		key.Reset()
	}
	flushNamed := func() {
		qp.Named[key.String()] = append(qp.Named[key.String()], value.String())
		key.Reset()
		value.Reset()
	}

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch state {
		case queryStateKey:
			switch ch {
			case '=':
				state = queryStateValue
			case '&':
				flushUnnamed()
			case '%':
				esc, escCount = 0, 0
				state = queryStateKeyEsc
			case ' ', '\t':
				i = len(s)
			default:
				key.WriteByte(ch)
			}

		case queryStateValue:
			switch ch {
			case '%':
				esc, escCount = 0, 0
				state = queryStateValueEsc
			case '&':
				flushNamed()
				state = queryStateKey
			case '+':
				value.WriteByte(' ')
			default:
				value.WriteByte(ch)
			}

		case queryStateKeyEsc, queryStateValueEsc:
			esc = esc<<4 + hexNibble(ch)
			escCount++
			if escCount >= 2 {
				if state == queryStateKeyEsc {
					key.WriteByte(esc)
					state = queryStateKey
				} else {
					value.WriteByte(esc)
					state = queryStateValue
				}
				escCount = -1
			}
		}
	}

	switch state {
	case queryStateKey, queryStateKeyEsc:
		flushUnnamed()
	case queryStateValue, queryStateValueEsc:
		flushNamed()
	}

	return qp
}

func hexNibble(ch byte) byte {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0'
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10
	default:
		return 0
	}
}

// EncodeURL renders qp back into a query string, percent-encoding any byte
// outside the unreserved printable ASCII range and mapping space to '+',
// mirroring cxxtools's query_params::getUrl.
func EncodeURL(qp QueryParams) string {
	var b strings.Builder
	for _, u := range qp.Unnamed {
		appendEscaped(&b, u)
		b.WriteByte('&')
	}
	for k, values := range qp.Named {
		for _, v := range values {
			b.WriteString(k)
			b.WriteByte('=')
			appendEscaped(&b, v)
			b.WriteByte('&')
		}
	}
	out := b.String()
	return strings.TrimSuffix(out, "&")
}

func appendEscaped(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == ' ':
			b.WriteByte('+')
		case ch > 32 && ch < 127 && ch != '%' && ch != '+' && ch != '&' && ch != '=':
			b.WriteByte(ch)
		default:
			const hex = "0123456789ABCDEF"
			b.WriteByte('%')
			b.WriteByte(hex[ch>>4])
			b.WriteByte(hex[ch&0x0f])
		}
	}
}
