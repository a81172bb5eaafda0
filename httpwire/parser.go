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

package httpwire

import (
	"strconv"
	"strings"

	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/rstr"
)

// Status is the outcome of feeding a single byte to the Parser.
type Status int

const (
	// StatusIncomplete means the parser consumed the byte and wants more.
	StatusIncomplete Status = iota
	// StatusDone means the parser just consumed the header block's final
	// CRLF; Message() now returns a complete result.
	StatusDone
)

type state int

const (
	sMethod state = iota
	sMethodSP
	sURI
	sURISP
	sVersion
	sReqLineCR
	sReqLineLF

	sStatusVersion
	sStatusVersionSP
	sStatusCode
	sStatusCodeSP
	sStatusText
	sStatusLineCR
	sStatusLineLF

	sHeaderLineStart
	sHeaderName
	sHeaderColon
	sHeaderValue
	sHeaderValueCR
	sHeaderValueLF

	sHeadersFinalLF

	sDone
	sError
)

// maxLineLength bounds any single token (method, URI, version, header
// name/value) the parser will accumulate before declaring the input
// malformed, guarding against unbounded memory growth from a hostile peer.
const maxLineLength = 8192

// Parser is a byte-at-a-time HTTP/1.1 request or response line + header
// parser. The same type parses both directions, switched by the
// isResponse flag that NewRequestParser/NewResponseParser set; feeding its bytes one at a time or all at
// once produces the identical Message.
type Parser struct {
	isResponse bool
	st         state

	tok strings.Builder

	msg *Message

	curName  string
	curValue strings.Builder

	err error
}

// NewRequestParser returns a Parser that reads a request line (method,
// URI, version) followed by headers.
func NewRequestParser() *Parser {
	return &Parser{st: sMethod, msg: newMessage(false)}
}

// NewResponseParser returns a Parser that reads a status line (version,
// code, reason) followed by headers.
func NewResponseParser() *Parser {
	return &Parser{isResponse: true, st: sStatusVersion, msg: newMessage(true)}
}

// Reset restores the parser to its initial state so it can parse another
// message on the same connection (used after a keep-alive response).
func (p *Parser) Reset() {
	p.tok.Reset()
	p.curValue.Reset()
	p.curName = ""
	p.err = nil
	if p.isResponse {
		p.st = sStatusVersion
		p.msg = newMessage(true)
	} else {
		p.st = sMethod
		p.msg = newMessage(false)
	}
}

// Message returns the message parsed so far; complete only once Feed has
// returned StatusDone.
func (p *Parser) Message() *Message { return p.msg }

func (p *Parser) fail(reason string) (Status, error) {
	p.st = sError
	p.err = rerr.New(rerr.KindProtocol, "httpwire: "+reason)
	return StatusIncomplete, p.err
}

// Feed consumes one byte. It returns StatusDone exactly once, on the byte
// that completes the header block's terminating CRLF. Calling Feed again
// after StatusDone or after an error is undefined; call Reset first.
func (p *Parser) Feed(b byte) (Status, error) {
	if p.st == sError {
		return StatusIncomplete, p.err
	}

	switch p.st {
	case sMethod:
		switch {
		case b == ' ':
			p.msg.Method = p.tok.String()
			p.tok.Reset()
			if p.msg.Method == "" {
				return p.fail("empty method")
			}
			p.st = sMethodSP
		case isToken(b):
			if p.tok.Len() >= maxLineLength {
				return p.fail("method too long")
			}
			p.tok.WriteByte(b)
		default:
			return p.fail("invalid method character")
		}

	case sMethodSP:
		if b == ' ' {
			return StatusIncomplete, nil
		}
		p.st = sURI
		return p.Feed(b)

	case sURI:
		switch b {
		case ' ':
			p.setURI(p.tok.String())
			p.tok.Reset()
			p.st = sURISP
		case '\r', '\n':
			return p.fail("unexpected end of line in URI")
		default:
			if p.tok.Len() >= maxLineLength {
				return p.fail("uri too long")
			}
			p.tok.WriteByte(b)
		}

	case sURISP:
		if b == ' ' {
			return StatusIncomplete, nil
		}
		p.st = sVersion
		return p.Feed(b)

	case sVersion:
		switch b {
		case '\r':
			if err := p.parseVersion(p.tok.String()); err != nil {
				return p.fail(err.Error())
			}
			p.tok.Reset()
			p.st = sReqLineCR
		case '\n':
			return p.fail("bare LF in version")
		default:
			if p.tok.Len() >= maxLineLength {
				return p.fail("version too long")
			}
			p.tok.WriteByte(b)
		}

	case sReqLineCR:
		if b != '\n' {
			return p.fail("expected LF after request line CR")
		}
		p.st = sHeaderLineStart

	case sStatusVersion:
		switch b {
		case ' ':
			if err := p.parseVersion(p.tok.String()); err != nil {
				return p.fail(err.Error())
			}
			p.tok.Reset()
			p.st = sStatusVersionSP
		default:
			if p.tok.Len() >= maxLineLength {
				return p.fail("version too long")
			}
			p.tok.WriteByte(b)
		}

	case sStatusVersionSP:
		if b == ' ' {
			return StatusIncomplete, nil
		}
		p.st = sStatusCode
		return p.Feed(b)

	case sStatusCode:
		switch {
		case b == ' ':
			code, err := strconv.Atoi(p.tok.String())
			if err != nil {
				return p.fail("invalid status code")
			}
			p.msg.StatusCode = code
			p.tok.Reset()
			p.st = sStatusCodeSP
		case b >= '0' && b <= '9':
			if p.tok.Len() >= 3 {
				return p.fail("status code too long")
			}
			p.tok.WriteByte(b)
		default:
			return p.fail("invalid status code character")
		}

	case sStatusCodeSP:
		if b == ' ' {
			return StatusIncomplete, nil
		}
		p.st = sStatusText
		return p.Feed(b)

	case sStatusText:
		switch b {
		case '\r':
			p.msg.StatusText = p.tok.String()
			p.tok.Reset()
			p.st = sStatusLineCR
		case '\n':
			return p.fail("bare LF in status text")
		default:
			if p.tok.Len() >= maxLineLength {
				return p.fail("status text too long")
			}
			p.tok.WriteByte(b)
		}

	case sStatusLineCR:
		if b != '\n' {
			return p.fail("expected LF after status line CR")
		}
		p.st = sHeaderLineStart

	case sHeaderLineStart:
		return p.headerLineStart(b)

	case sHeaderName:
		switch b {
		case ':':
			p.curName = p.tok.String()
			if p.curName == "" {
				return p.fail("empty header name")
			}
			p.tok.Reset()
			p.st = sHeaderColon
		case ' ', '\t':
			return p.fail("whitespace in header name")
		default:
			if !isToken(b) {
				return p.fail("invalid header name character")
			}
			if p.tok.Len() >= maxLineLength {
				return p.fail("header name too long")
			}
			p.tok.WriteByte(b)
		}

	case sHeaderColon:
		switch b {
		case ' ', '\t':
			return StatusIncomplete, nil
		case '\r':
			p.st = sHeaderValueCR
		default:
			p.curValue.WriteByte(b)
			p.st = sHeaderValue
		}

	case sHeaderValue:
		switch b {
		case '\r':
			p.st = sHeaderValueCR
		case '\n':
			return p.fail("bare LF in header value")
		default:
			if p.curValue.Len() >= maxLineLength {
				return p.fail("header value too long")
			}
			p.curValue.WriteByte(b)
		}

	case sHeaderValueCR:
		if b != '\n' {
			return p.fail("expected LF after header value CR")
		}
		p.st = sHeaderValueLF

	case sHeaderValueLF:
		if b == ' ' || b == '\t' {
			// Folded continuation (obs-fold): collapse to a single space
			// and keep accumulating the same value.
			p.curValue.WriteByte(' ')
			p.st = sHeaderValue
			return StatusIncomplete, nil
		}
		p.flushHeader()
		return p.headerLineStart(b)

	case sHeadersFinalLF:
		if b != '\n' {
			return p.fail("expected LF after final CR")
		}
		p.st = sDone
		return StatusDone, nil

	case sDone:
		return StatusDone, nil
	}

	return StatusIncomplete, nil
}

// headerLineStart handles the byte immediately following a CRLF at the
// start of a new header line: a blank line (bare CR) ends the header
// block, otherwise it begins a new header name.
func (p *Parser) headerLineStart(b byte) (Status, error) {
	switch b {
	case '\r':
		p.st = sHeadersFinalLF
		return StatusIncomplete, nil
	case '\n':
		return p.fail("bare LF starting header line")
	default:
		if !isToken(b) {
			return p.fail("invalid header name character")
		}
		p.tok.Reset()
		p.tok.WriteByte(b)
		p.st = sHeaderName
		return StatusIncomplete, nil
	}
}

func (p *Parser) flushHeader() {
	p.msg.add(p.curName, strings.TrimSpace(p.curValue.String()))
	p.curName = ""
	p.curValue.Reset()
}

func (p *Parser) setURI(uri string) {
	p.msg.URI = uri
	if i := strings.IndexByte(uri, '?'); i >= 0 {
		p.msg.Path = uri[:i]
		p.msg.Query = rstr.ParseQuery(uri[i+1:])
	} else {
		p.msg.Path = uri
	}
}

func (p *Parser) parseVersion(tok string) error {
	const prefix = "HTTP/"
	if !strings.HasPrefix(tok, prefix) {
		return rerr.New(rerr.KindProtocol, "httpwire: missing HTTP version prefix")
	}
	rest := tok[len(prefix):]
	dot := strings.IndexByte(rest, '.')
	if dot < 0 {
		return rerr.New(rerr.KindProtocol, "httpwire: malformed HTTP version")
	}
	major, err := strconv.Atoi(rest[:dot])
	if err != nil {
		return rerr.New(rerr.KindProtocol, "httpwire: malformed HTTP version major")
	}
	minor, err := strconv.Atoi(rest[dot+1:])
	if err != nil {
		return rerr.New(rerr.KindProtocol, "httpwire: malformed HTTP version minor")
	}
	p.msg.Major, p.msg.Minor = major, minor
	return nil
}

func isToken(b byte) bool {
	if b <= 32 || b >= 127 {
		return false
	}
	switch b {
	case '(', ')', '<', '>', '@', ',', ';', ':', '\\', '"', '/', '[', ']', '?', '=', '{', '}':
		return false
	}
	return true
}
