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

// Package jsonrpc implements JSON-RPC 2.0 request, result, and error
// envelopes - {"jsonrpc":"2.0","method":...,"params":...,"id":...},
// {"jsonrpc":"2.0","result":...,"id":...}, and
// {"jsonrpc":"2.0","error":{"code":...,"message":...},"id":...} - on top
// of the shared rpc package, and offers two bindings for the same
// envelope: an httpd Responder that answers one envelope per POST body,
// and a raw TCP server/client that frames each envelope with a trailing
// newline, the transport matrix's other option alongside binrpc's
// length-prefixed framing.
//
// A request with no "id" member is a notification: the server still
// dispatches it but sends no reply body (a TCP peer gets nothing; an
// HTTP peer gets 204 No Content).
package jsonrpc
