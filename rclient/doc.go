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

// Package rclient gives callers one remote-call surface regardless of
// which of the four wire encodings (xmlrpc, jsonrpc/HTTP, jsonrpc/TCP,
// binrpc) a server happens to speak: a Client picks its transport at
// construction time from a Protocol and address/URL, then exposes the
// same synchronous Call, asynchronous Begin/End, per-call timeout, and
// Cancel surface no matter which one it is.
//
// A Client is built directly on the rpc.Client/rpc.AsyncClient/rpc.Call
// machinery each transport package already implements; it adds three
// things none of them carry on their own: a default per-call timeout
// applied when the caller doesn't supply a deadline, a Cancel that
// works uniformly across transports, and optional trace hooks
// (OnConnect/OnRequest/OnResponse) for call-timing instrumentation.
package rclient
