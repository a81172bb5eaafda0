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

// Package binrpc is the proprietary binary RPC transport: a request is
// the byte 0xC0 (RpcRequest), a zero-terminated method name, one
// binfmt-encoded record per argument, then a terminating 0xFF (Eod); a
// reply is 0xC1 (RpcResponse) followed by one binfmt record for the
// result and a terminating Eod, or 0xC2 (RpcException) followed by a
// binfmt int64 code, a binfmt string message, and Eod.
//
// Each in-memory message is self-delimiting (it carries its own Eod),
// but a TCP byte stream still needs a socket-level frame boundary, so
// Server and Client prefix every message with a 4-byte big-endian
// length - the same length-delimited option the wire format offers
// jsonrpc's TCP binding.
package binrpc
