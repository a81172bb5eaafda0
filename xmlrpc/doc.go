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

// Package xmlrpc is the canonical XML-RPC HTTP binding:
// <methodCall><methodName/><params><param><value>...</value></param>...
// </params></methodCall> requests, <methodResponse><params>...</params>
// </methodResponse> or <methodResponse><fault><value><struct>
// <member><name>faultCode</name><value>...</value></member>
// <member><name>faultString</name><value>...</value></member></struct>
// </value></fault></methodResponse> replies.
//
// The nested element/escaping machinery is the adapted serial/xformat
// package driven over hand-built serial.SI trees that mirror the XML-RPC
// tag vocabulary exactly (value, int, string, double, boolean, struct,
// member, name, array, data) - the scalar-to-tag mapping and the struct/
// array recursion are XML-RPC-specific logic layered on top, the same
// division of labor jsonrpc uses over jformat and binrpc uses over
// binfmt.
package xmlrpc
