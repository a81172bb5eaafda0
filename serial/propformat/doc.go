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

// Package propformat is a flat properties binding of serial.Formatter:
// every leaf value is written as a dotted-path key followed by a quoted,
// backslash-escaped string value, one entry per line, generalizing the
// single-level "prefix.name = value" flattening of a settings writer to
// arbitrarily nested objects and arrays (array elements become numeric
// path segments). Lines starting with '#' are comments; blank lines are
// ignored. A reference is written as "path = $ref(targetID)" rather than
// a quoted string, since it is not a value.
//
// Because a properties file has no type system, every decoded leaf comes
// back as a string-kind SI node; round-tripping through propformat is
// therefore lossy with respect to numeric/bool typing, matching how real
// properties files behave.
package propformat
