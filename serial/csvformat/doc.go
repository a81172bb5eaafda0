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

// Package csvformat binds serial.Formatter to a flat, rectangular CSV
// table: an SI Array of Objects becomes a header row (column titles
// collected explicitly via Options.Columns, or automatically from the
// first object's member names) followed by one row per element. A value
// is quoted whenever it contains the delimiter, the quote character, or
// a line terminator; an embedded quote is doubled. Rows always use CRLF
// line endings and the default delimiter is a comma, matching a
// conventional CSV dialect.
//
// csvformat is deliberately narrow: it only round-trips the Array-of-
// flat-Objects shape a spreadsheet can represent. Encoding anything else
// (a bare scalar, a nested object, a reference) is an error.
package csvformat
