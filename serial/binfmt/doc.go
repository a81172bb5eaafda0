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

// Package binfmt is the proprietary binary TLV binding of
// serial.Formatter: every node is a tag byte followed by an optional
// name/id pair and a payload, objects and arrays are terminated by an
// Eod byte, and a per-stream dictionary replaces a repeated member name
// with a two-byte index after its first occurrence.
//
// The container tags Pair/Vector/List/Set/Map from the original
// enumeration are not distinguished here: serial.SI only models Object
// and Array categories, so every container this package writes uses
// CategoryObject or CategoryArray. Likewise the Int8..Int64/UInt8..
// UInt64 width tags collapse to TagInt64/TagUInt64 varints, since
// serial.SI carries a signed/unsigned Kind but not a declared bit
// width. ShortFloat and BcdFloat are likewise never written -
// MediumFloat (an IEEE-754 float32 payload) is used when a value
// round-trips through float32 losslessly, and LongFloat (an IEEE-754
// float64 payload) otherwise. The decoder reads only the tags this
// package writes: Char, ShortFloat, BcdFloat, the narrower integer
// width tags and the Pair..Other container tags are rejected with a
// serialization error.
package binfmt
