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

package binfmt

// Tag is the leading byte of a binfmt record. Values below 0x40 are the
// base (named) range; the same value with 0x40 set is the Plain
// (anonymous, no name/id) variant of the same tag.
type Tag byte

const (
	TagEmpty Tag = iota
	TagBool
	TagChar
	TagString
	TagInt8
	TagInt16
	TagInt32
	TagInt64
	TagUInt8
	TagUInt16
	TagUInt32
	TagUInt64
	TagBcdFloat
	TagShortFloat
	TagMediumFloat
	TagLongFloat
	TagPair
	TagArray
	TagVector
	TagList
	TagSet
	TagMap
	TagOther

	tagScalarEnd // sentinel: everything below this is a scalar tag

	CategoryObjectTag
	CategoryArrayTag
	CategoryReferenceTag
)

const (
	plainBit = 0x40
	// Eod terminates an Object or Array record's member list.
	Eod byte = 0xFF
	// dictLiteral and dictIndexed tag a name field as an inline
	// zero-terminated string or a two-byte dictionary index.
	dictLiteral = 0x00
	dictIndexed = 0x01
)

func (t Tag) plain() byte { return byte(t) | plainBit }
func (t Tag) full() byte  { return byte(t) }

func isScalar(base Tag) bool { return base < tagScalarEnd }
