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

package main

import (
	"fmt"

	"github.com/spf13/pflag"
)

type format int

const (
	formatBinary format = iota
	formatXML
	formatXMLPlain
	formatJSON
	formatCSV
	formatProperties
	formatQuery
	formatCount
)

func (f format) String() string {
	switch f {
	case formatBinary:
		return "binary"
	case formatXML:
		return "xml"
	case formatXMLPlain:
		return "xml-plain"
	case formatJSON:
		return "json"
	case formatCSV:
		return "csv"
	case formatProperties:
		return "properties"
	case formatQuery:
		return "query"
	case formatCount:
		return "count"
	default:
		return "unknown"
	}
}

// flags mirrors the converter's single-letter input/output selectors:
// exactly one input flag and exactly one output flag must be set.
type flags struct {
	inBinary bool
	inXML    bool
	inJSON   bool
	inCSV    bool
	inQuery  bool

	outBinary  bool
	outXML     bool
	outXMLNoAt bool
	outJSON    bool
	outCSV     bool
	outProps   bool
	outCount   bool

	beautify bool
	skip     int
	num      int
	output   string
	verbose  bool
}

func (f *flags) bind(fs *pflag.FlagSet) {
	fs.BoolVarP(&f.inBinary, "binary-in", "b", false, "input is binary")
	fs.BoolVarP(&f.inXML, "xml-in", "x", false, "input is XML")
	fs.BoolVarP(&f.inJSON, "json-in", "j", false, "input is JSON")
	fs.BoolVarP(&f.inCSV, "csv-in", "c", false, "input is CSV")
	fs.BoolVarP(&f.inQuery, "query-in", "q", false, "input is a URL query string")

	fs.BoolVarP(&f.outBinary, "binary-out", "B", false, "output binary")
	fs.BoolVarP(&f.outXML, "xml-out", "X", false, "output XML with attributes")
	fs.BoolVarP(&f.outXMLNoAt, "xml-plain-out", "Y", false, "output XML with no attributes")
	fs.BoolVarP(&f.outJSON, "json-out", "J", false, "output JSON")
	fs.BoolVarP(&f.outCSV, "csv-out", "C", false, "output CSV")
	fs.BoolVarP(&f.outProps, "properties-out", "P", false, "output properties")
	fs.BoolVarP(&f.outCount, "count-out", "N", false, "print the element count only")

	fs.BoolVarP(&f.beautify, "beautify", "d", false, "beautify output where the format supports it")
	fs.IntVar(&f.skip, "skip", 0, "skip the first N top-level elements")
	fs.IntVar(&f.num, "num", 0, "emit at most N top-level elements (0 means all)")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "print progress to stderr")
}

func (f flags) inputFormat() (format, error) {
	set := map[format]bool{
		formatBinary: f.inBinary,
		formatXML:    f.inXML,
		formatJSON:   f.inJSON,
		formatCSV:    f.inCSV,
		formatQuery:  f.inQuery,
	}
	return oneOf(set, "input")
}

func (f flags) outputFormat() (format, error) {
	set := map[format]bool{
		formatBinary:     f.outBinary,
		formatXML:        f.outXML,
		formatXMLPlain:   f.outXMLNoAt,
		formatJSON:       f.outJSON,
		formatCSV:        f.outCSV,
		formatProperties: f.outProps,
		formatCount:      f.outCount,
	}
	return oneOf(set, "output")
}

func oneOf(set map[format]bool, kind string) (format, error) {
	var picked format
	count := 0
	for f, on := range set {
		if on {
			picked = f
			count++
		}
	}
	switch count {
	case 0:
		return 0, fmt.Errorf("siconvert: exactly one %s format flag is required", kind)
	case 1:
		return picked, nil
	default:
		return 0, fmt.Errorf("siconvert: only one %s format flag may be given", kind)
	}
}
