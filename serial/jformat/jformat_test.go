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

package jformat_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github/sabouaram/reactorkit/serial/jformat"
)

type point struct {
	X int
	Y int
}

var _ = Describe("Marshal", func() {
	It("produces canonical, compact JSON", func() {
		b, err := jformat.Marshal(point{X: 1, Y: 2}, jformat.Options{})
		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(Equal(`{"X":1,"Y":2}`))
	})

	It("escapes control and non-ASCII characters by default", func() {
		b, err := jformat.Marshal(map[string]string{"greeting": "héllo\n"}, jformat.Options{})
		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(Equal("{\"greeting\":\"h\\u00e9llo\\n\"}"))
	})

	It("writes non-ASCII verbatim when AllowUnicode is set", func() {
		b, err := jformat.Marshal(map[string]string{"greeting": "héllo"}, jformat.Options{AllowUnicode: true})
		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(Equal("{\"greeting\":\"héllo\"}"))
	})

	It("maps non-finite floats to null", func() {
		b, err := jformat.Marshal(map[string]float64{"v": math.Inf(1)}, jformat.Options{})
		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(Equal(`{"v":null}`))
	})

	It("beautifies with two-space indentation when asked", func() {
		b, err := jformat.Marshal(point{X: 1, Y: 2}, jformat.Options{Beautify: true})
		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(Equal("{\n  \"X\": 1,\n  \"Y\": 2\n}"))
	})
})

var _ = Describe("Unmarshal", func() {
	It("round-trips a struct", func() {
		var out point
		Expect(jformat.Unmarshal([]byte(`{"X":3,"Y":4}`), &out)).To(Succeed())
		Expect(out).To(Equal(point{X: 3, Y: 4}))
	})

	It("decodes nested arrays and UTF-8 text", func() {
		var out map[string]any
		Expect(jformat.Unmarshal([]byte(`{"tags":["a","b"],"name":"café"}`), &out)).To(Succeed())
		Expect(out["name"]).To(Equal("café"))
		Expect(out["tags"]).To(Equal([]any{"a", "b"}))
	})

	It("rejects trailing data after the JSON value", func() {
		var out map[string]any
		err := jformat.Unmarshal([]byte(`{}garbage`), &out)
		Expect(err).To(HaveOccurred())
	})
})
