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

package propformat_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github/sabouaram/reactorkit/serial/propformat"
)

type address struct {
	City string
}

type contact struct {
	Name    string
	Address address
	Tags    []string
}

var _ = Describe("Marshal", func() {
	It("flattens nested objects and arrays into dotted-path entries", func() {
		in := contact{Name: "ada", Address: address{City: "london"}, Tags: []string{"x", "y"}}
		b, err := propformat.Marshal(in)
		Expect(err).ToNot(HaveOccurred())
		out := string(b)
		Expect(out).To(ContainSubstring(`Name = "ada"`))
		Expect(out).To(ContainSubstring(`Address.City = "london"`))
		Expect(out).To(ContainSubstring(`Tags.0 = "x"`))
		Expect(out).To(ContainSubstring(`Tags.1 = "y"`))
	})

	It("escapes backslashes and quotes in values", func() {
		b, err := propformat.Marshal(struct{ Note string }{Note: `a "quoted" \ value`})
		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(Equal("Note = \"a \\\"quoted\\\" \\\\ value\"\n"))
	})
})

var _ = Describe("round trip", func() {
	It("reconstructs a flattened struct, as strings", func() {
		in := contact{Name: "ada", Address: address{City: "london"}, Tags: []string{"x", "y"}}
		b, err := propformat.Marshal(in)
		Expect(err).ToNot(HaveOccurred())

		var out contact
		Expect(propformat.Unmarshal(b, &out)).To(Succeed())
		Expect(out).To(Equal(in))
	})

	It("ignores blank lines and comments", func() {
		data := []byte("# a comment\n\nName = \"ada\"\n")
		var out struct{ Name string }
		Expect(propformat.Unmarshal(data, &out)).To(Succeed())
		Expect(out.Name).To(Equal("ada"))
	})
})
