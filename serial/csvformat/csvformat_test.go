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

package csvformat_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github/sabouaram/reactorkit/serial/csvformat"
)

type entry struct {
	A int    `si:"a"`
	B string `si:"b"`
}

var _ = Describe("Marshal", func() {
	It("quotes a field containing the delimiter and leaves others bare", func() {
		in := []entry{{A: 1, B: "x,y"}, {A: 2, B: "z"}}
		b, err := csvformat.Marshal(in, csvformat.Options{})
		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(Equal("a,b\r\n1,\"x,y\"\r\n2,z\r\n"))
	})

	It("doubles an embedded quote character", func() {
		in := []entry{{A: 1, B: `say "hi"`}}
		b, err := csvformat.Marshal(in, csvformat.Options{})
		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(Equal("a,b\r\n1,\"say \"\"hi\"\"\"\r\n"))
	})

	It("honors an explicit column order", func() {
		in := []entry{{A: 1, B: "x"}}
		b, err := csvformat.Marshal(in, csvformat.Options{Columns: []string{"b", "a"}})
		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(Equal("b,a\r\nx,1\r\n"))
	})
})

var _ = Describe("round trip", func() {
	It("reparses the exact output back into the original rows", func() {
		in := []entry{{A: 1, B: "x,y"}, {A: 2, B: "z"}}
		b, err := csvformat.Marshal(in, csvformat.Options{})
		Expect(err).ToNot(HaveOccurred())

		var out []entry
		Expect(csvformat.Unmarshal(b, csvformat.Options{}, &out)).To(Succeed())
		Expect(out).To(Equal(in))
	})
})
