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

package xformat_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github/sabouaram/reactorkit/serial/xformat"
)

type gadget struct {
	Name  string
	Count int
}

var _ = Describe("Marshal", func() {
	It("renders every member as a child element in ElementMode", func() {
		b, err := xformat.Marshal(gadget{Name: "widget", Count: 3}, xformat.ElementMode)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(Equal(`<gadget type="gadget"><Name>widget</Name><Count>3</Count></gadget>`))
	})

	It("renders scalar members as attributes in AttributeMode", func() {
		b, err := xformat.Marshal(gadget{Name: "widget", Count: 3}, xformat.AttributeMode)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(Equal(`<gadget type="gadget" Name="widget" Count="3"/>`))
	})
})

var _ = Describe("Unmarshal", func() {
	It("reconstructs the same value from ElementMode XML", func() {
		b, err := xformat.Marshal(gadget{Name: "widget", Count: 3}, xformat.ElementMode)
		Expect(err).ToNot(HaveOccurred())

		var out gadget
		Expect(xformat.Unmarshal(b, &out)).To(Succeed())
		Expect(out).To(Equal(gadget{Name: "widget", Count: 3}))
	})

	It("reconstructs the same value from AttributeMode XML", func() {
		b, err := xformat.Marshal(gadget{Name: "widget", Count: 3}, xformat.AttributeMode)
		Expect(err).ToNot(HaveOccurred())

		var out gadget
		Expect(xformat.Unmarshal(b, &out)).To(Succeed())
		Expect(out).To(Equal(gadget{Name: "widget", Count: 3}))
	})

	It("round-trips an array through the type=\"array\" marker", func() {
		in := []int{1, 2, 3}
		b, err := xformat.Marshal(in, xformat.ElementMode)
		Expect(err).ToNot(HaveOccurred())

		var out []int
		Expect(xformat.Unmarshal(b, &out)).To(Succeed())
		Expect(out).To(Equal(in))
	})
})
