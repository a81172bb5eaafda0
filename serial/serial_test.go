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

package serial_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github/sabouaram/reactorkit/serial"
)

type widget struct {
	Name  string
	Count int
	Price float64
	Tags  []string
}

var _ = Describe("SI", func() {
	It("round-trips scalar kinds lazily", func() {
		si := serial.NewInt64("n", 42)
		s, err := si.String()
		Expect(err).ToNot(HaveOccurred())
		Expect(s).To(Equal("42"))

		f, err := si.Float64()
		Expect(err).ToNot(HaveOccurred())
		Expect(f).To(Equal(42.0))
	})

	It("reports empty for a nil node", func() {
		var si *serial.SI
		Expect(si.IsEmpty()).To(BeTrue())
	})
})

var _ = Describe("Decompose and Assign", func() {
	It("round-trips a struct through an SI tree", func() {
		in := widget{Name: "bolt", Count: 3, Price: 1.5, Tags: []string{"a", "b"}}

		d := serial.NewDeserializer()
		Expect(serial.Decompose(in, d)).To(Succeed())

		si, err := d.Result()
		Expect(err).ToNot(HaveOccurred())

		var out widget
		Expect(serial.Assign(si, &out)).To(Succeed())
		Expect(out).To(Equal(in))
	})

	It("collapses a repeated pointer into a reference", func() {
		type node struct {
			Name string
		}
		type graph struct {
			A *node
			B *node
		}
		shared := &node{Name: "shared"}
		in := graph{A: shared, B: shared}

		si, err := serial.ToSI(in)
		Expect(err).ToNot(HaveOccurred())

		a, ok := si.Find("A")
		Expect(ok).To(BeTrue())
		Expect(a.Category).To(Equal(serial.CategoryObject))
		Expect(a.ID).ToNot(BeEmpty())

		b, ok := si.Find("B")
		Expect(ok).To(BeTrue())
		Expect(b.Category).To(Equal(serial.CategoryReference))
		Expect(b.Target()).To(Equal(a.ID))
	})

	It("honors si struct tags, including skip", func() {
		type tagged struct {
			Visible string `si:"shown"`
			Hidden  string `si:"-"`
		}
		in := tagged{Visible: "yes", Hidden: "no"}

		si, err := serial.ToSI(in)
		Expect(err).ToNot(HaveOccurred())

		_, ok := si.Find("shown")
		Expect(ok).To(BeTrue())
		_, ok = si.Find("Hidden")
		Expect(ok).To(BeFalse())
	})
})
