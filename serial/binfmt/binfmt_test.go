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

package binfmt_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github/sabouaram/reactorkit/serial/binfmt"
)

var _ = Describe("Marshal", func() {
	It("encodes a root string as a Plain TagString record", func() {
		b, err := binfmt.Marshal("hi")
		Expect(err).ToNot(HaveOccurred())
		Expect(b).To(Equal([]byte{0x43, 0x02, 'h', 'i'}))
	})

	It("encodes an object member as a Full record terminated by Eod", func() {
		type one struct{ A int64 }
		b, err := binfmt.Marshal(one{A: 5})
		Expect(err).ToNot(HaveOccurred())
		Expect(b).To(Equal([]byte{
			0x58,             // CategoryObjectTag, plain (root)
			0x07,             // TagInt64, full (named member)
			0x00, 'A', 0x00,  // name: literal "A"
			0x00,             // id: empty
			0x0A,             // zigzag varint of 5
			0xFF,             // Eod
		}))
	})
})

var _ = Describe("round trip", func() {
	type widget struct {
		Name  string
		Count int64
	}

	It("round-trips scalars, objects and arrays", func() {
		in := []widget{{Name: "a", Count: 1}, {Name: "b", Count: 2}}
		b, err := binfmt.Marshal(in)
		Expect(err).ToNot(HaveOccurred())

		var out []widget
		Expect(binfmt.Unmarshal(b, &out)).To(Succeed())
		Expect(out).To(Equal(in))
	})

	It("compresses the second occurrence of a repeated member name", func() {
		in := []widget{{Name: "a", Count: 1}, {Name: "b", Count: 2}}
		b, err := binfmt.Marshal(in)
		Expect(err).ToNot(HaveOccurred())

		// Every "Name"/"Count" after the first occurrence is a 2-byte
		// dictionary reference (flag 0x01 + index), not another
		// zero-terminated literal, so the encoding must be shorter than
		// writing both member names out in full every time.
		literalCost := 2 * (len("Name") + 1 + len("Count") + 1)
		Expect(len(b)).To(BeNumerically("<", 2*literalCost))
	})

	It("round-trips a float that only survives in LongFloat", func() {
		in := map[string]float64{"v": 1.0 / 3.0}
		b, err := binfmt.Marshal(in)
		Expect(err).ToNot(HaveOccurred())

		var out map[string]any
		Expect(binfmt.Unmarshal(b, &out)).To(Succeed())
		Expect(out["v"]).To(BeNumerically("~", 1.0/3.0, 1e-15))
	})
})
