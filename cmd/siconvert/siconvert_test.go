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
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github/sabouaram/reactorkit/serial"
)

var _ = Describe("flags", func() {
	It("requires exactly one input format", func() {
		var f flags
		_, err := f.inputFormat()
		Expect(err).To(HaveOccurred())

		f.inJSON = true
		_, err = f.inputFormat()
		Expect(err).ToNot(HaveOccurred())

		f.inCSV = true
		_, err = f.inputFormat()
		Expect(err).To(HaveOccurred())
	})

	It("requires exactly one output format", func() {
		var f flags
		_, err := f.outputFormat()
		Expect(err).To(HaveOccurred())

		f.outXMLNoAt = true
		out, err := f.outputFormat()
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(Equal(formatXMLPlain))
	})
})

var _ = Describe("decodeQuery", func() {
	It("splits named, repeated, and bare tokens", func() {
		si := decodeQuery([]byte("a=1&b=x&b=y&bare"))

		a, ok := si.Find("a")
		Expect(ok).To(BeTrue())
		s, err := a.String()
		Expect(err).ToNot(HaveOccurred())
		Expect(s).To(Equal("1"))

		b, ok := si.Find("b")
		Expect(ok).To(BeTrue())
		Expect(b.Category).To(Equal(serial.CategoryArray))
		Expect(b.Members).To(HaveLen(2))

		u, ok := si.Find("unnamed")
		Expect(ok).To(BeTrue())
		Expect(u.Members).To(HaveLen(1))
	})
})

var _ = Describe("applyWindow and countOf", func() {
	It("slices a top-level array by skip/num", func() {
		arr := serial.NewArray("", "")
		for i := 0; i < 5; i++ {
			arr.Members = append(arr.Members, serial.NewInt64("", int64(i)))
		}

		windowed := applyWindow(arr, 1, 2)
		Expect(windowed.Members).To(HaveLen(2))
		n, err := windowed.Members[0].Int64()
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(BeEquivalentTo(1))

		Expect(countOf(arr)).To(Equal(5))
		Expect(countOf(serial.NewString("", "x"))).To(Equal(1))
	})

	It("passes non-array values through unchanged", func() {
		s := serial.NewString("", "x")
		Expect(applyWindow(s, 1, 1)).To(BeIdenticalTo(s))
	})
})

var _ = Describe("decode/encode round trip", func() {
	It("converts JSON input to plain XML output", func() {
		data, err := decode(formatJSON, flags{}, []byte(`{"a":1,"b":"two"}`))
		Expect(err).ToNot(HaveOccurred())

		out, err := encode(formatXMLPlain, flags{}, data)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(out)).To(ContainSubstring("<a>1</a>"))
		Expect(string(out)).To(ContainSubstring("<b>two</b>"))
	})
})

var _ = Describe("runConvert", func() {
	It("converts a JSON file to properties on disk", func() {
		dir := GinkgoT().TempDir()
		in := filepath.Join(dir, "in.json")
		out := filepath.Join(dir, "out.properties")
		Expect(os.WriteFile(in, []byte(`{"a":1,"b":"two"}`), 0o644)).To(Succeed())

		cmd := newRootCommand()
		cmd.SetArgs([]string{"-j", "-P", "-o", out, in})
		Expect(cmd.Execute()).To(Succeed())

		body, err := os.ReadFile(out)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(body)).To(ContainSubstring(`a = "1"`))
		Expect(string(body)).To(ContainSubstring(`b = "two"`))
	})

	It("rejects conflicting output format flags", func() {
		dir := GinkgoT().TempDir()
		in := filepath.Join(dir, "in.json")
		Expect(os.WriteFile(in, []byte(`{}`), 0o644)).To(Succeed())

		cmd := newRootCommand()
		cmd.SetArgs([]string{"-j", "-J", "-P", in})
		Expect(cmd.Execute()).To(HaveOccurred())
	})
})
