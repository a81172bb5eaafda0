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

package iniformat_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github/sabouaram/reactorkit/serial/iniformat"
)

type server struct {
	Host string
	Port int
}

type config struct {
	Env   string
	DB    server `si:"database"`
	Cache server `si:"cache"`
}

var _ = Describe("Marshal", func() {
	It("writes root scalars as a global section and nested objects as headered sections", func() {
		in := config{
			Env:   "prod",
			DB:    server{Host: "db.local", Port: 5432},
			Cache: server{Host: "cache.local", Port: 6379},
		}
		b, err := iniformat.Marshal(in)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(Equal(
			"Env = \"prod\"\n" +
				"\n[database]\n" +
				"Host = \"db.local\"\n" +
				"Port = \"5432\"\n" +
				"\n[cache]\n" +
				"Host = \"cache.local\"\n" +
				"Port = \"6379\"\n",
		))
	})
})

var _ = Describe("round trip", func() {
	It("reconstructs global keys and sections, as strings", func() {
		in := config{
			Env:   "prod",
			DB:    server{Host: "db.local", Port: 5432},
			Cache: server{Host: "cache.local", Port: 6379},
		}
		b, err := iniformat.Marshal(in)
		Expect(err).ToNot(HaveOccurred())

		var out config
		Expect(iniformat.Unmarshal(b, &out)).To(Succeed())
		Expect(out).To(Equal(in))
	})

	It("ignores comment lines introduced by # or ;", func() {
		data := []byte("; a comment\n# also a comment\nEnv = \"prod\"\n")
		var out struct{ Env string }
		Expect(iniformat.Unmarshal(data, &out)).To(Succeed())
		Expect(out.Env).To(Equal("prod"))
	})
})
