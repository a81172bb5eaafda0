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

package tcpsock_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github/sabouaram/reactorkit/reactor"
	"github/sabouaram/reactorkit/tcpsock"
)

var _ = Describe("Listener", func() {
	var sel *reactor.Selector

	BeforeEach(func() {
		var err error
		sel, err = reactor.New()
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		_ = sel.Close()
	})

	It("accepts a plain TCP connection through the reactor", func() {
		ln, err := tcpsock.Listen("127.0.0.1:0", nil)
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = ln.Close() }()

		var accepted *tcpsock.Conn
		ln.Accepted.Connect(func(c *tcpsock.Conn) { accepted = c })

		Expect(sel.Add(ln)).To(Succeed())

		go func() {
			_, _ = tcpsock.Dial(context.Background(), ln.Addr().String(), time.Second, nil)
		}()

		Eventually(func() *tcpsock.Conn {
			_, _ = sel.Wait(50 * time.Millisecond)
			return accepted
		}, 2*time.Second).ShouldNot(BeNil())

		_ = accepted.Close()
	})

	It("reports a usable local address before any connection", func() {
		ln, err := tcpsock.Listen("127.0.0.1:0", nil)
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = ln.Close() }()

		Expect(ln.Addr()).ToNot(BeNil())
		Expect(ln.Addr().String()).ToNot(BeEmpty())
	})
})
