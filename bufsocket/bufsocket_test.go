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

package bufsocket_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github/sabouaram/reactorkit/bufsocket"
	"github/sabouaram/reactorkit/reactor"
	"github/sabouaram/reactorkit/tcpsock"
)

var _ = Describe("ConnState", func() {
	DescribeTable("String",
		func(s bufsocket.ConnState, want string) {
			Expect(s.String()).To(Equal(want))
		},
		Entry("Dial", bufsocket.ConnectionDial, "Dial Connection"),
		Entry("New", bufsocket.ConnectionNew, "New Connection"),
		Entry("Read", bufsocket.ConnectionRead, "Read Incoming Stream"),
		Entry("CloseRead", bufsocket.ConnectionCloseRead, "Close Incoming Stream"),
		Entry("Handler", bufsocket.ConnectionHandler, "Run HandlerFunc"),
		Entry("Write", bufsocket.ConnectionWrite, "Write Outgoing Steam"),
		Entry("CloseWrite", bufsocket.ConnectionCloseWrite, "Close Outgoing Stream"),
		Entry("Close", bufsocket.ConnectionClose, "Close Connection"),
		Entry("out of range", bufsocket.ConnState(255), "unknown connection state"),
	)
})

var _ = Describe("ErrorFilter", func() {
	It("passes nil through", func() {
		Expect(bufsocket.ErrorFilter(nil)).To(BeNil())
	})

	It("silences an exact closed-network-connection error", func() {
		err := errors.New("use of closed network connection")
		Expect(bufsocket.ErrorFilter(err)).To(BeNil())
	})

	It("passes through an error that merely contains that phrase", func() {
		err := errors.New("read tcp 127.0.0.1:8080->127.0.0.1:54321: use of closed network connection")
		Expect(bufsocket.ErrorFilter(err)).To(Equal(err))
	})
})

var _ = Describe("BufferedSocket", func() {
	var (
		sel           *reactor.Selector
		ln            *tcpsock.Listener
		clientConn    *tcpsock.Conn
		serverConn    *tcpsock.Conn
		client, server *bufsocket.BufferedSocket
	)

	BeforeEach(func() {
		var err error
		sel, err = reactor.New()
		Expect(err).ToNot(HaveOccurred())

		ln, err = tcpsock.Listen("127.0.0.1:0", nil)
		Expect(err).ToNot(HaveOccurred())

		var accepted *tcpsock.Conn
		ln.Accepted.Connect(func(c *tcpsock.Conn) { accepted = c })
		Expect(sel.Add(ln)).To(Succeed())

		go func() {
			clientConn, _ = tcpsock.Dial(context.Background(), ln.Addr().String(), time.Second, nil)
		}()

		Eventually(func() *tcpsock.Conn {
			_, _ = sel.Wait(50 * time.Millisecond)
			return accepted
		}, 2*time.Second).ShouldNot(BeNil())
		serverConn = accepted

		Eventually(func() *tcpsock.Conn { return clientConn }, 2*time.Second).ShouldNot(BeNil())

		client = bufsocket.New(clientConn)
		server = bufsocket.New(serverConn)
		Expect(sel.Add(client)).To(Succeed())
		Expect(sel.Add(server)).To(Succeed())
		Expect(server.StartReading()).To(Succeed())
	})

	AfterEach(func() {
		_ = client.Close()
		_ = server.Close()
		_ = ln.Close()
		_ = sel.Close()
	})

	It("delivers written bytes to the peer's accumulated input buffer", func() {
		Expect(client.Write([]byte("hello reactor"))).To(Succeed())

		Eventually(func() string {
			_, _ = sel.Wait(50 * time.Millisecond)
			return string(server.InputBuffer())
		}, 2*time.Second).Should(Equal("hello reactor"))
	})

	It("fires OutputBufferEmpty exactly once per drain cycle", func() {
		empties := 0
		client.OutputBufferEmpty.Connect(func() { empties++ })

		Expect(client.Write([]byte("one"))).To(Succeed())

		Eventually(func() int {
			_, _ = sel.Wait(50 * time.Millisecond)
			return empties
		}, 2*time.Second).Should(Equal(1))

		Consistently(func() int {
			_, _ = sel.Wait(10 * time.Millisecond)
			return empties
		}, 100*time.Millisecond).Should(Equal(1))
	})

	It("reports queued bytes through OutputSize while writing", func() {
		Expect(client.Write([]byte("abc"))).To(Succeed())
		Expect(client.Write([]byte("def"))).To(Succeed())
		Expect(client.OutputSize()).To(BeNumerically(">=", 0))
	})

	It("Consume advances the input buffer without disturbing unread bytes", func() {
		Expect(client.Write([]byte("abcdef"))).To(Succeed())

		Eventually(func() int {
			_, _ = sel.Wait(50 * time.Millisecond)
			return len(server.InputBuffer())
		}, 2*time.Second).Should(Equal(6))

		server.Consume(3)
		Expect(string(server.InputBuffer())).To(Equal("def"))
	})
})
