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

package rclient_test

import (
	"context"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github/sabouaram/reactorkit/binrpc"
	"github/sabouaram/reactorkit/httpd"
	"github/sabouaram/reactorkit/jsonrpc"
	"github/sabouaram/reactorkit/rclient"
	"github/sabouaram/reactorkit/reactor"
	"github/sabouaram/reactorkit/rpc"
	"github/sabouaram/reactorkit/xmlrpc"
)

var _ = Describe("Client", func() {
	It("calls add(3,4)=7 over XML-RPC/HTTP", func() {
		reg := rpc.NewRegistry()
		Expect(reg.Register("add", func(a, b int) (int, error) { return a + b, nil })).To(Succeed())

		srv := httpd.New(httpd.Config{Bindable: "127.0.0.1:0"}, nil)
		Expect(srv.Route("rpc", `^/RPC2$`, xmlrpc.NewHTTPHandler(reg).Route())).To(Succeed())
		Expect(srv.Start(context.Background())).To(Succeed())
		Eventually(srv.Addr, time.Second).ShouldNot(BeNil())
		defer func() { _ = srv.Stop(context.Background()) }()

		c, err := rclient.Dial(context.Background(), rclient.Config{
			Protocol: rclient.XMLRPCHTTP,
			Address:  fmt.Sprintf("http://%s/RPC2", srv.Addr().String()),
			Timeout:  time.Second,
		})
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = c.Close() }()

		var sum int
		Expect(c.Call(context.Background(), "add", &sum, 3, 4)).To(Succeed())
		Expect(sum).To(Equal(7))
	})

	It("calls add(3,4)=7 over JSON-RPC/HTTP", func() {
		reg := rpc.NewRegistry()
		Expect(reg.Register("add", func(a, b int) (int, error) { return a + b, nil })).To(Succeed())

		srv := httpd.New(httpd.Config{Bindable: "127.0.0.1:0"}, nil)
		Expect(srv.Route("rpc", `^/rpc$`, jsonrpc.NewHTTPHandler(reg).Route())).To(Succeed())
		Expect(srv.Start(context.Background())).To(Succeed())
		Eventually(srv.Addr, time.Second).ShouldNot(BeNil())
		defer func() { _ = srv.Stop(context.Background()) }()

		c, err := rclient.Dial(context.Background(), rclient.Config{
			Protocol: rclient.JSONRPCHTTP,
			Address:  fmt.Sprintf("http://%s/rpc", srv.Addr().String()),
		})
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = c.Close() }()

		var sum int
		Expect(c.Call(context.Background(), "add", &sum, 3, 4)).To(Succeed())
		Expect(sum).To(Equal(7))
	})

	It("calls add(3,4)=7 over JSON-RPC/TCP, reporting connect/request/response trace events", func() {
		sel, err := reactor.New()
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = sel.Close() }()

		reg := rpc.NewRegistry()
		Expect(reg.Register("add", func(a, b int) (int, error) { return a + b, nil })).To(Succeed())

		srv, err := jsonrpc.NewTCPServer(sel, "127.0.0.1:0", reg, nil)
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = srv.Close() }()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = srv.Serve(ctx) }()

		var connected, requested bool
		var respondedMethod string
		c, err := rclient.Dial(context.Background(), rclient.Config{
			Protocol:    rclient.JSONRPCTCP,
			Address:     srv.Addr().String(),
			DialTimeout: time.Second,
			Trace: rclient.Trace{
				OnConnect:  func(string) { connected = true },
				OnRequest:  func(string) { requested = true },
				OnResponse: func(method string, _ time.Duration, _ error) { respondedMethod = method },
			},
		})
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = c.Close() }()
		Expect(connected).To(BeTrue())

		var sum int
		Expect(c.Call(context.Background(), "add", &sum, 3, 4)).To(Succeed())
		Expect(sum).To(Equal(7))
		Expect(requested).To(BeTrue())
		Expect(respondedMethod).To(Equal("add"))
	})

	It("calls add(3,4)=7 over the binary protocol", func() {
		sel, err := reactor.New()
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = sel.Close() }()

		reg := rpc.NewRegistry()
		Expect(reg.Register("add", func(a, b int) (int, error) { return a + b, nil })).To(Succeed())

		srv, err := binrpc.NewServer(sel, "127.0.0.1:0", reg, nil)
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = srv.Close() }()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = srv.Serve(ctx) }()

		c, err := rclient.Dial(context.Background(), rclient.Config{
			Protocol:    rclient.BinaryRPC,
			Address:     srv.Addr().String(),
			DialTimeout: time.Second,
		})
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = c.Close() }()

		var sum int
		Expect(c.Call(context.Background(), "add", &sum, 3, 4)).To(Succeed())
		Expect(sum).To(Equal(7))
	})

	It("cancels an in-flight async call", func() {
		sel, err := reactor.New()
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = sel.Close() }()

		reg := rpc.NewRegistry()
		Expect(reg.Register("add", func(a, b int) (int, error) { return a + b, nil })).To(Succeed())

		srv, err := jsonrpc.NewTCPServer(sel, "127.0.0.1:0", reg, nil)
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = srv.Close() }()

		srvCtx, srvCancel := context.WithCancel(context.Background())
		defer srvCancel()
		go func() { _ = srv.Serve(srvCtx) }()

		c, err := rclient.Dial(context.Background(), rclient.Config{
			Protocol:    rclient.JSONRPCTCP,
			Address:     srv.Addr().String(),
			DialTimeout: time.Second,
		})
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = c.Close() }()

		call, err := c.Begin(context.Background(), "add", 1, 2)
		Expect(err).ToNot(HaveOccurred())
		call.Cancel()

		_, endErr := call.End(context.Background())
		Expect(endErr).To(HaveOccurred())
	})

	It("rejects an unknown protocol", func() {
		_, err := rclient.Dial(context.Background(), rclient.Config{Protocol: rclient.Protocol(99)})
		Expect(err).To(HaveOccurred())
	})
})
