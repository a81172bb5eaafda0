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

package jsonrpc_test

import (
	"context"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github/sabouaram/reactorkit/httpd"
	"github/sabouaram/reactorkit/jsonrpc"
	"github/sabouaram/reactorkit/reactor"
	"github/sabouaram/reactorkit/rpc"
	"github/sabouaram/reactorkit/serial"
)

var _ = Describe("envelope", func() {
	It("round-trips a request carrying an id", func() {
		args, err := rpc.ToArgs(int64(5), int64(6))
		Expect(err).ToNot(HaveOccurred())

		data, err := jsonrpc.EncodeRequest("add", args, serial.NewInt64("", 1))
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).To(ContainSubstring(`"jsonrpc":"2.0"`))

		method, decoded, id, err := jsonrpc.DecodeRequest(data)
		Expect(err).ToNot(HaveOccurred())
		Expect(method).To(Equal("add"))
		Expect(decoded).To(HaveLen(2))
		Expect(id).ToNot(BeNil())

		n, err := id.Int64()
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(BeEquivalentTo(1))
	})

	It("omits the id member for a notification", func() {
		data, err := jsonrpc.EncodeRequest("ping", nil, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).ToNot(ContainSubstring(`"id"`))

		_, _, id, err := jsonrpc.DecodeRequest(data)
		Expect(err).ToNot(HaveOccurred())
		Expect(id).To(BeNil())
	})

	It("round-trips a result envelope", func() {
		si, _ := serial.ToSI(int64(11))
		data, err := jsonrpc.EncodeResult(serial.NewInt64("", 1), si)
		Expect(err).ToNot(HaveOccurred())

		result, rpcErr, id, err := jsonrpc.DecodeReply(data)
		Expect(err).ToNot(HaveOccurred())
		Expect(rpcErr).To(BeNil())
		Expect(id).ToNot(BeNil())

		n, err := result.Int64()
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(BeEquivalentTo(11))
	})

	It("round-trips an error envelope", func() {
		data, err := jsonrpc.EncodeError(serial.NewInt64("", 1), rpc.MethodNotFound("missing"))
		Expect(err).ToNot(HaveOccurred())

		result, rpcErr, _, err := jsonrpc.DecodeReply(data)
		Expect(err).ToNot(HaveOccurred())
		Expect(result).To(BeNil())
		Expect(rpcErr).ToNot(BeNil())
		Expect(rpcErr.Code).To(Equal(rpc.CodeMethodNotFound))
	})
})

var _ = Describe("HTTP binding", func() {
	It("answers add(5,6) with 11 over HTTP", func() {
		reg := rpc.NewRegistry()
		Expect(reg.Register("add", func(a, b int) (int, error) { return a + b, nil })).To(Succeed())

		srv := httpd.New(httpd.Config{Bindable: "127.0.0.1:0"}, nil)
		Expect(srv.Route("rpc", `^/rpc$`, jsonrpc.NewHTTPHandler(reg).Route())).To(Succeed())
		Expect(srv.Start(context.Background())).To(Succeed())
		Eventually(srv.Addr, time.Second).ShouldNot(BeNil())
		defer func() { _ = srv.Stop(context.Background()) }()

		client := jsonrpc.NewHTTPClient(fmt.Sprintf("http://%s/rpc", srv.Addr().String()), nil)
		args, err := rpc.ToArgs(5, 6)
		Expect(err).ToNot(HaveOccurred())

		result, err := client.Call(context.Background(), "add", args)
		Expect(err).ToNot(HaveOccurred())

		var sum int
		Expect(serial.Assign(result, &sum)).To(Succeed())
		Expect(sum).To(Equal(11))
	})
})

var _ = Describe("TCP binding", func() {
	It("serves an add procedure end to end over a newline-framed connection", func() {
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

		client, err := jsonrpc.DialTCP(context.Background(), srv.Addr().String(), time.Second)
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = client.Close() }()

		rp := rpc.NewRemoteProcedure(client, "add")
		var sum int
		Expect(rp.Call(context.Background(), &sum, 3, 4)).To(Succeed())
		Expect(sum).To(Equal(7))
	})
})
