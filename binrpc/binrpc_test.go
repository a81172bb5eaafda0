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

package binrpc_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github/sabouaram/reactorkit/binrpc"
	"github/sabouaram/reactorkit/reactor"
	"github/sabouaram/reactorkit/rpc"
	"github/sabouaram/reactorkit/serial"
)

var _ = Describe("wire encoding", func() {
	It("round-trips a request with several arguments", func() {
		args, err := rpc.ToArgs("hello", int64(42))
		Expect(err).ToNot(HaveOccurred())

		data, err := binrpc.EncodeRequest("echo", args)
		Expect(err).ToNot(HaveOccurred())
		Expect(data[len(data)-1]).To(Equal(byte(0xFF)))

		method, decoded, err := binrpc.DecodeRequest(data)
		Expect(err).ToNot(HaveOccurred())
		Expect(method).To(Equal("echo"))
		Expect(decoded).To(HaveLen(2))

		var s string
		Expect(serial.Assign(decoded[0], &s)).To(Succeed())
		Expect(s).To(Equal("hello"))

		var n int64
		Expect(serial.Assign(decoded[1], &n)).To(Succeed())
		Expect(n).To(BeEquivalentTo(42))
	})

	It("round-trips a response", func() {
		si, _ := serial.ToSI("hello")
		data, err := binrpc.EncodeResponse(si)
		Expect(err).ToNot(HaveOccurred())
		Expect(binrpc.IsResponse(data)).To(BeTrue())

		result, err := binrpc.DecodeResponse(data)
		Expect(err).ToNot(HaveOccurred())

		var s string
		Expect(serial.Assign(result, &s)).To(Succeed())
		Expect(s).To(Equal("hello"))
	})

	It("round-trips a void response as a nil result", func() {
		data, err := binrpc.EncodeResponse(nil)
		Expect(err).ToNot(HaveOccurred())

		result, err := binrpc.DecodeResponse(data)
		Expect(err).ToNot(HaveOccurred())
		Expect(result).To(BeNil())
	})

	It("round-trips an exception", func() {
		data, err := binrpc.EncodeException(1001, "domain failure")
		Expect(err).ToNot(HaveOccurred())
		Expect(binrpc.IsException(data)).To(BeTrue())

		code, message, err := binrpc.DecodeException(data)
		Expect(err).ToNot(HaveOccurred())
		Expect(code).To(Equal(1001))
		Expect(message).To(Equal("domain failure"))
	})
})

var _ = Describe("Server and Client", func() {
	It("serves an add procedure end to end over TCP", func() {
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

		client, err := binrpc.Dial(context.Background(), srv.Addr().String(), time.Second)
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = client.Close() }()

		rp := rpc.NewRemoteProcedure(client, "add")
		var sum int
		Expect(rp.Call(context.Background(), &sum, 3, 4)).To(Succeed())
		Expect(sum).To(Equal(7))
	})

	It("reports MethodNotFound as a remote exception", func() {
		sel, err := reactor.New()
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = sel.Close() }()

		reg := rpc.NewRegistry()
		srv, err := binrpc.NewServer(sel, "127.0.0.1:0", reg, nil)
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = srv.Close() }()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = srv.Serve(ctx) }()

		client, err := binrpc.Dial(context.Background(), srv.Addr().String(), time.Second)
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = client.Close() }()

		_, err = client.Call(context.Background(), "missing", nil)
		Expect(err).To(HaveOccurred())
		rpcErr, ok := err.(*rpc.Error)
		Expect(ok).To(BeTrue())
		Expect(rpcErr.Code).To(Equal(rpc.CodeMethodNotFound))
	})
})
