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

package xmlrpc_test

import (
	"context"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github/sabouaram/reactorkit/httpd"
	"github/sabouaram/reactorkit/rpc"
	"github/sabouaram/reactorkit/serial"
	"github/sabouaram/reactorkit/xmlrpc"
)

var _ = Describe("envelope", func() {
	It("round-trips a methodCall carrying scalar args", func() {
		args, err := rpc.ToArgs(int64(5), "six", true)
		Expect(err).ToNot(HaveOccurred())

		data, err := xmlrpc.EncodeCall("add", args)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).To(ContainSubstring("<methodCall>"))
		Expect(string(data)).To(ContainSubstring("<methodName>add</methodName>"))
		Expect(string(data)).To(ContainSubstring("<boolean>1</boolean>"))

		method, decoded, err := xmlrpc.DecodeCall(data)
		Expect(err).ToNot(HaveOccurred())
		Expect(method).To(Equal("add"))
		Expect(decoded).To(HaveLen(3))

		n, err := decoded[0].Int64()
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(BeEquivalentTo(5))

		s, err := decoded[1].String()
		Expect(err).ToNot(HaveOccurred())
		Expect(s).To(Equal("six"))

		b, err := decoded[2].Bool()
		Expect(err).ToNot(HaveOccurred())
		Expect(b).To(BeTrue())
	})

	It("round-trips a struct-valued methodResponse", func() {
		obj := serial.NewObject("", "")
		obj.Members = append(obj.Members, serial.NewString("name", "ada"))
		obj.Members = append(obj.Members, serial.NewInt64("age", 36))

		data, err := xmlrpc.EncodeResponse(obj)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).To(ContainSubstring("<methodResponse>"))
		Expect(string(data)).To(ContainSubstring("<struct>"))

		result, rpcErr, err := xmlrpc.DecodeResponse(data)
		Expect(err).ToNot(HaveOccurred())
		Expect(rpcErr).To(BeNil())

		name, ok := result.Find("name")
		Expect(ok).To(BeTrue())
		s, err := name.String()
		Expect(err).ToNot(HaveOccurred())
		Expect(s).To(Equal("ada"))

		age, ok := result.Find("age")
		Expect(ok).To(BeTrue())
		n, err := age.Int64()
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(BeEquivalentTo(36))
	})

	It("round-trips an array-valued methodResponse", func() {
		arr := serial.NewArray("", "")
		arr.Members = append(arr.Members,
			serial.NewInt64("", 1), serial.NewInt64("", 2), serial.NewInt64("", 3))

		data, err := xmlrpc.EncodeResponse(arr)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).To(ContainSubstring("<array>"))
		Expect(string(data)).To(ContainSubstring("<data>"))

		result, rpcErr, err := xmlrpc.DecodeResponse(data)
		Expect(err).ToNot(HaveOccurred())
		Expect(rpcErr).To(BeNil())
		Expect(result.Members).To(HaveLen(3))

		n, err := result.Members[1].Int64()
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(BeEquivalentTo(2))
	})

	It("round-trips a fault", func() {
		data, err := xmlrpc.EncodeFault(rpc.MethodNotFound("missing"))
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).To(ContainSubstring("<fault>"))
		Expect(string(data)).To(ContainSubstring("faultCode"))

		result, rpcErr, err := xmlrpc.DecodeResponse(data)
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
		Expect(srv.Route("rpc", `^/RPC2$`, xmlrpc.NewHTTPHandler(reg).Route())).To(Succeed())
		Expect(srv.Start(context.Background())).To(Succeed())
		Eventually(srv.Addr, time.Second).ShouldNot(BeNil())
		defer func() { _ = srv.Stop(context.Background()) }()

		client := xmlrpc.NewHTTPClient(fmt.Sprintf("http://%s/RPC2", srv.Addr().String()), nil)
		args, err := rpc.ToArgs(5, 6)
		Expect(err).ToNot(HaveOccurred())

		result, err := client.Call(context.Background(), "add", args)
		Expect(err).ToNot(HaveOccurred())

		var sum int
		Expect(serial.Assign(result, &sum)).To(Succeed())
		Expect(sum).To(Equal(11))
	})

	It("surfaces a missing method as an rpc.Error fault", func() {
		reg := rpc.NewRegistry()

		srv := httpd.New(httpd.Config{Bindable: "127.0.0.1:0"}, nil)
		Expect(srv.Route("rpc", `^/RPC2$`, xmlrpc.NewHTTPHandler(reg).Route())).To(Succeed())
		Expect(srv.Start(context.Background())).To(Succeed())
		Eventually(srv.Addr, time.Second).ShouldNot(BeNil())
		defer func() { _ = srv.Stop(context.Background()) }()

		client := xmlrpc.NewHTTPClient(fmt.Sprintf("http://%s/RPC2", srv.Addr().String()), nil)
		_, err := client.Call(context.Background(), "missing", nil)
		Expect(err).To(HaveOccurred())

		rpcErr, ok := err.(*rpc.Error)
		Expect(ok).To(BeTrue())
		Expect(rpcErr.Code).To(Equal(rpc.CodeMethodNotFound))
	})
})
