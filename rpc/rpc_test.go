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

package rpc_test

import (
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github/sabouaram/reactorkit/rpc"
	"github/sabouaram/reactorkit/serial"
)

var _ = Describe("Registry", func() {
	It("registers functions of varying arity and rejects duplicates", func() {
		reg := rpc.NewRegistry()
		Expect(reg.Register("add", func(a, b int) (int, error) { return a + b, nil })).To(Succeed())
		Expect(reg.Register("ping", func() (string, error) { return "pong", nil })).To(Succeed())
		Expect(reg.Register("add", func(a, b int) (int, error) { return a + b, nil })).To(HaveOccurred())
		Expect(reg.Names()).To(Equal([]string{"add", "ping"}))
	})

	It("rejects a non-function value", func() {
		reg := rpc.NewRegistry()
		Expect(reg.Register("bad", 42)).To(HaveOccurred())
	})
})

var _ = Describe("Dispatch", func() {
	It("invokes the registered procedure and returns its result as SI", func() {
		reg := rpc.NewRegistry()
		Expect(reg.Register("add", func(a, b int) (int, error) { return a + b, nil })).To(Succeed())

		args, err := rpc.ToArgs(3, 4)
		Expect(err).ToNot(HaveOccurred())

		result, rpcErr := rpc.Dispatch(context.Background(), reg, "add", args)
		Expect(rpcErr).To(BeNil())

		var sum int
		Expect(serial.Assign(result, &sum)).To(Succeed())
		Expect(sum).To(Equal(7))
	})

	It("threads context.Context into a procedure that wants one", func() {
		reg := rpc.NewRegistry()
		Expect(reg.Register("greet", func(ctx context.Context, name string) (string, error) {
			return fmt.Sprintf("hello %s", name), nil
		})).To(Succeed())

		args, _ := rpc.ToArgs("world")
		result, rpcErr := rpc.Dispatch(context.Background(), reg, "greet", args)
		Expect(rpcErr).To(BeNil())

		var greeting string
		Expect(serial.Assign(result, &greeting)).To(Succeed())
		Expect(greeting).To(Equal("hello world"))
	})

	It("reports MethodNotFound for an unregistered name", func() {
		reg := rpc.NewRegistry()
		_, rpcErr := rpc.Dispatch(context.Background(), reg, "missing", nil)
		Expect(rpcErr).ToNot(BeNil())
		Expect(rpcErr.Code).To(Equal(rpc.CodeMethodNotFound))
	})

	It("reports InvalidParams when the argument count doesn't match", func() {
		reg := rpc.NewRegistry()
		Expect(reg.Register("add", func(a, b int) (int, error) { return a + b, nil })).To(Succeed())

		args, _ := rpc.ToArgs(1)
		_, rpcErr := rpc.Dispatch(context.Background(), reg, "add", args)
		Expect(rpcErr).ToNot(BeNil())
		Expect(rpcErr.Code).To(Equal(rpc.CodeInvalidParams))
	})

	It("passes an application-defined *rpc.Error straight through", func() {
		reg := rpc.NewRegistry()
		Expect(reg.Register("fail", func() (string, error) {
			return "", rpc.NewError(1001, "domain failure")
		})).To(Succeed())

		_, rpcErr := rpc.Dispatch(context.Background(), reg, "fail", nil)
		Expect(rpcErr).ToNot(BeNil())
		Expect(rpcErr.Code).To(Equal(1001))
		Expect(rpcErr.Message).To(Equal("domain failure"))
	})
})

type stubClient struct {
	result *serial.SI
	err    error
}

func (s *stubClient) Call(_ context.Context, _ string, _ []*serial.SI) (*serial.SI, error) {
	return s.result, s.err
}

var _ = Describe("RemoteProcedure", func() {
	It("marshals arguments and assigns the result into out", func() {
		si, err := serial.ToSI(99)
		Expect(err).ToNot(HaveOccurred())

		rp := rpc.NewRemoteProcedure(&stubClient{result: si}, "double")
		var out int
		Expect(rp.Call(context.Background(), &out, 42)).To(Succeed())
		Expect(out).To(Equal(99))
	})
})

var _ = Describe("Call", func() {
	It("delivers a resolved result to End", func() {
		si, _ := serial.ToSI("done")
		c := rpc.NewCall(nil)
		c.Resolve(si, nil)

		result, err := c.End(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(result).To(Equal(si))
	})

	It("wakes End with context.Canceled once Cancel is invoked", func() {
		var cancelled bool
		c := rpc.NewCall(func() { cancelled = true })
		c.Cancel()

		_, err := c.End(context.Background())
		Expect(err).To(Equal(context.Canceled))
		Expect(cancelled).To(BeTrue())
	})
})
