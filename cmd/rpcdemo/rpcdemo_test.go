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
	"context"
	"fmt"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github/sabouaram/reactorkit/rclient"
)

var _ = Describe("root command", func() {
	It("wires the serve and client subcommands", func() {
		root := newRootCommand()
		root.AddCommand(newServeCommand())
		root.AddCommand(newClientCommand())

		Expect(root.Commands()).To(HaveLen(2))
		names := []string{root.Commands()[0].Name(), root.Commands()[1].Name()}
		Expect(names).To(ConsistOf("serve", "client"))
	})
})

var _ = Describe("clientFlags.dialConfig", func() {
	It("defaults to XML-RPC over HTTP", func() {
		f := clientFlags{ip: "127.0.0.1", httpPort: 7002}
		cfg := f.dialConfig()
		Expect(cfg.Protocol).To(Equal(rclient.XMLRPCHTTP))
		Expect(cfg.Address).To(Equal("http://127.0.0.1:7002/xmlrpc"))
	})

	It("selects JSON-RPC/HTTP with -J", func() {
		f := clientFlags{ip: "127.0.0.1", httpPort: 7002, jsonHTTP: true}
		cfg := f.dialConfig()
		Expect(cfg.Protocol).To(Equal(rclient.JSONRPCHTTP))
		Expect(cfg.Address).To(Equal("http://127.0.0.1:7002/jsonrpc"))
	})

	It("selects JSON-RPC/TCP with -j", func() {
		f := clientFlags{ip: "127.0.0.1", jsonPort: 7004, jsonTCP: true}
		cfg := f.dialConfig()
		Expect(cfg.Protocol).To(Equal(rclient.JSONRPCTCP))
		Expect(cfg.Address).To(Equal("127.0.0.1:7004"))
	})

	It("selects the binary protocol with -b", func() {
		f := clientFlags{ip: "127.0.0.1", binaryPort: 7003, binary: true}
		cfg := f.dialConfig()
		Expect(cfg.Protocol).To(Equal(rclient.BinaryRPC))
		Expect(cfg.Address).To(Equal("127.0.0.1:7003"))
	})
})

var _ = Describe("serveFlags.resolve", func() {
	It("builds addresses from the bind flags when no config file is given", func() {
		f := serveFlags{ip: "127.0.0.1", httpPort: 7002, binaryPort: 7003, jsonPort: 7004}
		httpCfg, binAddr, jsonAddr, err := f.resolve()
		Expect(err).ToNot(HaveOccurred())
		Expect(httpCfg.Bindable).To(Equal("127.0.0.1:7002"))
		Expect(binAddr).To(Equal("127.0.0.1:7003"))
		Expect(jsonAddr).To(Equal("127.0.0.1:7004"))
	})

	It("prefers a --config file over the bind flags", func() {
		dir := GinkgoT().TempDir()
		path := dir + "/rpcdemo.yaml"
		Expect(os.WriteFile(path, []byte(`
rpc:
  binary_address: 127.0.0.1:8103
  json_address: 127.0.0.1:8104
httpd:
  - bindable: 127.0.0.1:8102
`), 0o644)).To(Succeed())

		f := serveFlags{ip: "127.0.0.1", httpPort: 7002, binaryPort: 7003, jsonPort: 7004, config: path}
		httpCfg, binAddr, jsonAddr, err := f.resolve()
		Expect(err).ToNot(HaveOccurred())
		Expect(httpCfg.Bindable).To(Equal("127.0.0.1:8102"))
		Expect(binAddr).To(Equal("127.0.0.1:8103"))
		Expect(jsonAddr).To(Equal("127.0.0.1:8104"))
	})

	It("rejects a config file with no httpd entry", func() {
		dir := GinkgoT().TempDir()
		path := dir + "/rpcdemo.yaml"
		Expect(os.WriteFile(path, []byte("rpc:\n  binary_address: 127.0.0.1:8103\n"), 0o644)).To(Succeed())

		f := serveFlags{config: path}
		_, _, _, err := f.resolve()
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("serve and client end to end", func() {
	It("answers echo and add over every transport", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		d, err := startDemoServers(ctx, "127.0.0.1", 0, 0, 0)
		Expect(err).ToNot(HaveOccurred())
		defer d.close()

		errs := d.run(ctx)

		cases := []rclient.Config{
			{Protocol: rclient.XMLRPCHTTP, Address: fmt.Sprintf("http://%s/xmlrpc", d.http.Addr().String()), Timeout: 2 * time.Second},
			{Protocol: rclient.JSONRPCHTTP, Address: fmt.Sprintf("http://%s/jsonrpc", d.http.Addr().String()), Timeout: 2 * time.Second},
			{Protocol: rclient.JSONRPCTCP, Address: d.json.Addr().String(), DialTimeout: time.Second, Timeout: 2 * time.Second},
			{Protocol: rclient.BinaryRPC, Address: d.bin.Addr().String(), DialTimeout: time.Second, Timeout: 2 * time.Second},
		}

		for _, cfg := range cases {
			c, err := rclient.Dial(context.Background(), cfg)
			Expect(err).ToNot(HaveOccurred())

			var echoed string
			Expect(c.Call(context.Background(), "echo", &echoed, "hi")).To(Succeed())
			Expect(echoed).To(Equal("hi"))

			var sum float64
			Expect(c.Call(context.Background(), "add", &sum, 5.0, 6.0)).To(Succeed())
			Expect(sum).To(Equal(11.0))

			Expect(c.Close()).To(Succeed())
		}

		cancel()
		Eventually(errs, time.Second).Should(Receive())
		Eventually(errs, time.Second).Should(Receive())
	})
})
