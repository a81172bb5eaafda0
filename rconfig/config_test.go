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

package rconfig_test

import (
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github/sabouaram/reactorkit/rconfig"
)

var _ = Describe("Load", func() {
	It("[TC-RCFG-001] decodes a full yaml document and applies pool defaults", func() {
		yaml := []byte(`
rpc:
  binary_address: 127.0.0.1:7003
  json_address: 127.0.0.1:7004
httpd:
  - name: api
    bindable: 127.0.0.1:7002
    read_timeout: 5s
`)
		cfg, err := rconfig.Load(yaml, "yaml")
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.RPC.BinaryAddress).To(Equal("127.0.0.1:7003"))
		Expect(cfg.RPC.JSONAddress).To(Equal("127.0.0.1:7004"))
		Expect(cfg.HTTPD).To(HaveLen(1))
		Expect(cfg.HTTPD[0].Bindable).To(Equal("127.0.0.1:7002"))
		Expect(cfg.HTTPD[0].ReadTimeout).To(Equal(5 * time.Second))
		Expect(cfg.Pool.Workers).To(BeNumerically(">", 0))
		Expect(cfg.Pool.Capacity).To(Equal(cfg.Pool.Workers * 4))
	})

	It("[TC-RCFG-002] expands environment references before parsing", func() {
		Expect(os.Setenv("RCONFIG_TEST_PORT", "9100")).To(Succeed())
		defer func() { _ = os.Unsetenv("RCONFIG_TEST_PORT") }()

		yaml := []byte(`
httpd:
  - bindable: "127.0.0.1:${RCONFIG_TEST_PORT}"
`)
		cfg, err := rconfig.Load(yaml, "yaml")
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.HTTPD[0].Bindable).To(Equal("127.0.0.1:9100"))
	})

	It("[TC-RCFG-003] rejects an httpd entry missing a bind address", func() {
		yaml := []byte(`
httpd:
  - name: broken
`)
		_, err := rconfig.Load(yaml, "yaml")
		Expect(err).To(HaveOccurred())
	})

	It("[TC-RCFG-004] builds a usable httpd.Config from an entry without TLS", func() {
		cfg, err := rconfig.Load([]byte(`httpd: [{bindable: "127.0.0.1:0"}]`), "yaml")
		Expect(err).NotTo(HaveOccurred())

		built, err := cfg.HTTPD[0].Build()
		Expect(err).NotTo(HaveOccurred())
		Expect(built.Bindable).To(Equal("127.0.0.1:0"))
		Expect(built.IsTLS()).To(BeFalse())
	})
})

var _ = Describe("LoadFile", func() {
	It("[TC-RCFG-005] reads format from the file extension", func() {
		dir := GinkgoT().TempDir()
		path := dir + "/app.yaml"
		Expect(os.WriteFile(path, []byte("rpc:\n  binary_address: 127.0.0.1:7003\n"), 0o644)).To(Succeed())

		cfg, err := rconfig.LoadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.RPC.BinaryAddress).To(Equal("127.0.0.1:7003"))
	})

	It("[TC-RCFG-006] returns an IO error when the file does not exist", func() {
		_, err := rconfig.LoadFile("/nonexistent/app.yaml")
		Expect(err).To(HaveOccurred())
	})
})
