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

var _ = Describe("Watch", func() {
	It("[TC-RCFG-010] reloads and reports the new config when the file is rewritten", func() {
		dir := GinkgoT().TempDir()
		path := dir + "/app.yaml"
		Expect(os.WriteFile(path, []byte("rpc:\n  binary_address: 127.0.0.1:7003\n"), 0o644)).To(Succeed())

		changes := make(chan *rconfig.Config, 4)
		errs := make(chan error, 4)

		w, err := rconfig.Watch(path, nil, func(cfg *rconfig.Config, err error) {
			if err != nil {
				errs <- err
				return
			}
			changes <- cfg
		})
		Expect(err).NotTo(HaveOccurred())
		defer func() { _ = w.Close() }()

		Expect(os.WriteFile(path, []byte("rpc:\n  binary_address: 127.0.0.1:9999\n"), 0o644)).To(Succeed())

		Eventually(changes, 2*time.Second).Should(Receive(WithTransform(
			func(cfg *rconfig.Config) string { return cfg.RPC.BinaryAddress },
			Equal("127.0.0.1:9999"),
		)))
	})

	It("[TC-RCFG-011] reports a reload error without dropping the watch", func() {
		dir := GinkgoT().TempDir()
		path := dir + "/app.yaml"
		Expect(os.WriteFile(path, []byte("rpc:\n  binary_address: 127.0.0.1:7003\n"), 0o644)).To(Succeed())

		errs := make(chan error, 4)
		w, err := rconfig.Watch(path, nil, func(cfg *rconfig.Config, err error) {
			if err != nil {
				errs <- err
			}
		})
		Expect(err).NotTo(HaveOccurred())
		defer func() { _ = w.Close() }()

		Expect(os.WriteFile(path, []byte("httpd:\n  - name: broken\n"), 0o644)).To(Succeed())

		Eventually(errs, 2*time.Second).Should(Receive())
	})
})
