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

package httpd_test

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github/sabouaram/reactorkit/httpd"
	"github/sabouaram/reactorkit/httpwire"
)

// readResponse reads a single HTTP/1.1 response (status line, headers, and
// a Content-Length-bounded body) off r.
func readResponse(r *bufio.Reader) (status int, body string, err error) {
	statusLine, err := r.ReadString('\n')
	if err != nil {
		return 0, "", err
	}
	fields := strings.SplitN(strings.TrimSpace(statusLine), " ", 3)
	if len(fields) < 2 {
		return 0, "", fmt.Errorf("malformed status line %q", statusLine)
	}
	status, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, "", err
	}

	contentLength := 0
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return 0, "", err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		if k, v, ok := strings.Cut(line, ":"); ok && strings.EqualFold(strings.TrimSpace(k), "Content-Length") {
			contentLength, _ = strconv.Atoi(strings.TrimSpace(v))
		}
	}

	buf := make([]byte, contentLength)
	n := 0
	for n < contentLength {
		m, err := r.Read(buf[n:])
		if err != nil {
			return status, string(buf[:n]), err
		}
		n += m
	}
	return status, string(buf), nil
}

var _ = Describe("Server", func() {
	var srv *httpd.Server

	newStartedServer := func() *httpd.Server {
		s := httpd.New(httpd.Config{Bindable: "127.0.0.1:0"}, nil)
		Expect(s.Route("widgets", `^/widgets$`, func() httpd.Responder {
			return httpd.ResponderFunc(func(w *httpd.ResponseWriter, req *httpwire.Message) error {
				body := []byte("widget list")
				w.Set("Content-Length", strconv.Itoa(len(body)))
				_, err := w.Write(body)
				return err
			})
		})).To(Succeed())
		Expect(s.Start(context.Background())).To(Succeed())
		Eventually(s.Addr, time.Second).ShouldNot(BeNil())
		return s
	}

	AfterEach(func() {
		if srv != nil {
			_ = srv.Stop(context.Background())
			srv = nil
		}
	})

	It("replies 200 for a matched route", func() {
		srv = newStartedServer()

		c, err := net.Dial("tcp", srv.Addr().String())
		Expect(err).ToNot(HaveOccurred())
		defer c.Close()

		_, err = c.Write([]byte("GET /widgets HTTP/1.1\r\nHost: x\r\nConnection: close\r\n\r\n"))
		Expect(err).ToNot(HaveOccurred())

		status, body, err := readResponse(bufio.NewReader(c))
		Expect(err).ToNot(HaveOccurred())
		Expect(status).To(Equal(200))
		Expect(body).To(Equal("widget list"))
	})

	It("replies 404 when no route matches", func() {
		srv = newStartedServer()

		c, err := net.Dial("tcp", srv.Addr().String())
		Expect(err).ToNot(HaveOccurred())
		defer c.Close()

		_, err = c.Write([]byte("GET /missing HTTP/1.1\r\nConnection: close\r\n\r\n"))
		Expect(err).ToNot(HaveOccurred())

		status, _, err := readResponse(bufio.NewReader(c))
		Expect(err).ToNot(HaveOccurred())
		Expect(status).To(Equal(404))
	})

	It("serves a second request over a kept-alive connection", func() {
		srv = newStartedServer()

		c, err := net.Dial("tcp", srv.Addr().String())
		Expect(err).ToNot(HaveOccurred())
		defer c.Close()
		r := bufio.NewReader(c)

		_, err = c.Write([]byte("GET /widgets HTTP/1.1\r\nHost: x\r\n\r\n"))
		Expect(err).ToNot(HaveOccurred())
		status, body, err := readResponse(r)
		Expect(err).ToNot(HaveOccurred())
		Expect(status).To(Equal(200))
		Expect(body).To(Equal("widget list"))

		_, err = c.Write([]byte("GET /widgets HTTP/1.1\r\nHost: x\r\nConnection: close\r\n\r\n"))
		Expect(err).ToNot(HaveOccurred())
		status, body, err = readResponse(r)
		Expect(err).ToNot(HaveOccurred())
		Expect(status).To(Equal(200))
		Expect(body).To(Equal("widget list"))
	})

	It("closes the connection after a Connection: close request", func() {
		srv = newStartedServer()

		c, err := net.Dial("tcp", srv.Addr().String())
		Expect(err).ToNot(HaveOccurred())
		defer c.Close()
		r := bufio.NewReader(c)

		_, err = c.Write([]byte("GET /widgets HTTP/1.1\r\nConnection: close\r\n\r\n"))
		Expect(err).ToNot(HaveOccurred())
		_, _, err = readResponse(r)
		Expect(err).ToNot(HaveOccurred())

		_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
		buf := make([]byte, 1)
		_, err = r.Read(buf)
		Expect(err).To(HaveOccurred())
	})

	It("reports IsRunning and Uptime across Start/Stop", func() {
		srv = newStartedServer()
		Expect(srv.IsRunning()).To(BeTrue())
		Expect(srv.Uptime()).To(BeNumerically(">=", 0))

		Expect(srv.Stop(context.Background())).To(Succeed())
		Expect(srv.IsRunning()).To(BeFalse())
		Expect(srv.Uptime()).To(Equal(time.Duration(0)))
	})
})
