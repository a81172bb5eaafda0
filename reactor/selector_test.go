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

package reactor_test

import (
	"os"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github/sabouaram/reactorkit/reactor"
)

// pipeSelectable is a minimal Selectable over an os.Pipe read end, used to
// exercise the Selector's I/O dispatch without a real socket.
type pipeSelectable struct {
	reactor.Base
	r *os.File

	mu   sync.Mutex
	hits int
}

func newPipeSelectable(r *os.File) *pipeSelectable {
	p := &pipeSelectable{r: r}
	p.SetState(reactor.StateReading)
	return p
}

func (p *pipeSelectable) Fd() int { return int(p.r.Fd()) }

func (p *pipeSelectable) OnReadable() {
	buf := make([]byte, 16)
	_, _ = p.r.Read(buf)
	p.mu.Lock()
	p.hits++
	p.mu.Unlock()
}

func (p *pipeSelectable) OnWritable() {}

func (p *pipeSelectable) Hits() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits
}

var _ = Describe("Selector", func() {
	var sel *reactor.Selector

	BeforeEach(func() {
		var err error
		sel, err = reactor.New()
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		_ = sel.Close()
	})

	Context("I/O readiness", func() {
		It("invokes OnReadable when the underlying fd becomes ready", func() {
			r, w, err := os.Pipe()
			Expect(err).ToNot(HaveOccurred())
			defer func() { _ = r.Close(); _ = w.Close() }()

			ps := newPipeSelectable(r)
			Expect(sel.Add(ps)).To(Succeed())

			_, err = w.Write([]byte("x"))
			Expect(err).ToNot(HaveOccurred())

			Eventually(func() int {
				_, _ = sel.Wait(20 * time.Millisecond)
				return ps.Hits()
			}, time.Second).Should(Equal(1))
		})

		It("stops delivering events after Remove", func() {
			r, w, err := os.Pipe()
			Expect(err).ToNot(HaveOccurred())
			defer func() { _ = r.Close(); _ = w.Close() }()

			ps := newPipeSelectable(r)
			Expect(sel.Add(ps)).To(Succeed())
			Expect(sel.Remove(ps)).To(Succeed())

			_, _ = w.Write([]byte("x"))
			_, _ = sel.Wait(20 * time.Millisecond)

			Expect(ps.Hits()).To(Equal(0))
			Expect(ps.Base().Selector()).To(BeNil())
		})
	})

	Context("Wake", func() {
		It("unblocks a pending Wait and fires OnWake", func() {
			woke := false
			sel.OnWake.Connect(func() { woke = true })

			done := make(chan bool, 1)
			go func() {
				fired, _ := sel.Wait(time.Second)
				done <- fired
			}()

			time.Sleep(10 * time.Millisecond)
			sel.Wake()

			Eventually(done, time.Second).Should(Receive(BeTrue()))
			Expect(woke).To(BeTrue())
		})
	})

	Context("pure timeout", func() {
		It("returns false when nothing fires", func() {
			fired, err := sel.Wait(10 * time.Millisecond)
			Expect(err).ToNot(HaveOccurred())
			Expect(fired).To(BeFalse())
		})
	})

	Context("after Close", func() {
		It("rejects further Add/AddTimer calls", func() {
			Expect(sel.Close()).To(Succeed())

			r, w, err := os.Pipe()
			Expect(err).ToNot(HaveOccurred())
			defer func() { _ = r.Close(); _ = w.Close() }()

			Expect(sel.Add(newPipeSelectable(r))).To(HaveOccurred())
			Expect(sel.AddTimer(reactor.NewTimer())).To(HaveOccurred())
		})
	})
})
