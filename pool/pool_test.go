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

package pool_test

import (
	"context"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github/sabouaram/reactorkit/pool"
)

var _ = Describe("lifecycle", func() {
	It("rejects Start from any state but Stopped", func() {
		p := pool.New(2, 4)
		Expect(p.Start()).To(Succeed())
		Expect(p.Start()).To(HaveOccurred())
		Expect(p.Stop(false)).To(Succeed())
	})

	It("rejects Schedule and Stop once Stopped", func() {
		p := pool.New(1, 1)
		Expect(p.Schedule(func() {})).To(HaveOccurred())
		Expect(p.Stop(false)).To(HaveOccurred())
	})

	It("runs every scheduled task exactly once on a graceful stop", func() {
		p := pool.New(3, 8)
		Expect(p.Start()).To(Succeed())

		var count int64
		for i := 0; i < 20; i++ {
			Expect(p.Schedule(func() { atomic.AddInt64(&count, 1) })).To(Succeed())
		}
		Expect(p.Stop(false)).To(Succeed())
		Expect(atomic.LoadInt64(&count)).To(BeEquivalentTo(20))
		Expect(p.State()).To(Equal(pool.Stopped))
	})

	It("recovers a panicking task and reports it from Stop", func() {
		p := pool.New(1, 1)
		Expect(p.Start()).To(Succeed())
		Expect(p.Schedule(func() { panic("boom") })).To(Succeed())
		Expect(p.Stop(false)).To(HaveOccurred())
	})
})

var _ = Describe("Future", func() {
	It("delivers the task result once it completes", func() {
		p := pool.New(2, 4)
		Expect(p.Start()).To(Succeed())
		defer p.Stop(false)

		f, err := pool.Submit(p, func() (int, error) { return 21 * 2, nil })
		Expect(err).ToNot(HaveOccurred())

		v, err := f.Wait(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(42))
	})

	It("returns the context error if it expires before the task completes", func() {
		p := pool.New(1, 1)
		Expect(p.Start()).To(Succeed())
		defer p.Stop(false)

		f, err := pool.Submit(p, func() (int, error) {
			time.Sleep(50 * time.Millisecond)
			return 1, nil
		})
		Expect(err).ToNot(HaveOccurred())

		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
		defer cancel()
		_, err = f.Wait(ctx)
		Expect(err).To(Equal(context.DeadlineExceeded))
	})
})
