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
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github/sabouaram/reactorkit/reactor"
)

var _ = Describe("Timer", func() {
	var sel *reactor.Selector

	BeforeEach(func() {
		var err error
		sel, err = reactor.New()
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		_ = sel.Close()
	})

	Context("one-shot timer", func() {
		It("fires exactly once and then stays inactive", func() {
			tm := reactor.NewTimer()
			fired := 0
			tm.Timeout.Connect(func(*reactor.Timer) { fired++ })

			Expect(sel.AddTimer(tm)).To(Succeed())
			tm.Start(5*time.Millisecond, false)

			Eventually(func() int {
				_, _ = sel.Wait(20 * time.Millisecond)
				return fired
			}, time.Second).Should(Equal(1))

			Expect(tm.Active()).To(BeFalse())

			_, _ = sel.Wait(20 * time.Millisecond)
			Expect(fired).To(Equal(1))
		})
	})

	Context("periodic timer", func() {
		It("keeps firing until stopped", func() {
			tm := reactor.NewTimer()
			fired := 0
			tm.Timeout.Connect(func(*reactor.Timer) { fired++ })

			Expect(sel.AddTimer(tm)).To(Succeed())
			tm.Start(2*time.Millisecond, true)

			Eventually(func() int {
				_, _ = sel.Wait(10 * time.Millisecond)
				return fired
			}, time.Second).Should(BeNumerically(">=", 3))

			tm.Stop()
			Expect(tm.Active()).To(BeFalse())
		})
	})

	Context("ordering", func() {
		It("fires due timers in deadline order within one Wait", func() {
			var order []string

			early := reactor.NewTimer()
			early.Timeout.Connect(func(*reactor.Timer) { order = append(order, "early") })

			late := reactor.NewTimer()
			late.Timeout.Connect(func(*reactor.Timer) { order = append(order, "late") })

			now := time.Now()
			Expect(sel.AddTimer(late)).To(Succeed())
			Expect(sel.AddTimer(early)).To(Succeed())

			late.StartAt(now.Add(5*time.Millisecond), 0, false)
			early.StartAt(now.Add(1*time.Millisecond), 0, false)

			Eventually(func() []string {
				_, _ = sel.Wait(20 * time.Millisecond)
				return order
			}, time.Second).Should(Equal([]string{"early", "late"}))
		})
	})
})
