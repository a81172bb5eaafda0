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

package pool

import (
	"sync"

	"github.com/hashicorp/go-multierror"

	"github/sabouaram/reactorkit/rerr"
)

// Pool runs a fixed number of workers pulling tasks off a bounded
// channel. The zero value is not usable; construct with New.
type Pool struct {
	workers  int
	capacity int

	mu       sync.Mutex
	state    State
	queue    chan func()
	wg       sync.WaitGroup
	panicErr *multierror.Error
}

// New returns a Pool with the given worker count and queue capacity.
// Neither takes effect until Start.
func New(workers, capacity int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if capacity < 0 {
		capacity = 0
	}
	return &Pool{workers: workers, capacity: capacity, state: Stopped}
}

// State reports the pool's current lifecycle state.
func (p *Pool) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Start transitions Stopped -> Starting -> Running, spawning the worker
// goroutines. It is an error to call Start on a pool that is not
// Stopped.
func (p *Pool) Start() error {
	p.mu.Lock()
	if p.state != Stopped {
		st := p.state
		p.mu.Unlock()
		return rerr.Newf(rerr.KindLogic, "pool: start called in state %s", st)
	}
	p.state = Starting
	p.queue = make(chan func(), p.capacity)
	p.panicErr = nil
	p.mu.Unlock()

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.work()
	}

	p.mu.Lock()
	p.state = Running
	p.mu.Unlock()
	return nil
}

func (p *Pool) work() {
	defer p.wg.Done()
	for fn := range p.queue {
		p.runSafely(fn)
	}
}

func (p *Pool) runSafely(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			p.mu.Lock()
			p.panicErr = multierror.Append(p.panicErr, rerr.Newf(rerr.KindLogic, "pool: task panicked: %v", r))
			p.mu.Unlock()
		}
	}()
	fn()
}

// Schedule enqueues fn to run on a worker. It blocks once the queue is
// full, applying backpressure to the caller. It returns an error if the
// pool is not Running.
//
// The whole attempt - state check plus the (possibly blocking) channel
// send - runs under the pool's lock, so it can never race a concurrent
// Stop into sending on a closed channel: Stop takes the same lock to
// flip the state and close the queue, so a Schedule already past the
// state check is guaranteed to land before that close.
func (p *Pool) Schedule(fn func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Running {
		return rerr.Newf(rerr.KindLogic, "pool: schedule called in state %s", p.state)
	}
	p.queue <- fn
	return nil
}

// Stop transitions Running -> Stopping -> Stopped, joining every
// worker. With cancel set, whatever is still queued is discarded;
// otherwise every already-scheduled task still runs to completion
// before Stop returns. The returned error aggregates any task panics
// recovered since the last Start.
func (p *Pool) Stop(cancel bool) error {
	p.mu.Lock()
	if p.state != Running {
		st := p.state
		p.mu.Unlock()
		return rerr.Newf(rerr.KindLogic, "pool: stop called in state %s", st)
	}
	p.state = Stopping

	if cancel {
		draining := true
		for draining {
			select {
			case <-p.queue:
			default:
				draining = false
			}
		}
	}
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()

	p.mu.Lock()
	p.state = Stopped
	err := p.panicErr
	p.panicErr = nil
	p.mu.Unlock()

	if err != nil {
		return err
	}
	return nil
}
