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

//go:build !linux

package rpoll

import (
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// pollPoller is the portable fallback for platforms without an epoll
// backend: it re-issues poll(2) against the whole interest set on every
// Wait. Fine for the modest descriptor counts a reactorkit process
// typically watches; Linux gets the real epoll backend instead.
type pollPoller struct {
	mu    sync.Mutex
	flags map[int]uint32
}

// New returns a poll(2)-backed Poller.
func New() (Poller, error) {
	return &pollPoller{flags: make(map[int]uint32)}, nil
}

func mask(read, write bool) uint32 {
	var m uint32
	if read {
		m |= unix.POLLIN
	}
	if write {
		m |= unix.POLLOUT
	}
	return m
}

func (p *pollPoller) Register(fd int, read, write bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flags[fd] = mask(read, write)
	return nil
}

func (p *pollPoller) Modify(fd int, read, write bool) error {
	return p.Register(fd, read, write)
}

func (p *pollPoller) Unregister(fd int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.flags, fd)
	return nil
}

func (p *pollPoller) Wait(timeout time.Duration) ([]Event, error) {
	p.mu.Lock()
	fds := make([]unix.PollFd, 0, len(p.flags))
	for fd, m := range p.flags {
		fds = append(fds, unix.PollFd{Fd: int32(fd), Events: int16(m)})
	}
	p.mu.Unlock()

	if len(fds) == 0 {
		wait := timeout
		if wait < 0 || wait > 10*time.Millisecond {
			wait = 10 * time.Millisecond
		}
		time.Sleep(wait)
		return nil, nil
	}

	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}

	n, err := unix.Poll(fds, ms)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	out := make([]Event, 0, n)
	for _, pfd := range fds {
		if pfd.Revents == 0 {
			continue
		}
		out = append(out, Event{
			Fd:       int(pfd.Fd),
			Readable: pfd.Revents&unix.POLLIN != 0,
			Writable: pfd.Revents&unix.POLLOUT != 0,
		})
	}
	return out, nil
}

func (p *pollPoller) Close() error { return nil }
