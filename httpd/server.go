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

package httpd

import (
	"context"
	"net"
	"regexp"
	"sync"
	"time"

	"github/sabouaram/reactorkit/reactor"
	"github/sabouaram/reactorkit/rerr"
	"github/sabouaram/reactorkit/rlog"
	"github/sabouaram/reactorkit/tcpsock"
)

// Server accepts connections on one bound address and dispatches parsed
// requests to registered HttpServices. It exposes the same Start/Stop/
// Restart/IsRunning/Uptime/ErrorsLast/ErrorsList lifecycle shape the
// teacher's runner abstraction gives every long-running component.
type Server struct {
	log rlog.FuncLog

	mu       sync.RWMutex
	cfg      Config
	services []HttpService
	notFound FuncResponder

	sel *reactor.Selector
	ln  *tcpsock.Listener

	started   time.Time
	running   bool
	cancel    context.CancelFunc
	done      chan struct{}
	lastErr   error
	errHist   []error
	maxErrors int
}

// New constructs a Server for cfg. defLog is consulted for every log call.
func New(cfg Config, defLog rlog.FuncLog) *Server {
	return &Server{
		cfg:       cfg.withDefaults(),
		log:       defLog,
		notFound:  func() Responder { return ResponderFunc(defaultNotFound) },
		maxErrors: 64,
	}
}

// Route registers a Responder factory for requests whose path matches
// pattern. Routes are matched in registration order; the first match wins.
func (s *Server) Route(name, pattern string, f FuncResponder) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return rerr.Wrap(rerr.KindLogic, "httpd: compile route pattern", err)
	}
	s.mu.Lock()
	s.services = append(s.services, HttpService{Name: name, Pattern: re, New: f})
	s.mu.Unlock()
	return nil
}

// SetNotFound overrides the Responder invoked when no route matches.
func (s *Server) SetNotFound(f FuncResponder) {
	s.mu.Lock()
	s.notFound = f
	s.mu.Unlock()
}

// GetConfig returns the current configuration.
func (s *Server) GetConfig() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// SetConfig replaces the configuration. Bindable-address changes take
// effect only on the next Start.
func (s *Server) SetConfig(cfg Config) {
	s.mu.Lock()
	s.cfg = cfg.withDefaults()
	s.mu.Unlock()
}

// Addr returns the bound listener's address. Only meaningful after a
// successful Start; returns nil otherwise.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

func (s *Server) route(path string) (HttpService, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, svc := range s.services {
		if svc.matches(path) {
			return svc, true
		}
	}
	return HttpService{}, false
}

// Start binds the configured address and begins accepting connections on a
// background goroutine. Calling Start while already running returns an
// error.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return rerr.New(rerr.KindLogic, "httpd: already running")
	}
	cfg := s.cfg
	s.mu.Unlock()

	if cfg.Disable {
		return nil
	}

	sel, err := reactor.New(reactor.WithLogger(s.log))
	if err != nil {
		return rerr.Wrap(rerr.KindIO, "httpd: create selector", err)
	}

	ln, err := tcpsock.Listen(cfg.Bindable, cfg.TLS)
	if err != nil {
		_ = sel.Close()
		return rerr.Wrap(rerr.KindIO, "httpd: listen", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	s.mu.Lock()
	s.sel = sel
	s.ln = ln
	s.cancel = cancel
	s.done = done
	s.running = true
	s.started = time.Now()
	s.mu.Unlock()

	ln.Accepted.Connect(func(c *tcpsock.Conn) { s.acceptConn(c) })
	ln.AcceptFailed.Connect(func(err error) { s.recordError(err) })

	if err := sel.Add(ln); err != nil {
		_ = ln.Close()
		_ = sel.Close()
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return rerr.Wrap(rerr.KindIO, "httpd: register listener", err)
	}

	go s.loop(runCtx, sel, done)
	return nil
}

func (s *Server) loop(ctx context.Context, sel *reactor.Selector, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if _, err := sel.Wait(250 * time.Millisecond); err != nil {
			s.recordError(err)
			return
		}
	}
}

// Stop cancels the accept loop, closes the listener, and waits for the
// background goroutine to exit (or ctx to expire).
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	cancel := s.cancel
	sel := s.sel
	ln := s.ln
	done := s.done
	s.running = false
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if sel != nil {
		sel.Wake()
	}
	if ln != nil {
		_ = ln.Close()
	}

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	if sel != nil {
		return sel.Close()
	}
	return nil
}

// Restart stops then starts the server.
func (s *Server) Restart(ctx context.Context) error {
	if err := s.Stop(ctx); err != nil {
		return err
	}
	return s.Start(ctx)
}

// IsRunning reports whether the accept loop is active.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Uptime reports time elapsed since the last successful Start, or 0 if not
// running.
func (s *Server) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.running {
		return 0
	}
	return time.Since(s.started)
}

// ErrorsLast returns the most recently recorded error, or nil.
func (s *Server) ErrorsLast() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ErrorsList returns every recorded error since the server was created, up
// to the retained history bound.
func (s *Server) ErrorsList() []error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]error, len(s.errHist))
	copy(out, s.errHist)
	return out
}

func (s *Server) recordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	s.lastErr = err
	s.errHist = append(s.errHist, err)
	if len(s.errHist) > s.maxErrors {
		s.errHist = s.errHist[len(s.errHist)-s.maxErrors:]
	}
	s.mu.Unlock()
	rlog.Call(s.log).Warn("httpd: ", err)
}

func (s *Server) acceptConn(c *tcpsock.Conn) {
	s.mu.RLock()
	sel := s.sel
	cfg := s.cfg
	s.mu.RUnlock()
	if sel == nil {
		_ = c.Close()
		return
	}

	co := newConn(s, sel, c, cfg)
	if err := sel.Add(co.bs); err != nil {
		s.recordError(err)
		_ = c.Close()
		return
	}
	if err := sel.AddTimer(co.timer); err != nil {
		s.recordError(err)
		_ = c.Close()
		return
	}
	co.armReadTimeout()
	if err := co.bs.StartReading(); err != nil {
		s.recordError(err)
		co.destroy()
	}
}
