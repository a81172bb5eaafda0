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

package rpc

import (
	"sort"
	"sync"

	"github/sabouaram/reactorkit/rerr"
)

// Registry maps procedure names to the ServiceProcedure that serves
// them. A transport's server side looks a name up once per incoming
// request; registration itself only happens at startup, so a plain
// map protected by a RWMutex - amortized O(1) lookup - serves every
// caller better than an artificially balanced tree would.
type Registry struct {
	mu    sync.RWMutex
	procs map[string]*ServiceProcedure
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{procs: make(map[string]*ServiceProcedure)}
}

// Register binds name to fn. fn must be a function; see
// newServiceProcedure for the accepted shapes. Registering a name
// twice is an error - procedures are meant to be wired once, at
// startup, before a server starts serving.
func (r *Registry) Register(name string, fn any) error {
	p, err := newServiceProcedure(name, fn)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.procs[name]; exists {
		return rerr.Newf(rerr.KindLogic, "rpc: procedure %q already registered", name)
	}
	r.procs[name] = p
	return nil
}

// Lookup returns the procedure registered under name, if any.
func (r *Registry) Lookup(name string) (*ServiceProcedure, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.procs[name]
	return p, ok
}

// Names returns every registered procedure name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.procs))
	for n := range r.procs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
