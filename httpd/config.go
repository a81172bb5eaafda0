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
	"crypto/tls"
	"time"
)

// Config describes one listening server. It follows the teacher's
// Info-accessor convention (GetName/GetBindable/GetExpose/IsDisable/IsTLS)
// so a Config can be hot-swapped via SetConfig without disturbing callers
// that only read it through those accessors.
type Config struct {
	Name    string
	Bindable string
	Expose   string
	Disable  bool
	TLS      *tls.Config

	// ReadTimeout bounds inactivity while reading header or body bytes.
	ReadTimeout time.Duration
	// WriteTimeout is defaulted with the other timeouts, but no connection
	// timer is armed from it: a reply still draining is bounded only by
	// whichever of ReadTimeout or KeepAliveTimeout is running.
	WriteTimeout time.Duration
	// KeepAliveTimeout bounds idle time between requests on a persistent
	// connection.
	KeepAliveTimeout time.Duration
}

func (c Config) GetName() string     { return c.Name }
func (c Config) GetBindable() string { return c.Bindable }
func (c Config) GetExpose() string   { return c.Expose }
func (c Config) IsDisable() bool     { return c.Disable }
func (c Config) IsTLS() bool         { return c.TLS != nil }

func (c Config) withDefaults() Config {
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 30 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 30 * time.Second
	}
	if c.KeepAliveTimeout <= 0 {
		c.KeepAliveTimeout = 120 * time.Second
	}
	return c
}
