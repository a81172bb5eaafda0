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

package signal

// Signal0 notifies slots taking no arguments.
type Signal0 struct {
	c connectable
}

func (s *Signal0) Connect(slot func()) *Connection { return s.c.connect(slot) }
func (s *Signal0) Clear()                          { s.c.clear() }
func (s *Signal0) Len() int                         { return s.c.count() }

// Emit invokes every connected slot in connection order. A slot may close
// its own or another slot's Connection without disturbing this dispatch
// (spec §4.2, §8 property 2).
func (s *Signal0) Emit() {
	entries, finish := s.c.snapshot()
	defer finish()

	for _, e := range entries {
		if !e.valid {
			continue
		}
		if fn, ok := e.fn.(func()); ok {
			fn()
		}
	}
}

// Signal1 notifies slots taking one argument.
type Signal1[A any] struct {
	c connectable
}

func (s *Signal1[A]) Connect(slot func(A)) *Connection { return s.c.connect(slot) }
func (s *Signal1[A]) Clear()                           { s.c.clear() }
func (s *Signal1[A]) Len() int                          { return s.c.count() }

func (s *Signal1[A]) Emit(a A) {
	entries, finish := s.c.snapshot()
	defer finish()

	for _, e := range entries {
		if !e.valid {
			continue
		}
		if fn, ok := e.fn.(func(A)); ok {
			fn(a)
		}
	}
}

// Signal2 notifies slots taking two arguments.
type Signal2[A, B any] struct {
	c connectable
}

func (s *Signal2[A, B]) Connect(slot func(A, B)) *Connection { return s.c.connect(slot) }
func (s *Signal2[A, B]) Clear()                              { s.c.clear() }
func (s *Signal2[A, B]) Len() int                             { return s.c.count() }

func (s *Signal2[A, B]) Emit(a A, b B) {
	entries, finish := s.c.snapshot()
	defer finish()

	for _, e := range entries {
		if !e.valid {
			continue
		}
		if fn, ok := e.fn.(func(A, B)); ok {
			fn(a, b)
		}
	}
}

// Signal3 notifies slots taking three arguments.
type Signal3[A, B, C any] struct {
	c connectable
}

func (s *Signal3[A, B, C]) Connect(slot func(A, B, C)) *Connection { return s.c.connect(slot) }
func (s *Signal3[A, B, C]) Clear()                                 { s.c.clear() }
func (s *Signal3[A, B, C]) Len() int                                { return s.c.count() }

func (s *Signal3[A, B, C]) Emit(a A, b B, c C) {
	entries, finish := s.c.snapshot()
	defer finish()

	for _, e := range entries {
		if !e.valid {
			continue
		}
		if fn, ok := e.fn.(func(A, B, C)); ok {
			fn(a, b, c)
		}
	}
}
