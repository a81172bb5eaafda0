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

package timespan

// Add returns t+o.
func (t Timespan) Add(o Timespan) Timespan { return t + o }

// Sub returns t-o.
func (t Timespan) Sub(o Timespan) Timespan { return t - o }

// Scale returns t multiplied by the integer factor n.
func (t Timespan) Scale(n int64) Timespan { return Timespan(int64(t) * n) }

// Abs returns the absolute value of the Timespan.
func (t Timespan) Abs() Timespan {
	if t < 0 {
		return -t
	}
	return t
}

// Cmp returns -1, 0 or 1 depending on whether t is less than, equal to,
// or greater than o.
func (t Timespan) Cmp(o Timespan) int {
	switch {
	case t < o:
		return -1
	case t > o:
		return 1
	default:
		return 0
	}
}

// Min returns the smaller of t and o.
func Min(t, o Timespan) Timespan {
	if t < o {
		return t
	}
	return o
}

// Max returns the larger of t and o.
func Max(t, o Timespan) Timespan {
	if t > o {
		return t
	}
	return o
}
