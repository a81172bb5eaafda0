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

// Truncate rounds t down to the nearest multiple of unit. unit <= 0 is a no-op.
func (t Timespan) Truncate(unit Timespan) Timespan {
	if unit <= 0 {
		return t
	}
	return t - t%unit
}

// Round rounds t to the nearest multiple of unit, ties rounding away from zero.
func (t Timespan) Round(unit Timespan) Timespan {
	if unit <= 0 {
		return t
	}

	r := t % unit
	if r == 0 {
		return t
	}

	if r.Abs()*2 >= unit.Abs() {
		if t >= 0 {
			return t - r + unit
		}
		return t - r - unit
	}

	return t - r
}
