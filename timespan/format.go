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

import (
	"fmt"
)

// String renders the Timespan as "NdHH:MM:SS.ffffff", omitting the day
// part when zero.
func (t Timespan) String() string {
	neg := t < 0
	if neg {
		t = -t
	}

	days := t.Days()
	rem := t - Days(days)

	h := rem.Microseconds() / (3600 * 1_000_000)
	rem -= Hours(h)
	m := rem.Microseconds() / (60 * 1_000_000)
	rem -= Minutes(m)
	sec := rem.Microseconds() / 1_000_000
	us := rem.Microseconds() % 1_000_000

	var s string
	if days > 0 {
		s = fmt.Sprintf("%dd", days)
	}

	s += fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
	if us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}

	if neg {
		s = "-" + s
	}

	return s
}
