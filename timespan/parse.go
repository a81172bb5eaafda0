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
	"strconv"
	"strings"
	"time"
)

// Parse parses a string like "5d23h15m13s" (days optional, case
// insensitive) into a Timespan. The part after the days may also be the
// "HH:MM:SS[.ffffff]" clock form that String produces.
func Parse(s string) (Timespan, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("timespan: empty string")
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var days int64
	if i := strings.IndexAny(s, "dD"); i >= 0 {
		n, err := strconv.ParseInt(s[:i], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("timespan: invalid days part %q: %w", s[:i], err)
		}
		days = n
		s = s[i+1:]
	}

	var d time.Duration
	if parts := strings.Split(s, ":"); len(parts) == 3 {
		h, errH := strconv.ParseInt(parts[0], 10, 64)
		m, errM := strconv.ParseInt(parts[1], 10, 64)
		sec, errS := time.ParseDuration(parts[2] + "s")
		if errH != nil || errM != nil || errS != nil {
			return 0, fmt.Errorf("timespan: invalid clock remainder %q", s)
		}
		d = time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + sec
	} else if s != "" {
		var err error
		d, err = time.ParseDuration(strings.ToLower(s))
		if err != nil {
			return 0, fmt.Errorf("timespan: invalid remainder %q: %w", s, err)
		}
	}

	ts := Days(days) + FromDuration(d)
	if neg {
		ts = -ts
	}
	return ts, nil
}

// ParseFloat64Seconds builds a Timespan from a floating-point seconds
// count, clamping to the int64 microsecond range.
func ParseFloat64Seconds(f float64) Timespan {
	us := f * 1_000_000
	const maxI = float64(1<<63 - 1)
	if us > maxI {
		return Timespan(1<<63 - 1)
	}
	if us < -maxI {
		return Timespan(-(1<<63 - 1))
	}
	return Timespan(int64(us))
}
