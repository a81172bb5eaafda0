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

// Package timespan provides the microsecond-precision signed duration type
// used throughout reactorkit's reactor and timer code (spec §3 Timespan).
//
// Example usage:
//
//	import "github/sabouaram/reactorkit/timespan"
//
//	t := timespan.Seconds(90)
//	fmt.Println(t.Minutes()) // 1.5
package timespan

import (
	"math"
	"time"
)

// Timespan is a signed 64-bit microsecond count, immutable except by
// assignment.
type Timespan int64

// Zero is the zero-length Timespan.
const Zero Timespan = 0

func Microseconds(i int64) Timespan { return Timespan(i) }
func Milliseconds(i int64) Timespan { return Timespan(i * 1000) }
func Seconds(i int64) Timespan       { return Timespan(i * 1_000_000) }
func Minutes(i int64) Timespan       { return Timespan(i * 60 * 1_000_000) }
func Hours(i int64) Timespan         { return Timespan(i * 3600 * 1_000_000) }
func Days(i int64) Timespan          { return Timespan(i * 24 * 3600 * 1_000_000) }

// FromDuration converts a time.Duration into a Timespan, truncating to
// microsecond precision.
func FromDuration(d time.Duration) Timespan {
	return Timespan(d.Microseconds())
}

// Time converts the Timespan to a time.Duration.
func (t Timespan) Time() time.Duration {
	return time.Duration(t) * time.Microsecond
}

// Microseconds returns the raw microsecond count.
func (t Timespan) Microseconds() int64 { return int64(t) }

// Milliseconds returns the Timespan expressed as a floating-point number
// of milliseconds.
func (t Timespan) Milliseconds() float64 { return float64(t) / 1_000 }

// Seconds returns the Timespan expressed as a floating-point number of
// seconds.
func (t Timespan) Seconds() float64 { return float64(t) / 1_000_000 }

// Minutes returns the Timespan expressed as a floating-point number of
// minutes.
func (t Timespan) Minutes() float64 { return t.Seconds() / 60 }

// Hours returns the Timespan expressed as a floating-point number of hours.
func (t Timespan) Hours() float64 { return t.Seconds() / 3600 }

// Days returns the number of whole days contained in the Timespan.
func (t Timespan) Days() int64 {
	d := math.Floor(t.Hours() / 24)
	if d > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(d)
}

// IsZero reports whether the Timespan is exactly zero.
func (t Timespan) IsZero() bool { return t == 0 }
