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

// Package rconsole gives the command-line tools a small set of named
// output roles (error, warning, progress) instead of scattering ad hoc
// color.New calls through each command's main package.
package rconsole

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Role names one kind of CLI output. Each role maps to a *color.Color
// that can be reassigned with SetColor; an unset role falls back to
// plain fmt formatting.
type Role uint8

const (
	RoleError Role = iota
	RoleWarn
	RoleProgress
)

var roles = map[Role]*color.Color{
	RoleError:    color.New(color.FgRed),
	RoleWarn:     color.New(color.FgYellow),
	RoleProgress: color.New(color.FgCyan),
}

// SetColor reassigns the color used for role. Passing no attributes
// clears it back to plain output.
func SetColor(role Role, attrs ...color.Attribute) {
	if len(attrs) == 0 {
		delete(roles, role)
		return
	}
	roles[role] = color.New(attrs...)
}

// Fprintln writes text to w in role's color, or plain if role has none.
func Fprintln(w io.Writer, role Role, text string) (int, error) {
	if c, ok := roles[role]; ok {
		return c.Fprintln(w, text)
	}
	return fmt.Fprintln(w, text)
}

// Fprintf writes a formatted message to w in role's color, or plain if
// role has none.
func Fprintf(w io.Writer, role Role, format string, args ...any) (int, error) {
	if c, ok := roles[role]; ok {
		return c.Fprintf(w, format, args...)
	}
	return fmt.Fprintf(w, format, args...)
}
