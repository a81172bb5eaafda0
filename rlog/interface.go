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

// Package rlog is the ambient logging wrapper shared by every reactorkit
// component. It follows the teacher's FuncLog accessor pattern: components
// never hold a concrete logger, they hold a function that returns the
// current one, so the logger can be swapped at runtime without touching
// the component's internal state.
package rlog

import (
	"github.com/sirupsen/logrus"
)

// Logger is the minimal structured-logging contract every component needs.
type Logger interface {
	WithFields(fields logrus.Fields) Logger
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
}

// FuncLog returns the current Logger. A nil return means "no logging".
type FuncLog func() Logger

type wrap struct {
	e *logrus.Entry
}

// New wraps a *logrus.Logger into a Logger.
func New(l *logrus.Logger) Logger {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &wrap{e: logrus.NewEntry(l)}
}

func (w *wrap) WithFields(fields logrus.Fields) Logger {
	return &wrap{e: w.e.WithFields(fields)}
}

func (w *wrap) Debug(args ...any) { w.e.Debug(args...) }
func (w *wrap) Info(args ...any)  { w.e.Info(args...) }
func (w *wrap) Warn(args ...any)  { w.e.Warn(args...) }
func (w *wrap) Error(args ...any) { w.e.Error(args...) }

// Default returns a FuncLog always yielding the standard logrus logger,
// handy as the defLog argument when a caller does not care to configure one.
func Default() FuncLog {
	l := New(nil)
	return func() Logger { return l }
}

// Call is a nil-safe helper: Call(f).Info("x") style call sites need this
// to avoid nil-checking FuncLog at every call site.
func Call(f FuncLog) Logger {
	if f == nil {
		return nopLogger{}
	}
	if l := f(); l != nil {
		return l
	}
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) WithFields(logrus.Fields) Logger { return nopLogger{} }
func (nopLogger) Debug(...any)                    {}
func (nopLogger) Info(...any)                     {}
func (nopLogger) Warn(...any)                     {}
func (nopLogger) Error(...any)                     {}
