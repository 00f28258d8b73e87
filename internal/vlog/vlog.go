// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

// Package vlog is a leveled, single-line status logger for the command-line
// tooling: one prefix glyph per message kind, written to a configurable
// io.Writer (os.Stderr by default), the same shape as the teacher source's
// own println-based log module.
package vlog

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger writes prefixed status lines. The zero value writes to os.Stderr.
type Logger struct {
	mu sync.Mutex
	w  io.Writer
}

// Default is the package-level Logger the free functions below write to.
var Default = &Logger{w: os.Stderr}

func (l *Logger) out() io.Writer {
	if l.w == nil {
		return os.Stderr
	}
	return l.w
}

func (l *Logger) line(prefix, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out(), "%s %s\n", prefix, msg)
}

// SetOutput redirects l's output; nil restores os.Stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w = w
}

// Info prints a neutral informational line.
func (l *Logger) Info(msg string) { l.line("[.]", msg) }

// ContinueInfo prints a line continuing the previous Info line.
func (l *Logger) ContinueInfo(msg string) { l.line(" | -", msg) }

// Pending prints a line for work that is starting.
func (l *Logger) Pending(msg string) { l.line("[*]", msg) }

// Positive prints a line for a good outcome.
func (l *Logger) Positive(msg string) { l.line("[+]", msg) }

// Negative prints a line for a negative-but-expected outcome (e.g. a
// property found to not hold).
func (l *Logger) Negative(msg string) { l.line("[-]", msg) }

// Warning prints a line for a recoverable problem.
func (l *Logger) Warning(msg string) { l.line("[!]", msg) }

// Error prints a line for a fatal problem.
func (l *Logger) Error(msg string) { l.line("[X]", msg) }

// Blank prints an empty line.
func (l *Logger) Blank() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out())
}

// Package-level convenience wrappers over Default, mirroring the teacher
// source's free functions (info/continue_info/pending/positive/negative/
// warning/error/lf).

func Info(msg string)         { Default.Info(msg) }
func ContinueInfo(msg string) { Default.ContinueInfo(msg) }
func Pending(msg string)      { Default.Pending(msg) }
func Positive(msg string)     { Default.Positive(msg) }
func Negative(msg string)     { Default.Negative(msg) }
func Warning(msg string)      { Default.Warning(msg) }
func Error(msg string)        { Default.Error(msg) }
func Blank()                  { Default.Blank() }
