// Copyright (C) 2014 Jakob Borg. All rights reserved. Use of this source code
// is governed by an MIT-style license that can be found in the LICENSE file.

// Package logger implements a standardized, level-gated logger with
// callback functionality. The level set matches the vocabulary spec.md §7
// uses for patch-run diagnostics (debug/verbose/note/warning/error/fatal)
// rather than the teacher's original debug/verbose/info/ok/warn/fatal set —
// "note" replaces "info"/"ok" as the single informational level above
// verbose, since the patch engine has no separate "operation succeeded"
// distinction from plain progress output.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

type Level int

const (
	LevelDebug Level = iota
	LevelVerbose
	LevelNote
	LevelWarning
	LevelError
	LevelFatal
	numLevels
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelVerbose:
		return "VERBOSE"
	case LevelNote:
		return "NOTE"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// A MessageHandler is called with the log level and message text. Handlers
// registered with AddHandler receive every line logged at their level, in
// addition to whatever is printed to the console.
type MessageHandler func(l Level, msg string)

// Logger is a level-gated logger that also fans messages out to any
// registered MessageHandlers, in addition to writing them to its
// underlying *log.Logger.
type Logger struct {
	logger   *log.Logger
	handlers [numLevels][]MessageHandler
	mut      sync.Mutex
}

// DefaultLogger logs to standard output with a time prefix.
var DefaultLogger = New()

// New returns a Logger writing to stdout, or discarding everything when
// the ANDASTRA_LOGGER_DISCARD environment variable is set (used by tests
// that would otherwise spam output).
func New() *Logger {
	if os.Getenv("ANDASTRA_LOGGER_DISCARD") != "" {
		return &Logger{logger: log.New(io.Discard, "", 0)}
	}
	return &Logger{logger: log.New(os.Stdout, "", log.Ltime)}
}

// AddHandler registers a new MessageHandler to receive messages at the
// given level.
func (l *Logger) AddHandler(level Level, h MessageHandler) {
	l.mut.Lock()
	defer l.mut.Unlock()
	l.handlers[level] = append(l.handlers[level], h)
}

// SetFlags mirrors log.Logger.SetFlags.
func (l *Logger) SetFlags(flag int) {
	l.logger.SetFlags(flag)
}

// SetPrefix mirrors log.Logger.SetPrefix.
func (l *Logger) SetPrefix(prefix string) {
	l.logger.SetPrefix(prefix)
}

func (l *Logger) callHandlers(level Level, s string) {
	for _, h := range l.handlers[level] {
		h(level, strings.TrimSpace(s))
	}
}

func (l *Logger) log(level Level, s string) {
	l.mut.Lock()
	defer l.mut.Unlock()
	l.logger.Output(3, level.String()+": "+s)
	l.callHandlers(level, s)
}

// Debugln logs a line at the debug level: internal codec/resolver tracing,
// off by default.
func (l *Logger) Debugln(vals ...interface{}) {
	l.log(LevelDebug, fmt.Sprintln(vals...))
}

// Debugf logs a formatted line at the debug level.
func (l *Logger) Debugf(format string, vals ...interface{}) {
	l.log(LevelDebug, fmt.Sprintf(format, vals...))
}

// Verboseln logs a line at the verbose level: per-file patch-step detail.
func (l *Logger) Verboseln(vals ...interface{}) {
	l.log(LevelVerbose, fmt.Sprintln(vals...))
}

// Verbosef logs a formatted line at the verbose level.
func (l *Logger) Verbosef(format string, vals ...interface{}) {
	l.log(LevelVerbose, fmt.Sprintf(format, vals...))
}

// Noteln logs a line at the note level: the default progress output a
// patch run prints for each applied change.
func (l *Logger) Noteln(vals ...interface{}) {
	l.log(LevelNote, fmt.Sprintln(vals...))
}

// Notef logs a formatted line at the note level.
func (l *Logger) Notef(format string, vals ...interface{}) {
	l.log(LevelNote, fmt.Sprintf(format, vals...))
}

// Warningln logs a line at the warning level: a non-fatal condition the
// patch run recovers from (e.g. a missing optional 2DA row).
func (l *Logger) Warningln(vals ...interface{}) {
	l.log(LevelWarning, fmt.Sprintln(vals...))
}

// Warningf logs a formatted line at the warning level.
func (l *Logger) Warningf(format string, vals ...interface{}) {
	l.log(LevelWarning, fmt.Sprintf(format, vals...))
}

// Errorln logs a line at the error level: a change-set step failed but the
// run continues per spec.md §7's "log and proceed" error policy.
func (l *Logger) Errorln(vals ...interface{}) {
	l.log(LevelError, fmt.Sprintln(vals...))
}

// Errorf logs a formatted line at the error level.
func (l *Logger) Errorf(format string, vals ...interface{}) {
	l.log(LevelError, fmt.Sprintf(format, vals...))
}

// Fatalln logs a line at the fatal level and exits the process with code 1.
func (l *Logger) Fatalln(vals ...interface{}) {
	l.log(LevelFatal, fmt.Sprintln(vals...))
	os.Exit(1)
}

// Fatalf logs a formatted line at the fatal level and exits the process
// with code 1.
func (l *Logger) Fatalf(format string, vals ...interface{}) {
	l.log(LevelFatal, fmt.Sprintf(format, vals...))
	os.Exit(1)
}
