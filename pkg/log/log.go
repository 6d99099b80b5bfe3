// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/walteh/makedistrib/pkg/transfer"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 50 // Base width for filename
	actionWidth = 12 // Width for the action
)

// 🎯 FileOperation is one line of console output about a file
type FileOperation struct {
	Path   string // Absolute or relative path
	Action string // copied, written, skipped, deleted, ...
	Detail string // Optional trailing detail
}

// 📦 Section groups the file operations of one step
type Section struct {
	Name        string // Step name
	Destination string // Directory being populated
}

// 🎯 Logger prints colored file operations to a console and mirrors them to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	quiet   bool
	root    string

	mu      sync.Mutex
	section *Section
	counts  map[string]int
}

// Option configures a Logger
type Option func(*Logger)

// WithQuiet hides per-file lines. Sections, warnings and errors still print.
func WithQuiet(quiet bool) Option {
	return func(l *Logger) { l.quiet = quiet }
}

// WithRoot prints paths relative to root
func WithRoot(root string) Option {
	return func(l *Logger) { l.root = root }
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger, opts ...Option) *Logger {
	l := &Logger{
		zlog:    zlog,
		console: console,
		counts:  map[string]int{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// 🪵 NewZerolog creates the structured logger used on the context: a console
// writer at level
func NewZerolog(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger().Level(level)
}

// Discard is a logger that prints nothing
func Discard() *Logger {
	return New(io.Discard, zerolog.Nop())
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, or a discarding logger
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return Discard()
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

func (l *Logger) display(path string) string {
	if l.root == "" {
		return path
	}
	if rel, err := filepath.Rel(l.root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch op.Action {
	case "deleted", "collision":
		symbol = '✗'
		symbolColor = color.FgRed
	case "copied", "written":
		symbol = '✓'
		symbolColor = color.FgGreen
	case "normalized", "formatted", "substituted":
		symbol = '⟳'
		symbolColor = color.FgBlue
	case "archived":
		symbol = '•'
		symbolColor = color.FgCyan
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	line := fmt.Sprintf("%s%s %s %s",
		strings.Repeat(" ", fileIndent),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, l.display(op.Path)),
		color.New(color.Faint).Sprint(fmt.Sprintf("%-*s", actionWidth, op.Action)))
	if op.Detail != "" {
		line += " " + op.Detail
	}
	return line
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.counts[op.Action]++

	if !l.quiet {
		fmt.Fprintln(l.console, l.formatFileOperation(op))
	}

	l.zlog.Debug().
		Str("file", op.Path).
		Str("action", op.Action).
		Str("detail", op.Detail).
		Msg("file operation")
}

// OnTransfer prints the file operations of a transfer engine
func (l *Logger) OnTransfer(ctx context.Context, action transfer.Action, path string) {
	l.LogFileOperation(ctx, FileOperation{Path: path, Action: string(action)})
}

var _ transfer.Listener = (*Logger)(nil)

// 📝 StartSection prints a step header
func (l *Logger) StartSection(ctx context.Context, s Section) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.section = &s

	if s.Destination != "" {
		fmt.Fprintf(l.console, "[%s]\n", color.New(color.FgCyan).Sprint(l.display(s.Destination)))
	}
	fmt.Fprintf(l.console, "%s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(s.Name))

	l.zlog.Info().
		Str("step", s.Name).
		Str("destination", s.Destination).
		Msg("starting step")
}

// 📝 EndSection ends the current step
func (l *Logger) EndSection(ctx context.Context, took time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.section == nil {
		return
	}

	l.zlog.Info().
		Str("step", l.section.Name).
		Dur("took", took).
		Msg("step complete")

	l.section = nil
}

// Count returns how many file operations with action were logged
func (l *Logger) Count(action string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[action]
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("makedistrib")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.quiet {
		fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	}
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
