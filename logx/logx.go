// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

// Package logx wraps github.com/rs/zerolog behind the small interface the
// rest of the module depends on, the way the teacher engine wraps its audio
// and render subsystems behind their own narrow interfaces rather than
// spreading a concrete dependency across every package.
package logx

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the structured sink every component reports recoverable
// conditions through (§7's "liveness first" table): script exceptions,
// queue overflows, unknown ids, worker hangs, and unknown archetypes.
type Logger struct {
	zl zerolog.Logger

	// skipEvery rate-limits RenderSkip per spec.md §4.2 ("rate-limited to
	// every 60th occurrence").
	skipEvery uint64
	skipCount atomic.Uint64
}

// New creates a Logger writing to w at the given level. Pass os.Stderr and
// zerolog.InfoLevel for production use.
func New(w io.Writer, level zerolog.Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl, skipEvery: 60}
}

// Nop returns a Logger that discards everything, for tests that don't want
// to assert on log output.
func Nop() *Logger { return New(io.Discard, zerolog.Disabled) }

// ScriptException logs a script exception with full context and never
// returns an error: the worker frame completes even on failure (§4.1).
func (l *Logger) ScriptException(phase, message, file string, line, column int, sourceLine, stack string) {
	l.zl.Error().
		Str("phase", phase).
		Str("file", file).
		Int("line", line).
		Int("column", column).
		Str("source_line", sourceLine).
		Str("stack", stack).
		Msg(message)
}

// QueueOverflow logs a render-queue or callback-queue submission failure.
func (l *Logger) QueueOverflow(queue string, kind string, target uint64) {
	l.zl.Warn().Str("queue", queue).Str("command", kind).Uint64("target", target).Msg("queue full, dropping command")
}

// UnknownID logs a silent-drop condition: an update/destroy referencing an
// id the dispatcher doesn't recognize.
func (l *Logger) UnknownID(op string, target uint64) {
	l.zl.Warn().Str("op", op).Uint64("target", target).Msg("unknown id, dropping command")
}

// UnknownArchetype logs a CreateMesh naming an archetype the resource
// manager has no generator for.
func (l *Logger) UnknownArchetype(archetype string) {
	l.zl.Warn().Str("archetype", archetype).Msg("unknown mesh archetype")
}

// WorkerHangTimeout logs the 5s shutdown poll giving up on a hung worker.
func (l *Logger) WorkerHangTimeout(waited time.Duration) {
	l.zl.Warn().Dur("waited", waited).Msg("worker shutdown timed out, proceeding with teardown")
}

// RenderSkip logs a frame-skip decision (§4.2), rate-limited to every Nth
// occurrence so a persistently slow worker doesn't flood the log.
func (l *Logger) RenderSkip(totalSkips uint64) {
	n := l.skipCount.Add(1)
	if l.skipEvery == 0 || n%l.skipEvery == 1 {
		l.zl.Info().Uint64("total_skips", totalSkips).Msg("worker frame not complete, reusing front buffer")
	}
}

// Info logs a routine lifecycle event (startup, shutdown, swap milestones).
func (l *Logger) Info(msg string) { l.zl.Info().Msg(msg) }
