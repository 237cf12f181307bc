// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

package logx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestScriptExceptionWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, zerolog.InfoLevel)

	l.ScriptException("update", "boom", "script.js", 3, 7, "throw new Error('boom')", "Error: boom\n  at <anonymous>")

	out := buf.String()
	for _, want := range []string{`"phase":"update"`, `"file":"script.js"`, `"line":3`, "boom"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expecting log line to contain %q, got %q", want, out)
		}
	}
}

func TestRenderSkipIsRateLimited(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, zerolog.InfoLevel)
	l.skipEvery = 3

	for i := uint64(1); i <= 7; i++ {
		l.RenderSkip(i)
	}

	lines := strings.Count(buf.String(), "\n")
	if lines != 3 {
		t.Fatalf("expecting exactly 3 log lines for 7 skips rate-limited every 3rd, got %d:\n%s", lines, buf.String())
	}
}

func TestNopDiscardsEverything(t *testing.T) {
	l := Nop()
	l.ScriptException("update", "boom", "", 0, 0, "", "")
	l.QueueOverflow("render", "CreateMesh", 1)
	l.UnknownID("updateEntity", 42)
	l.UnknownArchetype("not-a-shape")
	l.Info("started")
	// No assertion beyond "does not panic": Nop's writer is io.Discard.
}
