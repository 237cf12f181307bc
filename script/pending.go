// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

// Package script hosts the embedded github.com/dop251/goja runtime and the
// facades script code calls into (§4.1, §4.6). Everything here runs on the
// worker thread except the narrow, explicitly-marked cross-thread entry
// points the render thread calls during command dispatch.
package script

import (
	"sync"

	"github.com/dop251/goja"

	"github.com/gazed/scriptbridge/command"
	"github.com/gazed/scriptbridge/eid"
	"github.com/gazed/scriptbridge/queue"
)

// PendingCallback is the worker-side record a create-style submission
// leaves behind while it waits for the render thread to commit the
// operation (§3, §4.6). The function handle is a plain goja.Callable: goja
// is pure Go, so the handle needs no manual root/unroot the way a V8
// persistent handle would, but it must still be cleared before runtime
// teardown (§5), which discardAll does at shutdown.
type PendingCallback struct {
	Fn       goja.Callable
	ResultID eid.ID
	Ready    bool

	// published guards against executePendingCallbacks queuing the same
	// entry twice; the entry itself is only erased once the worker's own
	// frame actually drains and invokes it (see drain).
	published bool
}

// pendingTable is the CallbackId → PendingCallback map of §4.6. One mutex
// protects it: register and drain run on the worker thread, notifyReady and
// executePendingCallbacks run on the render thread, and all four go through
// this lock rather than splitting worker-exclusive and cross-thread paths,
// matching §5's "any native-thread notification writes go through a
// thread-safe entry point on the facade that acquires the facade's
// internal mutex" applied uniformly.
type pendingTable struct {
	mu      sync.Mutex
	entries map[eid.ID]*PendingCallback
}

func newPendingTable() *pendingTable {
	return &pendingTable{entries: map[eid.ID]*PendingCallback{}}
}

// register stores fn against id with ready=false. Called while a facade
// submission is in flight, before the command is pushed onto the queue.
func (t *pendingTable) register(id eid.ID, fn goja.Callable) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[id] = &PendingCallback{Fn: fn}
}

// fail marks id ready with a zero resultId immediately: the "queue full at
// submit" edge case (§7's Render-queue overflow row) never reaches the
// dispatcher at all, so nothing else will ever call notifyReady for it.
func (t *pendingTable) fail(id eid.ID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[id]; ok {
		e.Ready = true
		e.ResultID = eid.Invalid
	}
}

// notifyReady flips id's entry ready and stores resultId. Called from the
// render thread by the command dispatcher once a create command's target
// is committed (§4.6).
func (t *pendingTable) notifyReady(id, resultID eid.ID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[id]; ok {
		e.Ready = true
		e.ResultID = resultID
	}
}

// executePendingCallbacks walks the table once per render frame (§4.2 step
// 3) and publishes a completion token for every ready, unpublished entry.
// Publication does not erase the entry: the function handle has to survive
// until the worker's own frame invokes it. Overflow is reported through
// overflow, which may be nil.
func (t *pendingTable) executePendingCallbacks(cq *queue.Ring[command.CompletionToken], overflow func(eid.ID)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, e := range t.entries {
		if !e.Ready || e.published {
			continue
		}
		if cq.TryPush(command.CompletionToken{CallbackID: id, ResultID: e.ResultID}) {
			e.published = true
		} else if overflow != nil {
			overflow(id)
		}
	}
}

// drain pops every completion token queued so far, invokes its stored
// function handle through invoke, and only then erases the table entry.
// Called from the worker's own script frame, under the runtime's isolation
// token (§4.6 (ii)-(iii)).
func (t *pendingTable) drain(cq *queue.Ring[command.CompletionToken], invoke func(fn goja.Callable, resultID eid.ID)) {
	for {
		tok, ok := cq.Pop()
		if !ok {
			return
		}
		t.mu.Lock()
		e, exists := t.entries[tok.CallbackID]
		delete(t.entries, tok.CallbackID)
		t.mu.Unlock()
		if exists && e.Fn != nil {
			invoke(e.Fn, tok.ResultID)
		}
	}
}

// discardAll clears every pending entry without invoking anything. Called
// at shutdown (§5: "Pending callbacks at shutdown are discarded"), before
// the runtime is torn down.
func (t *pendingTable) discardAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = map[eid.ID]*PendingCallback{}
}

// len reports the number of outstanding entries, for tests and diagnostics.
func (t *pendingTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
