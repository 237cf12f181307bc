// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

package script

import (
	"github.com/dop251/goja"

	"github.com/gazed/scriptbridge/command"
	"github.com/gazed/scriptbridge/eid"
	"github.com/gazed/scriptbridge/queue"
)

// CallbackBroker bundles a CallbackId allocator, a PendingCallback table,
// and a CallbackQueue (§4.6). bridge.Construct gives EntityFacade and
// CameraFacade one broker each, and the dispatcher notifies the broker that
// matches the command's kind. Every broker allocates from
// eid.CallbackDomain, so a CallbackId is unique only within its own broker;
// routing stays unambiguous because each broker drains only its own queue.
type CallbackBroker struct {
	ids   *eid.Generator
	table *pendingTable
	queue *queue.Ring[command.CompletionToken]
}

// NewCallbackBroker builds a broker with a CallbackQueue of the given
// capacity.
func NewCallbackBroker(capacity int) *CallbackBroker {
	return &CallbackBroker{
		ids:   eid.NewGenerator(eid.CallbackDomain),
		table: newPendingTable(),
		queue: queue.NewRing[command.CompletionToken](capacity),
	}
}

// register allocates a CallbackId, stores fn against it with ready=false,
// and returns the id for the caller to submit alongside its command.
func (b *CallbackBroker) register(fn goja.Callable) eid.ID {
	id := b.ids.Next()
	b.table.register(id, fn)
	return id
}

// fail marks id ready with a zero resultId, for submissions that never
// reached the queue (§7's Render-queue overflow row).
func (b *CallbackBroker) fail(id eid.ID) { b.table.fail(id) }

// NotifyReady flips id's entry ready, called from the render thread by the
// command dispatcher once a create/SetActiveCamera/DestroyCamera command
// has been applied to the snapshot back buffer.
func (b *CallbackBroker) NotifyReady(id, resultID eid.ID) { b.table.notifyReady(id, resultID) }

// ExecutePendingCallbacks publishes completion tokens for every ready,
// unpublished entry (§4.2 step 3). Called once per render frame, from the
// render thread.
func (b *CallbackBroker) ExecutePendingCallbacks(overflow func(eid.ID)) {
	b.table.executePendingCallbacks(b.queue, overflow)
}

// drain pops every queued completion token and invokes its stored function
// handle through invoke. Called from the worker's own script frame.
func (b *CallbackBroker) drain(invoke func(fn goja.Callable, resultID eid.ID)) {
	b.table.drain(b.queue, invoke)
}

// discardAll clears every pending entry at shutdown, before the runtime is
// torn down (§5).
func (b *CallbackBroker) discardAll() { b.table.discardAll() }

// Pending reports the number of outstanding entries, for diagnostics.
func (b *CallbackBroker) Pending() int { return b.table.len() }
