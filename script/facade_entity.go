// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

package script

import (
	"github.com/dop251/goja"

	"github.com/gazed/scriptbridge/camera"
	"github.com/gazed/scriptbridge/command"
	"github.com/gazed/scriptbridge/eid"
	"github.com/gazed/scriptbridge/logx"
	"github.com/gazed/scriptbridge/queue"
	"github.com/gazed/scriptbridge/resource"
	"github.com/gazed/scriptbridge/snapshot"
)

// EntityFacade is the only surface script entity calls reach (§4.6). It
// owns the entity id generator and the CallbackId → PendingCallback table;
// it holds a read-only reference to the entity snapshot store to resolve
// "relative" operations (§9, option (a)) and a write-only reference to the
// RenderCommandQueue it submits into.
type EntityFacade struct {
	ids       *eid.Generator
	callbacks *CallbackBroker
	queue     *queue.Ring[command.RenderCommand]
	snapshot  *snapshot.EntitySnapshotStore
	log       *logx.Logger
}

// NewEntityFacade builds a facade submitting into q and reading current
// entity positions from front. callbacks holds this facade's pending
// callbacks (§4.6); bridge.Construct gives each facade its own broker.
func NewEntityFacade(q *queue.Ring[command.RenderCommand], front *snapshot.EntitySnapshotStore, callbacks *CallbackBroker, log *logx.Logger) *EntityFacade {
	return &EntityFacade{
		ids:       eid.NewGenerator(eid.EntityDomain),
		callbacks: callbacks,
		queue:     q,
		snapshot:  front,
		log:       log,
	}
}

// CreateMesh allocates an EntityId and a CallbackId, registers the pending
// callback, and submits a CreateMesh command. Returns the CallbackId the
// script should hold onto; the callback fires once the render thread has
// committed the entity (§4.6's submission contract).
func (f *EntityFacade) CreateMesh(archetype string, pos command.Position, radius float64, color resource.RGBA8, callback goja.Callable) eid.ID {
	id := f.ids.Next()
	cb := f.callbacks.register(callback)

	cmd := command.RenderCommand{
		Kind:       command.CreateMesh,
		EntityID:   id,
		CallbackID: cb,
		Archetype:  archetype,
		Position:   pos,
		Radius:     radius,
		Color:      color,
	}
	if !f.queue.TryPush(cmd) {
		f.log.QueueOverflow("render", "CreateMesh", uint64(id))
		f.callbacks.fail(cb)
	}
	return cb
}

// UpdatePosition submits a fire-and-forget absolute position update.
func (f *EntityFacade) UpdatePosition(id eid.ID, pos command.Position) {
	f.submitUpdate(id, command.RenderCommand{
		Kind:        command.UpdateEntity,
		EntityID:    id,
		NewPosition: &pos,
	})
}

// MoveBy resolves the relative move by reading the entity's current front-
// buffer position and submitting an absolute UpdatePosition (§9, option
// (a)): this introduces a one-frame read lag, which the spec accepts.
func (f *EntityFacade) MoveBy(id eid.ID, delta command.Position) {
	st, ok := f.snapshot.Get(id)
	if !ok {
		f.log.UnknownID("moveBy", uint64(id))
		return
	}
	pos := command.Position{X: st.Position.X + delta.X, Y: st.Position.Y + delta.Y, Z: st.Position.Z + delta.Z}
	f.UpdatePosition(id, pos)
}

// UpdateOrientation submits a fire-and-forget orientation update.
func (f *EntityFacade) UpdateOrientation(id eid.ID, o camera.Orientation) {
	f.submitUpdate(id, command.RenderCommand{
		Kind:           command.UpdateEntity,
		EntityID:       id,
		NewOrientation: &o,
	})
}

// UpdateColor submits a fire-and-forget color update.
func (f *EntityFacade) UpdateColor(id eid.ID, c resource.RGBA8) {
	f.submitUpdate(id, command.RenderCommand{
		Kind:     command.UpdateEntity,
		EntityID: id,
		NewColor: &c,
	})
}

// Destroy submits a fire-and-forget soft delete.
func (f *EntityFacade) Destroy(id eid.ID) {
	f.submitUpdate(id, command.RenderCommand{Kind: command.DestroyEntity, EntityID: id})
}

func (f *EntityFacade) submitUpdate(id eid.ID, cmd command.RenderCommand) {
	if !f.queue.TryPush(cmd) {
		f.log.QueueOverflow("render", "UpdateEntity", uint64(id))
	}
}
