// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

package bridge

import (
	"github.com/gazed/scriptbridge/camera"
	"github.com/gazed/scriptbridge/command"
	"github.com/gazed/scriptbridge/eid"
	"github.com/gazed/scriptbridge/logx"
	"github.com/gazed/scriptbridge/math/lin"
	"github.com/gazed/scriptbridge/queue"
	"github.com/gazed/scriptbridge/resource"
	"github.com/gazed/scriptbridge/script"
	"github.com/gazed/scriptbridge/snapshot"
)

// ViewportProvider answers the host window's current viewport in pixels.
// The dispatcher queries it only at CreateCamera dispatch time for
// "screen" cameras (§4.5): script never sees window pixel dimensions.
type ViewportProvider interface {
	Viewport() (width, height float64)
}

// CommandDispatcher consumes the RenderCommandQueue on the render thread,
// mutating the snapshot stores' back buffers and the resource manager, and
// notifying the owning CallbackBroker once a create/SetActiveCamera/
// DestroyCamera command has taken effect (§4.5). It owns three maps that
// are render-thread exclusive; nothing here takes a lock.
type CommandDispatcher struct {
	entities  *snapshot.EntitySnapshotStore
	cameras   *snapshot.CameraSnapshotStore
	resources *resource.Manager
	viewport  ViewportProvider
	entityCB  *script.CallbackBroker
	cameraCB  *script.CallbackBroker
	log       *logx.Logger
}

// NewCommandDispatcher wires a dispatcher over the given stores, resource
// manager, and callback brokers. viewport is consulted only for "screen"
// CreateCamera commands.
func NewCommandDispatcher(
	entities *snapshot.EntitySnapshotStore,
	cameras *snapshot.CameraSnapshotStore,
	resources *resource.Manager,
	viewport ViewportProvider,
	entityCB, cameraCB *script.CallbackBroker,
	log *logx.Logger,
) *CommandDispatcher {
	return &CommandDispatcher{
		entities:  entities,
		cameras:   cameras,
		resources: resources,
		viewport:  viewport,
		entityCB:  entityCB,
		cameraCB:  cameraCB,
		log:       log,
	}
}

// Drain pops and dispatches every queued command in submission order
// (§4.5: "commands are not reordered"), until the queue is empty.
func (d *CommandDispatcher) Drain(q *queue.Ring[command.RenderCommand]) {
	for {
		cmd, ok := q.Pop()
		if !ok {
			return
		}
		d.dispatch(cmd)
	}
}

func (d *CommandDispatcher) dispatch(cmd command.RenderCommand) {
	switch cmd.Kind {
	case command.CreateMesh:
		d.createMesh(cmd)
	case command.UpdateEntity:
		d.updateEntity(cmd)
	case command.DestroyEntity:
		d.destroyEntity(cmd)
	case command.CreateCamera:
		d.createCamera(cmd)
	case command.UpdateCamera:
		d.updateCamera(cmd)
	case command.UpdateCameraKind:
		d.updateCameraKind(cmd)
	case command.SetActiveCamera:
		d.setActiveCamera(cmd)
	case command.DestroyCamera:
		d.destroyCamera(cmd)
	}
}

// createMesh requests a vertex handle from the resource manager; a zero
// handle means an unrecognized archetype (§7's "Unknown archetype" row),
// which fails the callback with resultId 0 rather than committing an
// entity with nothing to draw.
func (d *CommandDispatcher) createMesh(cmd command.RenderCommand) {
	handle := d.resources.RegisterEntity(cmd.EntityID, cmd.Archetype, cmd.Radius, cmd.Color)
	if handle == 0 {
		d.log.UnknownArchetype(cmd.Archetype)
		d.notifyEntity(cmd.CallbackID, eid.Invalid)
		return
	}
	d.entities.Put(cmd.EntityID, snapshot.EntityState{
		Position:      snapshot.Vec3(cmd.Position),
		Color:         snapshot.RGBA8(cmd.Color),
		Radius:        cmd.Radius,
		MeshArchetype: cmd.Archetype,
		WorldCamera:   true,
		Active:        true,
	})
	d.notifyEntity(cmd.CallbackID, cmd.EntityID)
}

// updateEntity applies only the subset of fields the caller actually set,
// leaving the rest of the stored state untouched. An unknown id is a
// silent drop with a warning (§4.5's tie-break: script may have already
// issued DestroyEntity).
func (d *CommandDispatcher) updateEntity(cmd command.RenderCommand) {
	st, ok := d.entities.BackBuffer(cmd.EntityID)
	if !ok {
		d.log.UnknownID("updateEntity", uint64(cmd.EntityID))
		return
	}
	if cmd.NewPosition != nil {
		st.Position = snapshot.Vec3(*cmd.NewPosition)
	}
	if cmd.NewOrientation != nil {
		st.Orientation = snapshot.Orientation(*cmd.NewOrientation)
	}
	if cmd.NewColor != nil {
		st.Color = snapshot.RGBA8(*cmd.NewColor)
	}
	d.entities.Put(cmd.EntityID, st)
}

// destroyEntity is a soft delete: storage persists so the renderer can
// observe the transition one more frame (§3's Lifecycles paragraph).
func (d *CommandDispatcher) destroyEntity(cmd command.RenderCommand) {
	st, ok := d.entities.BackBuffer(cmd.EntityID)
	if !ok {
		d.log.UnknownID("destroyEntity", uint64(cmd.EntityID))
		return
	}
	st.Active = false
	d.entities.Put(cmd.EntityID, st)
	d.resources.UnregisterEntity(cmd.EntityID)
}

// createCamera fills perspective defaults for "world" cameras, or reads
// the host window's current viewport for "screen" cameras so UI
// coordinates match the framebuffer 1:1 (§4.5, scenario 2 of §8).
func (d *CommandDispatcher) createCamera(cmd command.RenderCommand) {
	position := lin.V3(cmd.Position)
	var state camera.State
	switch cmd.CameraKind {
	case camera.Orthographic:
		width, height := d.viewport.Viewport()
		state = camera.NewScreenState(position, cmd.Orientation, width, height)
	default:
		state = camera.NewWorldState(position, cmd.Orientation)
	}
	d.cameras.Put(cmd.EntityID, state)
	d.notifyCamera(cmd.CallbackID, cmd.EntityID)
}

// updateCamera applies a full pose atomically: position and orientation
// together, never a delta, so no read-modify-write is needed (§4.5).
func (d *CommandDispatcher) updateCamera(cmd command.RenderCommand) {
	st, ok := d.cameras.BackBuffer(cmd.EntityID)
	if !ok {
		d.log.UnknownID("updateCamera", uint64(cmd.EntityID))
		return
	}
	st.Position = lin.V3(cmd.Position)
	st.Orientation = cmd.Orientation
	d.cameras.Put(cmd.EntityID, st)
}

// updateCameraKind changes kind and re-derives projection parameters
// exactly as at creation (§4.5).
func (d *CommandDispatcher) updateCameraKind(cmd command.RenderCommand) {
	st, ok := d.cameras.BackBuffer(cmd.EntityID)
	if !ok {
		d.log.UnknownID("updateCameraKind", uint64(cmd.EntityID))
		return
	}
	st.Kind = cmd.CameraKind
	switch cmd.CameraKind {
	case camera.Orthographic:
		width, height := d.viewport.Viewport()
		st.Ortho = camera.OrthoBounds{Left: 0, Bottom: 0, Right: width, Top: height, Near: 0, Far: 1}
	default:
		st.Perspective = camera.DefaultPerspectiveParams
	}
	d.cameras.Put(cmd.EntityID, st)
}

// setActiveCamera is permitted against an unknown id (§4.5): the render
// loop then simply finds no camera to render with, which is also the
// defined startup behaviour before the first camera commit.
func (d *CommandDispatcher) setActiveCamera(cmd command.RenderCommand) {
	d.cameras.SetActive(cmd.EntityID)
	d.notifyCamera(cmd.CallbackID, cmd.EntityID)
}

func (d *CommandDispatcher) destroyCamera(cmd command.RenderCommand) {
	st, ok := d.cameras.BackBuffer(cmd.EntityID)
	if !ok {
		d.log.UnknownID("destroyCamera", uint64(cmd.EntityID))
		d.notifyCamera(cmd.CallbackID, eid.Invalid)
		return
	}
	st.Active = false
	d.cameras.Put(cmd.EntityID, st)
	d.notifyCamera(cmd.CallbackID, cmd.EntityID)
}

func (d *CommandDispatcher) notifyEntity(callbackID, resultID eid.ID) {
	if callbackID != eid.Invalid {
		d.entityCB.NotifyReady(callbackID, resultID)
	}
}

func (d *CommandDispatcher) notifyCamera(callbackID, resultID eid.ID) {
	if callbackID != eid.Invalid {
		d.cameraCB.NotifyReady(callbackID, resultID)
	}
}
