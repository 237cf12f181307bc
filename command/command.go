// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

// Package command defines the tagged-union records that cross the
// RenderCommandQueue from script to native (§3, §9 "dynamic dispatch over
// command variants: implement with a tagged union / sum type, not
// inheritance"). CommandDispatcher switches over Kind; it never type-asserts
// against a family of concrete command types.
package command

import (
	"github.com/gazed/scriptbridge/camera"
	"github.com/gazed/scriptbridge/eid"
	"github.com/gazed/scriptbridge/resource"
)

// Kind tags which fields of a RenderCommand are meaningful.
type Kind int

const (
	CreateMesh Kind = iota
	UpdateEntity
	DestroyEntity
	CreateCamera
	UpdateCamera
	UpdateCameraKind
	SetActiveCamera
	DestroyCamera
)

// RenderCommand is the single wire type the SPSC queue carries. Every
// command names its target with EntityID (entities) or EntityID reused as
// the camera id (cameras share the eid.ID space, distinguished by domain).
// Optional UpdateEntity fields are nil pointers when absent, so the
// dispatcher applies only the subset the caller actually set (§4.5).
type RenderCommand struct {
	Kind     Kind
	EntityID eid.ID

	// CallbackID is eid.Invalid for fire-and-forget commands.
	CallbackID eid.ID

	// CreateMesh / shared create fields.
	Archetype string
	Position  Position
	Radius    float64
	Color     resource.RGBA8

	// UpdateEntity: present-field pointers, nil when that field was not
	// part of the call.
	NewPosition    *Position
	NewOrientation *camera.Orientation
	NewColor       *resource.RGBA8

	// CreateCamera / UpdateCamera / UpdateCameraKind.
	Orientation camera.Orientation
	CameraKind  camera.Kind
}

// Position mirrors lin.V3's shape without importing math/lin here, keeping
// command a leaf dependency the way snapshot is.
type Position struct{ X, Y, Z float64 }

// CompletionToken is the value the CallbackQueue carries from native back to
// script: {CallbackId, resultId}, with eid.Invalid meaning failure (§3).
type CompletionToken struct {
	CallbackID eid.ID
	ResultID   eid.ID
}
