// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

// Package camera derives projection and view matrices from the CameraState
// values the snapshot store swaps into its front buffer. A Camera is pure
// derived data: nothing here is ever mutated in place from script. The
// CameraSnapshotStore rebuilds the whole cache from scratch after every
// swap (§4.4), so Derive is cheap to call repeatedly and never needs to
// reconcile with a prior Camera.
package camera

import (
	"github.com/gazed/scriptbridge/math/lin"
)

// Kind selects the projection a CameraState derives.
type Kind int

const (
	// Perspective is used by "world" cameras: 3D scene rendering.
	Perspective Kind = iota
	// Orthographic is used by "screen" cameras: UI rendered in pixel space.
	Orthographic
)

// Orientation stores a facing direction as Euler angles in degrees, matching
// the script-facing API (§6) rather than a raw quaternion. Yaw rotates
// about the world +Z (up) axis, pitch about the camera's left axis, roll
// about the camera's forward axis, applied in that order: roll, then
// pitch, then yaw.
type Orientation struct {
	Yaw, Pitch, Roll float64
}

// AABB2 is a normalized viewport rectangle, defaulting to the full
// framebuffer (0,0,1,1).
type AABB2 struct {
	MinX, MinY, MaxX, MaxY float64
}

// FullViewport is the default normalized viewport every camera starts with.
var FullViewport = AABB2{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}

// PerspectiveParams are the parameters of a perspective projection, with the
// defaults spec.md §3 calls for (60°, 16:9, 0.1, 100).
type PerspectiveParams struct {
	FOV, Aspect, Near, Far float64
}

// DefaultPerspectiveParams mirrors config.Config's default camera fields so
// a CameraState can be built without threading a config value through.
var DefaultPerspectiveParams = PerspectiveParams{FOV: 60, Aspect: 16.0 / 9.0, Near: 0.1, Far: 100}

// OrthoBounds are the parameters of an orthographic projection. For "screen"
// cameras these are filled from the host window's viewport at creation time
// (left=0, bottom=0, right=width, top=height, near=0, far=1).
type OrthoBounds struct {
	Left, Right, Bottom, Top, Near, Far float64
}

// State is the value stored in the CameraSnapshotStore's double buffer: the
// data the render thread swaps and the script thread never touches
// directly. It carries no pointers, so it is safe to copy by value between
// the two buffers during a swap.
type State struct {
	Position    lin.V3
	Orientation Orientation
	Kind        Kind
	Perspective PerspectiveParams
	Ortho       OrthoBounds
	Viewport    AABB2
	Active      bool
}

// NewWorldState builds the CameraState a CreateCamera command produces for
// kind "world": perspective projection with spec defaults.
func NewWorldState(position lin.V3, orientation Orientation) State {
	return State{
		Position:    position,
		Orientation: orientation,
		Kind:        Perspective,
		Perspective: DefaultPerspectiveParams,
		Viewport:    FullViewport,
		Active:      true,
	}
}

// NewScreenState builds the CameraState a CreateCamera command produces for
// kind "screen": orthographic projection initialized from the host window's
// current viewport, so UI coordinates match the framebuffer 1:1.
func NewScreenState(position lin.V3, orientation Orientation, windowWidth, windowHeight float64) State {
	return State{
		Position:    position,
		Orientation: orientation,
		Kind:        Orthographic,
		Ortho:       OrthoBounds{Left: 0, Bottom: 0, Right: windowWidth, Top: windowHeight, Near: 0, Far: 1},
		Viewport:    FullViewport,
		Active:      true,
	}
}

// Camera is the derived (projection, view) pair the CameraSnapshotStore
// rebuilds for every live entry after each swap. Code outside this package
// treats a *Camera as read-only: it is rebuilt wholesale, never patched.
type Camera struct {
	Proj     *lin.M4
	View     *lin.M4
	Viewport AABB2
}

// Derive rebuilds a Camera from a CameraState, the way CameraSnapshotStore
// does for every entry in the new front buffer after a swap (§4.4).
func Derive(s State) *Camera {
	c := &Camera{Proj: lin.NewM4(), View: lin.NewM4(), Viewport: s.Viewport}
	switch s.Kind {
	case Orthographic:
		c.Proj.Ortho(s.Ortho.Left, s.Ortho.Right, s.Ortho.Bottom, s.Ortho.Top, s.Ortho.Near, s.Ortho.Far)
	default:
		c.Proj.Persp(s.Perspective.FOV, s.Perspective.Aspect, s.Perspective.Near, s.Perspective.Far)
	}
	c.View = viewMatrix(s.Position, s.Orientation, c.View)
	return c
}

// viewMatrix builds the inverse of the camera's world transform: the
// rotation that aligns the world with the camera's facing direction,
// followed by the translation that brings the camera to the origin.
func viewMatrix(position lin.V3, o Orientation, vm *lin.M4) *lin.M4 {
	yaw := lin.NewQ().SetAa(0, 0, 1, lin.Rad(o.Yaw))
	pitch := lin.NewQ().SetAa(0, 1, 0, lin.Rad(o.Pitch))
	roll := lin.NewQ().SetAa(1, 0, 0, lin.Rad(o.Roll))

	facing := lin.NewQ().Mult(roll, pitch)
	facing.Mult(facing, yaw)

	view := lin.NewQ().Inv(facing)
	vm.SetQ(view)
	return vm.TranslateTM(-position.X, -position.Y, -position.Z)
}
