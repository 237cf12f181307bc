// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

package script

import (
	"math"

	"github.com/dop251/goja"

	"github.com/gazed/scriptbridge/camera"
	"github.com/gazed/scriptbridge/command"
	"github.com/gazed/scriptbridge/eid"
	"github.com/gazed/scriptbridge/math/lin"
	"github.com/gazed/scriptbridge/resource"
)

// Register installs the script → native API (§6) as global functions on
// vm. All ids cross the boundary as float64 (goja's native JS number
// representation); mustID rejects anything outside [0, MaxSafeInteger]
// with a TypeError rather than silently truncating (§7's "Marshalling type
// mismatch" row).
func Register(vm *goja.Runtime, entities *EntityFacade, cameras *CameraFacade) error {
	set := func(name string, fn func(goja.FunctionCall) goja.Value) error {
		return vm.Set(name, fn)
	}

	if err := set("createMesh", func(call goja.FunctionCall) goja.Value {
		archetype := call.Argument(0).String()
		pos := command.Position{X: mustFloat(vm, call, 1), Y: mustFloat(vm, call, 2), Z: mustFloat(vm, call, 3)}
		radius := mustFloat(vm, call, 4)
		color := mustColor(vm, call, 5)
		cb := mustCallable(vm, call, 9)
		id := entities.CreateMesh(archetype, pos, radius, color, cb)
		return vm.ToValue(float64(id))
	}); err != nil {
		return err
	}

	if err := set("updatePosition", func(call goja.FunctionCall) goja.Value {
		id := mustID(vm, call, 0)
		pos := command.Position{X: mustFloat(vm, call, 1), Y: mustFloat(vm, call, 2), Z: mustFloat(vm, call, 3)}
		entities.UpdatePosition(id, pos)
		return goja.Undefined()
	}); err != nil {
		return err
	}

	if err := set("moveBy", func(call goja.FunctionCall) goja.Value {
		id := mustID(vm, call, 0)
		delta := command.Position{X: mustFloat(vm, call, 1), Y: mustFloat(vm, call, 2), Z: mustFloat(vm, call, 3)}
		entities.MoveBy(id, delta)
		return goja.Undefined()
	}); err != nil {
		return err
	}

	if err := set("updateOrientation", func(call goja.FunctionCall) goja.Value {
		id := mustID(vm, call, 0)
		o := camera.Orientation{Yaw: mustFloat(vm, call, 1), Pitch: mustFloat(vm, call, 2), Roll: mustFloat(vm, call, 3)}
		entities.UpdateOrientation(id, o)
		return goja.Undefined()
	}); err != nil {
		return err
	}

	if err := set("updateColor", func(call goja.FunctionCall) goja.Value {
		id := mustID(vm, call, 0)
		entities.UpdateColor(id, mustColor(vm, call, 1))
		return goja.Undefined()
	}); err != nil {
		return err
	}

	if err := set("destroy", func(call goja.FunctionCall) goja.Value {
		entities.Destroy(mustID(vm, call, 0))
		return goja.Undefined()
	}); err != nil {
		return err
	}

	if err := set("createCamera", func(call goja.FunctionCall) goja.Value {
		pos := command.Position{X: mustFloat(vm, call, 0), Y: mustFloat(vm, call, 1), Z: mustFloat(vm, call, 2)}
		lookAt := command.Position{X: mustFloat(vm, call, 3), Y: mustFloat(vm, call, 4), Z: mustFloat(vm, call, 5)}
		kind := mustCameraKind(vm, call, 6)
		cb := mustCallable(vm, call, 7)
		id := cameras.CreateCamera(pos, orientationTowards(pos, lookAt), kind, cb)
		return vm.ToValue(float64(id))
	}); err != nil {
		return err
	}

	if err := set("moveCamera", func(call goja.FunctionCall) goja.Value {
		id := mustID(vm, call, 0)
		pos := command.Position{X: mustFloat(vm, call, 1), Y: mustFloat(vm, call, 2), Z: mustFloat(vm, call, 3)}
		o := camera.Orientation{Yaw: mustFloat(vm, call, 4), Pitch: mustFloat(vm, call, 5), Roll: mustFloat(vm, call, 6)}
		cameras.MoveCamera(id, pos, o)
		return goja.Undefined()
	}); err != nil {
		return err
	}

	if err := set("moveCameraBy", func(call goja.FunctionCall) goja.Value {
		id := mustID(vm, call, 0)
		delta := command.Position{X: mustFloat(vm, call, 1), Y: mustFloat(vm, call, 2), Z: mustFloat(vm, call, 3)}
		cameras.MoveCameraBy(id, delta)
		return goja.Undefined()
	}); err != nil {
		return err
	}

	if err := set("lookAtCamera", func(call goja.FunctionCall) goja.Value {
		id := mustID(vm, call, 0)
		target := command.Position{X: mustFloat(vm, call, 1), Y: mustFloat(vm, call, 2), Z: mustFloat(vm, call, 3)}
		cameras.LookAtCamera(id, target)
		return goja.Undefined()
	}); err != nil {
		return err
	}

	if err := set("setActiveCamera", func(call goja.FunctionCall) goja.Value {
		id := mustID(vm, call, 0)
		cb := mustCallable(vm, call, 1)
		return vm.ToValue(float64(cameras.SetActiveCamera(id, cb)))
	}); err != nil {
		return err
	}

	if err := set("destroyCamera", func(call goja.FunctionCall) goja.Value {
		id := mustID(vm, call, 0)
		cb := mustCallable(vm, call, 1)
		return vm.ToValue(float64(cameras.DestroyCamera(id, cb)))
	}); err != nil {
		return err
	}

	return nil
}

// orientationTowards derives a yaw/pitch-only Orientation pointing from
// from towards to, matching CameraFacade.LookAtCamera's convention.
func orientationTowards(from, to command.Position) camera.Orientation {
	dx, dy, dz := to.X-from.X, to.Y-from.Y, to.Z-from.Z
	horizontal := math.Sqrt(dx*dx + dy*dy)
	return camera.Orientation{
		Yaw:   lin.Deg(lin.Atan2F(dy, dx)),
		Pitch: lin.Deg(lin.Atan2F(-dz, horizontal)),
	}
}

// mustFloat extracts argument idx as a float64, or throws a TypeError.
func mustFloat(vm *goja.Runtime, call goja.FunctionCall, idx int) float64 {
	arg := call.Argument(idx)
	if goja.IsUndefined(arg) || goja.IsNull(arg) {
		panic(vm.NewTypeError("expecting a number argument at position %d", idx))
	}
	return arg.ToFloat()
}

// mustID extracts argument idx as an eid.ID, rejecting negative values and
// anything beyond MaxSafeInteger (§6, §7's marshalling row).
func mustID(vm *goja.Runtime, call goja.FunctionCall, idx int) eid.ID {
	v := mustFloat(vm, call, idx)
	if v < 0 || v > float64(eid.MaxSafeInteger) {
		panic(vm.NewTypeError("id argument at position %d out of range", idx))
	}
	return eid.ID(v)
}

// mustColor extracts four consecutive float arguments starting at idx as an
// RGBA8, clamping each channel into [0, 255].
func mustColor(vm *goja.Runtime, call goja.FunctionCall, idx int) resource.RGBA8 {
	channel := func(i int) uint8 {
		v := mustFloat(vm, call, i)
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}
	return resource.RGBA8{R: channel(idx), G: channel(idx + 1), B: channel(idx + 2), A: channel(idx + 3)}
}

// mustCallable extracts argument idx as a callable script function.
func mustCallable(vm *goja.Runtime, call goja.FunctionCall, idx int) goja.Callable {
	fn, ok := goja.AssertFunction(call.Argument(idx))
	if !ok {
		panic(vm.NewTypeError("expecting a callback function at position %d", idx))
	}
	return fn
}

// mustCameraKind maps the script-facing "world" | "screen" strings onto
// camera.Kind (§3: "kind ∈ {perspective, orthographic} (derived from
// \"world\" | \"screen\")").
func mustCameraKind(vm *goja.Runtime, call goja.FunctionCall, idx int) camera.Kind {
	switch call.Argument(idx).String() {
	case "world":
		return camera.Perspective
	case "screen":
		return camera.Orthographic
	default:
		panic(vm.NewTypeError("camera kind must be \"world\" or \"screen\""))
	}
}
