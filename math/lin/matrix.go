// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

package lin

import "math"

// M4 is a 4x4 matrix with individually addressable, row-major elements:
//
//	[ Xx Xy Xz Xw ]  X-axis
//	[ Yx Yy Yz Yw ]  Y-axis
//	[ Zx Zy Zz Zw ]  Z-axis
//	[ Wx Wy Wz Ww ]  translation, Ww == 1
//
// A row vector times m, v*m, applies m's transform to v.
type M4 struct {
	Xx, Xy, Xz, Xw float64
	Yx, Yy, Yz, Yw float64
	Zx, Zy, Zz, Zw float64
	Wx, Wy, Wz, Ww float64
}

// NewM4 returns the zero matrix; callers fill it via SetQ/Ortho/Persp.
func NewM4() *M4 { return &M4{} }

// SetQ sets m to the rotation matrix equivalent to unit quaternion q,
// leaving the translation row at (0, 0, 0, 1). The updated m is returned.
func (m *M4) SetQ(q *Q) *M4 {
	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z
	m.Xx, m.Xy, m.Xz, m.Xw = 1-2*(yy+zz), 2*(xy+wz), 2*(xz-wy), 0
	m.Yx, m.Yy, m.Yz, m.Yw = 2*(xy-wz), 1-2*(xx+zz), 2*(yz+wx), 0
	m.Zx, m.Zy, m.Zz, m.Zw = 2*(xz+wy), 2*(yz-wx), 1-2*(xx+yy), 0
	m.Wx, m.Wy, m.Wz, m.Ww = 0, 0, 0, 1
	return m
}

// TranslateTM updates m's translation row to fold in a translation by
// (x, y, z) applied before m, i.e. m' = T(x,y,z) * m. The updated m is
// returned; used by camera.viewMatrix to move the camera's position to
// the origin after the rotation has been set.
func (m *M4) TranslateTM(x, y, z float64) *M4 {
	m.Wx = x*m.Xx + y*m.Yx + z*m.Zx + m.Wx
	m.Wy = x*m.Xy + y*m.Yy + z*m.Zy + m.Wy
	m.Wz = x*m.Xz + y*m.Yz + z*m.Zz + m.Wz
	m.Ww = x*m.Xw + y*m.Yw + z*m.Zw + m.Ww
	return m
}

// Ortho sets m to an orthographic projection over the given box, mapping
// it onto the [-1, 1] clip cube. The updated m is returned.
func (m *M4) Ortho(left, right, bottom, top, near, far float64) *M4 {
	m.Xx, m.Xy, m.Xz, m.Xw = 2/(right-left), 0, 0, 0
	m.Yx, m.Yy, m.Yz, m.Yw = 0, 2/(top-bottom), 0, 0
	m.Zx, m.Zy, m.Zz, m.Zw = 0, 0, -2/(far-near), 0
	m.Wx = -(right + left) / (right - left)
	m.Wy = -(top + bottom) / (top - bottom)
	m.Wz = -(far + near) / (far - near)
	m.Ww = 1
	return m
}

// Persp sets m to a perspective projection: fov is the vertical field of
// view in degrees, aspect is width/height, near and far are the positive
// depth clipping planes. The updated m is returned.
func (m *M4) Persp(fov, aspect, near, far float64) *M4 {
	f := 1 / math.Tan(Rad(fov)*0.5)
	m.Xx, m.Yx, m.Zx, m.Wx = f/aspect, 0, 0, 0
	m.Xy, m.Yy, m.Zy, m.Wy = 0, f, 0, 0
	m.Xz, m.Yz = 0, 0
	m.Zz = (far + near) / (near - far)
	m.Wz = 2 * far * near / (near - far)
	m.Xw, m.Yw, m.Zw, m.Ww = 0, 0, -1, 0
	return m
}
