// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

package lin

// V3 is a plain 3D point or direction. It is the shape snapshot.Vec3 and
// command.Position mirror so entity/camera positions convert between
// packages with a direct struct conversion rather than a copy function.
type V3 struct {
	X, Y, Z float64
}

// V4 is a homogeneous point (W:1) or direction (W:0), used only to carry a
// row vector through a MultvM multiplication against an M4.
type V4 struct {
	X, Y, Z, W float64
}

// NewV4 returns the zero vector.
func NewV4() *V4 { return &V4{} }

// SetS sets v's components directly. The updated v is returned.
func (v *V4) SetS(x, y, z, w float64) *V4 {
	v.X, v.Y, v.Z, v.W = x, y, z, w
	return v
}

// MultvM sets v to the product of row vector rv and matrix m, v' = rv * m.
// v may alias rv. The updated v is returned.
func (v *V4) MultvM(rv *V4, m *M4) *V4 {
	x := rv.X*m.Xx + rv.Y*m.Yx + rv.Z*m.Zx + rv.W*m.Wx
	y := rv.X*m.Xy + rv.Y*m.Yy + rv.Z*m.Zy + rv.W*m.Wy
	z := rv.X*m.Xz + rv.Y*m.Yz + rv.Z*m.Zz + rv.W*m.Wz
	w := rv.X*m.Xw + rv.Y*m.Yw + rv.Z*m.Zw + rv.W*m.Ww
	v.X, v.Y, v.Z, v.W = x, y, z, w
	return v
}
