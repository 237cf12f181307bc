// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

package lin

import "math"

// Q is a unit quaternion used to compose the yaw/pitch/roll rotation of a
// camera.Orientation before it is baked into a view matrix.
type Q struct {
	X, Y, Z, W float64
}

// NewQ returns the zero quaternion; callers set it via SetAa before use.
func NewQ() *Q { return &Q{} }

// SetAa sets q to the rotation of angle radians about axis (ax, ay, az).
// A zero-length axis yields the identity rotation. The updated q is
// returned.
func (q *Q) SetAa(ax, ay, az, angle float64) *Q {
	lenSqr := ax*ax + ay*ay + az*az
	if lenSqr == 0 {
		q.X, q.Y, q.Z, q.W = 0, 0, 0, 1
		return q
	}
	s := math.Sin(angle*0.5) / math.Sqrt(lenSqr)
	q.X, q.Y, q.Z, q.W = ax*s, ay*s, az*s, math.Cos(angle*0.5)
	return q
}

// Mult sets q to the product of r then s (apply s's rotation after r's).
// q may alias r or s. The updated q is returned.
func (q *Q) Mult(r, s *Q) *Q {
	x := r.W*s.X + r.X*s.W - r.Y*s.Z + r.Z*s.Y
	y := r.W*s.Y + r.X*s.Z + r.Y*s.W - r.Z*s.X
	z := r.W*s.Z - r.X*s.Y + r.Y*s.X + r.Z*s.W
	w := r.W*s.W - r.X*s.X - r.Y*s.Y - r.Z*s.Z
	q.X, q.Y, q.Z, q.W = x, y, z, w
	return q
}

// Inv sets q to the inverse (conjugate, since r is expected to be unit
// length) of quaternion r. The updated q is returned.
func (q *Q) Inv(r *Q) *Q {
	q.X, q.Y, q.Z, q.W = -r.X, -r.Y, -r.Z, r.W
	return q
}
