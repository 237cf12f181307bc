// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

package lin

import (
	"math"
	"testing"
)

func TestNewQIsZero(t *testing.T) {
	q := NewQ()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 0 {
		t.Fatalf("expecting the zero quaternion, got %+v", q)
	}
}

func TestSetAaZeroAngleIsIdentity(t *testing.T) {
	q := NewQ().SetAa(0, 1, 0, 0)
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Fatalf("expecting the identity quaternion for a zero angle, got %+v", q)
	}
}

func TestSetAaZeroAxisIsIdentity(t *testing.T) {
	q := NewQ().SetAa(0, 0, 0, Rad(90))
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Fatalf("expecting the identity quaternion for a zero-length axis, got %+v", q)
	}
}

func TestSetAaIsUnitLength(t *testing.T) {
	q := NewQ().SetAa(1, 2, 3, Rad(47))
	lenSqr := q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
	if math.Abs(lenSqr-1) > 1e-9 {
		t.Fatalf("expecting a unit quaternion, got squared length %v", lenSqr)
	}
}

func TestMultWithIdentityIsNoop(t *testing.T) {
	r := NewQ().SetAa(0, 1, 0, Rad(30))
	id := NewQ().SetAa(0, 0, 1, 0)
	got := NewQ().Mult(r, id)
	if math.Abs(got.X-r.X) > 1e-9 || math.Abs(got.Y-r.Y) > 1e-9 ||
		math.Abs(got.Z-r.Z) > 1e-9 || math.Abs(got.W-r.W) > 1e-9 {
		t.Fatalf("expecting r*identity == r, got %+v want %+v", got, r)
	}
}

func TestInvIsConjugateOfUnitQuaternion(t *testing.T) {
	r := NewQ().SetAa(1, 0, 0, Rad(60))
	inv := NewQ().Inv(r)
	if inv.X != -r.X || inv.Y != -r.Y || inv.Z != -r.Z || inv.W != r.W {
		t.Fatalf("expecting the conjugate of r, got %+v from %+v", inv, r)
	}
}

func TestMultWithInvIsIdentity(t *testing.T) {
	r := NewQ().SetAa(0, 1, 0, Rad(73))
	inv := NewQ().Inv(r)
	got := NewQ().Mult(r, inv)
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y) > 1e-9 || math.Abs(got.Z) > 1e-9 || math.Abs(got.W-1) > 1e-9 {
		t.Fatalf("expecting r*inv(r) == identity, got %+v", got)
	}
}
