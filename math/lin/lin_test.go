// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

package lin

import (
	"math"
	"testing"
)

func TestRadDegRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 45, 90, 180, 270, -90} {
		got := Deg(Rad(deg))
		if math.Abs(got-deg) > 1e-9 {
			t.Fatalf("Deg(Rad(%v)) = %v, want %v", deg, got, deg)
		}
	}
}

func TestRad90IsHalfPi(t *testing.T) {
	got := Rad(90)
	want := math.Pi / 2
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Rad(90) = %v, want %v", got, want)
	}
}

func TestAtan2FMatchesMathAtan2(t *testing.T) {
	cases := []struct{ y, x float64 }{
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
		{0, 1}, {1, 0}, {0, -1}, {-1, 0},
		{5, 10}, {-5, 10},
	}
	for _, c := range cases {
		got := Atan2F(c.y, c.x)
		want := math.Atan2(c.y, c.x)
		if math.Abs(got-want) > 0.01 {
			t.Fatalf("Atan2F(%v, %v) = %v, want close to %v", c.y, c.x, got, want)
		}
	}
}
