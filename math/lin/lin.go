// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

// Package lin is the small slice of CPU-side 3D math the camera package
// needs to turn a yaw/pitch/roll orientation into a view matrix and a
// set of projection parameters into a projection matrix: vectors,
// quaternions, and 4x4 matrices, nothing more. It trades the breadth of
// a general-purpose linear algebra library for covering exactly what
// camera.Derive (camera/camera.go) and the module's other callers use.
package lin

import "math"

const degToRad = math.Pi / 180
const radToDeg = 180 / math.Pi

// Rad converts degrees, the unit camera.Orientation stores angles in, to
// radians.
func Rad(deg float64) float64 { return deg * degToRad }

// Deg converts radians to degrees.
func Deg(rad float64) float64 { return rad * radToDeg }

// Atan2F is a fast polynomial approximation of atan2, good enough for
// deriving a yaw/pitch pair from a look-at direction (script/api.go's
// orientationTowards): http://www.dspguide.com/ch19/4.htm.
func Atan2F(y, x float64) float64 {
	const quarterPi = math.Pi / 4
	const threeQuarterPi = 3 * quarterPi

	abs := math.Abs(y)
	var angle float64
	if x >= 0 {
		r := (x - abs) / (x + abs)
		angle = quarterPi - quarterPi*r + 0.1963*r*(r*r-1)
	} else {
		r := (x + abs) / (abs - x)
		angle = threeQuarterPi - quarterPi*r + 0.1963*r*(r*r-1)
	}
	if y < 0 {
		return -angle
	}
	return angle
}
