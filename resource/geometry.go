// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

// Package resource owns the shared vertex buffers that back a mesh
// archetype, keyed by mesh archetype rather than by entity, the way the
// teacher engine's mesh type separates per-vertex data from the object
// that references it. Everything in this package is main/render-thread
// only: it is never touched from the script worker.
package resource

import (
	"math"

	"github.com/gazed/scriptbridge/math/lin"
)

// RGBA8 is a four-channel color with one byte per channel, the wire format
// a CreateMesh command carries across the script boundary.
type RGBA8 struct {
	R, G, B, A uint8
}

// Vertex is one point of procedurally generated geometry: a position and
// the color it was created with. There is no normal, UV, or GPU binding
// here — rasterization and shading are out of scope.
type Vertex struct {
	Position lin.V3
	Color    RGBA8
}

const (
	sphereLongitudeSegments = 32
	sphereLatitudeSegments  = 16

	gridLineLength   = 100.0
	gridLineWidth    = 0.05
	gridCenterWidth  = 0.3
	gridRuledEvery   = 5
)

// gridLineColor and gridRuledColorX/Y match the teacher's dark-grey default
// with every ruled line (gridRuledEvery) picked out in red/green.
var (
	gridLineColor  = RGBA8{R: 64, G: 64, B: 64, A: 255}
	gridRuledColorX = RGBA8{R: 255, G: 0, B: 0, A: 255}
	gridRuledColorY = RGBA8{R: 0, G: 255, B: 0, A: 255}
)

// generate dispatches to the procedural generator for archetype, returning
// nil if the archetype is not recognized.
func generate(archetype string, radius float64, color RGBA8) []Vertex {
	switch archetype {
	case "cube":
		return cubeVertices(radius, color)
	case "sphere":
		return sphereVertices(radius, color)
	case "grid":
		return gridVertices()
	case "plane":
		return planeVertices(radius, color)
	default:
		return nil
	}
}

// addQuad appends two triangles (a,b,c) and (a,c,d) spanning the given
// corners, all sharing color.
func addQuad(verts *[]Vertex, a, b, c, d lin.V3, color RGBA8) {
	*verts = append(*verts,
		Vertex{a, color}, Vertex{b, color}, Vertex{c, color},
		Vertex{a, color}, Vertex{c, color}, Vertex{d, color},
	)
}

// addBox appends the six quads of an axis-aligned box spanned by min/max.
func addBox(verts *[]Vertex, min, max lin.V3, color RGBA8) {
	v := func(x, y, z float64) lin.V3 { return lin.V3{X: x, Y: y, Z: z} }

	// +X / -X
	addQuad(verts, v(max.X, min.Y, min.Z), v(max.X, max.Y, min.Z), v(max.X, max.Y, max.Z), v(max.X, min.Y, max.Z), color)
	addQuad(verts, v(min.X, max.Y, min.Z), v(min.X, min.Y, min.Z), v(min.X, min.Y, max.Z), v(min.X, max.Y, max.Z), color)
	// +Y / -Y
	addQuad(verts, v(max.X, max.Y, min.Z), v(min.X, max.Y, min.Z), v(min.X, max.Y, max.Z), v(max.X, max.Y, max.Z), color)
	addQuad(verts, v(min.X, min.Y, min.Z), v(max.X, min.Y, min.Z), v(max.X, min.Y, max.Z), v(min.X, min.Y, max.Z), color)
	// +Z / -Z
	addQuad(verts, v(min.X, min.Y, max.Z), v(max.X, min.Y, max.Z), v(max.X, max.Y, max.Z), v(min.X, max.Y, max.Z), color)
	addQuad(verts, v(max.X, min.Y, min.Z), v(min.X, min.Y, min.Z), v(min.X, max.Y, min.Z), v(max.X, max.Y, min.Z), color)
}

// cubeVertices builds a unit cube scaled by radius as six quads, one per
// face, each carrying the requested color.
func cubeVertices(radius float64, color RGBA8) []Vertex {
	half := radius * 0.5
	verts := make([]Vertex, 0, 36)
	addBox(&verts, lin.V3{X: -half, Y: -half, Z: -half}, lin.V3{X: half, Y: half, Z: half}, color)
	return verts
}

// sphereVertices tessellates a sphere of the given radius at 32 longitude
// by 16 latitude segments, the resolution spec.md §4.7 calls for.
func sphereVertices(radius float64, color RGBA8) []Vertex {
	verts := make([]Vertex, 0, sphereLongitudeSegments*sphereLatitudeSegments*6)

	point := func(theta, phi float64) lin.V3 {
		ct, st := math.Cos(theta), math.Sin(theta)
		cp, sp := math.Cos(phi), math.Sin(phi)
		return lin.V3{X: radius * ct * cp, Y: radius * ct * sp, Z: radius * st}
	}

	for lat := 0; lat < sphereLatitudeSegments; lat++ {
		theta1 := float64(lat)*math.Pi/float64(sphereLatitudeSegments) - math.Pi/2
		theta2 := float64(lat+1)*math.Pi/float64(sphereLatitudeSegments) - math.Pi/2
		for lon := 0; lon < sphereLongitudeSegments; lon++ {
			phi1 := float64(lon) * 2 * math.Pi / float64(sphereLongitudeSegments)
			phi2 := float64(lon+1) * 2 * math.Pi / float64(sphereLongitudeSegments)

			a := point(theta1, phi1)
			b := point(theta1, phi2)
			c := point(theta2, phi2)
			d := point(theta2, phi1)
			addQuad(&verts, a, b, c, d, color)
		}
	}
	return verts
}

// gridVertices builds the floor grid: crossed axis-aligned line boxes every
// integer unit across a 100-unit span, with every 5th line (the "ruled"
// lines) picked out in red along X and green along Y, and the center
// lines thicker than the rest.
func gridVertices() []Vertex {
	verts := make([]Vertex, 0, 1024)
	half := gridLineLength / 2

	for i := -int(gridLineLength) / 2; i < int(gridLineLength)/2; i++ {
		lineWidth := gridLineWidth
		if i == 0 {
			lineWidth = gridCenterWidth
		}
		fi := float64(i)

		colorX, colorY := gridLineColor, gridLineColor
		if i%gridRuledEvery == 0 {
			colorX, colorY = gridRuledColorX, gridRuledColorY
		}

		boundsXMin := lin.V3{X: -half, Y: fi - lineWidth/2, Z: -lineWidth / 2}
		boundsXMax := lin.V3{X: half, Y: fi + lineWidth/2, Z: lineWidth / 2}
		addBox(&verts, boundsXMin, boundsXMax, colorX)

		boundsYMin := lin.V3{X: fi - lineWidth/2, Y: -half, Z: -lineWidth / 2}
		boundsYMax := lin.V3{X: fi + lineWidth/2, Y: half, Z: lineWidth / 2}
		addBox(&verts, boundsYMin, boundsYMax, colorY)
	}
	return verts
}

// planeVertices builds a single quad of the given half-size, lying flat in
// the XY plane.
func planeVertices(radius float64, color RGBA8) []Vertex {
	verts := make([]Vertex, 0, 6)
	bl := lin.V3{X: -radius, Y: -radius, Z: 0}
	br := lin.V3{X: radius, Y: -radius, Z: 0}
	tl := lin.V3{X: -radius, Y: radius, Z: 0}
	tr := lin.V3{X: radius, Y: radius, Z: 0}
	addQuad(&verts, bl, br, tr, tl, color)
	return verts
}
