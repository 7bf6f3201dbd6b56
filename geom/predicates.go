// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// volumeEps is the degeneracy floor for the signed-volume predicate.
// Elements flatter than this are treated as invalid even when not inverted.
const volumeEps = 1e-14

// det3 returns the determinant of the 3x3 matrix with rows a, b, c.
func det3(a, b, c r3.Vec) float64 {
	return a.X*(b.Y*c.Z-b.Z*c.Y) -
		a.Y*(b.X*c.Z-b.Z*c.X) +
		a.Z*(b.X*c.Y-b.Y*c.X)
}

// SignedVolume6 returns six times the signed volume of the tetrahedron
// (p0, p1, p2, p3), i.e. the determinant of the edge matrix rooted at p0.
func SignedVolume6(p0, p1, p2, p3 r3.Vec) float64 {
	return det3(r3.Sub(p1, p0), r3.Sub(p2, p0), r3.Sub(p3, p0))
}

// Valid reports whether the tetrahedron is positively oriented and not
// degenerate.
func Valid(p0, p1, p2, p3 r3.Vec) bool {
	return SignedVolume6(p0, p1, p2, p3) > volumeEps
}

// CircumradiusSq returns the squared circumradius of the tetrahedron.
// Degenerate elements report +Inf so that any size gate rejects them.
func CircumradiusSq(p0, p1, p2, p3 r3.Vec) float64 {
	a := r3.Sub(p1, p0)
	b := r3.Sub(p2, p0)
	c := r3.Sub(p3, p0)
	d := det3(a, b, c)
	if d == 0 {
		return math.Inf(1)
	}
	// Solve M o = r/2 for the circumcenter offset o from p0, where the rows
	// of M are the edge vectors and r holds their squared lengths.
	ra := r3.Dot(a, a) / 2
	rb := r3.Dot(b, b) / 2
	rc := r3.Dot(c, c) / 2
	o := r3.Vec{
		X: det3(r3.Vec{X: ra, Y: a.Y, Z: a.Z}, r3.Vec{X: rb, Y: b.Y, Z: b.Z}, r3.Vec{X: rc, Y: c.Y, Z: c.Z}) / d,
		Y: det3(r3.Vec{X: a.X, Y: ra, Z: a.Z}, r3.Vec{X: b.X, Y: rb, Z: b.Z}, r3.Vec{X: c.X, Y: rc, Z: c.Z}) / d,
		Z: det3(r3.Vec{X: a.X, Y: a.Y, Z: ra}, r3.Vec{X: b.X, Y: b.Y, Z: rb}, r3.Vec{X: c.X, Y: c.Y, Z: rc}) / d,
	}
	return r3.Dot(o, o)
}
