// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const intersectEps = 1e-12

// SegmentTriangle intersects the segment a→b with the triangle (t0, t1, t2)
// using the Möller–Trumbore construction. The second return is false when
// the segment misses the triangle or runs parallel to its plane.
func SegmentTriangle(a, b, t0, t1, t2 r3.Vec) (r3.Vec, bool) {
	dir := r3.Sub(b, a)
	e1 := r3.Sub(t1, t0)
	e2 := r3.Sub(t2, t0)

	p := r3.Cross(dir, e2)
	det := r3.Dot(e1, p)
	if math.Abs(det) < intersectEps {
		return r3.Vec{}, false
	}
	inv := 1 / det

	s := r3.Sub(a, t0)
	u := r3.Dot(s, p) * inv
	if u < -intersectEps || u > 1+intersectEps {
		return r3.Vec{}, false
	}

	q := r3.Cross(s, e1)
	v := r3.Dot(dir, q) * inv
	if v < -intersectEps || u+v > 1+intersectEps {
		return r3.Vec{}, false
	}

	t := r3.Dot(e2, q) * inv
	if t < -intersectEps || t > 1+intersectEps {
		return r3.Vec{}, false
	}
	return r3.Add(a, r3.Scale(t, dir)), true
}

// TriangleAABB returns the axis-aligned bounding box of a triangle.
func TriangleAABB(t0, t1, t2 r3.Vec) (min, max r3.Vec) {
	min = r3.Vec{
		X: math.Min(t0.X, math.Min(t1.X, t2.X)),
		Y: math.Min(t0.Y, math.Min(t1.Y, t2.Y)),
		Z: math.Min(t0.Z, math.Min(t1.Z, t2.Z)),
	}
	max = r3.Vec{
		X: math.Max(t0.X, math.Max(t1.X, t2.X)),
		Y: math.Max(t0.Y, math.Max(t1.Y, t2.Y)),
		Z: math.Max(t0.Z, math.Max(t1.Z, t2.Z)),
	}
	return min, max
}

// aabbOverlap reports whether two boxes intersect, with a symmetric pad.
func aabbOverlap(min0, max0, min1, max1 r3.Vec, pad float64) bool {
	return min0.X-pad <= max1.X && min1.X-pad <= max0.X &&
		min0.Y-pad <= max1.Y && min1.Y-pad <= max0.Y &&
		min0.Z-pad <= max1.Z && min1.Z-pad <= max0.Z
}
