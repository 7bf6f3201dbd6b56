// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package pass

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/PeterZs/bichon/shell"
	"github.com/PeterZs/bichon/tetra"
)

// DemoMesh builds a fully shell-coupled regular tetrahedron: all four
// faces are cage faces, the reference surface is the tetrahedron's own
// boundary, and the prisms extend to 1.5x outward and 0.5x inward of the
// centroid scale. It is the stand-in input for runs without a mesh file.
func DemoMesh(opts ...tetra.Option) (*tetra.Mesh, error) {
	V := []r3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0.5, Y: math.Sqrt(3) / 2, Z: 0},
		{X: 0.5, Y: math.Sqrt(3) / 6, Z: math.Sqrt(6) / 3},
	}
	var centroid r3.Vec
	for _, p := range V {
		centroid = r3.Add(centroid, p)
	}
	centroid = r3.Scale(0.25, centroid)
	offset := func(scale float64) []r3.Vec {
		out := make([]r3.Vec, len(V))
		for i, p := range V {
			out[i] = r3.Add(centroid, r3.Scale(scale, r3.Sub(p, centroid)))
		}
		return out
	}

	faces := [][3]int{{1, 2, 3}, {0, 2, 3}, {0, 1, 3}, {0, 1, 2}}
	refF := append([][3]int(nil), faces...)
	tracks := [][]int{{0}, {1}, {2}, {3}}

	mid := append([]r3.Vec(nil), V...)
	cage, err := shell.New(offset(1.5), mid, offset(0.5), faces, tracks, append([]r3.Vec(nil), V...), refF)
	if err != nil {
		return nil, err
	}
	return tetra.Prepare(V, [][4]int{{0, 1, 2, 3}}, []int{0, 1, 2, 3}, cage, opts...)
}
