// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package geom

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sentinel errors for tracked-set redistribution.
var (
	// ErrNoCandidates is returned when the replaced faces tracked nothing.
	ErrNoCandidates = errors.New("no tracked primitives to redistribute")

	// ErrBudgetExceeded is returned when a primitive can only be placed on
	// a triangle further away than the caller's distortion budget.
	ErrBudgetExceeded = errors.New("redistribution exceeds distortion budget")
)

// Kernel is the default floating-point geometry kernel. The zero value is
// ready for use.
type Kernel struct{}

// Valid reports whether the tetrahedron is positively oriented and not
// degenerate.
func (Kernel) Valid(p0, p1, p2, p3 r3.Vec) bool {
	return Valid(p0, p1, p2, p3)
}

// Quality returns the cubed AMIPS shape energy (higher is worse,
// InvalidEnergy for unusable elements).
func (Kernel) Quality(p0, p1, p2, p3 r3.Vec) float64 {
	return Energy(p0, p1, p2, p3)
}

// SizeSq returns the squared circumradius used by the size gates.
func (Kernel) SizeSq(p0, p1, p2, p3 r3.Vec) float64 {
	return CircumradiusSq(p0, p1, p2, p3)
}

// Redistribute reassigns the tracked reference primitives (candidates, by
// index into refF) across the replacement mid-layer triangles tris. Every
// candidate lands on at least one triangle and every triangle tracks at
// least one candidate, or an error is returned with nothing assigned.
//
// budget < 0 disables the distortion guard; otherwise a candidate placed by
// the nearest-centroid fallback must lie within budget of its triangle.
func (Kernel) Redistribute(refV []r3.Vec, refF [][3]int, tris [][3]r3.Vec, candidates []int, budget float64) ([][]int, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	type box struct {
		min, max r3.Vec
		centroid r3.Vec
	}
	candBox := make([]box, len(candidates))
	for i, f := range candidates {
		tri := refF[f]
		a, b, c := refV[tri[0]], refV[tri[1]], refV[tri[2]]
		mn, mx := TriangleAABB(a, b, c)
		candBox[i] = box{mn, mx, triCentroid(a, b, c)}
	}
	triBox := make([]box, len(tris))
	pad := make([]float64, len(tris))
	for i, t := range tris {
		mn, mx := TriangleAABB(t[0], t[1], t[2])
		triBox[i] = box{mn, mx, triCentroid(t[0], t[1], t[2])}
		// Half the box diagonal: generous enough that a child triangle
		// keeps every primitive its parent could have touched.
		pad[i] = r3.Norm(r3.Sub(mx, mn)) / 2
	}

	out := make([][]int, len(tris))
	placed := make([]bool, len(candidates))
	for ti := range tris {
		for ci := range candidates {
			if aabbOverlap(triBox[ti].min, triBox[ti].max, candBox[ci].min, candBox[ci].max, pad[ti]) {
				out[ti] = append(out[ti], candidates[ci])
				placed[ci] = true
			}
		}
	}

	nearestTri := func(c r3.Vec) (int, float64) {
		best, bestD := -1, math.Inf(1)
		for ti := range tris {
			d := r3.Norm(r3.Sub(triBox[ti].centroid, c))
			if d < bestD {
				best, bestD = ti, d
			}
		}
		return best, bestD
	}

	for ci, ok := range placed {
		if ok {
			continue
		}
		ti, d := nearestTri(candBox[ci].centroid)
		if budget >= 0 && d > budget {
			return nil, fmt.Errorf("%w: primitive %d at distance %g", ErrBudgetExceeded, candidates[ci], d)
		}
		out[ti] = append(out[ti], candidates[ci])
	}

	for ti := range out {
		if len(out[ti]) != 0 {
			continue
		}
		// A triangle tracking nothing could never re-snap its vertices;
		// give it the nearest primitive instead.
		best, bestD := -1, math.Inf(1)
		for ci := range candidates {
			d := r3.Norm(r3.Sub(candBox[ci].centroid, triBox[ti].centroid))
			if d < bestD {
				best, bestD = ci, d
			}
		}
		out[ti] = append(out[ti], candidates[best])
	}

	for ti := range out {
		sort.Ints(out[ti])
		out[ti] = dedupSorted(out[ti])
	}
	return out, nil
}

func triCentroid(a, b, c r3.Vec) r3.Vec {
	return r3.Scale(1.0/3.0, r3.Add(a, r3.Add(b, c)))
}

func dedupSorted(s []int) []int {
	if len(s) < 2 {
		return s
	}
	j := 1
	for i := 1; i < len(s); i++ {
		if s[i] != s[j-1] {
			s[j] = s[i]
			j++
		}
	}
	return s[:j]
}
