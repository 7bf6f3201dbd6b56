// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package tetra

import (
	"math/big"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/PeterZs/bichon/geom"
)

// Kernel is the floating-point geometry oracle the editors gate with.
// Quality is a shape energy where higher is worse and geom.InvalidEnergy
// marks unusable elements; SizeSq is the squared circumradius.
type Kernel interface {
	Valid(p0, p1, p2, p3 r3.Vec) bool
	Quality(p0, p1, p2, p3 r3.Vec) float64
	SizeSq(p0, p1, p2, p3 r3.Vec) float64
}

type defaultKernel = geom.Kernel

// defaultCollapseThreshold is the absolute worst-quality bound under which
// a quality-worsening collapse is still accepted.
const defaultCollapseThreshold = 8.0

// ratPos returns the rational position of record for vertex v: PosR while
// the vertex is unrounded, otherwise the exact image of the float position.
func (m *Mesh) ratPos(v int) [3]*big.Rat {
	va := &m.Verts[v]
	if !va.Rounded && va.PosR[0] != nil {
		return va.PosR
	}
	return ratFromFloat(va.Pos)
}

func ratFromFloat(p r3.Vec) [3]*big.Rat {
	var out [3]*big.Rat
	for i, c := range [3]float64{p.X, p.Y, p.Z} {
		out[i] = new(big.Rat).SetFloat64(c)
	}
	return out
}

func (m *Mesh) allRounded(conn [4]int) bool {
	for _, v := range conn {
		if !m.Verts[v].Rounded {
			return false
		}
	}
	return true
}

func (m *Mesh) ratAssemble(conn [4]int) [12]*big.Rat {
	var T [12]*big.Rat
	for j, v := range conn {
		p := m.ratPos(v)
		copy(T[j*3:j*3+3], p[:])
	}
	return T
}

// validTet checks orientation and non-degeneracy of a candidate
// tetrahedron. Any unrounded vertex forces an exact rational evaluation of
// the whole element; rational and float coordinates are never mixed.
func (m *Mesh) validTet(conn [4]int) bool {
	if m.allRounded(conn) {
		return m.Kernel.Valid(m.Verts[conn[0]].Pos, m.Verts[conn[1]].Pos, m.Verts[conn[2]].Pos, m.Verts[conn[3]].Pos)
	}
	return geom.RatOrient3D(m.ratAssemble(conn)) > 0
}

// tetQuality evaluates the shape energy with the same rational fallback.
func (m *Mesh) tetQuality(conn [4]int) float64 {
	if m.allRounded(conn) {
		return m.Kernel.Quality(m.Verts[conn[0]].Pos, m.Verts[conn[1]].Pos, m.Verts[conn[2]].Pos, m.Verts[conn[3]].Pos)
	}
	return geom.EnergyRational(m.ratAssemble(conn))
}

// maxQuality returns the worst (largest) energy over the candidate tets.
func (m *Mesh) maxQuality(tets [][4]int) float64 {
	worst := 0.0
	for _, t := range tets {
		if q := m.tetQuality(t); q > worst {
			worst = q
		}
	}
	return worst
}

// maxSizeSq returns the largest squared circumradius over the candidates.
func (m *Mesh) maxSizeSq(tets [][4]int) float64 {
	max := 0.0
	for _, t := range tets {
		s := m.Kernel.SizeSq(m.Verts[t[0]].Pos, m.Verts[t[1]].Pos, m.Verts[t[2]].Pos, m.Verts[t[3]].Pos)
		if s > max {
			max = s
		}
	}
	return max
}
