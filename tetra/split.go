// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package tetra

import (
	"math/big"

	"gonum.org/v1/gonum/spatial/r3"
)

// SplitEdge splits the edge (v0, v1) at its midpoint. Every tet incident
// to the edge is replaced by two children, one with each endpoint swapped
// for the new vertex. A boundary edge additionally appends one cage vertex
// and re-triangulates its two incident cage faces into four, gated by the
// shell protocol. Returns false and leaves the mesh unchanged when the
// edge has no incident tets, a child tet would be invalid, or the shell
// rejects the re-triangulation.
func (m *Mesh) SplitEdge(v0, v1 int) bool {
	affected := setInter(m.Conn[v0], m.Conn[v1])
	if len(affected) == 0 {
		m.Log.Debug("split rejected: not an edge", "v0", v0, "v1", v1)
		return false
	}

	bndFids := m.edgeBoundaryFaces(v0, v1)
	if len(bndFids) != 0 && (m.Cage == nil || len(bndFids) != 2) {
		m.Log.Warn("split rejected: unsupported boundary configuration", "v0", v0, "v1", v1, "faces", len(bndFids))
		return false
	}

	cache := m.Hooks.Capture(m, affected)

	vx := len(m.Verts)
	newTets := make([][4]int, 0, 2*len(affected))
	for _, t := range affected {
		a := m.Tets[t].Conn
		replaceQuad(&a, v0, vx)
		newTets = append(newTets, a)

		b := m.Tets[t].Conn
		replaceQuad(&b, v1, vx)
		newTets = append(newTets, b)
	}

	m.Verts = append(m.Verts, m.midpointVert(v0, v1))
	nCageVerts := 0
	if m.Cage != nil {
		nCageVerts = m.Cage.VertCount()
	}
	rollback := func() bool {
		m.Verts = m.Verts[:vx]
		if m.Cage != nil {
			m.Cage.TruncateVerts(nCageVerts)
		}
		return false
	}

	pv0, pv1 := m.Verts[v0].MidID, m.Verts[v1].MidID
	pvx := -1
	if len(bndFids) == 2 {
		c := m.Cage
		pvx = c.AppendVertex(
			r3.Scale(0.5, r3.Add(c.Top[pv0], c.Top[pv1])),
			m.Verts[vx].Pos,
			r3.Scale(0.5, r3.Add(c.Base[pv0], c.Base[pv1])),
			(c.TargetAdj[pv0]+c.TargetAdj[pv1])/2,
		)
		m.Verts[vx].MidID = pvx
	}

	for _, t := range newTets {
		if !m.validTet(t) {
			m.Log.Debug("split rejected: invalid child", "v0", v0, "v1", v1)
			return rollback()
		}
	}

	var movedFids []int
	var movedTris [][3]int
	if len(bndFids) == 2 {
		f0, f1 := bndFids[0], bndFids[1]
		movedTris = [][3]int{m.Cage.F[f0], m.Cage.F[f1], m.Cage.F[f0], m.Cage.F[f1]}
		replaceTriple(&movedTris[0], pv0, pvx)
		replaceTriple(&movedTris[1], pv0, pvx)
		replaceTriple(&movedTris[2], pv1, pvx)
		replaceTriple(&movedTris[3], pv1, pvx)

		tracks, err := m.Protocol.Attempt(m.Cage, []int{f0, f1}, movedTris)
		if err != nil {
			m.Log.Debug("split rejected by shell", "v0", v0, "v1", v1, "error", err)
			return rollback()
		}
		movedFids, err = m.Cage.Install([]int{f0, f1}, movedTris, tracks)
		if err != nil {
			panic(consistency("split", "shell install failed after accepted attempt: %v", err))
		}
	}

	firstNew := len(m.Tets)
	m.updateConn(affected, newTets, movedFids, movedTris)
	m.Hooks.Apply(m, cache, EditInfo{
		Op:      OpSplit,
		EdgeV0:  v0,
		EdgeV1:  v1,
		NewVert: vx,
		NewTets: tetRange(firstNew, len(m.Tets)),
	})
	m.afterEdit("split")
	return true
}

// midpointVert builds the new vertex at the midpoint of (v0, v1). If
// either endpoint is unrounded the midpoint is carried exactly, keeping
// the rational and float views consistent.
func (m *Mesh) midpointVert(v0, v1 int) VertAttr {
	a, b := &m.Verts[v0], &m.Verts[v1]
	va := VertAttr{
		Pos:     r3.Scale(0.5, r3.Add(a.Pos, b.Pos)),
		Rounded: true,
		MidID:   -1,
	}
	if !a.Rounded || !b.Rounded {
		pa, pb := m.ratPos(v0), m.ratPos(v1)
		half := big.NewRat(1, 2)
		for k := 0; k < 3; k++ {
			s := new(big.Rat).Add(pa[k], pb[k])
			va.PosR[k] = s.Mul(s, half)
		}
		va.Rounded = false
		f := func(r *big.Rat) float64 { v, _ := r.Float64(); return v }
		va.Pos = r3.Vec{X: f(va.PosR[0]), Y: f(va.PosR[1]), Z: f(va.PosR[2])}
	}
	return va
}

func tetRange(from, to int) []int {
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}
