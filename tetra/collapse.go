// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package tetra

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// CollapseEdge merges v1 into v2 and removes v1. Tets containing both
// endpoints are deleted; the rest of v1's one-ring is rewired to v2.
// sizeControl caps the squared circumradius of the surviving tets.
//
// Rejections: the vertices do not share an edge, the link condition fails
// (the surviving vertex set must shrink by exactly one), the result
// worsens quality beyond the collapse threshold, exceeds sizeControl, or
// inverts an element, or the shell protocol refuses the boundary merge.
// Collapsing a boundary vertex into a strictly interior one is an
// unsupported configuration and always rejected. An interior edge joining
// two boundary vertices would pinch the shell and is rejected too.
func (m *Mesh) CollapseEdge(v1, v2 int, sizeControl float64) bool {
	if len(setInter(m.Conn[v1], m.Conn[v2])) == 0 {
		m.Log.Debug("collapse rejected: not an edge", "v1", v1, "v2", v2)
		return false
	}
	if m.Verts[v1].MidID != -1 && m.Verts[v2].MidID == -1 {
		// Dropping v1 would orphan its shell pillar. Kept as a genuine
		// capability gap rather than approximated.
		m.Log.Warn("collapse rejected: boundary vertex into interior is unsupported", "v1", v1, "v2", v2)
		return false
	}

	bndFids := m.edgeBoundaryFaces(v1, v2)
	if len(bndFids) == 0 && m.Verts[v1].MidID != -1 && m.Verts[v2].MidID != -1 {
		m.Log.Debug("collapse rejected: interior edge joining boundary vertices", "v1", v1, "v2", v2)
		return false
	}

	affected := append([]int(nil), m.Conn[v1]...)
	oldTets := make([][4]int, len(affected))
	for i, t := range affected {
		oldTets[i] = m.Tets[t].Conn
	}
	beforeQ := m.maxQuality(oldTets)

	var newTets [][4]int
	for _, t := range affected {
		conn := m.Tets[t].Conn
		if idInQuad(conn, v2) >= 0 {
			continue // deleted outright
		}
		replaceQuad(&conn, v1, v2)
		newTets = append(newTets, conn)
	}

	// Link condition: the vertex span must shrink by exactly one (v1).
	if spanCount(newTets) != spanCount(oldTets)-1 {
		m.Log.Debug("collapse rejected: link condition", "v1", v1, "v2", v2)
		return false
	}

	afterQ := m.maxQuality(newTets)
	if afterQ > m.CollapseThreshold && beforeQ < afterQ {
		m.Log.Debug("collapse rejected: quality", "v1", v1, "v2", v2, "before", beforeQ, "after", afterQ)
		return false
	}
	if m.maxSizeSq(newTets) > sizeControl {
		m.Log.Debug("collapse rejected: size", "v1", v1, "v2", v2)
		return false
	}
	for _, t := range newTets {
		if !m.validTet(t) {
			m.Log.Debug("collapse rejected: invalid tet", "v1", v1, "v2", v2)
			return false
		}
	}

	cache := m.Hooks.Capture(m, affected)

	var movedFids []int
	var movedTris [][3]int
	if len(bndFids) > 0 {
		u0, u1 := m.Verts[v1].MidID, m.Verts[v2].MidID
		oldFids := m.vertBoundaryFaces(v1)
		for _, f := range oldFids {
			tri := m.Cage.F[f]
			if idInTriple(tri, u1) != -1 {
				continue // collapses away with its tet
			}
			replaceTriple(&tri, u0, u1)
			movedTris = append(movedTris, tri)
		}
		if len(oldFids) != len(movedTris)+2 {
			panic(consistency("collapse", "boundary fan around %d: %d faces, %d survivors", v1, len(oldFids), len(movedTris)))
		}

		tracks, err := m.Protocol.Attempt(m.Cage, oldFids, movedTris)
		if err != nil {
			m.Log.Debug("collapse rejected by shell", "v1", v1, "v2", v2, "error", err)
			return false
		}
		movedFids, err = m.Cage.Install(oldFids, movedTris, tracks)
		if err != nil {
			panic(consistency("collapse", "shell install failed after accepted attempt: %v", err))
		}
		// Let the rewrite see the merged shell id on the old faces.
		m.Verts[v1].MidID = u1
	}

	m.Conn[v1] = nil
	firstNew := len(m.Tets)
	m.updateConn(affected, newTets, movedFids, movedTris)

	// Tombstone v1; Compact reclaims the slot.
	m.Verts[v1] = VertAttr{Pos: r3.Vec{}, Rounded: true, MidID: -1}

	m.Hooks.Apply(m, cache, EditInfo{
		Op:      OpCollapse,
		EdgeV0:  v1,
		EdgeV1:  v2,
		NewVert: -1,
		NewTets: tetRange(firstNew, len(m.Tets)),
	})
	m.afterEdit("collapse")
	return true
}

// vertBoundaryFaces returns the sorted cage faces of the boundary fan
// around v: tags of v's incident tets whose tagged face contains v.
func (m *Mesh) vertBoundaryFaces(v int) []int {
	var fids []int
	for _, t := range m.Conn[v] {
		ta := &m.Tets[t]
		for j := 0; j < 4; j++ {
			if ta.Prism[j] != -1 && ta.Conn[j] != v {
				fids = append(fids, ta.Prism[j])
			}
		}
	}
	return sortedUnique(fids)
}

// spanCount counts the distinct vertices referenced by the tets.
func spanCount(tets [][4]int) int {
	seen := make(map[int]struct{})
	for _, t := range tets {
		for _, v := range t {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}

func sortedUnique(s []int) []int {
	if len(s) == 0 {
		return s
	}
	out := append([]int(nil), s...)
	sort.Ints(out)
	j := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[j-1] {
			out[j] = out[i]
			j++
		}
	}
	return out[:j]
}
