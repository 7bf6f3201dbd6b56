// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package tetra

// SwapEdge performs the 3-2 swap: the three tets sharing the strictly
// interior edge (v1, v2) are replaced by two tets spanning the triangle of
// their three opposite vertices. Rejected unless exactly three tets share
// the edge, the edge touches no boundary face, and the result is valid,
// no larger than sizeControl, and no worse in quality.
func (m *Mesh) SwapEdge(v1, v2 int, sizeControl float64) bool {
	affected := setInter(m.Conn[v1], m.Conn[v2])
	if len(affected) == 0 {
		m.Log.Debug("edge swap rejected: not an edge", "v1", v1, "v2", v2)
		return false
	}
	if len(affected) != 3 {
		m.Log.Debug("edge swap rejected: cluster size", "v1", v1, "v2", v2, "tets", len(affected))
		return false
	}
	if len(m.edgeBoundaryFaces(v1, v2)) != 0 {
		m.Log.Debug("edge swap rejected: boundary edge", "v1", v1, "v2", v2)
		return false
	}

	oldTets := make([][4]int, len(affected))
	for i, t := range affected {
		oldTets[i] = m.Tets[t].Conn
	}
	beforeQ := m.maxQuality(oldTets)

	// The three opposite vertices: n1 is shared by t0 and t1, n2 by t0 and
	// t2, and n0 is the vertex of t1 outside t0.
	t0, t1, t2 := affected[0], affected[1], affected[2]
	n0, n1, n2 := -1, -1, -1
	for j := 0; j < 4; j++ {
		v0j := m.Tets[t0].Conn[j]
		if v0j != v1 && v0j != v2 {
			if idInQuad(m.Tets[t1].Conn, v0j) != -1 {
				n1 = v0j
			}
			if idInQuad(m.Tets[t2].Conn, v0j) != -1 {
				n2 = v0j
			}
		}
		if idInQuad(m.Tets[t0].Conn, m.Tets[t1].Conn[j]) == -1 {
			n0 = m.Tets[t1].Conn[j]
		}
	}
	if n0 == -1 || n1 == -1 || n2 == -1 || n1 == n2 {
		m.Log.Debug("edge swap rejected: degenerate cluster", "v1", v1, "v2", v2)
		return false
	}

	newTets := [][4]int{m.Tets[t0].Conn, m.Tets[t1].Conn}
	replaceQuad(&newTets[0], v2, n0)
	replaceQuad(&newTets[1], v1, n2)

	if m.maxSizeSq(newTets) > sizeControl {
		m.Log.Debug("edge swap rejected: size", "v1", v1, "v2", v2)
		return false
	}
	if afterQ := m.maxQuality(newTets); beforeQ < afterQ {
		m.Log.Debug("edge swap rejected: quality", "v1", v1, "v2", v2, "before", beforeQ, "after", afterQ)
		return false
	}
	for _, t := range newTets {
		if !m.validTet(t) {
			m.Log.Debug("edge swap rejected: invalid tet", "v1", v1, "v2", v2)
			return false
		}
	}

	cache := m.Hooks.Capture(m, affected)
	firstNew := len(m.Tets)
	m.updateConn(affected, newTets, nil, nil)
	m.Hooks.Apply(m, cache, EditInfo{
		Op:      OpSwapEdge,
		EdgeV0:  v1,
		EdgeV1:  v2,
		NewVert: -1,
		NewTets: tetRange(firstNew, len(m.Tets)),
	})
	m.afterEdit("edge swap")
	return true
}

// SwapFace performs the 2-3 swap: the two tets sharing the strictly
// interior face (v0, v1, v2) are replaced by three tets fanning around the
// segment joining the two opposite vertices. Rejected unless exactly two
// tets share the face and the result is valid, no larger than sizeControl,
// and no worse in quality.
func (m *Mesh) SwapFace(v0, v1, v2 int, sizeControl float64) bool {
	affected := setInter(setInter(m.Conn[v0], m.Conn[v1]), m.Conn[v2])
	if len(affected) != 2 {
		m.Log.Debug("face swap rejected: not an interior face", "v0", v0, "v1", v1, "v2", v2, "tets", len(affected))
		return false
	}

	oldTets := [][4]int{m.Tets[affected[0]].Conn, m.Tets[affected[1]].Conn}
	beforeQ := m.maxQuality(oldTets)

	face := [3]int{v0, v1, v2}
	u1 := oppositeVert(oldTets[1], face)
	if u1 == -1 {
		panic(consistency("face swap", "tet %d has no vertex outside its own face", affected[1]))
	}

	newTets := [][4]int{oldTets[0], oldTets[0], oldTets[0]}
	replaceQuad(&newTets[0], v0, u1)
	replaceQuad(&newTets[1], v1, u1)
	replaceQuad(&newTets[2], v2, u1)

	for _, t := range newTets {
		if !m.validTet(t) {
			m.Log.Debug("face swap rejected: invalid tet", "v0", v0, "v1", v1, "v2", v2)
			return false
		}
	}
	if afterQ := m.maxQuality(newTets); beforeQ < afterQ {
		m.Log.Debug("face swap rejected: quality", "v0", v0, "v1", v1, "v2", v2, "before", beforeQ, "after", afterQ)
		return false
	}
	if m.maxSizeSq(newTets) > sizeControl {
		m.Log.Debug("face swap rejected: size", "v0", v0, "v1", v1, "v2", v2)
		return false
	}

	cache := m.Hooks.Capture(m, affected)
	firstNew := len(m.Tets)
	m.updateConn(affected, newTets, nil, nil)
	m.Hooks.Apply(m, cache, EditInfo{
		Op:      OpSwapFace,
		EdgeV0:  v0,
		EdgeV1:  v1,
		NewVert: -1,
		NewTets: tetRange(firstNew, len(m.Tets)),
	})
	m.afterEdit("face swap")
	return true
}

// oppositeVert returns the vertex of the tet not on the face, -1 if every
// vertex lies on it.
func oppositeVert(conn [4]int, face [3]int) int {
	for _, v := range conn {
		if idInTriple(face, v) == -1 {
			return v
		}
	}
	return -1
}
