// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package tetra

// edgeBoundaryFaces returns the cage face slots of the boundary faces that
// contain the edge (v0, v1): faces of edge-incident tets whose opposite
// vertex is neither endpoint.
func (m *Mesh) edgeBoundaryFaces(v0, v1 int) []int {
	affected := setInter(m.Conn[v0], m.Conn[v1])
	var fids []int
	for _, t := range affected {
		ta := &m.Tets[t]
		for j := 0; j < 4; j++ {
			if ta.Prism[j] != -1 && ta.Conn[j] != v0 && ta.Conn[j] != v1 {
				fids = append(fids, ta.Prism[j])
			}
		}
	}
	return fids
}

// updateConn is the shared connectivity rewrite: it marks the affected
// tets removed, appends the new tets, incrementally repairs the adjacency
// index for exactly the touched vertices, and re-derives each new tet's
// boundary tags from the old tags of the affected set overlaid with the
// freshly installed cage faces (movedTris paired with movedFids, as
// shell-id triples).
//
// A boundary tag that cannot be re-placed is corruption, not a rejection:
// by the time updateConn runs the edit is already committed on the shell
// side, so a lost tag panics with a *ConsistencyError.
func (m *Mesh) updateConn(affected []int, newTets [][4]int, movedFids []int, movedTris [][3]int) {
	for len(m.Conn) < len(m.Verts) {
		m.Conn = append(m.Conn, nil)
	}

	// Tag table: sorted shell-id triple of every old boundary face.
	assigner := make(map[[3]int]int)
	for _, ti := range affected {
		ta := &m.Tets[ti]
		ta.Removed = true
		for j := 0; j < 4; j++ {
			pid := ta.Prism[j]
			if pid == -1 {
				continue
			}
			face := midFace(m.Verts, ta.Conn, j)
			if face[0] == -1 {
				panic(consistency("rewrite", "boundary face of tet %d has an interior vertex", ti))
			}
			assigner[face] = pid
		}
	}
	if len(movedFids) != len(movedTris) {
		panic(consistency("rewrite", "%d moved faces, %d triangles", len(movedFids), len(movedTris)))
	}
	for i, tri := range movedTris {
		assigner[sortTriple(tri)] = movedFids[i]
	}

	// Detach the affected tets from every vertex they touch.
	touched := make(map[int]struct{})
	for _, ti := range affected {
		for _, v := range m.Tets[ti].Conn {
			touched[v] = struct{}{}
		}
	}
	for v := range touched {
		m.Conn[v] = setMinus(m.Conn[v], affected)
	}

	assigned := 0
	for _, conn := range newTets {
		id := len(m.Tets)
		for _, v := range conn {
			m.Conn[v] = setMinus(m.Conn[v], affected)
			m.Conn[v] = setInsert(m.Conn[v], id)
		}

		ta := TetAttr{Conn: conn, Prism: [4]int{-1, -1, -1, -1}}
		for j := 0; j < 4; j++ {
			face := midFace(m.Verts, conn, j)
			if face[0] == -1 {
				continue
			}
			if pid, ok := assigner[face]; ok {
				ta.Prism[j] = pid
				assigned++
			}
		}
		m.Tets = append(m.Tets, ta)
	}

	if assigned < len(movedTris) {
		panic(consistency("rewrite", "installed %d shell faces but re-tagged %d", len(movedTris), assigned))
	}
	if len(movedTris) == 0 && assigned != len(assigner) {
		panic(consistency("rewrite", "interior edit lost boundary tags: %d carried, %d reassigned", len(assigner), assigned))
	}
}
