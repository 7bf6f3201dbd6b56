// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package tetra

// Compact physically reclaims removed tets and isolated vertices,
// renumbering both structures and every cross-reference: tet connectivity,
// the adjacency index, and (with a cage) the cage's own vertex and face
// slots together with the mesh's shell ids and boundary tags. Must only
// run between edits.
func (m *Mesh) Compact() {
	vertMap := make([]int, len(m.Verts))
	nv := 0
	for v := range m.Verts {
		if len(m.Conn[v]) == 0 {
			vertMap[v] = -1
			continue
		}
		vertMap[v] = nv
		if nv != v {
			m.Verts[nv] = m.Verts[v]
		}
		nv++
	}
	m.Verts = m.Verts[:nv]

	conn := make([][]int, nv)
	nt := 0
	for t := range m.Tets {
		if m.Tets[t].Removed {
			continue
		}
		if nt != t {
			m.Tets[nt] = m.Tets[t]
		}
		for j := 0; j < 4; j++ {
			v := vertMap[m.Tets[nt].Conn[j]]
			if v == -1 {
				panic(consistency("compact", "live tet %d references isolated vertex", t))
			}
			m.Tets[nt].Conn[j] = v
			conn[v] = append(conn[v], nt)
		}
		nt++
	}
	m.Tets = m.Tets[:nt]
	m.Conn = conn

	if m.Cage == nil {
		return
	}
	midMap, faceMap := m.Cage.Compact()
	for v := range m.Verts {
		if mid := m.Verts[v].MidID; mid != -1 {
			m.Verts[v].MidID = midMap[mid]
			if m.Verts[v].MidID == -1 {
				panic(consistency("compact", "boundary vertex %d lost its cage vertex", v))
			}
		}
	}
	for t := range m.Tets {
		for j := 0; j < 4; j++ {
			if pid := m.Tets[t].Prism[j]; pid != -1 {
				m.Tets[t].Prism[j] = faceMap[pid]
				if m.Tets[t].Prism[j] == -1 {
					panic(consistency("compact", "tet %d lost its boundary tag", t))
				}
			}
		}
	}
}
