// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package tetra

// Sanity is the read-only whole-mesh auditor. It returns the first
// violated invariant:
//
//  1. every non-removed tet is geometrically valid;
//  2. no duplicate tets, and no face shared by more than two tets;
//  3. the adjacency index and tet connectivity agree in both directions;
//  4. the boundary face count equals the live cage slot count, and the
//     cage itself validates;
//  5. every interior vertex with incident tets is enclosed by its one-ring
//     (does not sit on the ring's surface);
//  6. every boundary vertex's position equals its cage mid-layer position.
//
// Checks 4-6 are skipped for a mesh without a cage. Callers treat a
// non-nil result after an accepted edit as fatal corruption.
func (m *Mesh) Sanity() error {
	for i, ta := range m.Tets {
		if ta.Removed {
			continue
		}
		if !m.validTet(ta.Conn) {
			return consistency("validity", "tet %d %v", i, ta.Conn)
		}
	}

	tetSeen := make(map[[4]int]int)
	faceSeen := make(map[[3]int]int)
	for i, ta := range m.Tets {
		if ta.Removed {
			continue
		}
		key := sortQuad(ta.Conn)
		if prev, ok := tetSeen[key]; ok {
			return consistency("duplicates", "tets %d and %d share vertices %v", prev, i, ta.Conn)
		}
		tetSeen[key] = i
		for j := 0; j < 4; j++ {
			face := sortedFace(ta.Conn, j)
			faceSeen[face]++
			if faceSeen[face] > 2 {
				return consistency("duplicates", "face %v used by more than two tets", face)
			}
		}
	}

	if err := m.adjacencyConsistent(); err != nil {
		return err
	}

	if m.Cage == nil {
		return nil
	}

	boundary := make(map[[3]int]struct{})
	for _, ta := range m.Tets {
		if ta.Removed {
			continue
		}
		for j := 0; j < 4; j++ {
			if ta.Prism[j] != -1 {
				boundary[sortedFace(ta.Conn, j)] = struct{}{}
			}
		}
	}
	if len(boundary) != m.Cage.FaceCount() {
		return consistency("boundary count", "%d tagged faces, %d cage slots", len(boundary), m.Cage.FaceCount())
	}
	if err := m.Cage.Validate(); err != nil {
		return consistency("cage", "%v", err)
	}

	for v := range m.Verts {
		if m.Verts[v].MidID >= 0 || len(m.Conn[v]) == 0 {
			continue
		}
		if m.interiorVertExposed(v) {
			return consistency("enclosure", "interior vertex %d on its one-ring surface", v)
		}
	}

	for v, va := range m.Verts {
		if va.MidID == -1 {
			continue
		}
		if m.Cage.Mid[va.MidID] != va.Pos {
			return consistency("mid position", "vertex %d differs from cage mid %d", v, va.MidID)
		}
	}
	return nil
}

// adjacencyConsistent cross-checks the vertex-to-tet index against tet
// connectivity in both directions.
func (m *Mesh) adjacencyConsistent() error {
	for i, ta := range m.Tets {
		if ta.Removed {
			continue
		}
		for _, v := range ta.Conn {
			if !containsSorted(m.Conn[v], i) {
				return consistency("adjacency", "tet %d missing from vertex %d", i, v)
			}
		}
	}
	for v, list := range m.Conn {
		prev := -1
		for _, t := range list {
			if t <= prev {
				return consistency("adjacency", "vertex %d list not strictly sorted", v)
			}
			prev = t
			if t >= len(m.Tets) || m.Tets[t].Removed {
				return consistency("adjacency", "vertex %d references removed tet %d", v, t)
			}
			if idInQuad(m.Tets[t].Conn, v) == -1 {
				return consistency("adjacency", "vertex %d not in tet %d", v, t)
			}
		}
	}
	return nil
}

// interiorVertExposed reports whether v appears on the boundary facets of
// its own one-ring: facets used by exactly one incident tet.
func (m *Mesh) interiorVertExposed(v int) bool {
	count := make(map[[3]int]int)
	for _, t := range m.Conn[v] {
		for j := 0; j < 4; j++ {
			count[sortedFace(m.Tets[t].Conn, j)]++
		}
	}
	for face, n := range count {
		if n != 1 {
			continue
		}
		if idInTriple(face, v) != -1 {
			return true
		}
	}
	return false
}

func containsSorted(list []int, x int) bool {
	lo, hi := 0, len(list)
	for lo < hi {
		mid := (lo + hi) / 2
		if list[mid] < x {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo < len(list) && list[lo] == x
}

// afterEdit runs the auditor when verification is on. A failure means the
// committed edit corrupted the mesh.
func (m *Mesh) afterEdit(op string) {
	if !m.Verify {
		return
	}
	if err := m.Sanity(); err != nil {
		m.Log.Error("sanity check failed after accepted edit", "op", op, "error", err)
		panic(err)
	}
}
