// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package tetra

import "gonum.org/v1/gonum/spatial/r3"

// SmoothKind selects the vertex relocation strategy.
type SmoothKind int

const (
	// SmoothInterior moves an interior vertex to the centroid of its
	// one-ring neighbors.
	SmoothInterior SmoothKind = iota

	// SmoothSurfaceSnap re-snaps a boundary vertex onto the reference
	// surface through its pillar segment, moving the mid layer with it.
	SmoothSurfaceSnap
)

// SmoothVertex relocates vertex v without changing connectivity. The move
// is rejected (position and pillar restored) when the one-ring would
// invert, an interior move exceeds sizeControl, or the shell protocol
// refuses the moved boundary fan.
func (m *Mesh) SmoothVertex(v int, kind SmoothKind, sizeControl float64) bool {
	ring := m.Conn[v]
	if len(ring) == 0 {
		return false
	}
	if !m.Verts[v].Rounded {
		m.Log.Debug("smooth rejected: unrounded vertex", "v", v)
		return false
	}
	if len(m.Verts[v].OnBBox) != 0 {
		m.Log.Debug("smooth rejected: vertex pinned to bounding box", "v", v)
		return false
	}

	pv := m.Verts[v].MidID
	fan := m.vertBoundaryFaces(v)

	oldPos := m.Verts[v].Pos
	var oldTop, oldMid, oldBase r3.Vec
	if pv != -1 {
		oldTop, oldMid, oldBase = m.Cage.Top[pv], m.Cage.Mid[pv], m.Cage.Base[pv]
	}
	rollback := func() bool {
		m.Verts[v].Pos = oldPos
		if pv != -1 {
			m.Cage.Top[pv], m.Cage.Mid[pv], m.Cage.Base[pv] = oldTop, oldMid, oldBase
		}
		return false
	}

	switch kind {
	case SmoothInterior:
		if pv != -1 || len(fan) != 0 {
			m.Log.Debug("smooth rejected: boundary vertex offered as interior", "v", v)
			return false
		}
		m.Verts[v].Pos = m.ringCentroid(v)

	case SmoothSurfaceSnap:
		if pv == -1 || len(fan) == 0 || m.Cage == nil {
			m.Log.Debug("smooth rejected: interior vertex offered as boundary", "v", v)
			return false
		}
		snapped, ok := m.Cage.Snap(pv, m.Cage.TrackUnion(fan))
		if !ok {
			m.Log.Debug("smooth rejected: pillar misses the surface", "v", v)
			return rollback()
		}
		m.Verts[v].Pos = snapped
		m.Cage.Mid[pv] = snapped

	default:
		return false
	}

	ringTets := make([][4]int, len(ring))
	for i, t := range ring {
		ringTets[i] = m.Tets[t].Conn
	}
	if pv == -1 && m.maxSizeSq(ringTets) > sizeControl {
		m.Log.Debug("smooth rejected: size", "v", v)
		return rollback()
	}
	for _, t := range ringTets {
		if !m.validTet(t) {
			m.Log.Debug("smooth rejected: inverted one-ring", "v", v)
			return rollback()
		}
	}

	if pv != -1 {
		movedTris := make([][3]int, len(fan))
		for i, f := range fan {
			movedTris[i] = m.Cage.F[f]
		}
		tracks, err := m.Protocol.Attempt(m.Cage, fan, movedTris)
		if err != nil {
			m.Log.Debug("smooth rejected by shell", "v", v, "error", err)
			return rollback()
		}
		if _, err := m.Cage.Install(fan, movedTris, tracks); err != nil {
			panic(consistency("smooth", "shell install failed after accepted attempt: %v", err))
		}
	}
	return true
}

// ringCentroid averages the one-ring neighbor positions of v.
func (m *Mesh) ringCentroid(v int) r3.Vec {
	seen := make(map[int]struct{})
	var sum r3.Vec
	for _, t := range m.Conn[v] {
		for _, u := range m.Tets[t].Conn {
			if u == v {
				continue
			}
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			sum = r3.Add(sum, m.Verts[u].Pos)
		}
	}
	if len(seen) == 0 {
		return m.Verts[v].Pos
	}
	return r3.Scale(1/float64(len(seen)), sum)
}
