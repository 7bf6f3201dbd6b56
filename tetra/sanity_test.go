// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package tetra

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func requireCheck(t *testing.T, err error, check string) {
	t.Helper()
	require.Error(t, err)
	var ce *ConsistencyError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, check, ce.Check)
}

func TestSanityDetectsInvertedTet(t *testing.T) {
	m := interiorMesh(t, regularTetVerts(), [][4]int{{1, 0, 2, 3}})
	requireCheck(t, m.Sanity(), "validity")
}

func TestSanityDetectsDuplicateTets(t *testing.T) {
	m := interiorMesh(t, regularTetVerts(), [][4]int{{0, 1, 2, 3}, {0, 1, 2, 3}})
	requireCheck(t, m.Sanity(), "duplicates")
}

func TestSanityDetectsBrokenAdjacency(t *testing.T) {
	m := shellTetMesh(t)
	m.Conn[0] = nil
	requireCheck(t, m.Sanity(), "adjacency")
}

func TestSanityDetectsStaleAdjacencyEntry(t *testing.T) {
	m := shellTetMesh(t)

	// Point a vertex at a tet that does not contain it.
	m.Tets = append(m.Tets, TetAttr{Conn: [4]int{1, 2, 3, 1}, Removed: true})
	m.Conn[0] = append(m.Conn[0], 1)
	requireCheck(t, m.Sanity(), "adjacency")
}

func TestSanityDetectsBoundaryCountDrift(t *testing.T) {
	m := shellTetMesh(t)
	m.Tets[0].Prism[0] = -1
	requireCheck(t, m.Sanity(), "boundary count")
}

func TestSanityDetectsExposedInteriorVertex(t *testing.T) {
	m := shellTetMesh(t)
	require.True(t, m.SplitEdge(0, 1))
	vx := len(m.Verts) - 1

	// The midpoint vertex sits on its one-ring surface; declaring it
	// interior must trip the enclosure check.
	m.Verts[vx].MidID = -1
	requireCheck(t, m.Sanity(), "enclosure")
}

func TestSanityDetectsMidLayerDrift(t *testing.T) {
	m := shellTetMesh(t)
	m.Verts[0].Pos.Z += 0.01
	requireCheck(t, m.Sanity(), "mid position")
}
