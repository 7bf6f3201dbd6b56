// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package tetra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSplitCollapseNearInverse(t *testing.T) {
	m := shellTetMesh(t)
	require.True(t, m.SplitEdge(0, 1))
	vx := len(m.Verts) - 1

	require.True(t, m.CollapseEdge(vx, 0, looseSize))

	assert.Equal(t, 1, liveTets(m))
	assert.Equal(t, 4, m.Cage.FaceCount())
	assert.Empty(t, m.Conn[vx])
	require.NoError(t, m.Sanity())

	var live *TetAttr
	for i := range m.Tets {
		if !m.Tets[i].Removed {
			live = &m.Tets[i]
		}
	}
	require.NotNil(t, live)
	assert.Equal(t, [4]int{0, 1, 2, 3}, sortQuad(live.Conn))
}

func TestCollapseLinkCondition(t *testing.T) {
	// Two tets sharing only the edge (0, 1): collapsing it would delete
	// both and fuse two disjoint one-rings.
	V := []r3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0.5, Y: 1, Z: 0},
		{X: 0.5, Y: 0.5, Z: 1},
		{X: 0.5, Y: -1, Z: 0},
		{X: 0.5, Y: -0.5, Z: -1},
	}
	T := [][4]int{
		{0, 1, 2, 3},
		{0, 1, 4, 5},
	}
	m := interiorMesh(t, V, T)

	before := snapshot(m)
	assert.False(t, m.CollapseEdge(0, 1, looseSize))
	requireUnchanged(t, before, m)
}

func TestCollapseUnsupportedBoundaryIntoInterior(t *testing.T) {
	m := threeTetRing(t, 1)
	// A tracked endpoint collapsing into an untracked one has nowhere to
	// move its shell pillar.
	m.Verts[0].MidID = 9

	before := snapshot(m)
	assert.False(t, m.CollapseEdge(0, 2, looseSize))
	requireUnchanged(t, before, m)
}

func TestCollapseInteriorEdgeJoiningBoundaryVerts(t *testing.T) {
	m := threeTetRing(t, 1)
	// Fake shell ids on the edge endpoints without any boundary faces.
	m.Verts[0].MidID = 9
	m.Verts[1].MidID = 10

	before := snapshot(m)
	assert.False(t, m.CollapseEdge(0, 1, looseSize))
	requireUnchanged(t, before, m)
}

func TestCollapseNotAnEdge(t *testing.T) {
	V := append(regularTetVerts(), r3.Vec{X: 5, Y: 5, Z: 5})
	m := interiorMesh(t, V, [][4]int{{0, 1, 2, 3}})

	before := snapshot(m)
	assert.False(t, m.CollapseEdge(0, 4, looseSize))
	requireUnchanged(t, before, m)
}

func TestCollapseSizeGate(t *testing.T) {
	m := shellTetMesh(t)
	require.True(t, m.SplitEdge(0, 1))
	vx := len(m.Verts) - 1

	before := snapshot(m)
	assert.False(t, m.CollapseEdge(vx, 0, 1e-6), "size control must reject the grown tet")
	requireUnchanged(t, before, m)
}

func TestCollapseShellRejectionIsIdempotent(t *testing.T) {
	m := shellTetMesh(t)
	require.True(t, m.SplitEdge(0, 1))
	vx := len(m.Verts) - 1

	m.Protocol.Oracle = failingOracle{}
	before := snapshot(m)
	assert.False(t, m.CollapseEdge(vx, 0, looseSize))
	requireUnchanged(t, before, m)
}
