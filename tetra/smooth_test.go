// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package tetra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmoothInteriorMovesToRingCentroid(t *testing.T) {
	m := threeTetRing(t, 1)

	require.True(t, m.SmoothVertex(0, SmoothInterior, looseSize))

	// Neighbors of the top apex: the bottom apex plus the three ring
	// vertices, which average to (0, 0, -1/4).
	got := m.Verts[0].Pos
	assert.InDelta(t, 0, got.X, 1e-12)
	assert.InDelta(t, 0, got.Y, 1e-12)
	assert.InDelta(t, -0.25, got.Z, 1e-12)
	require.NoError(t, m.Sanity())
}

func TestSmoothInteriorRejectsSizeGrowth(t *testing.T) {
	m := threeTetRing(t, 1)
	before := snapshot(m)
	assert.False(t, m.SmoothVertex(0, SmoothInterior, 1e-6))
	requireUnchanged(t, before, m)
}

func TestSmoothRejectsMismatchedKind(t *testing.T) {
	boundary := shellTetMesh(t)
	before := snapshot(boundary)
	assert.False(t, boundary.SmoothVertex(0, SmoothInterior, looseSize))
	requireUnchanged(t, before, boundary)

	interior := threeTetRing(t, 1)
	before = snapshot(interior)
	assert.False(t, interior.SmoothVertex(0, SmoothSurfaceSnap, looseSize))
	requireUnchanged(t, before, interior)
}

func TestSmoothRejectsBoxPinnedVertex(t *testing.T) {
	m := threeTetRing(t, 1)
	m.Verts[0].OnBBox = []int{2}
	before := snapshot(m)
	assert.False(t, m.SmoothVertex(0, SmoothInterior, looseSize))
	requireUnchanged(t, before, m)
}

func TestSmoothRejectsUnroundedVertex(t *testing.T) {
	m := threeTetRing(t, 1)
	m.Verts[0].Rounded = false
	m.Verts[0].PosR = ratFromFloat(m.Verts[0].Pos)
	before := snapshot(m)
	assert.False(t, m.SmoothVertex(0, SmoothInterior, looseSize))
	requireUnchanged(t, before, m)
}

func TestSmoothSurfaceSnapKeepsVertexOnReference(t *testing.T) {
	m := shellTetMesh(t)
	want := m.Verts[0].Pos

	require.True(t, m.SmoothVertex(0, SmoothSurfaceSnap, looseSize))

	// The pillar pierces the reference surface exactly at the vertex, so
	// the snap is a fixed point.
	got := m.Verts[0].Pos
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)
	assert.InDelta(t, want.Z, got.Z, 1e-9)
	assert.Equal(t, got, m.Cage.Mid[m.Verts[0].MidID])
	require.NoError(t, m.Sanity())
}

func TestSmoothSurfaceSnapRollsBackOnShellRejection(t *testing.T) {
	m := shellTetMesh(t)
	m.Protocol.Oracle = failingOracle{}
	before := snapshot(m)
	assert.False(t, m.SmoothVertex(0, SmoothSurfaceSnap, looseSize))
	requireUnchanged(t, before, m)
}
