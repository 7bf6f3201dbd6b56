// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package tetra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func ringQuality(m *Mesh) float64 {
	var tets [][4]int
	for _, ta := range m.Tets {
		if !ta.Removed {
			tets = append(tets, ta.Conn)
		}
	}
	return m.maxQuality(tets)
}

func TestSwapEdgeThreeToTwo(t *testing.T) {
	m := threeTetRing(t, 1)
	before := ringQuality(m)

	require.True(t, m.SwapEdge(0, 1, looseSize))

	assert.Equal(t, 2, liveTets(m))
	assert.LessOrEqual(t, ringQuality(m), before)
	require.NoError(t, m.Sanity())
}

func TestSwapEdgeRejectsFourTetCluster(t *testing.T) {
	// Four tets around the edge (0, 1): ring vertices on the unit circle.
	V := []r3.Vec{
		{X: 0, Y: 0, Z: 1},
		{X: 0, Y: 0, Z: -1},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: -1, Y: 0, Z: 0},
		{X: 0, Y: -1, Z: 0},
	}
	T := [][4]int{
		{2, 3, 1, 0},
		{3, 4, 1, 0},
		{4, 5, 1, 0},
		{5, 2, 1, 0},
	}
	m := interiorMesh(t, V, T)

	before := snapshot(m)
	assert.False(t, m.SwapEdge(0, 1, looseSize))
	requireUnchanged(t, before, m)
}

func TestSwapEdgeRejectsBoundaryEdge(t *testing.T) {
	m := threeTetRing(t, 1)
	// Tag a face containing the edge (0, 1) as boundary.
	require.True(t, m.Tets[0].Conn[0] != 0 && m.Tets[0].Conn[0] != 1)
	m.Tets[0].Prism[0] = 7

	before := snapshot(m)
	assert.False(t, m.SwapEdge(0, 1, looseSize))
	requireUnchanged(t, before, m)
}

func TestSwapEdgeRejectsQualityRegression(t *testing.T) {
	// A short interior edge with a wide ring: the two replacement tets
	// would be flatter than the three wedges.
	m := threeTetRing(t, 0.2)

	before := snapshot(m)
	assert.False(t, m.SwapEdge(0, 1, looseSize))
	requireUnchanged(t, before, m)
}

func TestSwapFaceTwoToThree(t *testing.T) {
	// Two tets sharing the face (0, 1, 2), apexes 3 and 4.
	V := []r3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0.5, Y: math.Sqrt(3) / 2, Z: 0},
		{X: 0.5, Y: math.Sqrt(3) / 6, Z: 0.25},
		{X: 0.5, Y: math.Sqrt(3) / 6, Z: -0.25},
	}
	T := [][4]int{
		{0, 1, 2, 3},
		{1, 0, 2, 4},
	}
	m := interiorMesh(t, V, T)
	before := ringQuality(m)

	require.True(t, m.SwapFace(0, 1, 2, looseSize))

	assert.Equal(t, 3, liveTets(m))
	assert.LessOrEqual(t, ringQuality(m), before)
	require.NoError(t, m.Sanity())
}

func TestSwapFaceRejectsBoundaryFace(t *testing.T) {
	m := shellTetMesh(t)

	before := snapshot(m)
	assert.False(t, m.SwapFace(0, 1, 2, looseSize))
	requireUnchanged(t, before, m)
}
