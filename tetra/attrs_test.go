// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package tetra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareDerivesBoundaryTags(t *testing.T) {
	m := shellTetMesh(t)

	for j := 0; j < 4; j++ {
		require.NotEqual(t, -1, m.Tets[0].Prism[j], "face %d untagged", j)
		// The tag must name the cage face with the same shell-id triple.
		want := midFace(m.Verts, m.Tets[0].Conn, j)
		assert.Equal(t, want, sortTriple(m.Cage.F[m.Tets[0].Prism[j]]))
	}
}

func TestPrepareRejectsShellIDCountMismatch(t *testing.T) {
	_, err := Prepare(regularTetVerts(), [][4]int{{0, 1, 2, 3}}, []int{-1}, nil)
	require.ErrorIs(t, err, ErrVertexCount)
}

func TestPrepareRejectsVertexOutOfRange(t *testing.T) {
	_, err := Prepare(regularTetVerts(), [][4]int{{0, 1, 2, 7}}, []int{-1, -1, -1, -1}, nil)
	require.ErrorIs(t, err, ErrVertexRange)
}

func TestPrepareRejectsMidLayerDrift(t *testing.T) {
	cage := shellTetMesh(t).Cage
	V := regularTetVerts()
	V[0].X += 0.01
	_, err := Prepare(V, [][4]int{{0, 1, 2, 3}}, []int{0, 1, 2, 3}, cage)
	require.ErrorIs(t, err, ErrMidPosition)
}

func TestPrepareRejectsUncoveredCageFaces(t *testing.T) {
	cage := shellTetMesh(t).Cage
	_, err := Prepare(regularTetVerts(), [][4]int{{0, 1, 2, 3}}, []int{0, 1, 2, -1}, cage)
	require.ErrorIs(t, err, ErrTagMismatch)
}

func TestSetHelpers(t *testing.T) {
	assert.Equal(t, []int{2, 5}, setInter([]int{1, 2, 5, 9}, []int{2, 3, 5}))
	assert.Equal(t, []int{1, 9}, setMinus([]int{1, 2, 5, 9}, []int{2, 3, 5}))
	assert.Equal(t, []int{1, 4, 7}, setInsert([]int{1, 7}, 4))
	assert.Equal(t, []int{4}, setInsert(nil, 4))
}
