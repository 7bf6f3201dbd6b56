// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package tetra

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/PeterZs/bichon/shell"
)

const looseSize = 1e10

func regularTetVerts() []r3.Vec {
	return []r3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0.5, Y: math.Sqrt(3) / 2, Z: 0},
		{X: 0.5, Y: math.Sqrt(3) / 6, Z: math.Sqrt(6) / 3},
	}
}

// shellTetMesh builds a fully shell-coupled single regular tetrahedron:
// all four faces are cage faces, all four vertices are boundary vertices,
// and the reference surface is the tetrahedron's own boundary.
func shellTetMesh(t *testing.T, opts ...Option) *Mesh {
	t.Helper()
	V := regularTetVerts()

	var centroid r3.Vec
	for _, p := range V {
		centroid = r3.Add(centroid, p)
	}
	centroid = r3.Scale(0.25, centroid)

	offset := func(scale float64) []r3.Vec {
		out := make([]r3.Vec, len(V))
		for i, p := range V {
			out[i] = r3.Add(centroid, r3.Scale(scale, r3.Sub(p, centroid)))
		}
		return out
	}

	faces := [][3]int{{1, 2, 3}, {0, 2, 3}, {0, 1, 3}, {0, 1, 2}}
	refF := [][3]int{{1, 2, 3}, {0, 2, 3}, {0, 1, 3}, {0, 1, 2}}
	tracks := [][]int{{0}, {1}, {2}, {3}}

	mid := append([]r3.Vec(nil), V...)
	cage, err := shell.New(offset(1.5), mid, offset(0.5), faces, tracks, append([]r3.Vec(nil), V...), refF)
	require.NoError(t, err)

	m, err := Prepare(V, [][4]int{{0, 1, 2, 3}}, []int{0, 1, 2, 3}, cage,
		append([]Option{WithVerify(true)}, opts...)...)
	require.NoError(t, err)
	require.NoError(t, m.Sanity())
	return m
}

// interiorMesh builds a cage-free mesh from raw arrays for topology tests.
func interiorMesh(t *testing.T, V []r3.Vec, T [][4]int, opts ...Option) *Mesh {
	t.Helper()
	mids := make([]int, len(V))
	for i := range mids {
		mids[i] = -1
	}
	m, err := Prepare(V, T, mids, nil, append([]Option{WithVerify(true)}, opts...)...)
	require.NoError(t, err)
	return m
}

// threeTetRing builds three tets sharing the interior edge (0, 1), with
// ring vertices 2, 3, 4 on the unit circle. apex is half the edge length.
func threeTetRing(t *testing.T, apex float64) *Mesh {
	t.Helper()
	V := []r3.Vec{
		{X: 0, Y: 0, Z: apex},
		{X: 0, Y: 0, Z: -apex},
		{X: 1, Y: 0, Z: 0},
		{X: -0.5, Y: math.Sqrt(3) / 2, Z: 0},
		{X: -0.5, Y: -math.Sqrt(3) / 2, Z: 0},
	}
	T := [][4]int{
		{2, 3, 1, 0},
		{3, 4, 1, 0},
		{4, 2, 1, 0},
	}
	return interiorMesh(t, V, T)
}

// meshSnapshot captures every mutable structure for the idempotent
// rejection checks.
type meshSnapshot struct {
	Verts []VertAttr
	Tets  []TetAttr
	Conn  [][]int

	Top, Mid, Base []r3.Vec
	F              [][3]int
	Track          [][]int
	TargetAdj      []float64
}

func snapshot(m *Mesh) meshSnapshot {
	s := meshSnapshot{
		Verts: append([]VertAttr(nil), m.Verts...),
		Tets:  append([]TetAttr(nil), m.Tets...),
		Conn:  make([][]int, len(m.Conn)),
	}
	for i, c := range m.Conn {
		s.Conn[i] = append([]int(nil), c...)
	}
	if m.Cage != nil {
		s.Top = append([]r3.Vec(nil), m.Cage.Top...)
		s.Mid = append([]r3.Vec(nil), m.Cage.Mid...)
		s.Base = append([]r3.Vec(nil), m.Cage.Base...)
		s.F = append([][3]int(nil), m.Cage.F...)
		s.TargetAdj = append([]float64(nil), m.Cage.TargetAdj...)
		s.Track = make([][]int, len(m.Cage.Track))
		for i, tr := range m.Cage.Track {
			s.Track[i] = append([]int(nil), tr...)
		}
	}
	return s
}

func requireUnchanged(t *testing.T, before meshSnapshot, m *Mesh) {
	t.Helper()
	require.True(t, reflect.DeepEqual(before, snapshot(m)), "rejected edit mutated the mesh")
}
