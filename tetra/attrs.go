// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package tetra

import (
	"fmt"
	"log/slog"
	"math/big"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/PeterZs/bichon/pkg/logging"
	"github.com/PeterZs/bichon/shell"
)

// VertAttr carries the per-vertex attributes.
//
// Pos is the working floating-point position. PosR and Rounded implement
// the exact-arithmetic coexistence mode: while Rounded is false the vertex
// position of record is the rational PosR and every validity or quality
// test involving the vertex is evaluated rationally. Vertices born from
// float input start rounded with PosR nil.
type VertAttr struct {
	Pos     r3.Vec
	PosR    [3]*big.Rat
	Rounded bool

	// MidID is the shell vertex this vertex is pinned to, -1 for interior
	// vertices.
	MidID int

	// OnBBox lists the bounding-box planes the vertex lies on, for
	// drivers that freeze box vertices.
	OnBBox []int
}

// TetAttr carries the per-tetrahedron attributes. Conn is oriented: the
// tetrahedron must keep positive signed volume. Prism[j] tags the face
// opposite vertex j with the cage face slot it coincides with, -1 for
// interior faces.
type TetAttr struct {
	Conn    [4]int
	Prism   [4]int
	Removed bool
}

// Mesh is the editable volume mesh. Conn is the vertex-to-incident-tets
// index holding, per vertex, the sorted ids of non-removed tetrahedra
// containing it. Cage may be nil for a mesh with no tracked boundary; the
// boundary-specific editor paths and sanity checks are then disabled.
type Mesh struct {
	Verts []VertAttr
	Tets  []TetAttr
	Conn  [][]int

	Cage     *shell.Cage
	Kernel   Kernel
	Protocol shell.Protocol
	Hooks    Hooks

	// CollapseThreshold is the absolute worst-quality bound below which a
	// collapse is accepted even when it worsens quality.
	CollapseThreshold float64

	// Verify runs Sanity after every accepted edit, panicking with a
	// *ConsistencyError on failure.
	Verify bool

	Log *slog.Logger
}

// Option adjusts mesh construction.
type Option func(*Mesh)

// WithKernel sets the geometry kernel.
func WithKernel(k Kernel) Option { return func(m *Mesh) { m.Kernel = k } }

// WithOracle sets the shell redistribution oracle and its distortion
// budget (negative disables the budget).
func WithOracle(o shell.Oracle, budget float64) Option {
	return func(m *Mesh) { m.Protocol = shell.Protocol{Oracle: o, Budget: budget} }
}

// WithHooks installs the before/after edit hooks.
func WithHooks(h Hooks) Option { return func(m *Mesh) { m.Hooks = h } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(m *Mesh) { m.Log = l } }

// WithVerify toggles the post-edit sanity audit.
func WithVerify(v bool) Option { return func(m *Mesh) { m.Verify = v } }

// WithCollapseThreshold sets the absolute collapse quality bound.
func WithCollapseThreshold(q float64) Option {
	return func(m *Mesh) { m.CollapseThreshold = q }
}

// Prepare builds a mesh from flat arrays: vertex positions, tetrahedron
// connectivity, and the per-vertex shell ids (-1 for interior). Boundary
// tags are derived by matching each tet face's shell-id triple against the
// cage faces; with a cage, every cage face must be matched by exactly one
// tet face.
func Prepare(V []r3.Vec, T [][4]int, midIDs []int, cage *shell.Cage, opts ...Option) (*Mesh, error) {
	if len(midIDs) != len(V) {
		return nil, fmt.Errorf("%w: %d ids for %d vertices", ErrVertexCount, len(midIDs), len(V))
	}

	m := &Mesh{
		Cage:              cage,
		CollapseThreshold: defaultCollapseThreshold,
		Hooks:             NopHooks{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.Kernel == nil {
		m.Kernel = defaultKernel{}
	}
	if m.Protocol.Oracle == nil {
		m.Protocol = shell.Protocol{Oracle: defaultKernel{}, Budget: -1}
	}
	if m.Log == nil {
		m.Log = logging.Discard()
	}

	m.Verts = make([]VertAttr, len(V))
	for i, p := range V {
		m.Verts[i] = VertAttr{Pos: p, Rounded: true, MidID: midIDs[i]}
		if cage != nil && midIDs[i] >= 0 {
			if midIDs[i] >= cage.VertCount() || cage.Mid[midIDs[i]] != p {
				return nil, fmt.Errorf("%w: vertex %d, shell id %d", ErrMidPosition, i, midIDs[i])
			}
		}
	}

	// Cage face lookup by sorted shell-id triple.
	finder := make(map[[3]int]int)
	if cage != nil {
		for f, tri := range cage.F {
			if tri[0] < 0 {
				continue
			}
			finder[sortTriple(tri)] = f
		}
	}

	m.Tets = make([]TetAttr, len(T))
	tagged := 0
	for i, conn := range T {
		ta := TetAttr{Conn: conn, Prism: [4]int{-1, -1, -1, -1}}
		for _, v := range conn {
			if v < 0 || v >= len(V) {
				return nil, fmt.Errorf("%w: tet %d vertex %d", ErrVertexRange, i, v)
			}
		}
		for j := 0; j < 4; j++ {
			face := midFace(m.Verts, conn, j)
			if face[0] < 0 {
				continue
			}
			if f, ok := finder[face]; ok {
				ta.Prism[j] = f
				tagged++
			}
		}
		m.Tets[i] = ta
	}
	if cage != nil && tagged != cage.FaceCount() {
		return nil, fmt.Errorf("%w: %d tags, %d cage faces", ErrTagMismatch, tagged, cage.FaceCount())
	}

	m.Conn = make([][]int, len(V))
	for t, ta := range m.Tets {
		for _, v := range ta.Conn {
			m.Conn[v] = append(m.Conn[v], t)
		}
	}
	for _, list := range m.Conn {
		sort.Ints(list)
	}
	return m, nil
}

// midFace returns the sorted shell-id triple of the face opposite vertex j.
func midFace(verts []VertAttr, conn [4]int, j int) [3]int {
	var face [3]int
	for k := 0; k < 3; k++ {
		face[k] = verts[conn[(j+k+1)%4]].MidID
	}
	return sortTriple(face)
}

// sortedFace returns the sorted vertex triple of the face opposite j.
func sortedFace(conn [4]int, j int) [3]int {
	var face [3]int
	for k := 0; k < 3; k++ {
		face[k] = conn[(j+k+1)%4]
	}
	return sortTriple(face)
}

func sortTriple(t [3]int) [3]int {
	if t[0] > t[1] {
		t[0], t[1] = t[1], t[0]
	}
	if t[1] > t[2] {
		t[1], t[2] = t[2], t[1]
	}
	if t[0] > t[1] {
		t[0], t[1] = t[1], t[0]
	}
	return t
}

func sortQuad(t [4]int) [4]int {
	sort.Ints(t[:])
	return t
}

// setInter intersects two sorted id lists.
func setInter(a, b []int) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// setMinus returns the sorted elements of a not in b (both sorted).
func setMinus(a, b []int) []int {
	var out []int
	j := 0
	for _, x := range a {
		for j < len(b) && b[j] < x {
			j++
		}
		if j < len(b) && b[j] == x {
			continue
		}
		out = append(out, x)
	}
	return out
}

// setInsert inserts x into the sorted list, keeping it sorted.
func setInsert(a []int, x int) []int {
	i := sort.SearchInts(a, x)
	a = append(a, 0)
	copy(a[i+1:], a[i:])
	a[i] = x
	return a
}

func idInQuad(conn [4]int, v int) int {
	for i, x := range conn {
		if x == v {
			return i
		}
	}
	return -1
}

func idInTriple(tri [3]int, v int) int {
	for i, x := range tri {
		if x == v {
			return i
		}
	}
	return -1
}

func replaceQuad(conn *[4]int, from, to int) bool {
	for i, x := range conn {
		if x == from {
			conn[i] = to
			return true
		}
	}
	return false
}

func replaceTriple(tri *[3]int, from, to int) bool {
	for i, x := range tri {
		if x == from {
			tri[i] = to
			return true
		}
	}
	return false
}
