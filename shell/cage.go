// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package shell

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/PeterZs/bichon/geom"
)

// Cage is the prism cage. Top, Mid, and Base are parallel vertex layers
// over a shared index space; F holds the triangle slots shared by all three
// layers. A slot whose first vertex is negative is freed and may be reused
// by a later Install.
//
// Track holds, per live face, the sorted ids of the reference-surface
// primitives (indices into RefF) the face is responsible for. TargetAdj is
// a per-vertex sizing adjustment used by the remeshing passes.
type Cage struct {
	Top  []r3.Vec
	Mid  []r3.Vec
	Base []r3.Vec

	F     [][3]int
	Track [][]int

	RefV []r3.Vec
	RefF [][3]int

	TopGrid  *Grid
	BaseGrid *Grid

	TargetAdj []float64
}

// New builds a cage and its spatial grids. The slices are taken over, not
// copied. Every face must be live and track at least one reference
// primitive.
func New(top, mid, base []r3.Vec, faces [][3]int, tracks [][]int, refV []r3.Vec, refF [][3]int) (*Cage, error) {
	if len(top) != len(mid) || len(base) != len(mid) {
		return nil, fmt.Errorf("%w: top %d, mid %d, base %d", ErrLayerSize, len(top), len(mid), len(base))
	}
	if len(tracks) != len(faces) {
		return nil, fmt.Errorf("%w: %d faces, %d tracked sets", ErrTrackCount, len(faces), len(tracks))
	}

	c := &Cage{
		Top:       top,
		Mid:       mid,
		Base:      base,
		F:         faces,
		Track:     tracks,
		RefV:      refV,
		RefF:      refF,
		TargetAdj: make([]float64, len(mid)),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	cell := gridCell(mid, len(faces))
	c.TopGrid = NewGrid(cell)
	c.BaseGrid = NewGrid(cell)
	for f := range c.F {
		c.gridInsert(f)
	}
	return c, nil
}

// gridCell derives a hash cell size from the mid-layer extent so that a
// face lands in O(1) cells on a roughly uniform mesh.
func gridCell(mid []r3.Vec, nfaces int) float64 {
	if len(mid) == 0 {
		return 1
	}
	min, max := mid[0], mid[0]
	for _, p := range mid[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		min.Z = math.Min(min.Z, p.Z)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
		max.Z = math.Max(max.Z, p.Z)
	}
	diag := r3.Norm(r3.Sub(max, min))
	cell := diag / (math.Cbrt(float64(nfaces)) + 1)
	if cell <= 0 {
		return 1
	}
	return cell
}

// VertCount returns the shared vertex count of the three layers.
func (c *Cage) VertCount() int { return len(c.Mid) }

// FaceCount returns the number of live (non-freed) face slots.
func (c *Cage) FaceCount() int {
	n := 0
	for _, f := range c.F {
		if f[0] >= 0 {
			n++
		}
	}
	return n
}

// Freed reports whether the face slot has been freed.
func (c *Cage) Freed(f int) bool { return c.F[f][0] < 0 }

// AppendVertex adds a vertex to all three layers and returns its id.
func (c *Cage) AppendVertex(top, mid, base r3.Vec, targetAdj float64) int {
	id := len(c.Mid)
	c.Top = append(c.Top, top)
	c.Mid = append(c.Mid, mid)
	c.Base = append(c.Base, base)
	c.TargetAdj = append(c.TargetAdj, targetAdj)
	return id
}

// TruncateVerts rolls the vertex layers back to n entries. Only valid while
// no face references the dropped tail, i.e. during edit rollback.
func (c *Cage) TruncateVerts(n int) {
	c.Top = c.Top[:n]
	c.Mid = c.Mid[:n]
	c.Base = c.Base[:n]
	c.TargetAdj = c.TargetAdj[:n]
}

// Install commits a face replacement: the slots in oldFids are freed and
// the new triangles installed with their tracked sets, reusing the freed
// slots in order before growing the slot array. Triangles are stored in
// canonical rotation (smallest vertex first, orientation preserved). Both
// spatial grids are updated. Returns the slot ids of the new faces.
func (c *Cage) Install(oldFids []int, tris [][3]int, tracks [][]int) ([]int, error) {
	if len(tris) != len(tracks) {
		return nil, fmt.Errorf("%w: %d triangles, %d tracked sets", ErrTrackCount, len(tris), len(tracks))
	}

	for _, f := range oldFids {
		c.TopGrid.Remove(f)
		c.BaseGrid.Remove(f)
		c.F[f] = [3]int{-1, -1, -1}
		c.Track[f] = nil
	}

	fids := make([]int, len(tris))
	for i, tri := range tris {
		slot := -1
		if i < len(oldFids) {
			slot = oldFids[i]
		} else {
			slot = len(c.F)
			c.F = append(c.F, [3]int{-1, -1, -1})
			c.Track = append(c.Track, nil)
		}
		c.F[slot] = canonicalShift(tri)
		c.Track[slot] = append([]int(nil), tracks[i]...)
		c.gridInsert(slot)
		fids[i] = slot
	}
	return fids, nil
}

// canonicalShift rotates a triangle so its smallest vertex id comes first
// without changing orientation.
func canonicalShift(t [3]int) [3]int {
	if t[1] < t[0] && t[1] <= t[2] {
		return [3]int{t[1], t[2], t[0]}
	}
	if t[2] < t[0] && t[2] < t[1] {
		return [3]int{t[2], t[0], t[1]}
	}
	return t
}

func (c *Cage) gridInsert(f int) {
	tri := c.F[f]
	if tri[0] < 0 {
		return
	}
	min, max := geom.TriangleAABB(c.Top[tri[0]], c.Top[tri[1]], c.Top[tri[2]])
	c.TopGrid.Insert(f, min, max)
	min, max = geom.TriangleAABB(c.Base[tri[0]], c.Base[tri[1]], c.Base[tri[2]])
	c.BaseGrid.Insert(f, min, max)
}

// Snap shoots the pillar segment of shell vertex v from the top layer to
// the base layer through the reference triangles in candidates and returns
// the first hit. The hit is the position the mid layer (and the coupled
// boundary vertex) should take.
func (c *Cage) Snap(v int, candidates []int) (r3.Vec, bool) {
	a, b := c.Top[v], c.Base[v]
	for _, f := range candidates {
		tri := c.RefF[f]
		if p, ok := geom.SegmentTriangle(a, b, c.RefV[tri[0]], c.RefV[tri[1]], c.RefV[tri[2]]); ok {
			return p, true
		}
	}
	return r3.Vec{}, false
}

// TrackUnion returns the sorted union of the tracked sets of the given
// live faces.
func (c *Cage) TrackUnion(fids []int) []int {
	seen := make(map[int]struct{})
	for _, f := range fids {
		for _, r := range c.Track[f] {
			seen[r] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Ints(out)
	return out
}

// Validate audits the cage: layer sizes agree, live faces reference
// existing vertices, and every live face tracks at least one existing
// reference primitive.
func (c *Cage) Validate() error {
	n := len(c.Mid)
	if len(c.Top) != n || len(c.Base) != n || (c.TargetAdj != nil && len(c.TargetAdj) != n) {
		return fmt.Errorf("%w: top %d, mid %d, base %d", ErrLayerSize, len(c.Top), n, len(c.Base))
	}
	if len(c.Track) != len(c.F) {
		return fmt.Errorf("%w: %d faces, %d tracked sets", ErrTrackCount, len(c.F), len(c.Track))
	}
	for f, tri := range c.F {
		if tri[0] < 0 {
			continue
		}
		for _, v := range tri {
			if v < 0 || v >= n {
				return fmt.Errorf("%w: face %d vertex %d of %d", ErrFaceRange, f, v, n)
			}
		}
		if len(c.Track[f]) == 0 {
			return fmt.Errorf("%w: face %d", ErrEmptyTrack, f)
		}
		for _, r := range c.Track[f] {
			if r < 0 || r >= len(c.RefF) {
				return fmt.Errorf("%w: face %d tracks primitive %d of %d", ErrFaceRange, f, r, len(c.RefF))
			}
		}
	}
	return nil
}

// Compact drops freed face slots and unreferenced vertices, renumbering
// both and rebuilding the grids. Returns old-to-new maps (-1 = removed)
// so the coupled volume mesh can remap its shell ids and boundary tags.
func (c *Cage) Compact() (vertMap, faceMap []int) {
	faceMap = make([]int, len(c.F))
	vertMap = make([]int, len(c.Mid))
	for i := range vertMap {
		vertMap[i] = -1
	}

	nv := 0
	var faces [][3]int
	var tracks [][]int
	for f, tri := range c.F {
		if tri[0] < 0 {
			faceMap[f] = -1
			continue
		}
		for _, v := range tri {
			if vertMap[v] < 0 {
				vertMap[v] = nv
				nv++
			}
		}
		faceMap[f] = len(faces)
		faces = append(faces, [3]int{vertMap[tri[0]], vertMap[tri[1]], vertMap[tri[2]]})
		tracks = append(tracks, c.Track[f])
	}

	top := make([]r3.Vec, nv)
	mid := make([]r3.Vec, nv)
	base := make([]r3.Vec, nv)
	adj := make([]float64, nv)
	for old, nw := range vertMap {
		if nw < 0 {
			continue
		}
		top[nw] = c.Top[old]
		mid[nw] = c.Mid[old]
		base[nw] = c.Base[old]
		adj[nw] = c.TargetAdj[old]
	}

	c.Top, c.Mid, c.Base, c.TargetAdj = top, mid, base, adj
	c.F, c.Track = faces, tracks

	cell := gridCell(c.Mid, len(c.F))
	c.TopGrid = NewGrid(cell)
	c.BaseGrid = NewGrid(cell)
	for f := range c.F {
		c.gridInsert(f)
	}
	return vertMap, faceMap
}
