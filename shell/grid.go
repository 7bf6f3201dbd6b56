// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package shell

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Grid is a uniform spatial hash over axis-aligned boxes, keyed by integer
// ids. It answers conservative broad-phase queries: every id whose box
// touches the query box is returned, possibly with extras from shared
// cells.
type Grid struct {
	cell  float64
	cells map[[3]int][]int
	boxes map[int][2]r3.Vec
}

// NewGrid builds an empty grid with the given cell edge length. Sizes at or
// below zero fall back to 1.
func NewGrid(cell float64) *Grid {
	if cell <= 0 {
		cell = 1
	}
	return &Grid{
		cell:  cell,
		cells: make(map[[3]int][]int),
		boxes: make(map[int][2]r3.Vec),
	}
}

func (g *Grid) key(p r3.Vec) [3]int {
	return [3]int{
		int(math.Floor(p.X / g.cell)),
		int(math.Floor(p.Y / g.cell)),
		int(math.Floor(p.Z / g.cell)),
	}
}

func (g *Grid) eachCell(min, max r3.Vec, fn func(k [3]int)) {
	lo := g.key(min)
	hi := g.key(max)
	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				fn([3]int{x, y, z})
			}
		}
	}
}

// Insert registers the box under id. Inserting an id that is already
// present replaces its box.
func (g *Grid) Insert(id int, min, max r3.Vec) {
	if _, ok := g.boxes[id]; ok {
		g.Remove(id)
	}
	g.boxes[id] = [2]r3.Vec{min, max}
	g.eachCell(min, max, func(k [3]int) {
		g.cells[k] = append(g.cells[k], id)
	})
}

// Remove drops id from the grid. Unknown ids are ignored.
func (g *Grid) Remove(id int) {
	box, ok := g.boxes[id]
	if !ok {
		return
	}
	delete(g.boxes, id)
	g.eachCell(box[0], box[1], func(k [3]int) {
		ids := g.cells[k]
		for i, v := range ids {
			if v == id {
				ids[i] = ids[len(ids)-1]
				ids = ids[:len(ids)-1]
				break
			}
		}
		if len(ids) == 0 {
			delete(g.cells, k)
		} else {
			g.cells[k] = ids
		}
	})
}

// Query returns the sorted ids whose boxes intersect the query box.
func (g *Grid) Query(min, max r3.Vec) []int {
	seen := make(map[int]struct{})
	g.eachCell(min, max, func(k [3]int) {
		for _, id := range g.cells[k] {
			seen[id] = struct{}{}
		}
	})
	out := make([]int, 0, len(seen))
	for id := range seen {
		box := g.boxes[id]
		if boxOverlap(min, max, box[0], box[1]) {
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out
}

// Len returns the number of boxes in the grid.
func (g *Grid) Len() int {
	return len(g.boxes)
}

func boxOverlap(min0, max0, min1, max1 r3.Vec) bool {
	return min0.X <= max1.X && min1.X <= max0.X &&
		min0.Y <= max1.Y && min1.Y <= max0.Y &&
		min0.Z <= max1.Z && min1.Z <= max0.Z
}
