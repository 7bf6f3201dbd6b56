// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package pass

import (
	"container/heap"

	"github.com/PeterZs/bichon/tetra"
)

var tetEdges = [6][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}

var tetFaces = [4][3]int{{0, 1, 2}, {1, 2, 3}, {2, 3, 0}, {3, 0, 1}}

// edgeItem is a one-shot edge offer; heavier weights pop first.
type edgeItem struct {
	w      float64
	v0, v1 int
}

type edgeQueue []edgeItem

func (q edgeQueue) Len() int           { return len(q) }
func (q edgeQueue) Less(i, j int) bool { return q[i].w > q[j].w }
func (q edgeQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *edgeQueue) Push(x any)        { *q = append(*q, x.(edgeItem)) }
func (q *edgeQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

func (q *edgeQueue) offer(item edgeItem) { heap.Push(q, item) }

func (q *edgeQueue) next() (edgeItem, bool) {
	if q.Len() == 0 {
		return edgeItem{}, false
	}
	return heap.Pop(q).(edgeItem), true
}

type faceItem struct {
	w float64
	v [3]int
}

type faceQueue []faceItem

func (q faceQueue) Len() int           { return len(q) }
func (q faceQueue) Less(i, j int) bool { return q[i].w > q[j].w }
func (q faceQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *faceQueue) Push(x any)        { *q = append(*q, x.(faceItem)) }
func (q *faceQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

func (q *faceQueue) next() (faceItem, bool) {
	if q.Len() == 0 {
		return faceItem{}, false
	}
	return heap.Pop(q).(faceItem), true
}

// collectEdges enumerates the distinct edges of the live tets the marker
// accepts and weighs them with the given function.
func collectEdges(m *tetra.Mesh, marker func(t int) bool, weight func(v0, v1 int) float64) *edgeQueue {
	seen := make(map[[2]int]struct{})
	q := &edgeQueue{}
	for t := range m.Tets {
		if m.Tets[t].Removed {
			continue
		}
		if marker != nil && !marker(t) {
			continue
		}
		for _, e := range tetEdges {
			v0, v1 := m.Tets[t].Conn[e[0]], m.Tets[t].Conn[e[1]]
			if v0 > v1 {
				v0, v1 = v1, v0
			}
			if _, ok := seen[[2]int{v0, v1}]; ok {
				continue
			}
			seen[[2]int{v0, v1}] = struct{}{}
			*q = append(*q, edgeItem{w: weight(v0, v1), v0: v0, v1: v1})
		}
	}
	heap.Init(q)
	return q
}

// collectFaces enumerates the distinct faces of the live tets.
func collectFaces(m *tetra.Mesh) *faceQueue {
	seen := make(map[[3]int]struct{})
	q := &faceQueue{}
	for t := range m.Tets {
		if m.Tets[t].Removed {
			continue
		}
		for _, f := range tetFaces {
			tri := [3]int{m.Tets[t].Conn[f[0]], m.Tets[t].Conn[f[1]], m.Tets[t].Conn[f[2]]}
			sortFace(&tri)
			if _, ok := seen[tri]; ok {
				continue
			}
			seen[tri] = struct{}{}
			*q = append(*q, faceItem{v: tri})
		}
	}
	heap.Init(q)
	return q
}

func sortFace(tri *[3]int) {
	if tri[0] > tri[1] {
		tri[0], tri[1] = tri[1], tri[0]
	}
	if tri[1] > tri[2] {
		tri[1], tri[2] = tri[2], tri[1]
	}
	if tri[0] > tri[1] {
		tri[0], tri[1] = tri[1], tri[0]
	}
}
