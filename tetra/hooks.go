// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package tetra

// Edit operation names reported through EditInfo.
const (
	OpSplit    = "split"
	OpCollapse = "collapse"
	OpSwapEdge = "swap_edge"
	OpSwapFace = "swap_face"
)

// EditInfo describes a committed edit for the after-hook. For a split,
// NewVert is the appended midpoint vertex and EdgeV0/EdgeV1 the split
// edge; for a collapse EdgeV0 is the removed vertex. NewTets holds the ids
// of the appended tets.
type EditInfo struct {
	Op      string
	EdgeV0  int
	EdgeV1  int
	NewVert int
	NewTets []int
}

// Hooks is the per-edit attribute strategy: Capture reads whatever
// attributes hang off the affected tets before the edit, Apply propagates
// them onto the replacement tets after commit. Capture must not mutate
// anything: it may be followed by a rejection, in which case its result is
// discarded.
type Hooks interface {
	Capture(m *Mesh, affected []int) any
	Apply(m *Mesh, cache any, info EditInfo)
}

// NopHooks is the default no-attribute strategy.
type NopHooks struct{}

func (NopHooks) Capture(*Mesh, []int) any   { return nil }
func (NopHooks) Apply(*Mesh, any, EditInfo) {}

// FaceTagHooks carries integer face tags (keyed by sorted vertex triple)
// across edits: surviving faces keep their tag, and split children whose
// face contains the new midpoint vertex inherit the tag of the parent face
// with the midpoint substituted back by either edge endpoint.
type FaceTagHooks struct {
	Tags map[[3]int]int
}

// NewFaceTagHooks builds the strategy with an empty tag table.
func NewFaceTagHooks() *FaceTagHooks {
	return &FaceTagHooks{Tags: make(map[[3]int]int)}
}

func (h *FaceTagHooks) Capture(m *Mesh, affected []int) any {
	cache := make(map[[3]int]int)
	for _, t := range affected {
		for j := 0; j < 4; j++ {
			face := sortedFace(m.Tets[t].Conn, j)
			if tag, ok := h.Tags[face]; ok {
				cache[face] = tag
			}
		}
	}
	return cache
}

func (h *FaceTagHooks) Apply(m *Mesh, cache any, info EditInfo) {
	old, _ := cache.(map[[3]int]int)
	if old == nil {
		return
	}
	for face := range old {
		delete(h.Tags, face)
	}
	for _, t := range info.NewTets {
		for j := 0; j < 4; j++ {
			face := sortedFace(m.Tets[t].Conn, j)
			if tag, ok := old[face]; ok {
				h.Tags[face] = tag
				continue
			}
			if info.NewVert < 0 {
				continue
			}
			if idInTriple(face, info.NewVert) == -1 {
				continue
			}
			// A split child face: the parent face had an edge endpoint
			// where the midpoint now sits.
			for _, end := range [2]int{info.EdgeV0, info.EdgeV1} {
				parent := face
				replaceTriple(&parent, info.NewVert, end)
				if tag, ok := old[sortTriple(parent)]; ok {
					h.Tags[face] = tag
					break
				}
			}
		}
	}
}
