// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package pass

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/PeterZs/bichon/geom"
	"github.com/PeterZs/bichon/pkg/logging"
	"github.com/PeterZs/bichon/tetra"
)

// Stats are the per-run accepted-edit counters.
type Stats struct {
	Splits    int
	Collapses int
	EdgeSwaps int
	FaceSwaps int
	Smooths   int
	Rejected  int
}

// Accepted sums the accepted edits.
func (s Stats) Accepted() int {
	return s.Splits + s.Collapses + s.EdgeSwaps + s.FaceSwaps + s.Smooths
}

// Runner schedules refinement passes over one mesh. Not safe for
// concurrent use: the editors mutate shared index structures.
type Runner struct {
	mesh  *tetra.Mesh
	opts  Options
	log   *slog.Logger
	id    uuid.UUID
	stats Stats
}

// NewRunner validates the options and binds them onto the mesh: collapse
// quality bound, shell distortion budget, and the per-edit audit toggle.
func NewRunner(m *tetra.Mesh, opts Options, log *slog.Logger) (*Runner, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Discard()
	}
	r := &Runner{mesh: m, opts: opts, id: uuid.New()}
	r.log = log.With("run", r.id.String())

	m.CollapseThreshold = opts.CollapseQuality
	m.Protocol.Budget = opts.DistortionBudget
	m.Verify = opts.Verify
	return r, nil
}

// Mesh returns the mesh under refinement.
func (r *Runner) Mesh() *tetra.Mesh { return r.mesh }

// Stats returns the counters accumulated so far.
func (r *Runner) Stats() Stats { return r.stats }

// Refine runs MaxPasses rounds of split, collapse, swap, and smooth, then
// compacts the mesh. The context is checked between pass steps.
func (r *Runner) Refine(ctx context.Context) error {
	steps := []struct {
		name string
		run  func() int
	}{
		{"split", r.SplitPass},
		{"collapse", r.CollapsePass},
		{"swap", r.SwapPass},
		{"smooth", r.SmoothPass},
	}
	for p := 0; p < r.opts.MaxPasses; p++ {
		for _, step := range steps {
			if err := ctx.Err(); err != nil {
				return err
			}
			n := step.run()
			r.log.Info("pass step finished", "pass", p, "step", step.name, "accepted", n)
		}
		if r.capped() {
			r.log.Info("operation cap reached", "cap", r.opts.MaxOperations)
			break
		}
	}
	r.mesh.Compact()
	r.observe()
	return ctx.Err()
}

// SplitPass refines every tet above the sizing field, longest edge first.
// Edges of accepted children that are still oversized re-enter the queue.
func (r *Runner) SplitPass() int {
	accepted := 0
	marker := func(t int) bool { return r.tetSizeSq(t) > r.opts.SizingField }
	q := collectEdges(r.mesh, marker, r.edgeLenSq)
	for !r.capped() {
		item, ok := q.next()
		if !ok {
			break
		}
		affected := r.sharedTets(item.v0, item.v1)
		if len(affected) == 0 {
			continue // outdated offer
		}
		oversize := false
		for _, t := range affected {
			if r.tetSizeSq(t) > r.opts.SizingField {
				oversize = true
				break
			}
		}
		if !oversize {
			continue
		}
		before := len(r.mesh.Tets)
		if !r.record("split", r.mesh.SplitEdge(item.v0, item.v1)) {
			continue
		}
		accepted++
		for t := before; t < len(r.mesh.Tets); t++ {
			if r.tetSizeSq(t) <= r.opts.SizingField {
				continue
			}
			for _, e := range tetEdges {
				v0, v1 := r.mesh.Tets[t].Conn[e[0]], r.mesh.Tets[t].Conn[e[1]]
				q.offer(edgeItem{w: r.edgeLenSq(v0, v1), v0: v0, v1: v1})
			}
		}
	}
	return accepted
}

// CollapsePass offers every edge once, shortest first.
func (r *Runner) CollapsePass() int {
	accepted := 0
	q := collectEdges(r.mesh, nil, func(v0, v1 int) float64 { return -r.edgeLenSq(v0, v1) })
	for !r.capped() {
		item, ok := q.next()
		if !ok {
			break
		}
		if len(r.sharedTets(item.v0, item.v1)) == 0 {
			continue
		}
		if r.record("collapse", r.mesh.CollapseEdge(item.v0, item.v1, r.opts.SizingField)) {
			accepted++
		}
	}
	return accepted
}

// SwapPass offers every edge for a 3-2 swap, longest first, then every
// face for a 2-3 swap.
func (r *Runner) SwapPass() int {
	accepted := 0
	eq := collectEdges(r.mesh, nil, r.edgeLenSq)
	for !r.capped() {
		item, ok := eq.next()
		if !ok {
			break
		}
		if len(r.sharedTets(item.v0, item.v1)) == 0 {
			continue
		}
		if r.record("swap_edge", r.mesh.SwapEdge(item.v0, item.v1, r.opts.SizingField)) {
			accepted++
		}
	}
	fq := collectFaces(r.mesh)
	for !r.capped() {
		item, ok := fq.next()
		if !ok {
			break
		}
		span := r.sharedTets(item.v[0], item.v[1])
		if len(intersectSorted(span, r.mesh.Conn[item.v[2]])) == 0 {
			continue
		}
		if r.record("swap_face", r.mesh.SwapFace(item.v[0], item.v[1], item.v[2], r.opts.SizingField)) {
			accepted++
		}
	}
	return accepted
}

// SmoothPass relocates every live vertex once: boundary vertices re-snap
// onto the reference surface, interior vertices move to their one-ring
// centroid.
func (r *Runner) SmoothPass() int {
	accepted := 0
	for v := range r.mesh.Verts {
		if r.capped() {
			break
		}
		if len(r.mesh.Conn[v]) == 0 {
			continue
		}
		kind := tetra.SmoothInterior
		if r.mesh.Verts[v].MidID != -1 {
			kind = tetra.SmoothSurfaceSnap
		}
		if r.record("smooth", r.mesh.SmoothVertex(v, kind, r.opts.SizingField)) {
			accepted++
		}
	}
	return accepted
}

func (r *Runner) record(op string, ok bool) bool {
	if !ok {
		operationsTotal.WithLabelValues(op, "rejected").Inc()
		r.stats.Rejected++
		return false
	}
	operationsTotal.WithLabelValues(op, "accepted").Inc()
	switch op {
	case "split":
		r.stats.Splits++
	case "collapse":
		r.stats.Collapses++
	case "swap_edge":
		r.stats.EdgeSwaps++
	case "swap_face":
		r.stats.FaceSwaps++
	case "smooth":
		r.stats.Smooths++
	}
	return true
}

func (r *Runner) capped() bool {
	return r.opts.MaxOperations > 0 && r.stats.Accepted() >= r.opts.MaxOperations
}

func (r *Runner) observe() {
	verts := 0
	for v := range r.mesh.Verts {
		if len(r.mesh.Conn[v]) > 0 {
			verts++
		}
	}
	tets := 0
	for t := range r.mesh.Tets {
		if !r.mesh.Tets[t].Removed {
			tets++
		}
	}
	liveVerts.Set(float64(verts))
	liveTets.Set(float64(tets))
	r.log.Info("mesh size", "verts", verts, "tets", tets)
}

func (r *Runner) tetSizeSq(t int) float64 {
	conn := r.mesh.Tets[t].Conn
	return geom.CircumradiusSq(
		r.mesh.Verts[conn[0]].Pos,
		r.mesh.Verts[conn[1]].Pos,
		r.mesh.Verts[conn[2]].Pos,
		r.mesh.Verts[conn[3]].Pos)
}

func (r *Runner) edgeLenSq(v0, v1 int) float64 {
	return r3.Norm2(r3.Sub(r.mesh.Verts[v0].Pos, r.mesh.Verts[v1].Pos))
}

func (r *Runner) sharedTets(v0, v1 int) []int {
	return intersectSorted(r.mesh.Conn[v0], r.mesh.Conn[v1])
}

func intersectSorted(a, b []int) []int {
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
