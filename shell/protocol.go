// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package shell

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Oracle decides how the reference primitives tracked by a set of replaced
// faces redistribute over the replacement triangles. Implementations must
// place every candidate on at least one triangle and give every triangle a
// non-empty set, or fail.
type Oracle interface {
	Redistribute(refV []r3.Vec, refF [][3]int, tris [][3]r3.Vec, candidates []int, budget float64) ([][]int, error)
}

// Protocol is the shell synchronization handshake. Attempt is the
// read-only first phase; on success the caller commits the face
// replacement with Cage.Install using the returned tracked sets.
type Protocol struct {
	Oracle Oracle

	// Budget caps how far the oracle may move a primitive that no
	// replacement triangle covers. Negative disables the cap.
	Budget float64
}

// Attempt asks the oracle to redistribute everything tracked by oldFids
// over the replacement mid-layer triangles tris (vertex ids into the cage
// layers). The cage is not modified; on error the edit must be rejected.
func (p Protocol) Attempt(c *Cage, oldFids []int, tris [][3]int) ([][]int, error) {
	candidates := c.TrackUnion(oldFids)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: replaced faces %v", ErrEmptyTrack, oldFids)
	}

	coords := make([][3]r3.Vec, len(tris))
	for i, tri := range tris {
		coords[i] = [3]r3.Vec{c.Mid[tri[0]], c.Mid[tri[1]], c.Mid[tri[2]]}
	}

	tracks, err := p.Oracle.Redistribute(c.RefV, c.RefF, coords, candidates, p.Budget)
	if err != nil {
		return nil, fmt.Errorf("redistribute over faces %v: %w", oldFids, err)
	}
	if len(tracks) != len(tris) {
		return nil, fmt.Errorf("%w: oracle returned %d sets for %d triangles", ErrTrackCount, len(tracks), len(tris))
	}
	for i, set := range tracks {
		if len(set) == 0 {
			return nil, fmt.Errorf("%w: replacement triangle %d", ErrEmptyTrack, i)
		}
	}
	return tracks, nil
}
