// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

// Package tetra is the local-operation engine for tetrahedral volume meshes
// whose boundary is coupled to a prism-cage shell (package shell).
//
// The mesh is stored as flat index arrays: vertex attributes, tetrahedron
// attributes, and a vertex-to-incident-tets adjacency index. Tetrahedra are
// never physically removed during editing; a Removed flag marks logical
// deletion and Compact reclaims slots afterwards. This makes every editor a
// local transaction: rejection rolls back by truncating freshly appended
// slots and restoring a handful of scalars, so a failed edit leaves the
// mesh byte-identical.
//
// Four topology editors form the public surface: SplitEdge, CollapseEdge,
// SwapEdge (3 tets to 2) and SwapFace (2 tets to 3), plus SmoothVertex and
// RoundVertex. Each returns false on rejection; rejections are expected and
// frequent, the driver simply tries another candidate. A detected
// consistency violation after an accepted edit is not a rejection: it is
// corruption, reported by panicking with a *ConsistencyError.
//
// When an edit rewrites boundary faces, the editor funnels through the
// shell synchronization protocol before committing, so the volume mesh and
// the cage move in lockstep or not at all.
package tetra
