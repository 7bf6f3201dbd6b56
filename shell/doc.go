// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

// Package shell maintains the prism cage that couples a tetrahedral mesh
// boundary to a reference surface.
//
// The cage is three parallel triangle layers (top, mid, base) over a shared
// vertex set, plus per-face tracked sets of reference-surface primitives.
// The mid layer is the one the volume mesh boundary must coincide with.
// Faces live in slots: a freed slot keeps its index but is marked with a
// negative first vertex, so face ids handed to the volume mesh stay stable
// between compactions.
//
// Topology editors never write the cage directly. They first run
// Protocol.Attempt, which asks an Oracle to redistribute the tracked
// primitives over the replacement triangles and fails without touching
// anything, then commit with Cage.Install.
package shell
