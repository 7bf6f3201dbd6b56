// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

// Package geom is the default geometry kernel for the mesh-editing engine.
//
// The engine consumes the kernel through small interfaces (tetra.Kernel,
// shell.Oracle); this package provides a floating-point implementation with
// an exact rational fallback for the shape energy. Callers with a robust
// predicate library can substitute their own kernel.
//
// Conventions:
//   - A tetrahedron (p0, p1, p2, p3) is valid when the signed volume of
//     (p1-p0, p2-p0, p3-p0) is strictly positive.
//   - The shape energy is conformal AMIPS in its cubed form: a regular
//     tetrahedron scores 27 and larger is worse. Degenerate, inverted, or
//     numerically unusable elements score InvalidEnergy.
package geom
