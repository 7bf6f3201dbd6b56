// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package tetra

import "math/big"

// RoundVertex attempts to promote vertex v's trusted position from the
// exact rational to the floating-point one. The vertex is tentatively
// marked rounded and every incident tet re-validated; if any would become
// invalid the exact position is restored and the vertex stays unrounded.
// Already-rounded vertices report true.
func (m *Mesh) RoundVertex(v int) bool {
	va := &m.Verts[v]
	if va.Rounded {
		return true
	}

	oldR := va.PosR
	va.Rounded = true
	va.PosR = [3]*big.Rat{}

	for _, t := range m.Conn[v] {
		if !m.validTet(m.Tets[t].Conn) {
			va.Rounded = false
			va.PosR = oldR
			m.Log.Debug("rounding rejected", "v", v)
			return false
		}
	}
	return true
}
