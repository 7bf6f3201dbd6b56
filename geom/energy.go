// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package geom

import (
	"math"
	"math/big"

	"gonum.org/v1/gonum/spatial/r3"
)

// InvalidEnergy is the sentinel shape energy for degenerate, inverted, or
// numerically unusable tetrahedra. It is large but finite so that quality
// comparisons stay total-ordered instead of propagating NaN/Inf.
const InvalidEnergy = 1e50

// minEnergy is the cubed AMIPS score of a regular tetrahedron, minus a
// tolerance. Energies below it can only arise from numerical breakdown.
const minEnergy = 27 - 1e-3

// The energy is tr(Fᵀ F)³ / (2 det(E)²) where F = E·M⁻¹ maps the regular
// reference tetrahedron onto the element and E is the element's edge
// matrix. tr(Fᵀ F) reduces to tr(Eᵀ E G⁻¹) with G the reference Gram
// matrix (unit diagonal, 1/2 off-diagonal), so the whole expression is a
// rational function of the vertex coordinates: G⁻¹ has diagonal 3/2 and
// off-diagonal -1/2, and det(G) = 1/2.
const (
	gramInvDiag = 1.5
	gramInvOff  = -0.5
)

// Energy returns the cubed conformal AMIPS energy of the tetrahedron.
// Higher is worse; a regular tetrahedron scores 27. Inverted or degenerate
// elements and non-finite results score InvalidEnergy.
func Energy(p0, p1, p2, p3 r3.Vec) float64 {
	e1 := r3.Sub(p1, p0)
	e2 := r3.Sub(p2, p0)
	e3 := r3.Sub(p3, p0)

	d := det3(e1, e2, e3)
	if d <= 0 {
		return InvalidEnergy
	}

	// tr(Eᵀ E G⁻¹): diagonal entries are the squared edge lengths, the
	// off-diagonal entries are the pairwise dots, each taken twice.
	tr := gramInvDiag*(r3.Dot(e1, e1)+r3.Dot(e2, e2)+r3.Dot(e3, e3)) +
		2*gramInvOff*(r3.Dot(e1, e2)+r3.Dot(e1, e3)+r3.Dot(e2, e3))

	energy := tr * tr * tr / (2 * d * d)
	return clampEnergy(energy)
}

// EnergyRational evaluates the same cubed AMIPS energy with exact rational
// arithmetic. T holds the four vertices in row-major order (x0, y0, z0,
// x1, ...). Used by the engine when any vertex of the element still carries
// an untrusted floating-point position.
func EnergyRational(T [12]*big.Rat) float64 {
	var e [3][3]big.Rat
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			e[i][k].Sub(T[(i+1)*3+k], T[k])
		}
	}

	dot := func(a, b *[3]big.Rat) *big.Rat {
		sum := new(big.Rat)
		tmp := new(big.Rat)
		for k := 0; k < 3; k++ {
			sum.Add(sum, tmp.Mul(&a[k], &b[k]))
		}
		return sum
	}

	d := ratDet3(&e[0], &e[1], &e[2])
	if d.Sign() <= 0 {
		return InvalidEnergy
	}

	// tr = 3/2 * (|e1|² + |e2|² + |e3|²) - (e1·e2 + e1·e3 + e2·e3)
	tr := new(big.Rat)
	tr.Add(tr, dot(&e[0], &e[0]))
	tr.Add(tr, dot(&e[1], &e[1]))
	tr.Add(tr, dot(&e[2], &e[2]))
	tr.Mul(tr, big.NewRat(3, 2))
	tr.Sub(tr, dot(&e[0], &e[1]))
	tr.Sub(tr, dot(&e[0], &e[2]))
	tr.Sub(tr, dot(&e[1], &e[2]))

	num := new(big.Rat).Mul(tr, tr)
	num.Mul(num, tr)
	den := new(big.Rat).Mul(d, d)
	den.Mul(den, big.NewRat(2, 1))

	energy, _ := new(big.Rat).Quo(num, den).Float64()
	return clampEnergy(energy)
}

// ratDet3 returns the determinant of the 3x3 rational matrix with rows
// a, b, c.
func ratDet3(a, b, c *[3]big.Rat) *big.Rat {
	m := func(x, y *big.Rat) *big.Rat { return new(big.Rat).Mul(x, y) }
	t0 := new(big.Rat).Sub(m(&b[1], &c[2]), m(&b[2], &c[1]))
	t1 := new(big.Rat).Sub(m(&b[0], &c[2]), m(&b[2], &c[0]))
	t2 := new(big.Rat).Sub(m(&b[0], &c[1]), m(&b[1], &c[0]))
	d := new(big.Rat).Mul(&a[0], t0)
	d.Sub(d, m(&a[1], t1))
	d.Add(d, m(&a[2], t2))
	return d
}

// RatOrient3D returns the sign of six times the signed volume of the
// tetrahedron whose vertices are given in row-major rational coordinates.
func RatOrient3D(T [12]*big.Rat) int {
	var e [3][3]big.Rat
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			e[i][k].Sub(T[(i+1)*3+k], T[k])
		}
	}
	return ratDet3(&e[0], &e[1], &e[2]).Sign()
}

func clampEnergy(energy float64) float64 {
	if math.IsNaN(energy) || math.IsInf(energy, 0) || energy < minEnergy {
		return InvalidEnergy
	}
	return energy
}
