// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSignedVolume6(t *testing.T) {
	p0 := r3.Vec{}
	p1 := r3.Vec{X: 1}
	p2 := r3.Vec{Y: 1}
	p3 := r3.Vec{Z: 1}

	assert.InDelta(t, 1.0, SignedVolume6(p0, p1, p2, p3), 1e-15)
	assert.InDelta(t, -1.0, SignedVolume6(p0, p2, p1, p3), 1e-15)
}

func TestValid(t *testing.T) {
	p0 := r3.Vec{}
	p1 := r3.Vec{X: 1}
	p2 := r3.Vec{Y: 1}
	p3 := r3.Vec{Z: 1}

	assert.True(t, Valid(p0, p1, p2, p3))
	assert.False(t, Valid(p0, p2, p1, p3), "inverted")
	assert.False(t, Valid(p0, p1, p2, r3.Vec{X: 0.5, Y: 0.5}), "coplanar")
}

func TestCircumradiusSq(t *testing.T) {
	t.Run("corner tetrahedron", func(t *testing.T) {
		// Circumcenter of (0, e1, e2, e3) is (1/2, 1/2, 1/2).
		got := CircumradiusSq(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{Z: 1})
		assert.InDelta(t, 0.75, got, 1e-12)
	})

	t.Run("regular tetrahedron", func(t *testing.T) {
		p := regularTet()
		got := CircumradiusSq(p[0], p[1], p[2], p[3])
		assert.InDelta(t, 3.0/8.0, got, 1e-12)
	})

	t.Run("degenerate reports infinite", func(t *testing.T) {
		got := CircumradiusSq(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{X: 2}, r3.Vec{X: 3})
		assert.True(t, math.IsInf(got, 1))
	})
}
