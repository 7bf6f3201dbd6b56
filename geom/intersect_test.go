// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSegmentTriangle(t *testing.T) {
	t0 := r3.Vec{X: 0, Y: 0, Z: 0}
	t1 := r3.Vec{X: 2, Y: 0, Z: 0}
	t2 := r3.Vec{X: 0, Y: 2, Z: 0}

	t.Run("hit through the interior", func(t *testing.T) {
		p, ok := SegmentTriangle(r3.Vec{X: 0.5, Y: 0.5, Z: 1}, r3.Vec{X: 0.5, Y: 0.5, Z: -1}, t0, t1, t2)
		assert.True(t, ok)
		assert.InDelta(t, 0.5, p.X, 1e-12)
		assert.InDelta(t, 0.5, p.Y, 1e-12)
		assert.InDelta(t, 0.0, p.Z, 1e-12)
	})

	t.Run("segment stops short of the plane", func(t *testing.T) {
		_, ok := SegmentTriangle(r3.Vec{X: 0.5, Y: 0.5, Z: 2}, r3.Vec{X: 0.5, Y: 0.5, Z: 1}, t0, t1, t2)
		assert.False(t, ok)
	})

	t.Run("misses outside the triangle", func(t *testing.T) {
		_, ok := SegmentTriangle(r3.Vec{X: 3, Y: 3, Z: 1}, r3.Vec{X: 3, Y: 3, Z: -1}, t0, t1, t2)
		assert.False(t, ok)
	})

	t.Run("parallel to the plane", func(t *testing.T) {
		_, ok := SegmentTriangle(r3.Vec{X: 0, Y: 0, Z: 1}, r3.Vec{X: 1, Y: 1, Z: 1}, t0, t1, t2)
		assert.False(t, ok)
	})
}

func TestTriangleAABB(t *testing.T) {
	min, max := TriangleAABB(r3.Vec{X: 1, Y: -2, Z: 0}, r3.Vec{X: -1, Y: 4, Z: 2}, r3.Vec{X: 0, Y: 0, Z: -3})
	assert.Equal(t, r3.Vec{X: -1, Y: -2, Z: -3}, min)
	assert.Equal(t, r3.Vec{X: 1, Y: 4, Z: 2}, max)
}
