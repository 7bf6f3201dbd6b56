// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package tetra

import (
	"errors"
	"fmt"
)

var (
	// ErrVertexCount is returned by Prepare when the shell-id slice does
	// not match the vertex count.
	ErrVertexCount = errors.New("shell-id count does not match vertex count")

	// ErrVertexRange is returned by Prepare when a tetrahedron references
	// a vertex that does not exist.
	ErrVertexRange = errors.New("tetrahedron vertex out of range")

	// ErrTagMismatch is returned by Prepare when the derived boundary tags
	// do not cover the cage faces one to one.
	ErrTagMismatch = errors.New("boundary tags do not match cage faces")

	// ErrMidPosition is returned by Prepare when a boundary vertex
	// disagrees with its cage mid-layer position.
	ErrMidPosition = errors.New("boundary vertex position differs from cage mid layer")
)

// ConsistencyError reports a violated cross-structure invariant. It is
// produced by Sanity and by the connectivity rewrite, and editors panic
// with it after an accepted edit: by then the mesh is corrupt and
// continuing risks silent data loss.
type ConsistencyError struct {
	Check  string
	Detail string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("mesh consistency: %s: %s", e.Check, e.Detail)
}

func consistency(check, format string, args ...any) *ConsistencyError {
	return &ConsistencyError{Check: check, Detail: fmt.Sprintf(format, args...)}
}
