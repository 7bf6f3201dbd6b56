// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package shell

import "errors"

var (
	// ErrLayerSize is returned when the top, mid, and base layers disagree
	// on vertex count.
	ErrLayerSize = errors.New("shell layers have mismatched vertex counts")

	// ErrFaceRange is returned when a cage face references a vertex or a
	// tracked set references a reference primitive that does not exist.
	ErrFaceRange = errors.New("shell face reference out of range")

	// ErrEmptyTrack is returned when a live cage face tracks no reference
	// primitives.
	ErrEmptyTrack = errors.New("live shell face tracks nothing")

	// ErrTrackCount is returned when an install or attempt is given
	// mismatched triangle and tracked-set slices.
	ErrTrackCount = errors.New("triangle and tracked-set counts differ")
)
