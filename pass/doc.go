// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

// Package pass drives the local mesh editors over whole-mesh candidate
// queues: an edge-split pass toward a sizing field, a shortest-edge-first
// collapse pass, edge and face swap passes, and a vertex smoothing pass.
// Every offer is one-shot; a pass re-enqueues only the elements an
// accepted edit created.
package pass
