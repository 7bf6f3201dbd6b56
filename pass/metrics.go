// Copyright (C) 2026 The bichon authors
// Use of this source code is governed by the MIT license
// found in the LICENSE file.

package pass

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// operationsTotal counts editor offers by operation and outcome.
	// Labels: op is one of "split", "collapse", "swap_edge", "swap_face",
	// "smooth"; outcome is "accepted" or "rejected".
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bichon_operations_total",
		Help: "Editor offers by operation and outcome",
	}, []string{"op", "outcome"})

	liveVerts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bichon_live_vertices",
		Help: "Vertices with at least one incident tetrahedron",
	})

	liveTets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bichon_live_tetrahedra",
		Help: "Non-removed tetrahedra",
	})
)
