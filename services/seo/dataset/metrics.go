// Copyright (C) 2025 Crawlsight Labs (hello@crawlsight.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// reloadsTotal counts snapshot rebuilds since process start.
	reloadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "crawlsight",
		Subsystem: "dataset",
		Name:      "reloads_total",
		Help:      "Dataset snapshot rebuilds",
	})

	// snapshotRows tracks the row count of the current snapshot.
	snapshotRows = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "crawlsight",
		Subsystem: "dataset",
		Name:      "snapshot_rows",
		Help:      "Rows in the current dataset snapshot",
	})
)

func recordReload(rows int) {
	reloadsTotal.Inc()
	snapshotRows.Set(float64(rows))
}
