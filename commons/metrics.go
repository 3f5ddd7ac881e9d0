// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ResolveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "apn_resolve_total",
		Help: "APN resolutions by matched key kind.",
	}, []string{"match"})

	ReportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "apn_reports_total",
		Help: "Outbound APN report attempts by outcome.",
	}, []string{"result"})

	ReportsReceivedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "apn_reports_received_total",
		Help: "APN reports accepted by the collector endpoint.",
	})
)
