package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Application counters scraped via the /metrics server.
var (
	LinksIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "medialink_stream_links_issued_total",
		Help: "Number of streaming links issued.",
	})

	LinksResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "medialink_stream_links_resolved_total",
		Help: "Streaming link redemptions by outcome.",
	}, []string{"outcome"})

	ViewsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "medialink_views_recorded_total",
		Help: "Number of view events appended.",
	})
)
