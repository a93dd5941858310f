package location

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IngestEffectFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_effect_failures_total",
			Help: "Total number of failed downstream ingest effects",
		},
		[]string{"effect"},
	)

	IngestEffectPanicsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_effect_panics_total",
			Help: "Total number of recovered panics in downstream ingest effects",
		},
		[]string{"effect"},
	)
)
