package render

import "github.com/zeromicro/go-zero/core/metric"

var (
	renderDuration = metric.NewHistogramVec(&metric.HistogramVecOpts{
		Namespace: "plat_mailview",
		Subsystem: "render",
		Name:      "duration_seconds",
		Help:      "Message render pipeline duration in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5},
	})

	renderCompleted = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: "plat_mailview",
		Subsystem: "render",
		Name:      "completed_total",
		Help:      "Completed message renders",
		Labels:    []string{"kind"},
	})

	renderPanics = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: "plat_mailview",
		Subsystem: "render",
		Name:      "panics_total",
		Help:      "Recovered panics in scheduling passes",
	})

	cacheHits = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: "plat_mailview",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Render cache hits",
	})

	cacheMisses = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: "plat_mailview",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Render cache misses",
	})
)
