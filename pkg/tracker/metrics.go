package tracker

import "github.com/zeromicro/go-zero/core/metric"

var trackersDetected = metric.NewCounterVec(&metric.CounterVecOpts{
	Namespace: "plat_mailview",
	Subsystem: "tracker",
	Name:      "detected_total",
	Help:      "Tracking vendors detected across scanned threads",
})
