package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RecordOps counts record operations by op (list/create/update/delete) and
// outcome (ok/not_found/error).
var RecordOps = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "attendsheet_record_ops_total",
	Help: "Attendance record operations by op and outcome.",
}, []string{"op", "outcome"})

// CacheHits counts redis record-cache hits and misses.
var CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "attendsheet_record_cache_total",
	Help: "Record list cache lookups by result.",
}, []string{"result"})
