// Package metrics registers the Prometheus instrumentation around block
// validation, succession checking, and interlink computation, mirroring the
// teacher's per-package metrics.go convention (promauto, sync.Once init,
// "teranode"-style namespace/subsystem tagging).
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BlockVerify         prometheus.Histogram
	BlockIsSuccessorOf  prometheus.Histogram
	BlockNextInterlink  prometheus.Histogram
	BlockVerifyFailures prometheus.Counter
)

var initOnce sync.Once

func init() {
	Init()
}

// Init registers the metrics exactly once; safe to call from multiple
// package inits or from tests.
func Init() {
	initOnce.Do(register)
}

// Timer observes the elapsed time since it was created into a Histogram
// when ObserveDuration is called, in the style of prometheus.NewTimer.
type Timer struct {
	started time.Time
	hist    prometheus.Histogram
}

// NewTimer starts a timer against hist.
func NewTimer(hist prometheus.Histogram) *Timer {
	return &Timer{started: time.Now(), hist: hist}
}

// ObserveDuration records the elapsed time since NewTimer.
func (t *Timer) ObserveDuration() {
	t.hist.Observe(time.Since(t.started).Seconds())
}

func register() {
	BlockVerify = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "nodecore",
		Subsystem: "block",
		Name:      "verify_seconds",
		Help:      "Histogram of time spent in Block.Verify",
		Buckets:   prometheus.DefBuckets,
	})

	BlockIsSuccessorOf = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "nodecore",
		Subsystem: "block",
		Name:      "is_successor_of_seconds",
		Help:      "Histogram of time spent in Block.IsSuccessorOf",
		Buckets:   prometheus.DefBuckets,
	})

	BlockNextInterlink = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "nodecore",
		Subsystem: "block",
		Name:      "next_interlink_seconds",
		Help:      "Histogram of time spent computing the next interlink",
		Buckets:   prometheus.DefBuckets,
	})

	BlockVerifyFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "nodecore",
		Subsystem: "block",
		Name:      "verify_failures_total",
		Help:      "Number of blocks that failed Block.Verify",
	})
}
