package mesh

import "github.com/prometheus/client_golang/prometheus"

// metricsSet bundles the Prometheus collectors one Simulate run registers.
// They are registered against a caller-supplied Registerer (WithMetricsRegisterer)
// so that multiple concurrent runs in one process, or tests, don't collide
// on prometheus.DefaultRegisterer.
type metricsSet struct {
	snapshotsEmitted *prometheus.CounterVec
	outputCycles     *prometheus.CounterVec
	lastElapsedMS    *prometheus.GaugeVec
}

func newMetricsSet(reg prometheus.Registerer, runID string) *metricsSet {
	ms := &metricsSet{
		snapshotsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "meshrelax_snapshots_emitted_total",
			Help: "Number of subgrid snapshots emitted by node drivers to the aggregator.",
		}, []string{"run_id"}),
		outputCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "meshrelax_output_cycles_total",
			Help: "Number of completed output cycles emitted by the aggregator.",
		}, []string{"run_id"}),
		lastElapsedMS: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "meshrelax_last_output_elapsed_ms",
			Help: "Elapsed wall time, in milliseconds, reported with the most recent output cycle.",
		}, []string{"run_id"}),
	}
	if reg != nil {
		reg.MustRegister(ms.snapshotsEmitted, ms.outputCycles, ms.lastElapsedMS)
	}
	return ms
}

func (ms *metricsSet) snapshotEmitted(runID string) {
	if ms == nil {
		return
	}
	ms.snapshotsEmitted.WithLabelValues(runID).Inc()
}

func (ms *metricsSet) outputCycle(runID string, elapsedMS int64) {
	if ms == nil {
		return
	}
	ms.outputCycles.WithLabelValues(runID).Inc()
	ms.lastElapsedMS.WithLabelValues(runID).Set(float64(elapsedMS))
}
