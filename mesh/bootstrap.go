package mesh

import (
	"sync"

	"github.com/google/uuid"
)

// Simulate builds the channel mesh, spawns q*q node drivers wired to their
// neighbor endpoints, and returns the aggregator's output channel (spec
// 4.7). It validates q, m and the application descriptor first and returns
// a non-nil *InvalidConfiguration without spawning anything if they fail.
//
// The returned channel is closed when the run's context (see WithContext)
// is cancelled. With no WithContext option, the simulation runs until the
// caller stops reading from it and the process exits -- there is no other
// way to stop a mesh simulation, matching the core's fail-stop model.
func Simulate[V any](q, m int, app ApplicationDescriptor[V], opts ...Option) (<-chan OutputRecord[V], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := validateDimensions(q, m); err != nil {
		return nil, err
	}
	if err := validateDescriptor(app, cfg.boundsChecked); err != nil {
		return nil, err
	}

	runID := uuid.New()
	n := q * m
	init := newCellInitializer(app.Initial, n)

	cm := newChannelMesh[V](q)
	snapshots := make(chan nodeSnapshot[V])
	records := make(chan OutputRecord[V])

	log := newLogger(cfg.logLevel, runID.String(), q*q, cfg.causalLog)
	metrics := newMetricsSet(cfg.metricsReg, runID.String())
	tracer := tracerFor(cfg.tracerProvider)

	// The logger is closed only after the aggregator and every node driver
	// have returned, so no goroutine logs into a closed logger.
	var nodes sync.WaitGroup
	nodes.Add(q * q)

	agg := newAggregator[V](q, m, runID, snapshots, records, log, metrics)
	go func() {
		agg.run(cfg.ctx)
		nodes.Wait()
		log.close()
	}()

	for ni := 1; ni <= q; ni++ {
		for nj := 1; nj <= q; nj++ {
			coord := NodeCoord{NI: ni, NJ: nj}
			nb := cm.neighbors(ni, nj)
			node := newNodeState[V](coord, q, m, nb, init, app, cfg.boundsChecked, log, tracer, metrics, runID.String(), snapshots)
			go func() {
				defer nodes.Done()
				if err := node.run(cfg.ctx); err != nil {
					log.errorf(node.id, "node (%d,%d) stopped: %v", node.coord.NI, node.coord.NJ, err)
				}
			}()
		}
	}

	return records, nil
}

// newCellInitializer derives the CellInitializer from InitialValues, per
// spec 4.2: the boundary value on whichever outer edge (I, J) falls on, or
// Interior otherwise.
func newCellInitializer[V any](iv InitialValues[V], n int) CellInitializer[V] {
	return func(I, J int) V {
		switch {
		case I == 0:
			return iv.North
		case I == n+1:
			return iv.South
		case J == 0:
			return iv.West
		case J == n+1:
			return iv.East
		default:
			return iv.Interior
		}
	}
}
