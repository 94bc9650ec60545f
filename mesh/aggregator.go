package mesh

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// aggregator collects one subgrid snapshot per node per output cycle,
// stitches the interiors into an n x n global grid, and emits
// {elapsed, grid} records (spec 4.6). It does not deduplicate: correctness
// relies on every node emitting exactly once per cycle before any emits a
// second time, which the node drivers' lock-step loop guarantees.
type aggregator[V any] struct {
	q, m  int
	n     int
	runID uuid.UUID
	start time.Time

	in  <-chan nodeSnapshot[V]
	out chan<- OutputRecord[V]

	log     *logger
	metrics *metricsSet
}

func newAggregator[V any](q, m int, runID uuid.UUID, in <-chan nodeSnapshot[V], out chan<- OutputRecord[V], log *logger, ms *metricsSet) *aggregator[V] {
	return &aggregator[V]{
		q: q, m: m, n: q * m,
		runID: runID,
		start: time.Now(),
		in:    in, out: out,
		log:     log,
		metrics: ms,
	}
}

func (a *aggregator[V]) newGrid() [][]V {
	g := make([][]V, a.n)
	for i := range g {
		g[i] = make([]V, a.n)
	}
	return g
}

// run consumes snapshots until ctx is cancelled or in is closed, emitting
// one OutputRecord per complete batch of q*q snapshots.
func (a *aggregator[V]) run(ctx context.Context) {
	defer close(a.out)

	needed := a.q * a.q
	grid := a.newGrid()
	received := 0

	for {
		var snap nodeSnapshot[V]
		var ok bool
		select {
		case snap, ok = <-a.in:
			if !ok {
				return
			}
		case <-ctx.Done():
			return
		}

		i0 := (snap.coord.NI - 1) * a.m
		j0 := (snap.coord.NJ - 1) * a.m
		dst := make([][]V, a.m)
		for r := range dst {
			dst[r] = grid[i0+r][j0 : j0+a.m]
		}
		snap.sg.interior(dst)
		received++

		a.log.debugf(-1, "aggregator: received snapshot from (%d,%d), %d/%d", snap.coord.NI, snap.coord.NJ, received, needed)

		if received == needed {
			elapsed := time.Since(a.start).Milliseconds()
			out := OutputRecord[V]{RunID: a.runID, ElapsedMS: elapsed, Grid: cloneGrid(grid)}
			a.metrics.outputCycle(a.runID.String(), elapsed)
			a.log.infof(-1, "aggregator: output cycle complete, elapsed=%dms", elapsed)

			select {
			case a.out <- out:
			case <-ctx.Done():
				return
			}
			received = 0
		}
	}
}

func cloneGrid[V any](g [][]V) [][]V {
	cp := make([][]V, len(g))
	for i, row := range g {
		r := make([]V, len(row))
		copy(r, row)
		cp[i] = r
	}
	return cp
}
