package mesh

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// nodeSnapshot is what a node driver hands to the aggregator once per
// output cycle: its coordinate and an isolated copy of its subgrid.
type nodeSnapshot[V any] struct {
	coord NodeCoord
	sg    *Subgrid[V]
}

// nodeState is the private state of one node driver goroutine. It is
// created once by bootstrap and then owned exclusively by node.run -- no
// field is ever touched from another goroutine except via the channels in
// neighbors and out.
type nodeState[V any] struct {
	coord     NodeCoord
	id        int
	q, m      int
	neighbors neighborSet[V]
	sg        *Subgrid[V]

	app           ApplicationDescriptor[V]
	boundsChecked bool

	clk *vclock

	log     *logger
	tracer  trace.Tracer
	metrics *metricsSet
	runID   string

	out chan<- nodeSnapshot[V]
}

func newNodeState[V any](coord NodeCoord, q, m int, nb neighborSet[V], init CellInitializer[V], app ApplicationDescriptor[V], boundsChecked bool, log *logger, tr trace.Tracer, ms *metricsSet, runID string, out chan<- nodeSnapshot[V]) *nodeState[V] {
	i0 := (coord.NI - 1) * m
	j0 := (coord.NJ - 1) * m
	return &nodeState[V]{
		coord:         coord,
		id:            linearNodeID(q, coord.NI, coord.NJ),
		q:             q,
		m:             m,
		neighbors:     nb,
		sg:            newSubgrid(m, init, i0, j0),
		app:           app,
		boundsChecked: boundsChecked,
		clk:           newVclock(q * q),
		log:           log,
		tracer:        tr,
		metrics:       ms,
		runID:         runID,
		out:           out,
	}
}

// run is the node driver's infinite loop (spec 4.5): emit a snapshot, then
// perform StepsPerOutput relaxation steps, then repeat. It returns when ctx
// is cancelled or a channel operation fails.
func (n *nodeState[V]) run(ctx context.Context) error {
	n.log.infof(n.id, "node (%d,%d) starting", n.coord.NI, n.coord.NJ)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		snap := n.sg.snapshot()
		select {
		case n.out <- nodeSnapshot[V]{coord: n.coord, sg: snap}:
			n.metrics.snapshotEmitted(n.runID)
		case <-ctx.Done():
			return ctx.Err()
		}

		for s := 0; s < n.app.stepsPerOutput(); s++ {
			if err := n.relaxStep(ctx); err != nil {
				return err
			}
		}
	}
}

// relaxStep performs one relaxation step (spec 4.4): exchange+update for
// parity 0, then exchange+update for parity 1.
func (n *nodeState[V]) relaxStep(ctx context.Context) error {
	ctx, span := startRelaxStepSpan(ctx, n.tracer, n.runID, n.coord.NI, n.coord.NJ)
	defer span.End()

	if err := n.exchange(ctx, 0); err != nil {
		return err
	}
	// Snapshot after the parity-0 halo refresh (which only touches ghost
	// cells, never interior) and before either parity pass writes, so both
	// passes read the same pre-step values. See updateParity.
	src := n.sg.snapshot()
	n.updateParity(src, 0)

	if err := n.exchange(ctx, 1); err != nil {
		return err
	}
	n.updateParity(src, 1)

	n.log.debugf(n.id, "relaxation step complete")
	return nil
}
