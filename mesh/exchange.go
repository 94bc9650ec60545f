package mesh

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ctxSend sends val on ch, or returns ctx.Err() if ctx is cancelled first.
func ctxSend[V any](ctx context.Context, ch chan V, val V) error {
	select {
	case ch <- val:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ctxRecv receives from ch, or returns ctx.Err() if ctx is cancelled first.
func ctxRecv[V any](ctx context.Context, ch chan V) (V, error) {
	select {
	case v := <-ch:
		return v, nil
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// exchange refreshes n.sg's ghost cells for the relaxation sub-step about
// to compute parity p, per EXCHANGE PROTOCOL (spec 4.3). Phase 1 covers
// k = 2-p, 4-p, ..., m-p; phase 2 covers k = 1+p, 3+p, ..., m-1+p. Each k
// within a phase runs its four directional sub-tasks concurrently via an
// errgroup and the node does not advance to k+2 until all four join.
func (n *nodeState[V]) exchange(ctx context.Context, parity int) error {
	if err := n.phase(ctx, 1, parity); err != nil {
		return fmt.Errorf("node (%d,%d): exchange phase 1: %w", n.coord.NI, n.coord.NJ, err)
	}
	if err := n.phase(ctx, 2, parity); err != nil {
		return fmt.Errorf("node (%d,%d): exchange phase 2: %w", n.coord.NI, n.coord.NJ, err)
	}
	return nil
}

func (n *nodeState[V]) phase(ctx context.Context, phase, parity int) error {
	ctx, span := startExchangePhaseSpan(ctx, n.tracer, phase, parity)
	defer span.End()

	for _, k := range phaseIndices(phase, parity, n.m) {
		if err := n.subExchange(ctx, phase, k); err != nil {
			return err
		}
	}
	return nil
}

// phaseIndices computes the stride-2 index range for one phase of one
// exchange, per spec 4.3.2: phase 1 covers k = 2-p, 4-p, ..., m-p; phase 2
// covers k = 1+p, 3+p, ..., m-1+p. Factored out of phase so the coverage
// property (their union is exactly 1..m) is directly testable.
func phaseIndices(phase, parity, m int) []int {
	var ks []int
	if phase == 1 {
		for k := 2 - parity; k <= m-parity; k += 2 {
			ks = append(ks, k)
		}
	} else {
		for k := 1 + parity; k <= m-1+parity; k += 2 {
			ks = append(ks, k)
		}
	}
	return ks
}

// subExchange runs the (up to) four directional sub-tasks for a single
// index k within a single phase, per spec 4.3.1, and joins all of them
// before returning.
func (n *nodeState[V]) subExchange(ctx context.Context, phase, k int) error {
	g, gctx := errgroup.WithContext(ctx)
	nb := n.neighbors

	if phase == 1 {
		if nb.north != nil {
			g.Go(func() error {
				v, err := ctxRecv(gctx, nb.north)
				if err != nil {
					return err
				}
				n.sg.Set(0, k, v)
				n.log.msgf(n.id, "phase1[k=%d] recv north", k)
				return nil
			})
		}
		if nb.south != nil {
			g.Go(func() error {
				n.log.msgf(n.id, "phase1[k=%d] send south", k)
				return ctxSend(gctx, nb.south, n.sg.At(n.m, k))
			})
		}
		if nb.east != nil {
			g.Go(func() error {
				n.log.msgf(n.id, "phase1[k=%d] send east", k)
				return ctxSend(gctx, nb.east, n.sg.At(k, n.m))
			})
		}
		if nb.west != nil {
			g.Go(func() error {
				v, err := ctxRecv(gctx, nb.west)
				if err != nil {
					return err
				}
				n.sg.Set(k, 0, v)
				n.log.msgf(n.id, "phase1[k=%d] recv west", k)
				return nil
			})
		}
	} else {
		if nb.north != nil {
			g.Go(func() error {
				n.log.msgf(n.id, "phase2[k=%d] send north", k)
				return ctxSend(gctx, nb.north, n.sg.At(1, k))
			})
		}
		if nb.south != nil {
			g.Go(func() error {
				v, err := ctxRecv(gctx, nb.south)
				if err != nil {
					return err
				}
				n.sg.Set(n.m+1, k, v)
				n.log.msgf(n.id, "phase2[k=%d] recv south", k)
				return nil
			})
		}
		if nb.east != nil {
			g.Go(func() error {
				v, err := ctxRecv(gctx, nb.east)
				if err != nil {
					return err
				}
				n.sg.Set(k, n.m+1, v)
				n.log.msgf(n.id, "phase2[k=%d] recv east", k)
				return nil
			})
		}
		if nb.west != nil {
			g.Go(func() error {
				n.log.msgf(n.id, "phase2[k=%d] send west", k)
				return ctxSend(gctx, nb.west, n.sg.At(k, 1))
			})
		}
	}

	if err := g.Wait(); err != nil {
		return err
	}
	tick := n.clk.tick(n.id)
	n.log.causalEvent(n.id, fmt.Sprintf("exchange phase=%d k=%d clock=%d", phase, k, tick))
	return nil
}
