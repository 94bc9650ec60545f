package mesh

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constant7(sg *Subgrid[int], i, j int) int { return 7 }

func identity(sg *Subgrid[int], i, j int) int { return sg.At(i, j) }

func avgOrthogonal(sg *Subgrid[float64], i, j int) float64 {
	return (sg.At(i-1, j) + sg.At(i+1, j) + sg.At(i, j-1) + sg.At(i, j+1)) / 4
}

// TestSimulateRejectsInvalidDimensions covers the q <= 0 / m <= 0 / m odd
// validation failures from ERROR HANDLING DESIGN.
func TestSimulateRejectsInvalidDimensions(t *testing.T) {
	app := ApplicationDescriptor[int]{Transition: identity}

	_, err := Simulate(0, 2, app)
	require.Error(t, err)

	_, err = Simulate(2, 0, app)
	require.Error(t, err)

	_, err = Simulate(2, 3, app)
	require.Error(t, err)

	var ic *InvalidConfiguration
	require.ErrorAs(t, err, &ic)
}

// TestSimulateConstantFieldS1 is scenario S1: q=2, m=2, all boundaries and
// interior = 7, transition always returns 7. The first emitted grid is the
// 4x4 all-7 matrix, and every subsequent emission is identical.
func TestSimulateConstantFieldS1(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := ApplicationDescriptor[int]{
		Initial:    InitialValues[int]{North: 7, South: 7, East: 7, West: 7, Interior: 7},
		Transition: constant7,
	}

	out, err := Simulate(2, 2, app, WithContext(ctx))
	require.NoError(t, err)

	for cycle := 0; cycle < 3; cycle++ {
		rec := recvOrFail(t, out)
		require.Len(t, rec.Grid, 4)
		for _, row := range rec.Grid {
			require.Len(t, row, 4)
			for _, v := range row {
				assert.Equal(t, 7, v)
			}
		}
	}
}

// TestSimulateBoundaryPropagationS2 is scenario S2: q=1, m=2, north=1,
// south=east=west=interior=0, transition = average of orthogonal
// neighbors. After 1 relaxation step the 2x2 interior equals
// [[0.25, 0.25], [0, 0]].
func TestSimulateBoundaryPropagationS2(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := ApplicationDescriptor[float64]{
		Initial:    InitialValues[float64]{North: 1, South: 0, East: 0, West: 0, Interior: 0},
		Transition: avgOrthogonal,
	}

	out, err := Simulate(1, 2, app, WithContext(ctx))
	require.NoError(t, err)

	// The first record is the initial grid, emitted before any relaxation
	// step; the second is the grid after one step.
	recvOrFail(t, out)
	rec := recvOrFail(t, out)
	require.Len(t, rec.Grid, 2)
	assert.InDelta(t, 0.25, rec.Grid[0][0], 1e-9)
	assert.InDelta(t, 0.25, rec.Grid[0][1], 1e-9)
	assert.InDelta(t, 0, rec.Grid[1][0], 1e-9)
	assert.InDelta(t, 0, rec.Grid[1][1], 1e-9)
}

// TestExchangeSyncsNeighborGhostsS3 is scenario S3: q=2, m=2, node (1,1)
// starts with interior value A and node (1,2) with interior value B, A != B.
// With identity transition, after one relaxation step node (1,1)'s east
// ghost column equals B and node (1,2)'s west ghost column equals A. This
// drives nodeState.exchange directly (package-internal) because the public
// Simulate API only surfaces interiors through the aggregated grid, never
// halos -- by design, per DATA MODEL.
func TestExchangeSyncsNeighborGhostsS3(t *testing.T) {
	const a, b = 11, 22

	// Two nodes, east/west adjacent only -- no north/south neighbors, so
	// the only traffic is across the single shared link under test.
	link := make(chan int)
	log := newLogger(LevelNone, "test", 2, false)

	left := newNodeState[int](NodeCoord{NI: 1, NJ: 1}, 2, 2, neighborSet[int]{east: link},
		func(I, J int) int { return a }, ApplicationDescriptor[int]{Transition: identity}, false, log, tracerFor(nil), newMetricsSet(nil, "t"), "t", nil)
	right := newNodeState[int](NodeCoord{NI: 1, NJ: 2}, 2, 2, neighborSet[int]{west: link},
		func(I, J int) int { return b }, ApplicationDescriptor[int]{Transition: identity}, false, log, tracerFor(nil), newMetricsSet(nil, "t"), "t", nil)

	ctx := context.Background()
	errs := make(chan error, 2)
	go func() { errs <- left.exchange(ctx, 0) }()
	go func() { errs <- right.exchange(ctx, 0) }()
	require.NoError(t, <-errs)
	require.NoError(t, <-errs)
	go func() { errs <- left.exchange(ctx, 1) }()
	go func() { errs <- right.exchange(ctx, 1) }()
	require.NoError(t, <-errs)
	require.NoError(t, <-errs)

	for k := 1; k <= 2; k++ {
		assert.Equal(t, b, left.sg.At(k, left.m+1), "left node's east ghost row %d", k)
		assert.Equal(t, a, right.sg.At(k, 0), "right node's west ghost row %d", k)
	}
}

// TestSimulateAggregatorBatchingS6 is scenario S6: with StepsPerOutput=1 and
// an identity transition, elapsed_ms is non-decreasing and every emitted
// grid equals its predecessor.
func TestSimulateAggregatorBatchingS6(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := ApplicationDescriptor[int]{
		Initial:    InitialValues[int]{North: 3, South: 3, East: 3, West: 3, Interior: 3},
		Transition: identity,
	}

	out, err := Simulate(2, 2, app, WithContext(ctx))
	require.NoError(t, err)

	var prev *OutputRecord[int]
	var prevElapsed int64
	for cycle := 0; cycle < 4; cycle++ {
		rec := recvOrFail(t, out)
		assert.GreaterOrEqual(t, rec.ElapsedMS, prevElapsed)
		prevElapsed = rec.ElapsedMS
		if prev != nil {
			assert.Equal(t, prev.Grid, rec.Grid)
		}
		r := rec
		prev = &r
	}
}

// TestSimulateStressManyNodesS5 is a bounded version of scenario S5:
// q=4, m=4 must complete 20 output cycles without any single receive
// blocking longer than a generous timeout, i.e. without deadlocking.
func TestSimulateStressManyNodesS5(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress scenario in -short mode")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := ApplicationDescriptor[float64]{
		Initial:    InitialValues[float64]{North: 1, South: 0, East: 0, West: 0, Interior: 0},
		Transition: avgOrthogonal,
	}

	out, err := Simulate(4, 4, app, WithContext(ctx))
	require.NoError(t, err)

	for cycle := 0; cycle < 20; cycle++ {
		recvOrFail(t, out)
	}
}

// TestSimulateStopsOnContextCancellation exercises the cancellation
// contract from CONCURRENCY & RESOURCE MODEL: cancelling ctx closes the
// output channel.
func TestSimulateStopsOnContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	app := ApplicationDescriptor[int]{Transition: identity}
	out, err := Simulate(2, 2, app, WithContext(ctx))
	require.NoError(t, err)

	recvOrFail(t, out)
	cancel()

	select {
	case _, ok := <-out:
		if ok {
			// a record already in flight is acceptable; drain until close
			for ok {
				_, ok = <-out
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("output channel did not close after context cancellation")
	}
}

func recvOrFail[V any](t *testing.T, ch <-chan OutputRecord[V]) OutputRecord[V] {
	t.Helper()
	select {
	case rec, ok := <-ch:
		if !ok {
			t.Fatal("output channel closed unexpectedly")
		}
		return rec
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for output record")
	}
	panic("unreachable")
}
