package mesh

import "github.com/google/uuid"

// NodeCoord is a node's position in the q x q mesh. Both axes are 1-based,
// matching the spec's (ni, nj) numbering so boundary checks read as ni == 1,
// ni == q, etc. instead of off-by-one slice arithmetic.
type NodeCoord struct {
	NI, NJ int
}

// InitialValues describes the fixed boundary values on each side of the
// global grid plus the value every interior cell starts at.
type InitialValues[V any] struct {
	North, South, East, West V
	Interior                 V
}

// CellInitializer evaluates the initial value of the global cell at (I, J),
// where I, J range over 0..n+1 (n = q*m). It is derived once from
// InitialValues by newCellInitializer and is not part of the public API --
// applications configure InitialValues, not the function itself.
type CellInitializer[V any] func(I, J int) V

// Transition computes the next value of interior cell (i, j), reading only
// cells within Chebyshev distance 1 of (i, j) in sg. It must be pure and
// must not retain sg past the call.
type Transition[V any] func(sg *Subgrid[V], i, j int) V

// WindowTransition is the bounds-checked counterpart of Transition, used
// when Simulate is configured with WithBoundsChecking(true). See Window.
type WindowTransition[V any] func(w Window[V], i, j int) V

// ApplicationDescriptor is the problem instance supplied to Simulate: the
// boundary/interior values, the pure per-cell transition, and the output
// cadence. The WithBoundsChecking option selects which of Transition or
// WindowTransition is consulted; that one must be set, and the other is
// ignored (it may be set as well).
type ApplicationDescriptor[V any] struct {
	Initial InitialValues[V]

	Transition       Transition[V]
	WindowTransition WindowTransition[V]

	// StepsPerOutput is RELAXATION_STEPS_PER_OUTPUT. Zero means 1.
	StepsPerOutput int
}

func (a ApplicationDescriptor[V]) stepsPerOutput() int {
	if a.StepsPerOutput <= 0 {
		return 1
	}
	return a.StepsPerOutput
}

// OutputRecord is one completed output cycle: the wall-clock time since
// bootstrap and a full copy of the global n x n grid.
type OutputRecord[V any] struct {
	RunID     uuid.UUID
	ElapsedMS int64
	Grid      [][]V
}
