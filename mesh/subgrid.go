package mesh

import "fmt"

// Subgrid is one node's local (m+2) x (m+2) cell array. Index 0 and m+1 on
// either axis are the ghost halo; 1..m is the interior. It is owned and
// mutated exclusively by the node goroutine that created it -- no locking
// is needed or provided.
type Subgrid[V any] struct {
	m     int
	cells [][]V
}

func newSubgrid[V any](m int, init CellInitializer[V], i0, j0 int) *Subgrid[V] {
	sg := &Subgrid[V]{m: m, cells: make([][]V, m+2)}
	for i := 0; i <= m+1; i++ {
		row := make([]V, m+2)
		for j := 0; j <= m+1; j++ {
			row[j] = init(i0+i, j0+j)
		}
		sg.cells[i] = row
	}
	return sg
}

// M returns the interior dimension of the subgrid.
func (sg *Subgrid[V]) M() int { return sg.m }

// At returns the cell value at local subgrid index (i, j), i, j in 0..m+1.
func (sg *Subgrid[V]) At(i, j int) V {
	return sg.cells[i][j]
}

// Set stores val at local subgrid index (i, j).
func (sg *Subgrid[V]) Set(i, j int, val V) {
	sg.cells[i][j] = val
}

// snapshot returns an isolated deep copy of the subgrid, safe to hand to the
// aggregator concurrently with further mutation of sg.
func (sg *Subgrid[V]) snapshot() *Subgrid[V] {
	cp := &Subgrid[V]{m: sg.m, cells: make([][]V, len(sg.cells))}
	for i, row := range sg.cells {
		r := make([]V, len(row))
		copy(r, row)
		cp.cells[i] = r
	}
	return cp
}

// interior copies the m x m interior block (indices 1..m) into dst, a
// previously allocated m x m slice, used by the aggregator to stitch
// snapshots into the global grid without re-allocating per cycle.
func (sg *Subgrid[V]) interior(dst [][]V) {
	for i := 1; i <= sg.m; i++ {
		copy(dst[i-1], sg.cells[i][1:sg.m+1])
	}
}

// Window is the bounds-checked view of a Subgrid handed to a
// WindowTransition. At(di, dj) reads the cell at offset (di, dj) from the
// transition's own (i, j), and panics if the offset falls outside
// Chebyshev distance 1 -- the neighborhood invariant 3 in DATA MODEL
// promises transitions never need more than that for a one-cell halo to
// suffice.
type Window[V any] struct {
	sg   *Subgrid[V]
	i, j int
}

func newWindow[V any](sg *Subgrid[V], i, j int) Window[V] {
	return Window[V]{sg: sg, i: i, j: j}
}

// At returns the value at offset (di, dj) from the window's center cell.
// di and dj must each be in {-1, 0, 1}; any other value panics.
func (w Window[V]) At(di, dj int) V {
	if di < -1 || di > 1 || dj < -1 || dj > 1 {
		panic(fmt.Sprintf("meshrelax: transition at (%d,%d) read offset (%d,%d), outside the Chebyshev-1 neighborhood a one-cell halo guarantees", w.i, w.j, di, dj))
	}
	return w.sg.At(w.i+di, w.j+dj)
}

// Center is shorthand for At(0, 0).
func (w Window[V]) Center() V { return w.At(0, 0) }
