package mesh

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPhaseIndicesCoverEachIndexExactlyOnce is scenario S4:
// for m=4, the union of phase 1 and phase 2 indices equals {1..m} for both
// parities, with no overlap between the phases.
func TestPhaseIndicesCoverEachIndexExactlyOnce(t *testing.T) {
	cases := []struct {
		parity       int
		wantPhase1   []int
		wantPhase2   []int
	}{
		{parity: 0, wantPhase1: []int{2, 4}, wantPhase2: []int{1, 3}},
		{parity: 1, wantPhase1: []int{1, 3}, wantPhase2: []int{2, 4}},
	}

	for _, c := range cases {
		p1 := phaseIndices(1, c.parity, 4)
		p2 := phaseIndices(2, c.parity, 4)

		assert.Equal(t, c.wantPhase1, p1)
		assert.Equal(t, c.wantPhase2, p2)

		union := append(append([]int{}, p1...), p2...)
		sort.Ints(union)
		assert.Equal(t, []int{1, 2, 3, 4}, union)
	}
}
