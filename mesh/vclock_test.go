package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVclockTickIncrementsOwnEntry(t *testing.T) {
	vc := newVclock(3)

	assert.EqualValues(t, 1, vc.tick(1))
	assert.EqualValues(t, 2, vc.tick(1))
	assert.EqualValues(t, []uint64{0, 2, 0}, vc.clock)
}

func TestVclockMergeTakesElementwiseMaxThenTicks(t *testing.T) {
	a := newVclock(3)
	a.clock = []uint64{10, 3, 7}

	b := newVclock(3)
	b.clock = []uint64{2, 9, 7}

	a.merge(0, b)

	assert.EqualValues(t, []uint64{11, 9, 7}, a.clock)
}

func TestVclockCopyIsIndependent(t *testing.T) {
	a := newVclock(2)
	a.clock = []uint64{5, 6}

	cp := a.copy()
	a.tick(0)

	assert.EqualValues(t, []uint64{5, 6}, cp.clock)
	assert.EqualValues(t, []uint64{6, 6}, a.clock)
}
