package mesh

// vclock is a vector clock over the q*q nodes of one run, adapted from the
// teacher's TreadMarks vector timestamp (hivemind.Vclock). There, vector
// clocks ordered lazily-released memory intervals across real network
// nodes; here channel rendezvous already gives correctness for free, so
// vclock is used purely as a causal-ordering aid for debug logging (see
// log.go) -- disabling it changes no simulation outcome.
type vclock struct {
	clock []uint64
}

func newVclock(nrNodes int) *vclock {
	return &vclock{clock: make([]uint64, nrNodes)}
}

// tick increments this node's own entry and returns the new value.
func (vc *vclock) tick(self int) uint64 {
	vc.clock[self]++
	return vc.clock[self]
}

// merge folds another node's clock into this one, taking the elementwise
// maximum, and ticks this node's own entry -- the usual "receive" rule.
func (vc *vclock) merge(self int, other *vclock) {
	for i, v := range other.clock {
		if v > vc.clock[i] {
			vc.clock[i] = v
		}
	}
	vc.clock[self]++
}

// copy returns an independent copy, safe to hand to a logger that may
// outlive the next tick.
func (vc *vclock) copy() *vclock {
	cp := make([]uint64, len(vc.clock))
	copy(cp, vc.clock)
	return &vclock{clock: cp}
}
