package mesh

import "fmt"

// updateParity applies the transition function to every interior cell of
// parity p, per spec 4.4. All reads for this relaxation step's two parity
// passes come from src, a snapshot taken once per step right after the
// parity-0 exchange (before either pass writes anything): the transition at a parity-p cell
// only ever reads parity-(1-p) neighbors, so within one pass reads and
// writes never conflict, and pinning both passes to the same pre-step
// snapshot is what makes a single relaxation step equivalent to a
// double-buffered Jacobi update rather than leaking the parity-0 pass's
// writes into the parity-1 pass's reads. Writes land directly in n.sg.
func (n *nodeState[V]) updateParity(src *Subgrid[V], p int) {
	for i := 1; i <= n.m; i++ {
		for j := 1; j <= n.m; j++ {
			if (i+j)%2 != p {
				continue
			}
			var next V
			if n.boundsChecked {
				next = n.app.WindowTransition(newWindow(src, i, j), i, j)
			} else {
				next = n.app.Transition(src, i, j)
			}
			n.sg.Set(i, j, next)
		}
	}
	tick := n.clk.tick(n.id)
	n.log.causalEvent(n.id, fmt.Sprintf("parity update %s clock=%d", parityLabel(p), tick))
}

func parityLabel(p int) string {
	if p == 0 {
		return "even"
	}
	return "odd"
}
