/*
Package mesh implements a CSP-style exchange-and-relax engine for iterative
relaxation on a two dimensional grid.

The grid is partitioned across a logical q x q mesh of worker nodes. Each
node owns an (m+2) x (m+2) subgrid -- an m x m interior plus a one-cell ghost
halo -- and runs an infinite loop: refresh its halo from its nearest
neighbors over unbuffered channels, then update half of its interior cells
(checkerboard parity), twice per relaxation step. An aggregator goroutine
collects one subgrid snapshot from every node per cycle, stitches them into
an n x n global grid (n = q*m), and emits it on an output channel together
with the elapsed wall time since bootstrap.

Simulate is the package's single entry point. Everything else -- the channel
mesh, the subgrid store, the two-phase halo exchange, the parity update, the
node driver and the aggregator -- is reachable only through it.
*/
package mesh
