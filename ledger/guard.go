package ledger

import "sync/atomic"

// mutationGuard is the single engaged/idle flag wrapping every
// state-mutating entry point. A mutating call that arrives while
// another is in progress, including a re-entrant call triggered by a
// port callback, fails with ErrReentrantCall instead of interleaving.
// Read queries bypass the guard entirely.
type mutationGuard struct {
	busy atomic.Bool
}

// enter engages the guard or fails if it is already engaged.
func (g *mutationGuard) enter() error {
	if !g.busy.CompareAndSwap(false, true) {
		return ErrReentrantCall
	}
	return nil
}

// exit releases the guard. Always called on exit, including failure
// paths.
func (g *mutationGuard) exit() {
	g.busy.Store(false)
}
