// Package escrow accumulates fixed operation fees per recipient and
// pays them out on demand through a pluggable payout port.
package escrow

import (
	"fmt"
	"sync"
)

// Payout moves native currency out of the escrow to a recipient. It
// must be atomic and must report failure; the escrow never assumes
// success.
type Payout interface {
	Transfer(to [20]byte, amount uint64) error
}

// Escrow tracks pending fee balances per recipient.
type Escrow struct {
	mu      sync.Mutex
	pending map[[20]byte]uint64
	payout  Payout
}

// New returns an empty escrow paying out through p.
func New(p Payout) *Escrow {
	return &Escrow{
		pending: make(map[[20]byte]uint64),
		payout:  p,
	}
}

// Deposit adds amount to the recipient's pending balance. A zero
// amount is a no-op.
func (e *Escrow) Deposit(recipient [20]byte, amount uint64) {
	if amount == 0 {
		return
	}
	e.mu.Lock()
	e.pending[recipient] += amount
	e.mu.Unlock()
}

// Pending returns the caller's accumulated balance.
func (e *Escrow) Pending(recipient [20]byte) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending[recipient]
}

// Withdraw pays out the caller's entire pending balance. The balance
// is zeroed before the payout transfer is attempted, so a re-entrant
// call during the transfer finds nothing left to withdraw. If the
// transfer fails the zeroed balance is NOT restored: the error is
// returned with the paid amount so the caller can account for the
// loss. This ordering trades strict atomicity for reentrancy safety.
func (e *Escrow) Withdraw(caller [20]byte) (uint64, error) {
	e.mu.Lock()
	amount := e.pending[caller]
	if amount == 0 {
		e.mu.Unlock()
		return 0, ErrNothingPending
	}
	delete(e.pending, caller)
	e.mu.Unlock()

	if err := e.payout.Transfer(caller, amount); err != nil {
		return amount, fmt.Errorf("%w: %w", ErrPayoutFailed, err)
	}
	return amount, nil
}

// Balances returns a copy of all pending balances, for persistence.
func (e *Escrow) Balances() map[[20]byte]uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[[20]byte]uint64, len(e.pending))
	for k, v := range e.pending {
		out[k] = v
	}
	return out
}

// Restore replaces all pending balances, for loading persisted state.
// Zero-amount entries are dropped.
func (e *Escrow) Restore(balances map[[20]byte]uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = make(map[[20]byte]uint64, len(balances))
	for k, v := range balances {
		if v > 0 {
			e.pending[k] = v
		}
	}
}
