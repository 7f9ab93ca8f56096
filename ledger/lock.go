// Package ledger implements the LockBox time-lock ledger.
//
// An account deposits a quantity of a fungible asset under a time lock,
// reclaims it once the lock matures, or pays to extend the lock. The
// ledger keeps per-account lock collections and a per-asset participant
// index, charges fixed native-currency fees into an escrow, and guards
// every mutating entry point against re-entrant calls. Asset movement
// itself happens through external ports; the ledger records outcomes
// and never assumes a transfer succeeded.
package ledger

import "time"

// Lock is one live deposit: an amount of a single asset owned by one
// account until a maturity time. The asset's decimal precision is cached
// at creation so queries do not depend on the metadata port staying
// available.
type Lock struct {
	Asset    Address
	Amount   uint64
	Maturity int64 // unix seconds; inclusive: a lock is withdrawable at this instant
	Decimals uint8
}

// MaturityTime returns the maturity as a time.Time.
func (l Lock) MaturityTime() time.Time {
	return time.Unix(l.Maturity, 0)
}

// Matured reports whether the lock is withdrawable at now.
func (l Lock) Matured(now time.Time) bool {
	return !now.Before(l.MaturityTime())
}
