package escrow

import "errors"

var (
	// ErrNothingPending indicates the caller has no accumulated balance.
	ErrNothingPending = errors.New("escrow: nothing pending")

	// ErrPayoutFailed indicates the payout port reported failure. The
	// pending balance has already been zeroed when this is returned.
	ErrPayoutFailed = errors.New("escrow: payout failed")
)
