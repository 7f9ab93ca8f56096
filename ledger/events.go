package ledger

import "time"

// Event is an observable side effect of a successful state transition.
// Events are delivered synchronously to the sink configured with
// WithEventSink, after the transition has been applied.
type Event interface {
	Kind() string
}

// LockCreated is emitted when a lock is recorded.
type LockCreated struct {
	Account  Address
	Asset    Address
	Amount   uint64
	Maturity time.Time
}

func (LockCreated) Kind() string { return "lock_created" }

// LockWithdrawn is emitted when a matured lock is paid back out.
type LockWithdrawn struct {
	Account Address
	Asset   Address
	Amount  uint64
}

func (LockWithdrawn) Kind() string { return "lock_withdrawn" }

// LockExtended is emitted when a lock's maturity is pushed forward.
type LockExtended struct {
	Account     Address
	Asset       Address
	Amount      uint64
	NewMaturity time.Time
}

func (LockExtended) Kind() string { return "lock_extended" }

func (l *Ledger) emit(e Event) {
	if l.sink != nil {
		l.sink(e)
	}
}
