package ledger

import (
	"sync"

	"github.com/lockboxorg/liblockbox-go/participant"
)

// State is everything a store holds: the per-account lock collections,
// the per-asset participant snapshots, the pending fee balances, and
// the mutable configuration fields.
type State struct {
	Locks        map[Address][]Lock
	Participants map[Address]participant.AssetSnapshot
	Fees         map[Address]uint64
	FeeRecipient Address
	Tester       Address
}

// Store persists ledger state so it survives a process restart. Writes
// replace whole records; an empty or zero value deletes the record.
type Store interface {
	// PutLocks replaces the account's lock collection. A nil or empty
	// slice deletes the record.
	PutLocks(account Address, locks []Lock) error

	// PutParticipants replaces the asset's participant snapshot. An
	// empty snapshot deletes the record.
	PutParticipants(asset Address, snap participant.AssetSnapshot) error

	// PutFeeBalance replaces a recipient's pending fee balance. Zero
	// deletes the record.
	PutFeeBalance(recipient Address, pending uint64) error

	// PutConfig replaces the persisted mutable configuration.
	PutConfig(feeRecipient, tester Address) error

	// Load reads the full persisted state.
	Load() (*State, error)

	// Close releases the store's resources.
	Close() error
}

// MemStore is an in-memory implementation of Store for tests and for
// hosts without durable storage.
type MemStore struct {
	mu    sync.Mutex
	state State
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{state: State{
		Locks:        make(map[Address][]Lock),
		Participants: make(map[Address]participant.AssetSnapshot),
		Fees:         make(map[Address]uint64),
	}}
}

// PutLocks replaces the account's lock collection.
func (s *MemStore) PutLocks(account Address, locks []Lock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(locks) == 0 {
		delete(s.state.Locks, account)
		return nil
	}
	col := make([]Lock, len(locks))
	copy(col, locks)
	s.state.Locks[account] = col
	return nil
}

// PutParticipants replaces the asset's participant snapshot.
func (s *MemStore) PutParticipants(asset Address, snap participant.AssetSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(snap.Accounts) == 0 {
		delete(s.state.Participants, asset)
		return nil
	}
	cp := participant.AssetSnapshot{
		Accounts: make([][20]byte, len(snap.Accounts)),
		Refs:     make([]uint32, len(snap.Refs)),
	}
	copy(cp.Accounts, snap.Accounts)
	copy(cp.Refs, snap.Refs)
	s.state.Participants[asset] = cp
	return nil
}

// PutFeeBalance replaces a recipient's pending fee balance.
func (s *MemStore) PutFeeBalance(recipient Address, pending uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pending == 0 {
		delete(s.state.Fees, recipient)
		return nil
	}
	s.state.Fees[recipient] = pending
	return nil
}

// PutConfig replaces the persisted mutable configuration.
func (s *MemStore) PutConfig(feeRecipient, tester Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.FeeRecipient = feeRecipient
	s.state.Tester = tester
	return nil
}

// Load reads the full persisted state.
func (s *MemStore) Load() (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := &State{
		Locks:        make(map[Address][]Lock, len(s.state.Locks)),
		Participants: make(map[Address]participant.AssetSnapshot, len(s.state.Participants)),
		Fees:         make(map[Address]uint64, len(s.state.Fees)),
		FeeRecipient: s.state.FeeRecipient,
		Tester:       s.state.Tester,
	}
	for account, col := range s.state.Locks {
		cp := make([]Lock, len(col))
		copy(cp, col)
		out.Locks[account] = cp
	}
	for asset, snap := range s.state.Participants {
		cp := participant.AssetSnapshot{
			Accounts: make([][20]byte, len(snap.Accounts)),
			Refs:     make([]uint32, len(snap.Refs)),
		}
		copy(cp.Accounts, snap.Accounts)
		copy(cp.Refs, snap.Refs)
		out.Participants[asset] = cp
	}
	for recipient, pending := range s.state.Fees {
		out.Fees[recipient] = pending
	}
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *MemStore) Close() error { return nil }
