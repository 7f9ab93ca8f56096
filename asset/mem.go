// Package asset provides in-memory implementations of the ledger's
// external ports: a fungible-asset ledger with custody accounting, an
// asset metadata registry, and a native-currency bank. They back tests
// and hosts that have no real asset infrastructure.
package asset

import (
	"fmt"
	"sync"

	"github.com/lockboxorg/liblockbox-go/ledger"
)

// MemLedger is an in-memory fungible-asset ledger implementing the
// AssetTransfer port. Debited funds move into a per-asset custody
// balance; credits pay back out of custody.
type MemLedger struct {
	mu       sync.Mutex
	balances map[ledger.Address]map[ledger.Address]uint64 // asset -> account -> balance
	custody  map[ledger.Address]uint64
}

// Compile-time interface check.
var _ ledger.AssetTransfer = (*MemLedger)(nil)

// NewMemLedger returns an empty asset ledger.
func NewMemLedger() *MemLedger {
	return &MemLedger{
		balances: make(map[ledger.Address]map[ledger.Address]uint64),
		custody:  make(map[ledger.Address]uint64),
	}
}

// Mint creates amount of asset in the account's balance.
func (m *MemLedger) Mint(asset, to ledger.Address, amount uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.balances[asset] == nil {
		m.balances[asset] = make(map[ledger.Address]uint64)
	}
	m.balances[asset][to] += amount
}

// BalanceOf returns an account's balance of an asset.
func (m *MemLedger) BalanceOf(asset, account ledger.Address) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[asset][account]
}

// CustodyOf returns the amount of an asset currently held in custody.
func (m *MemLedger) CustodyOf(asset ledger.Address) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.custody[asset]
}

// Debit moves amount of asset from the account into custody.
func (m *MemLedger) Debit(asset, from ledger.Address, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	have := m.balances[asset][from]
	if have < amount {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientBalance, have, amount)
	}
	if m.balances[asset] == nil {
		m.balances[asset] = make(map[ledger.Address]uint64)
	}
	m.balances[asset][from] = have - amount
	m.custody[asset] += amount
	return nil
}

// Credit moves amount of asset from custody back to the account.
func (m *MemLedger) Credit(asset, to ledger.Address, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.custody[asset] < amount {
		return fmt.Errorf("%w: custody holds %d, need %d", ErrCustodyShort, m.custody[asset], amount)
	}
	m.custody[asset] -= amount
	if m.balances[asset] == nil {
		m.balances[asset] = make(map[ledger.Address]uint64)
	}
	m.balances[asset][to] += amount
	return nil
}

// Registry is an in-memory asset metadata registry implementing the
// AssetMetadata port. Only registered assets verify.
type Registry struct {
	mu    sync.Mutex
	infos map[ledger.Address]ledger.AssetInfo
}

// Compile-time interface check.
var _ ledger.AssetMetadata = (*Registry)(nil)

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{infos: make(map[ledger.Address]ledger.AssetInfo)}
}

// Register records an asset's metadata. The name and symbol must be
// non-empty, mirroring the probes a real contract must answer.
func (r *Registry) Register(asset ledger.Address, info ledger.AssetInfo) error {
	if info.Name == "" || info.Symbol == "" {
		return fmt.Errorf("%w: name and symbol required", ErrIncompleteMetadata)
	}
	r.mu.Lock()
	r.infos[asset] = info
	r.mu.Unlock()
	return nil
}

// Verify returns the asset's metadata, or ErrUnknownAsset if it was
// never registered.
func (r *Registry) Verify(asset ledger.Address) (ledger.AssetInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	info, ok := r.infos[asset]
	if !ok {
		return ledger.AssetInfo{}, fmt.Errorf("%w: %s", ErrUnknownAsset, asset)
	}
	return info, nil
}

// MemBank is an in-memory native-currency bank implementing the
// CurrencyTransfer port. Transfers always succeed and accumulate in the
// recipient's balance.
type MemBank struct {
	mu       sync.Mutex
	balances map[ledger.Address]uint64
}

// Compile-time interface check.
var _ ledger.CurrencyTransfer = (*MemBank)(nil)

// NewMemBank returns an empty bank.
func NewMemBank() *MemBank {
	return &MemBank{balances: make(map[ledger.Address]uint64)}
}

// Transfer credits amount to the recipient.
func (b *MemBank) Transfer(to ledger.Address, amount uint64) error {
	b.mu.Lock()
	b.balances[to] += amount
	b.mu.Unlock()
	return nil
}

// BalanceOf returns the recipient's received total.
func (b *MemBank) BalanceOf(account ledger.Address) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[account]
}
