// Package participant tracks, per asset, the set of accounts holding at
// least one live lock.
//
// The index keeps each asset's members in a growable array with a side
// map from account to its current slot, so membership changes are O(1)
// via swap-and-pop. A per-(asset, account) reference count ties
// membership to the number of live locks: an account is in the array
// iff its count is positive.
package participant

import "fmt"

// assetIndex is the per-asset bookkeeping: the member sequence, the
// reverse position map, and the live-lock reference counts.
type assetIndex struct {
	accounts [][20]byte
	position map[[20]byte]int
	refs     map[[20]byte]uint32
}

func newAssetIndex() *assetIndex {
	return &assetIndex{
		position: make(map[[20]byte]int),
		refs:     make(map[[20]byte]uint32),
	}
}

// Index maintains participant sets for any number of assets.
// It is not safe for concurrent use; the owning ledger serializes access.
type Index struct {
	assets map[[20]byte]*assetIndex
}

// NewIndex returns an empty participant index.
func NewIndex() *Index {
	return &Index{assets: make(map[[20]byte]*assetIndex)}
}

// Add records one more live lock for (asset, account). On the 0→1
// transition the account is appended to the asset's member sequence.
func (x *Index) Add(asset, account [20]byte) {
	ai := x.assets[asset]
	if ai == nil {
		ai = newAssetIndex()
		x.assets[asset] = ai
	}
	if ai.refs[account] == 0 {
		ai.position[account] = len(ai.accounts)
		ai.accounts = append(ai.accounts, account)
	}
	ai.refs[account]++
}

// Remove records one fewer live lock for (asset, account). On the 1→0
// transition the account's slot is overwritten by the last member, the
// displaced member's position is updated, and the sequence shrinks by
// one. Returns ErrNotIndexed if the pair has no live locks.
func (x *Index) Remove(asset, account [20]byte) error {
	ai := x.assets[asset]
	if ai == nil || ai.refs[account] == 0 {
		return fmt.Errorf("%w: asset %x account %x", ErrNotIndexed, asset, account)
	}
	ai.refs[account]--
	if ai.refs[account] > 0 {
		return nil
	}
	delete(ai.refs, account)

	pos := ai.position[account]
	last := len(ai.accounts) - 1
	if pos != last {
		moved := ai.accounts[last]
		ai.accounts[pos] = moved
		ai.position[moved] = pos
	}
	ai.accounts = ai.accounts[:last]
	delete(ai.position, account)

	if len(ai.accounts) == 0 {
		delete(x.assets, asset)
	}
	return nil
}

// Refs returns the live-lock count for (asset, account).
func (x *Index) Refs(asset, account [20]byte) uint32 {
	if ai := x.assets[asset]; ai != nil {
		return ai.refs[account]
	}
	return 0
}

// Count returns the number of participants for an asset.
func (x *Index) Count(asset [20]byte) int {
	if ai := x.assets[asset]; ai != nil {
		return len(ai.accounts)
	}
	return 0
}

// Contains reports whether the account holds at least one live lock of
// the asset.
func (x *Index) Contains(asset, account [20]byte) bool {
	return x.Refs(asset, account) > 0
}

// Participants returns the asset's member sequence. The returned slice
// is a copy and safe to retain.
func (x *Index) Participants(asset [20]byte) [][20]byte {
	ai := x.assets[asset]
	if ai == nil {
		return nil
	}
	out := make([][20]byte, len(ai.accounts))
	copy(out, ai.accounts)
	return out
}

// Assets returns every asset that currently has at least one participant.
func (x *Index) Assets() [][20]byte {
	out := make([][20]byte, 0, len(x.assets))
	for asset := range x.assets {
		out = append(out, asset)
	}
	return out
}

// CheckInvariants verifies that, for every asset, the position map is
// the exact inverse of the member sequence and every member's reference
// count is strictly positive. Used by tests after randomized op runs.
func (x *Index) CheckInvariants() error {
	for asset, ai := range x.assets {
		if len(ai.position) != len(ai.accounts) {
			return fmt.Errorf("%w: asset %x: %d positions for %d accounts",
				ErrCorruptIndex, asset, len(ai.position), len(ai.accounts))
		}
		for i, account := range ai.accounts {
			if ai.position[account] != i {
				return fmt.Errorf("%w: asset %x: account %x at slot %d but position map says %d",
					ErrCorruptIndex, asset, account, i, ai.position[account])
			}
			if ai.refs[account] == 0 {
				return fmt.Errorf("%w: asset %x: member %x has zero refs",
					ErrCorruptIndex, asset, account)
			}
		}
		if len(ai.refs) != len(ai.accounts) {
			return fmt.Errorf("%w: asset %x: %d ref entries for %d accounts",
				ErrCorruptIndex, asset, len(ai.refs), len(ai.accounts))
		}
	}
	return nil
}
