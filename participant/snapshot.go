package participant

import "fmt"

// AssetSnapshot is one asset's member sequence with the reference count
// of each member, in sequence order. It is the shape the ledger's store
// persists; the position map is rebuilt on restore.
type AssetSnapshot struct {
	Accounts [][20]byte
	Refs     []uint32
}

// SnapshotAsset captures the asset's current members and counts.
// Returns a zero snapshot if the asset has no participants.
func (x *Index) SnapshotAsset(asset [20]byte) AssetSnapshot {
	ai := x.assets[asset]
	if ai == nil {
		return AssetSnapshot{}
	}
	snap := AssetSnapshot{
		Accounts: make([][20]byte, len(ai.accounts)),
		Refs:     make([]uint32, len(ai.accounts)),
	}
	copy(snap.Accounts, ai.accounts)
	for i, account := range ai.accounts {
		snap.Refs[i] = ai.refs[account]
	}
	return snap
}

// RestoreAsset replaces the asset's state with a snapshot, rebuilding
// the position map. An empty snapshot clears the asset. Returns
// ErrCorruptSnapshot on mismatched lengths, duplicate members, or a
// zero reference count.
func (x *Index) RestoreAsset(asset [20]byte, snap AssetSnapshot) error {
	if len(snap.Accounts) != len(snap.Refs) {
		return fmt.Errorf("%w: %d accounts, %d refs", ErrCorruptSnapshot, len(snap.Accounts), len(snap.Refs))
	}
	if len(snap.Accounts) == 0 {
		delete(x.assets, asset)
		return nil
	}

	ai := newAssetIndex()
	ai.accounts = make([][20]byte, len(snap.Accounts))
	copy(ai.accounts, snap.Accounts)
	for i, account := range snap.Accounts {
		if _, dup := ai.position[account]; dup {
			return fmt.Errorf("%w: duplicate account %x", ErrCorruptSnapshot, account)
		}
		if snap.Refs[i] == 0 {
			return fmt.Errorf("%w: zero refs for account %x", ErrCorruptSnapshot, account)
		}
		ai.position[account] = i
		ai.refs[account] = snap.Refs[i]
	}
	x.assets[asset] = ai
	return nil
}
