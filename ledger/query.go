package ledger

import (
	"fmt"

	"github.com/lockboxorg/liblockbox-go/page"
)

// LockPage is one page of an account's lock collection. Next is the
// start index of the following page, or 0 when this page reaches the
// end; use Total and len(Items) to disambiguate an empty result.
type LockPage struct {
	Items []Lock
	Total int
	Next  int
}

// AccountPage is one page of an asset's participant sequence.
type AccountPage struct {
	Items []Address
	Total int
	Next  int
}

// AccountLocks returns a page of the account's locks. Lock indexes are
// positions in the live collection and are not stable across
// withdrawals.
func (l *Ledger) AccountLocks(account Address, start, size int) (LockPage, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	col := l.locks[account]
	offset, count, next, err := page.Bounds(len(col), start, size)
	if err != nil {
		return LockPage{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	items := make([]Lock, count)
	copy(items, col[offset:offset+count])
	return LockPage{Items: items, Total: len(col), Next: next}, nil
}

// AccountAssetLocks returns a page of the account's locks for a single
// asset. Pagination runs over the filtered sequence, so Total is the
// number of the account's locks in that asset.
func (l *Ledger) AccountAssetLocks(account, asset Address, start, size int) (LockPage, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var filtered []Lock
	for _, lk := range l.locks[account] {
		if lk.Asset == asset {
			filtered = append(filtered, lk)
		}
	}
	offset, count, next, err := page.Bounds(len(filtered), start, size)
	if err != nil {
		return LockPage{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	items := make([]Lock, count)
	copy(items, filtered[offset:offset+count])
	return LockPage{Items: items, Total: len(filtered), Next: next}, nil
}

// AssetParticipants returns a page of the accounts currently holding at
// least one live lock of the asset.
func (l *Ledger) AssetParticipants(asset Address, start, size int) (AccountPage, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	members := l.index.Participants([20]byte(asset))
	offset, count, next, err := page.Bounds(len(members), start, size)
	if err != nil {
		return AccountPage{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	items := make([]Address, count)
	for i := 0; i < count; i++ {
		items[i] = Address(members[offset+i])
	}
	return AccountPage{Items: items, Total: len(members), Next: next}, nil
}
