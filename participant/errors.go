package participant

import "errors"

var (
	// ErrNotIndexed indicates the (asset, account) pair has no live locks.
	ErrNotIndexed = errors.New("participant: account not indexed for asset")

	// ErrCorruptIndex indicates an internal invariant check failed.
	ErrCorruptIndex = errors.New("participant: corrupt index")

	// ErrCorruptSnapshot indicates a persisted snapshot is inconsistent.
	ErrCorruptSnapshot = errors.New("participant: corrupt snapshot")
)
