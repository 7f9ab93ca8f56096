package ledger

import "errors"

var (
	// ErrInvalidInput indicates a zero address, zero amount, out-of-range
	// duration, or out-of-bounds index or page parameter.
	ErrInvalidInput = errors.New("ledger: invalid input")

	// ErrUnauthorized indicates the caller may not perform the operation.
	ErrUnauthorized = errors.New("ledger: unauthorized")

	// ErrInsufficientPayment indicates the payment does not cover the fee.
	ErrInsufficientPayment = errors.New("ledger: payment below required fee")

	// ErrAssetVerification indicates the metadata port rejected the asset.
	ErrAssetVerification = errors.New("ledger: asset verification failed")

	// ErrLockStillActive indicates a withdrawal before maturity.
	ErrLockStillActive = errors.New("ledger: lock has not matured")

	// ErrLockMatured indicates an extension after maturity.
	ErrLockMatured = errors.New("ledger: lock already matured")

	// ErrLockWithdrawn indicates an operation on a zero-amount slot.
	ErrLockWithdrawn = errors.New("ledger: lock already withdrawn")

	// ErrTransferFailed indicates an asset or currency port reported failure.
	ErrTransferFailed = errors.New("ledger: transfer failed")

	// ErrReentrantCall indicates a mutating entry point was entered while
	// another mutating call was in progress.
	ErrReentrantCall = errors.New("ledger: mutating call already in progress")

	// ErrNilPort indicates a required collaborator was not supplied.
	ErrNilPort = errors.New("ledger: nil port")

	// ErrPersistence indicates a store write or load failed. On a write
	// the in-memory state change has already been applied.
	ErrPersistence = errors.New("ledger: persistence failed")

	// ErrCorruptRecord indicates a persisted record cannot be decoded.
	ErrCorruptRecord = errors.New("ledger: corrupt stored record")

	// ErrCorruptState indicates loaded state fails cross-checks, e.g. a
	// participant count disagreeing with the live locks.
	ErrCorruptState = errors.New("ledger: persisted state inconsistent")

	// ErrInvalidAddress indicates a malformed address string.
	ErrInvalidAddress = errors.New("ledger: invalid address")
)
