package asset

import "errors"

var (
	// ErrInsufficientBalance indicates the account cannot cover a debit.
	ErrInsufficientBalance = errors.New("asset: insufficient balance")

	// ErrCustodyShort indicates custody holds less than a credit needs.
	ErrCustodyShort = errors.New("asset: custody balance too low")

	// ErrUnknownAsset indicates the asset was never registered.
	ErrUnknownAsset = errors.New("asset: unknown asset")

	// ErrIncompleteMetadata indicates a registration without name or symbol.
	ErrIncompleteMetadata = errors.New("asset: incomplete metadata")
)
