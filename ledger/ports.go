package ledger

// AssetInfo is the metadata an asset contract must expose to be
// accepted for locking.
type AssetInfo struct {
	Name     string
	Symbol   string
	Decimals uint8
}

// AssetTransfer moves units of a fungible asset between an account and
// the ledger's custody. Both methods must be atomic and must report
// failure distinctly; the ledger never assumes success.
type AssetTransfer interface {
	// Debit moves amount of asset from the account into custody.
	Debit(asset, from Address, amount uint64) error

	// Credit moves amount of asset from custody back to the account.
	Credit(asset, to Address, amount uint64) error
}

// AssetMetadata probes an asset contract before any deposit is
// accepted. Verify fails if the asset does not expose name, symbol, and
// decimal-precision queries or is not a valid contract.
type AssetMetadata interface {
	Verify(asset Address) (AssetInfo, error)
}

// CurrencyTransfer moves native currency out of the ledger. It is used
// only for fee payouts.
type CurrencyTransfer interface {
	Transfer(to Address, amount uint64) error
}
