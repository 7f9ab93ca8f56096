package ledger

// MockAssetTransfer is a test double for AssetTransfer.
// All function fields must be set before the corresponding method is called.
type MockAssetTransfer struct {
	DebitFn  func(asset, from Address, amount uint64) error
	CreditFn func(asset, to Address, amount uint64) error
}

func (m *MockAssetTransfer) Debit(asset, from Address, amount uint64) error {
	return m.DebitFn(asset, from, amount)
}
func (m *MockAssetTransfer) Credit(asset, to Address, amount uint64) error {
	return m.CreditFn(asset, to, amount)
}

// MockAssetMetadata is a test double for AssetMetadata.
type MockAssetMetadata struct {
	VerifyFn func(asset Address) (AssetInfo, error)
}

func (m *MockAssetMetadata) Verify(asset Address) (AssetInfo, error) {
	return m.VerifyFn(asset)
}

// MockCurrencyTransfer is a test double for CurrencyTransfer.
type MockCurrencyTransfer struct {
	TransferFn func(to Address, amount uint64) error
}

func (m *MockCurrencyTransfer) Transfer(to Address, amount uint64) error {
	return m.TransferFn(to, amount)
}
