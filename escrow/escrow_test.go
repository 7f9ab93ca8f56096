package escrow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addr(seed byte) [20]byte {
	var a [20]byte
	for i := range a {
		a[i] = seed
	}
	return a
}

// mockPayout is a function-field test double for Payout.
type mockPayout struct {
	TransferFn func(to [20]byte, amount uint64) error
}

func (m *mockPayout) Transfer(to [20]byte, amount uint64) error {
	return m.TransferFn(to, amount)
}

func TestEscrow_DepositAccumulates(t *testing.T) {
	e := New(&mockPayout{})
	e.Deposit(addr(0xAA), 100)
	e.Deposit(addr(0xAA), 50)
	e.Deposit(addr(0xBB), 7)

	assert.Equal(t, uint64(150), e.Pending(addr(0xAA)))
	assert.Equal(t, uint64(7), e.Pending(addr(0xBB)))
	assert.Equal(t, uint64(0), e.Pending(addr(0xCC)))
}

func TestEscrow_DepositZeroIsNoop(t *testing.T) {
	e := New(&mockPayout{})
	e.Deposit(addr(0xAA), 0)
	assert.Empty(t, e.Balances())
}

func TestEscrow_Withdraw(t *testing.T) {
	var gotTo [20]byte
	var gotAmount uint64
	e := New(&mockPayout{
		TransferFn: func(to [20]byte, amount uint64) error {
			gotTo, gotAmount = to, amount
			return nil
		},
	})
	e.Deposit(addr(0xAA), 150)

	amount, err := e.Withdraw(addr(0xAA))
	require.NoError(t, err)
	assert.Equal(t, uint64(150), amount)
	assert.Equal(t, addr(0xAA), gotTo)
	assert.Equal(t, uint64(150), gotAmount)
	assert.Equal(t, uint64(0), e.Pending(addr(0xAA)))
}

func TestEscrow_WithdrawNothingPending(t *testing.T) {
	e := New(&mockPayout{})
	_, err := e.Withdraw(addr(0xAA))
	assert.ErrorIs(t, err, ErrNothingPending)
}

func TestEscrow_WithdrawZeroesBeforeTransfer(t *testing.T) {
	e := New(&mockPayout{})
	e.payout = &mockPayout{
		TransferFn: func(to [20]byte, amount uint64) error {
			// Observed mid-transfer: balance is already zero, so a
			// re-entrant withdrawal cannot double-pay.
			assert.Equal(t, uint64(0), e.Pending(to))
			_, err := e.Withdraw(to)
			assert.ErrorIs(t, err, ErrNothingPending)
			return nil
		},
	}
	e.Deposit(addr(0xAA), 99)

	amount, err := e.Withdraw(addr(0xAA))
	require.NoError(t, err)
	assert.Equal(t, uint64(99), amount)
}

func TestEscrow_WithdrawTransferFailureKeepsZero(t *testing.T) {
	boom := errors.New("wire down")
	e := New(&mockPayout{
		TransferFn: func([20]byte, uint64) error { return boom },
	})
	e.Deposit(addr(0xAA), 42)

	amount, err := e.Withdraw(addr(0xAA))
	assert.ErrorIs(t, err, ErrPayoutFailed)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, uint64(42), amount)
	// Deliberate asymmetry: the balance stays zeroed.
	assert.Equal(t, uint64(0), e.Pending(addr(0xAA)))
}

func TestEscrow_BalancesRestoreRoundTrip(t *testing.T) {
	e := New(&mockPayout{})
	e.Deposit(addr(0xAA), 10)
	e.Deposit(addr(0xBB), 20)

	snap := e.Balances()

	restored := New(&mockPayout{})
	restored.Restore(snap)
	assert.Equal(t, uint64(10), restored.Pending(addr(0xAA)))
	assert.Equal(t, uint64(20), restored.Pending(addr(0xBB)))

	// Zero entries are dropped on restore.
	snap[addr(0xCC)] = 0
	restored.Restore(snap)
	assert.Len(t, restored.Balances(), 2)
}
