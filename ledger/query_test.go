package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockboxorg/liblockbox-go/page"
)

func TestAccountLocks_Pagination(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 30; i++ {
		f.mustCreate(t, bob, tokenX, uint64(i+1), 1)
	}

	first, err := f.lg.AccountLocks(bob, 0, 25)
	require.NoError(t, err)
	assert.Len(t, first.Items, 25)
	assert.Equal(t, 30, first.Total)
	assert.Equal(t, 25, first.Next)

	second, err := f.lg.AccountLocks(bob, first.Next, 25)
	require.NoError(t, err)
	assert.Len(t, second.Items, 5)
	assert.Equal(t, 30, second.Total)
	assert.Zero(t, second.Next)

	// The two pages cover the collection without overlap.
	seen := make(map[uint64]bool)
	for _, lk := range append(first.Items, second.Items...) {
		assert.False(t, seen[lk.Amount])
		seen[lk.Amount] = true
	}
	assert.Len(t, seen, 30)
}

func TestAccountLocks_Empty(t *testing.T) {
	f := newFixture(t)

	got, err := f.lg.AccountLocks(alice, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Zero(t, got.Total)
	assert.Zero(t, got.Next)
}

func TestAccountLocks_StartPastEnd(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, alice, tokenX, 100, 1)

	got, err := f.lg.AccountLocks(alice, 9, 10)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Equal(t, 1, got.Total, "true total still reported")
	assert.Zero(t, got.Next)
}

func TestAccountLocks_PageSizeRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.lg.AccountLocks(alice, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, page.ErrSizeRange)

	_, err = f.lg.AccountLocks(alice, 0, 26)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAccountAssetLocks_FiltersByAsset(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, alice, tokenX, 1, 1)
	f.mustCreate(t, alice, tokenY, 2, 1)
	f.mustCreate(t, alice, tokenX, 3, 1)

	got, err := f.lg.AccountAssetLocks(alice, tokenX, 0, 25)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Total)
	for _, lk := range got.Items {
		assert.Equal(t, tokenX, lk.Asset)
	}

	got, err = f.lg.AccountAssetLocks(alice, tokenY, 0, 25)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Total)
	assert.Equal(t, uint64(2), got.Items[0].Amount)
}

func TestAssetParticipants_Pagination(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 7; i++ {
		f.mustCreate(t, addrb(byte(0x20+i)), tokenX, 10, 1)
	}

	var collected []Address
	start := 0
	for {
		got, err := f.lg.AssetParticipants(tokenX, start, 3)
		require.NoError(t, err)
		assert.Equal(t, 7, got.Total)
		collected = append(collected, got.Items...)
		if got.Next == 0 {
			break
		}
		start = got.Next
	}

	require.Len(t, collected, 7)
	seen := make(map[Address]bool)
	for _, a := range collected {
		assert.False(t, seen[a], "duplicate participant %s", a)
		seen[a] = true
	}
}

func TestAssetParticipants_UnknownAsset(t *testing.T) {
	f := newFixture(t)

	got, err := f.lg.AssetParticipants(tokenY, 0, 25)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Zero(t, got.Total)
}
