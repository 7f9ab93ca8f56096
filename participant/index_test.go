package participant

import (
	"math/rand"
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

func TestIndex_AddFirstLock(t *testing.T) {
	x := NewIndex()
	x.Add(addr(0x01), addr(0xAA))

	assert.Equal(t, uint32(1), x.Refs(addr(0x01), addr(0xAA)))
	assert.True(t, x.Contains(addr(0x01), addr(0xAA)))
	assert.Equal(t, 1, x.Count(addr(0x01)))
	assert.Equal(t, [][20]byte{addr(0xAA)}, x.Participants(addr(0x01)))
	require.NoError(t, x.CheckInvariants())
}

func TestIndex_AddIsPerAsset(t *testing.T) {
	x := NewIndex()
	x.Add(addr(0x01), addr(0xAA))
	x.Add(addr(0x02), addr(0xAA))

	assert.Equal(t, uint32(1), x.Refs(addr(0x01), addr(0xAA)))
	assert.Equal(t, uint32(1), x.Refs(addr(0x02), addr(0xAA)))
	assert.Equal(t, 1, x.Count(addr(0x01)))
	assert.Equal(t, 1, x.Count(addr(0x02)))
}

func TestIndex_RefCountTracksLocks(t *testing.T) {
	x := NewIndex()
	asset, account := addr(0x01), addr(0xAA)

	x.Add(asset, account)
	x.Add(asset, account)
	x.Add(asset, account)
	assert.Equal(t, uint32(3), x.Refs(asset, account))
	// Still a single sequence entry.
	assert.Equal(t, 1, x.Count(asset))

	require.NoError(t, x.Remove(asset, account))
	require.NoError(t, x.Remove(asset, account))
	assert.Equal(t, uint32(1), x.Refs(asset, account))
	assert.Equal(t, 1, x.Count(asset))

	require.NoError(t, x.Remove(asset, account))
	assert.Equal(t, uint32(0), x.Refs(asset, account))
	assert.Equal(t, 0, x.Count(asset))
	assert.False(t, x.Contains(asset, account))
	require.NoError(t, x.CheckInvariants())
}

func TestIndex_RemoveNotIndexed(t *testing.T) {
	x := NewIndex()
	err := x.Remove(addr(0x01), addr(0xAA))
	assert.ErrorIs(t, err, ErrNotIndexed)

	x.Add(addr(0x01), addr(0xAA))
	err = x.Remove(addr(0x01), addr(0xBB))
	assert.ErrorIs(t, err, ErrNotIndexed)
}

func TestIndex_SwapAndPopRelocatesLast(t *testing.T) {
	x := NewIndex()
	asset := addr(0x01)
	a, b, c := addr(0xAA), addr(0xBB), addr(0xCC)
	x.Add(asset, a)
	x.Add(asset, b)
	x.Add(asset, c)

	// Removing the middle member moves the last member into its slot.
	require.NoError(t, x.Remove(asset, b))
	assert.Equal(t, [][20]byte{a, c}, x.Participants(asset))
	require.NoError(t, x.CheckInvariants())

	// Removing the (current) last member is a plain pop.
	require.NoError(t, x.Remove(asset, c))
	assert.Equal(t, [][20]byte{a}, x.Participants(asset))
	require.NoError(t, x.CheckInvariants())
}

func TestIndex_RemovePreservesMemberSet(t *testing.T) {
	x := NewIndex()
	asset := addr(0x01)
	members := [][20]byte{addr(1), addr(2), addr(3), addr(4), addr(5)}
	for _, m := range members {
		x.Add(asset, m)
	}

	require.NoError(t, x.Remove(asset, addr(3)))

	got := x.Participants(asset)
	require.Len(t, got, 4)
	seen := make(map[[20]byte]bool)
	for _, m := range got {
		assert.False(t, seen[m], "duplicate member %x", m)
		seen[m] = true
	}
	for _, m := range [][20]byte{addr(1), addr(2), addr(4), addr(5)} {
		assert.True(t, seen[m], "missing member %x", m)
	}
}

// Random add/remove runs must keep the reverse map an exact inverse of
// the sequence and every member's refcount positive.
func TestIndex_RandomOpsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	x := NewIndex()

	assets := [][20]byte{addr(0x01), addr(0x02), addr(0x03)}
	accounts := make([][20]byte, 12)
	for i := range accounts {
		accounts[i] = addr(byte(0x10 + i))
	}
	live := make(map[[2][20]byte]int)

	for step := 0; step < 5000; step++ {
		asset := assets[rng.Intn(len(assets))]
		account := accounts[rng.Intn(len(accounts))]
		key := [2][20]byte{asset, account}

		if rng.Intn(2) == 0 {
			x.Add(asset, account)
			live[key]++
		} else if live[key] > 0 {
			require.NoError(t, x.Remove(asset, account))
			live[key]--
		} else {
			assert.ErrorIs(t, x.Remove(asset, account), ErrNotIndexed)
		}

		require.Equal(t, uint32(live[key]), x.Refs(asset, account))
		require.Equal(t, live[key] > 0, x.Contains(asset, account))
	}
	require.NoError(t, x.CheckInvariants())
}

func TestSnapshot_RoundTrip(t *testing.T) {
	x := NewIndex()
	asset := addr(0x01)
	x.Add(asset, addr(0xAA))
	x.Add(asset, addr(0xAA))
	x.Add(asset, addr(0xBB))
	x.Add(asset, addr(0xCC))
	require.NoError(t, x.Remove(asset, addr(0xBB)))

	snap := x.SnapshotAsset(asset)

	restored := NewIndex()
	require.NoError(t, restored.RestoreAsset(asset, snap))
	require.NoError(t, restored.CheckInvariants())

	assert.Equal(t, x.Participants(asset), restored.Participants(asset))
	assert.Equal(t, uint32(2), restored.Refs(asset, addr(0xAA)))
	assert.Equal(t, uint32(1), restored.Refs(asset, addr(0xCC)))

	// The restored index keeps working.
	require.NoError(t, restored.Remove(asset, addr(0xAA)))
	require.NoError(t, restored.Remove(asset, addr(0xAA)))
	assert.False(t, restored.Contains(asset, addr(0xAA)))
}

func TestSnapshot_EmptyClearsAsset(t *testing.T) {
	x := NewIndex()
	asset := addr(0x01)
	x.Add(asset, addr(0xAA))

	require.NoError(t, x.RestoreAsset(asset, AssetSnapshot{}))
	assert.Equal(t, 0, x.Count(asset))
	assert.Empty(t, x.Assets())
}

func TestSnapshot_Corrupt(t *testing.T) {
	x := NewIndex()
	asset := addr(0x01)

	err := x.RestoreAsset(asset, AssetSnapshot{
		Accounts: [][20]byte{addr(0xAA)},
		Refs:     []uint32{1, 2},
	})
	assert.ErrorIs(t, err, ErrCorruptSnapshot)

	err = x.RestoreAsset(asset, AssetSnapshot{
		Accounts: [][20]byte{addr(0xAA), addr(0xAA)},
		Refs:     []uint32{1, 1},
	})
	assert.ErrorIs(t, err, ErrCorruptSnapshot)

	err = x.RestoreAsset(asset, AssetSnapshot{
		Accounts: [][20]byte{addr(0xAA)},
		Refs:     []uint32{0},
	})
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
}
