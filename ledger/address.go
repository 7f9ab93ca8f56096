package ledger

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// AddressSize is the length of an account or asset identifier in bytes.
const AddressSize = 20

// Address identifies an account or an asset contract.
type Address [AddressSize]byte

// String returns the address as lowercase hex.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// IsZero reports whether the address is all zero bytes.
func (a Address) IsZero() bool {
	return a == Address{}
}

// ParseAddress decodes a 40-character hex address, with or without a
// "0x" prefix.
func ParseAddress(s string) (Address, error) {
	if len(s) >= 2 && (s[0:2] == "0x" || s[0:2] == "0X") {
		s = s[2:]
	}
	if len(s) != AddressSize*2 {
		return Address{}, fmt.Errorf("%w: %d hex chars, want %d", ErrInvalidAddress, len(s), AddressSize*2)
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	var a Address
	copy(a[:], raw)
	return a, nil
}

// AddressFromPubKey derives an address from a serialized public key:
// the last 20 bytes of Keccak-256(pubkey).
func AddressFromPubKey(pub []byte) (Address, error) {
	if len(pub) == 0 {
		return Address{}, fmt.Errorf("%w: empty public key", ErrInvalidAddress)
	}
	h := sha3.NewLegacyKeccak256()
	h.Write(pub)
	sum := h.Sum(nil)
	var a Address
	copy(a[:], sum[len(sum)-AddressSize:])
	return a, nil
}
