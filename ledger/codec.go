package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/lockboxorg/liblockbox-go/participant"
)

// Binary record formats for durable storage. All integers are
// big-endian.

const (
	lockRecordSize        = AddressSize + 8 + 8 + 1 // asset + amount + maturity + decimals
	participantRecordSize = AddressSize + 4         // account + refs
	configRecordSize      = 2 * AddressSize         // fee recipient + tester
)

// encodeLocks serializes a lock collection as count(4) + n fixed-size
// records.
func encodeLocks(locks []Lock) []byte {
	buf := make([]byte, 4+lockRecordSize*len(locks))
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(locks)))
	offset := 4
	for _, lk := range locks {
		copy(buf[offset:offset+AddressSize], lk.Asset[:])
		offset += AddressSize
		binary.BigEndian.PutUint64(buf[offset:offset+8], lk.Amount)
		offset += 8
		binary.BigEndian.PutUint64(buf[offset:offset+8], uint64(lk.Maturity))
		offset += 8
		buf[offset] = lk.Decimals
		offset++
	}
	return buf
}

// decodeLocks deserializes a lock collection record.
func decodeLocks(data []byte) ([]Lock, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: lock record too short (%d bytes)", ErrCorruptRecord, len(data))
	}
	n := int(binary.BigEndian.Uint32(data[0:4]))
	if len(data) != 4+lockRecordSize*n {
		return nil, fmt.Errorf("%w: expected %d bytes for %d locks, got %d",
			ErrCorruptRecord, 4+lockRecordSize*n, n, len(data))
	}
	locks := make([]Lock, n)
	offset := 4
	for i := 0; i < n; i++ {
		copy(locks[i].Asset[:], data[offset:offset+AddressSize])
		offset += AddressSize
		locks[i].Amount = binary.BigEndian.Uint64(data[offset : offset+8])
		offset += 8
		locks[i].Maturity = int64(binary.BigEndian.Uint64(data[offset : offset+8]))
		offset += 8
		locks[i].Decimals = data[offset]
		offset++
	}
	return locks, nil
}

// encodeParticipants serializes an asset snapshot as count(4) + n
// (account + refs) records, preserving sequence order.
func encodeParticipants(snap participant.AssetSnapshot) []byte {
	buf := make([]byte, 4+participantRecordSize*len(snap.Accounts))
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(snap.Accounts)))
	offset := 4
	for i, account := range snap.Accounts {
		copy(buf[offset:offset+AddressSize], account[:])
		offset += AddressSize
		binary.BigEndian.PutUint32(buf[offset:offset+4], snap.Refs[i])
		offset += 4
	}
	return buf
}

// decodeParticipants deserializes an asset snapshot record.
func decodeParticipants(data []byte) (participant.AssetSnapshot, error) {
	if len(data) < 4 {
		return participant.AssetSnapshot{}, fmt.Errorf("%w: participant record too short (%d bytes)", ErrCorruptRecord, len(data))
	}
	n := int(binary.BigEndian.Uint32(data[0:4]))
	if len(data) != 4+participantRecordSize*n {
		return participant.AssetSnapshot{}, fmt.Errorf("%w: expected %d bytes for %d participants, got %d",
			ErrCorruptRecord, 4+participantRecordSize*n, n, len(data))
	}
	snap := participant.AssetSnapshot{
		Accounts: make([][20]byte, n),
		Refs:     make([]uint32, n),
	}
	offset := 4
	for i := 0; i < n; i++ {
		copy(snap.Accounts[i][:], data[offset:offset+AddressSize])
		offset += AddressSize
		snap.Refs[i] = binary.BigEndian.Uint32(data[offset : offset+4])
		offset += 4
	}
	return snap, nil
}

// encodeConfigRecord serializes the mutable configuration fields.
func encodeConfigRecord(feeRecipient, tester Address) []byte {
	buf := make([]byte, configRecordSize)
	copy(buf[0:AddressSize], feeRecipient[:])
	copy(buf[AddressSize:], tester[:])
	return buf
}

// decodeConfigRecord deserializes the mutable configuration fields.
func decodeConfigRecord(data []byte) (feeRecipient, tester Address, err error) {
	if len(data) != configRecordSize {
		return Address{}, Address{}, fmt.Errorf("%w: config record is %d bytes, want %d",
			ErrCorruptRecord, len(data), configRecordSize)
	}
	copy(feeRecipient[:], data[0:AddressSize])
	copy(tester[:], data[AddressSize:])
	return feeRecipient, tester, nil
}
