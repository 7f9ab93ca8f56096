package ledger

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/lockboxorg/liblockbox-go/participant"
)

var (
	bucketLocks        = []byte("locks")
	bucketParticipants = []byte("participants")
	bucketFees         = []byte("fees")
	bucketConfig       = []byte("config")

	keyConfig = []byte("config")
)

// BoltStore persists ledger state in a bbolt database.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("ledger: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketLocks, bucketParticipants, bucketFees, bucketConfig} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("boltstore: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// PutLocks replaces the account's lock collection. An empty collection
// deletes the record.
func (s *BoltStore) PutLocks(account Address, locks []Lock) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketLocks)
		if len(locks) == 0 {
			if err := b.Delete(account[:]); err != nil {
				return fmt.Errorf("boltstore: delete locks: %w", err)
			}
			return nil
		}
		if err := b.Put(account[:], encodeLocks(locks)); err != nil {
			return fmt.Errorf("boltstore: put locks: %w", err)
		}
		return nil
	})
}

// PutParticipants replaces the asset's participant snapshot. An empty
// snapshot deletes the record.
func (s *BoltStore) PutParticipants(asset Address, snap participant.AssetSnapshot) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketParticipants)
		if len(snap.Accounts) == 0 {
			if err := b.Delete(asset[:]); err != nil {
				return fmt.Errorf("boltstore: delete participants: %w", err)
			}
			return nil
		}
		if err := b.Put(asset[:], encodeParticipants(snap)); err != nil {
			return fmt.Errorf("boltstore: put participants: %w", err)
		}
		return nil
	})
}

// PutFeeBalance replaces a recipient's pending balance. Zero deletes
// the record.
func (s *BoltStore) PutFeeBalance(recipient Address, pending uint64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketFees)
		if pending == 0 {
			if err := b.Delete(recipient[:]); err != nil {
				return fmt.Errorf("boltstore: delete fee balance: %w", err)
			}
			return nil
		}
		v := make([]byte, 8)
		binary.BigEndian.PutUint64(v, pending)
		if err := b.Put(recipient[:], v); err != nil {
			return fmt.Errorf("boltstore: put fee balance: %w", err)
		}
		return nil
	})
}

// PutConfig replaces the persisted mutable configuration.
func (s *BoltStore) PutConfig(feeRecipient, tester Address) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketConfig).Put(keyConfig, encodeConfigRecord(feeRecipient, tester)); err != nil {
			return fmt.Errorf("boltstore: put config: %w", err)
		}
		return nil
	})
}

// Load reads the full persisted state.
func (s *BoltStore) Load() (*State, error) {
	state := &State{
		Locks:        make(map[Address][]Lock),
		Participants: make(map[Address]participant.AssetSnapshot),
		Fees:         make(map[Address]uint64),
	}

	err := s.db.View(func(tx *bbolt.Tx) error {
		err := tx.Bucket(bucketLocks).ForEach(func(k, v []byte) error {
			if len(k) != AddressSize {
				return fmt.Errorf("%w: lock key is %d bytes", ErrCorruptRecord, len(k))
			}
			locks, err := decodeLocks(v)
			if err != nil {
				return err
			}
			var account Address
			copy(account[:], k)
			state.Locks[account] = locks
			return nil
		})
		if err != nil {
			return err
		}

		err = tx.Bucket(bucketParticipants).ForEach(func(k, v []byte) error {
			if len(k) != AddressSize {
				return fmt.Errorf("%w: participant key is %d bytes", ErrCorruptRecord, len(k))
			}
			snap, err := decodeParticipants(v)
			if err != nil {
				return err
			}
			var asset Address
			copy(asset[:], k)
			state.Participants[asset] = snap
			return nil
		})
		if err != nil {
			return err
		}

		err = tx.Bucket(bucketFees).ForEach(func(k, v []byte) error {
			if len(k) != AddressSize || len(v) != 8 {
				return fmt.Errorf("%w: fee record %d/%d bytes", ErrCorruptRecord, len(k), len(v))
			}
			var recipient Address
			copy(recipient[:], k)
			state.Fees[recipient] = binary.BigEndian.Uint64(v)
			return nil
		})
		if err != nil {
			return err
		}

		if v := tx.Bucket(bucketConfig).Get(keyConfig); v != nil {
			state.FeeRecipient, state.Tester, err = decodeConfigRecord(v)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("boltstore: load: %w", err)
	}
	return state, nil
}
