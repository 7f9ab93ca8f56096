// Package config holds the process-wide ledger configuration: the owner
// account, the fee recipient, the privileged tester account, the fixed
// operation fees, and the duration constants.
//
// A Config is created once at system start and passed by reference to
// every component that reads it. The only mutation points are the two
// owner-gated setters.
package config

import (
	"fmt"
	"sync"
	"time"
)

const (
	// MonthDuration is the lock-duration unit: a 30-day month.
	MonthDuration = 30 * 24 * time.Hour

	// TestDuration is the short lock duration reserved for the tester
	// account, requested with zero months.
	TestDuration = time.Minute

	// MaxLockMonths is the longest lock or extension, in months.
	MaxLockMonths = 120

	// DefaultLockFee is the fee charged for creating a lock, in native
	// currency units.
	DefaultLockFee uint64 = 100

	// DefaultExtensionFee is the fee charged for extending a lock.
	DefaultExtensionFee uint64 = 50
)

// Config is the shared ledger configuration. All accessors and setters
// are safe for concurrent use.
type Config struct {
	mu           sync.RWMutex
	owner        [20]byte
	feeRecipient [20]byte
	tester       [20]byte
	lockFee      uint64
	extensionFee uint64
}

// Option adjusts a Config during construction.
type Option func(*Config)

// WithLockFee overrides the lock creation fee.
func WithLockFee(fee uint64) Option {
	return func(c *Config) { c.lockFee = fee }
}

// WithExtensionFee overrides the lock extension fee.
func WithExtensionFee(fee uint64) Option {
	return func(c *Config) { c.extensionFee = fee }
}

// WithFeeRecipient sets the initial fee recipient. Without this option
// fees accrue to the owner.
func WithFeeRecipient(addr [20]byte) Option {
	return func(c *Config) { c.feeRecipient = addr }
}

// WithTester sets the initial privileged tester account.
func WithTester(addr [20]byte) Option {
	return func(c *Config) { c.tester = addr }
}

// New builds a Config owned by owner. The owner must be non-zero.
func New(owner [20]byte, opts ...Option) (*Config, error) {
	if owner == ([20]byte{}) {
		return nil, fmt.Errorf("%w: owner", ErrZeroAddress)
	}
	c := &Config{
		owner:        owner,
		feeRecipient: owner,
		lockFee:      DefaultLockFee,
		extensionFee: DefaultExtensionFee,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.feeRecipient == ([20]byte{}) {
		return nil, fmt.Errorf("%w: fee recipient", ErrZeroAddress)
	}
	return c, nil
}

// Owner returns the owner account.
func (c *Config) Owner() [20]byte {
	return c.owner
}

// FeeRecipient returns the account fees currently accrue to.
func (c *Config) FeeRecipient() [20]byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.feeRecipient
}

// Tester returns the privileged tester account, or the zero address if
// none is configured.
func (c *Config) Tester() [20]byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tester
}

// LockFee returns the fee charged for creating a lock.
func (c *Config) LockFee() uint64 {
	return c.lockFee
}

// ExtensionFee returns the fee charged for extending a lock.
func (c *Config) ExtensionFee() uint64 {
	return c.extensionFee
}

// SetFeeRecipient changes the fee recipient. Only the owner may call it
// and the new recipient must be non-zero.
func (c *Config) SetFeeRecipient(caller, addr [20]byte) error {
	if caller != c.owner {
		return fmt.Errorf("%w: set fee recipient", ErrNotOwner)
	}
	if addr == ([20]byte{}) {
		return fmt.Errorf("%w: fee recipient", ErrZeroAddress)
	}
	c.mu.Lock()
	c.feeRecipient = addr
	c.mu.Unlock()
	return nil
}

// SetTester changes the privileged tester account. Only the owner may
// call it and the new tester must be non-zero.
func (c *Config) SetTester(caller, addr [20]byte) error {
	if caller != c.owner {
		return fmt.Errorf("%w: set tester", ErrNotOwner)
	}
	if addr == ([20]byte{}) {
		return fmt.Errorf("%w: tester", ErrZeroAddress)
	}
	c.mu.Lock()
	c.tester = addr
	c.mu.Unlock()
	return nil
}

// Restore applies persisted mutable fields without the owner gate. It
// is the load path for durable storage; zero values leave the current
// field untouched.
func (c *Config) Restore(feeRecipient, tester [20]byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if feeRecipient != ([20]byte{}) {
		c.feeRecipient = feeRecipient
	}
	if tester != ([20]byte{}) {
		c.tester = tester
	}
}
