package ledger

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lockboxorg/liblockbox-go/config"
	"github.com/lockboxorg/liblockbox-go/escrow"
	"github.com/lockboxorg/liblockbox-go/participant"
)

// Ledger is the time-lock ledger. All mutating operations are guarded
// against re-entrant calls and applied one at a time; read queries
// never block and observe consistent snapshots between mutations.
type Ledger struct {
	cfg    *config.Config
	assets AssetTransfer
	meta   AssetMetadata
	bank   CurrencyTransfer

	guard mutationGuard

	mu    sync.RWMutex
	locks map[Address][]Lock
	index *participant.Index

	fees  *escrow.Escrow
	store Store
	sink  func(Event)
	now   func() time.Time
}

// Option adjusts a Ledger during construction.
type Option func(*Ledger)

// WithStore attaches durable storage. State is loaded from the store at
// construction and every successful mutation persists the records it
// touched.
func WithStore(s Store) Option {
	return func(l *Ledger) { l.store = s }
}

// WithEventSink registers a callback receiving domain events.
func WithEventSink(sink func(Event)) Option {
	return func(l *Ledger) { l.sink = sink }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// payoutPort adapts the currency port to the escrow's payout interface.
type payoutPort struct {
	bank CurrencyTransfer
}

func (p payoutPort) Transfer(to [20]byte, amount uint64) error {
	return p.bank.Transfer(Address(to), amount)
}

// New builds a Ledger over the given configuration and external ports.
func New(cfg *config.Config, assets AssetTransfer, meta AssetMetadata, bank CurrencyTransfer, opts ...Option) (*Ledger, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config", ErrNilPort)
	}
	if assets == nil {
		return nil, fmt.Errorf("%w: asset transfer", ErrNilPort)
	}
	if meta == nil {
		return nil, fmt.Errorf("%w: asset metadata", ErrNilPort)
	}
	if bank == nil {
		return nil, fmt.Errorf("%w: currency transfer", ErrNilPort)
	}

	l := &Ledger{
		cfg:    cfg,
		assets: assets,
		meta:   meta,
		bank:   bank,
		locks:  make(map[Address][]Lock),
		index:  participant.NewIndex(),
		now:    time.Now,
	}
	l.fees = escrow.New(payoutPort{bank: bank})
	for _, opt := range opts {
		opt(l)
	}

	if l.store != nil {
		state, err := l.store.Load()
		if err != nil {
			return nil, fmt.Errorf("%w: load: %w", ErrPersistence, err)
		}
		if err := l.restore(state); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// CreateLock deposits amount of asset for the account under a time lock
// of durationMonths 30-day months and returns the recorded lock.
// Zero months is the short-duration sentinel reserved for the tester
// account and locks for one minute. The payment must cover the lock
// fee, which is credited to the configured fee recipient's escrow. The
// asset is debited through the transfer port before anything is
// recorded; a failed debit aborts with no state change.
func (l *Ledger) CreateLock(account, asset Address, amount uint64, durationMonths uint32, payment uint64) (Lock, error) {
	if err := l.guard.enter(); err != nil {
		return Lock{}, err
	}
	defer l.guard.exit()

	if account.IsZero() {
		return Lock{}, fmt.Errorf("%w: zero account", ErrInvalidInput)
	}
	if asset.IsZero() {
		return Lock{}, fmt.Errorf("%w: zero asset", ErrInvalidInput)
	}
	if amount == 0 {
		return Lock{}, fmt.Errorf("%w: zero amount", ErrInvalidInput)
	}
	if durationMonths > config.MaxLockMonths {
		return Lock{}, fmt.Errorf("%w: %d months exceeds maximum %d", ErrInvalidInput, durationMonths, config.MaxLockMonths)
	}
	if durationMonths == 0 && [20]byte(account) != l.cfg.Tester() {
		return Lock{}, fmt.Errorf("%w: zero duration is reserved for the tester account", ErrInvalidInput)
	}
	if payment < l.cfg.LockFee() {
		return Lock{}, fmt.Errorf("%w: lock fee is %d, got %d", ErrInsufficientPayment, l.cfg.LockFee(), payment)
	}

	info, err := l.meta.Verify(asset)
	if err != nil {
		return Lock{}, fmt.Errorf("%w: %w", ErrAssetVerification, err)
	}
	if err := l.assets.Debit(asset, account, amount); err != nil {
		return Lock{}, fmt.Errorf("%w: debit: %w", ErrTransferFailed, err)
	}

	duration := time.Duration(durationMonths) * config.MonthDuration
	if durationMonths == 0 {
		duration = config.TestDuration
	}
	lock := Lock{
		Asset:    asset,
		Amount:   amount,
		Maturity: l.now().Add(duration).Unix(),
		Decimals: info.Decimals,
	}

	l.mu.Lock()
	l.locks[account] = append(l.locks[account], lock)
	l.index.Add([20]byte(asset), [20]byte(account))
	l.mu.Unlock()

	recipient := Address(l.cfg.FeeRecipient())
	l.fees.Deposit([20]byte(recipient), l.cfg.LockFee())

	l.emit(LockCreated{Account: account, Asset: asset, Amount: amount, Maturity: lock.MaturityTime()})

	if err := l.persist(func(s Store) error {
		if err := s.PutLocks(account, l.snapshotLocks(account)); err != nil {
			return err
		}
		if err := s.PutParticipants(asset, l.snapshotParticipants(asset)); err != nil {
			return err
		}
		return s.PutFeeBalance(recipient, l.fees.Pending([20]byte(recipient)))
	}); err != nil {
		return lock, err
	}
	return lock, nil
}

// Withdraw pays the locked amount back to the account and removes the
// lock at lockIndex. The lock must have matured; maturity itself counts
// as matured. Removal is swap-and-pop, so indexes of later locks are
// not stable across withdrawals. A failed credit aborts with the lock
// intact.
func (l *Ledger) Withdraw(account Address, lockIndex int) error {
	if err := l.guard.enter(); err != nil {
		return err
	}
	defer l.guard.exit()

	l.mu.RLock()
	col := l.locks[account]
	if lockIndex < 0 || lockIndex >= len(col) {
		l.mu.RUnlock()
		return fmt.Errorf("%w: lock index %d out of range (have %d)", ErrInvalidInput, lockIndex, len(col))
	}
	lock := col[lockIndex]
	l.mu.RUnlock()

	if lock.Amount == 0 {
		return fmt.Errorf("%w: index %d", ErrLockWithdrawn, lockIndex)
	}
	if !lock.Matured(l.now()) {
		return fmt.Errorf("%w: matures at %s", ErrLockStillActive, lock.MaturityTime().UTC())
	}

	if err := l.assets.Credit(lock.Asset, account, lock.Amount); err != nil {
		return fmt.Errorf("%w: credit: %w", ErrTransferFailed, err)
	}

	l.mu.Lock()
	col = l.locks[account]
	last := len(col) - 1
	col[lockIndex] = col[last]
	col = col[:last]
	if len(col) == 0 {
		delete(l.locks, account)
	} else {
		l.locks[account] = col
	}
	err := l.index.Remove([20]byte(lock.Asset), [20]byte(account))
	l.mu.Unlock()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptState, err)
	}

	l.emit(LockWithdrawn{Account: account, Asset: lock.Asset, Amount: lock.Amount})

	return l.persist(func(s Store) error {
		if err := s.PutLocks(account, l.snapshotLocks(account)); err != nil {
			return err
		}
		return s.PutParticipants(lock.Asset, l.snapshotParticipants(lock.Asset))
	})
}

// Extend pushes the maturity of the lock at lockIndex forward by
// additionalMonths 30-day months. Only an active lock can be extended;
// once matured it must be withdrawn instead. The payment must cover the
// extension fee, which is credited to the fee recipient's escrow.
func (l *Ledger) Extend(account Address, lockIndex int, additionalMonths uint32, payment uint64) error {
	if err := l.guard.enter(); err != nil {
		return err
	}
	defer l.guard.exit()

	if additionalMonths < 1 || additionalMonths > config.MaxLockMonths {
		return fmt.Errorf("%w: extension of %d months outside [1, %d]", ErrInvalidInput, additionalMonths, config.MaxLockMonths)
	}
	if payment < l.cfg.ExtensionFee() {
		return fmt.Errorf("%w: extension fee is %d, got %d", ErrInsufficientPayment, l.cfg.ExtensionFee(), payment)
	}

	l.mu.RLock()
	col := l.locks[account]
	if lockIndex < 0 || lockIndex >= len(col) {
		l.mu.RUnlock()
		return fmt.Errorf("%w: lock index %d out of range (have %d)", ErrInvalidInput, lockIndex, len(col))
	}
	lock := col[lockIndex]
	l.mu.RUnlock()

	if lock.Amount == 0 {
		return fmt.Errorf("%w: index %d", ErrLockWithdrawn, lockIndex)
	}
	if lock.Matured(l.now()) {
		return fmt.Errorf("%w: matured at %s, withdraw instead", ErrLockMatured, lock.MaturityTime().UTC())
	}

	newMaturity := lock.MaturityTime().Add(time.Duration(additionalMonths) * config.MonthDuration)

	l.mu.Lock()
	l.locks[account][lockIndex].Maturity = newMaturity.Unix()
	l.mu.Unlock()

	recipient := Address(l.cfg.FeeRecipient())
	l.fees.Deposit([20]byte(recipient), l.cfg.ExtensionFee())

	l.emit(LockExtended{Account: account, Asset: lock.Asset, Amount: lock.Amount, NewMaturity: newMaturity})

	return l.persist(func(s Store) error {
		if err := s.PutLocks(account, l.snapshotLocks(account)); err != nil {
			return err
		}
		return s.PutFeeBalance(recipient, l.fees.Pending([20]byte(recipient)))
	})
}

// RemainingTime returns the time until the lock at lockIndex matures,
// or zero if it has matured, was withdrawn, or the index is out of
// bounds. As real time advances the result is non-increasing for a
// fixed lock.
func (l *Ledger) RemainingTime(account Address, lockIndex int) time.Duration {
	l.mu.RLock()
	defer l.mu.RUnlock()

	col := l.locks[account]
	if lockIndex < 0 || lockIndex >= len(col) {
		return 0
	}
	lock := col[lockIndex]
	if lock.Amount == 0 {
		return 0
	}
	remaining := lock.MaturityTime().Sub(l.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SetFeeRecipient changes the account lock and extension fees accrue
// to. Owner only; the target must be non-zero.
func (l *Ledger) SetFeeRecipient(caller, addr Address) error {
	if err := l.cfg.SetFeeRecipient([20]byte(caller), [20]byte(addr)); err != nil {
		return wrapConfigErr(err)
	}
	return l.persist(func(s Store) error {
		return s.PutConfig(Address(l.cfg.FeeRecipient()), Address(l.cfg.Tester()))
	})
}

// SetTester changes the privileged tester account. Owner only; the
// target must be non-zero.
func (l *Ledger) SetTester(caller, addr Address) error {
	if err := l.cfg.SetTester([20]byte(caller), [20]byte(addr)); err != nil {
		return wrapConfigErr(err)
	}
	return l.persist(func(s Store) error {
		return s.PutConfig(Address(l.cfg.FeeRecipient()), Address(l.cfg.Tester()))
	})
}

func wrapConfigErr(err error) error {
	if errors.Is(err, config.ErrNotOwner) {
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// WithdrawFees pays out the caller's accumulated fee balance through
// the currency port. Only the configured fee recipient may call it. The
// balance is zeroed before the transfer; if the transfer then fails the
// balance stays zeroed and the paid amount is returned alongside
// ErrTransferFailed. This asymmetry is deliberate: it blocks re-entrant
// double payouts at the cost of strict atomicity on a failed transfer.
func (l *Ledger) WithdrawFees(caller Address) (uint64, error) {
	if err := l.guard.enter(); err != nil {
		return 0, err
	}
	defer l.guard.exit()

	if [20]byte(caller) != l.cfg.FeeRecipient() {
		return 0, fmt.Errorf("%w: only the fee recipient may withdraw fees", ErrUnauthorized)
	}

	amount, err := l.fees.Withdraw([20]byte(caller))
	if errors.Is(err, escrow.ErrNothingPending) {
		return 0, err
	}

	// The balance is zeroed even when the payout failed; persist that.
	perr := l.persist(func(s Store) error {
		return s.PutFeeBalance(caller, 0)
	})

	if err != nil {
		return amount, fmt.Errorf("%w: fee payout: %w", ErrTransferFailed, err)
	}
	if perr != nil {
		return amount, perr
	}
	return amount, nil
}

// PendingFees returns the accumulated escrow balance for a recipient.
func (l *Ledger) PendingFees(recipient Address) uint64 {
	return l.fees.Pending([20]byte(recipient))
}

// snapshotLocks copies the account's collection for persistence.
func (l *Ledger) snapshotLocks(account Address) []Lock {
	l.mu.RLock()
	defer l.mu.RUnlock()
	col := l.locks[account]
	if len(col) == 0 {
		return nil
	}
	out := make([]Lock, len(col))
	copy(out, col)
	return out
}

func (l *Ledger) snapshotParticipants(asset Address) participant.AssetSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.index.SnapshotAsset([20]byte(asset))
}

// persist runs fn against the attached store, if any.
func (l *Ledger) persist(fn func(Store) error) error {
	if l.store == nil {
		return nil
	}
	if err := fn(l.store); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// restore loads persisted state and cross-checks the participant index
// against the live locks.
func (l *Ledger) restore(state *State) error {
	if state == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for account, locks := range state.Locks {
		col := make([]Lock, len(locks))
		copy(col, locks)
		for i, lk := range col {
			if lk.Amount == 0 {
				return fmt.Errorf("%w: account %s lock %d has zero amount", ErrCorruptState, account, i)
			}
		}
		l.locks[account] = col
	}

	for asset, snap := range state.Participants {
		if err := l.index.RestoreAsset([20]byte(asset), snap); err != nil {
			return fmt.Errorf("%w: asset %s: %w", ErrCorruptState, asset, err)
		}
	}

	// Reference counts must equal live lock counts per (asset, account).
	want := make(map[[2]Address]uint32)
	for account, col := range l.locks {
		for _, lk := range col {
			want[[2]Address{lk.Asset, account}]++
		}
	}
	total := 0
	for _, snap := range state.Participants {
		for _, refs := range snap.Refs {
			total += int(refs)
		}
	}
	sum := 0
	for key, refs := range want {
		got := l.index.Refs([20]byte(key[0]), [20]byte(key[1]))
		if got != refs {
			return fmt.Errorf("%w: asset %s account %s: %d refs for %d live locks",
				ErrCorruptState, key[0], key[1], got, refs)
		}
		sum += int(refs)
	}
	if total != sum {
		return fmt.Errorf("%w: index tracks %d locks, ledger has %d", ErrCorruptState, total, sum)
	}

	l.fees.Restore(toRawBalances(state.Fees))
	l.cfg.Restore([20]byte(state.FeeRecipient), [20]byte(state.Tester))
	return nil
}

func toRawBalances(fees map[Address]uint64) map[[20]byte]uint64 {
	out := make(map[[20]byte]uint64, len(fees))
	for k, v := range fees {
		out[[20]byte(k)] = v
	}
	return out
}
