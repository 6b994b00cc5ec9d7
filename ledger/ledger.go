// Package ledger tracks accrued royalty payouts per beneficiary and
// handles withdrawal through an external payment rail.
package ledger

import (
	"fmt"
	"sync"

	"github.com/royaltyorg/libroyalty-go/fixedpoint"
)

// AddressSize is the length of a beneficiary address in bytes.
const AddressSize = 20

// PaymentRail moves value out of the ledger to a beneficiary. Transfers can
// fail and the caller must treat a returned error as "no value moved".
type PaymentRail interface {
	TransferValue(to [AddressSize]byte, amount fixedpoint.Dec) error
}

// Ledger accrues withdrawable royalty balances per beneficiary.
// Entries are created on first credit, additively merged on repeated
// credit, and zeroed (not removed) on withdrawal.
type Ledger interface {
	// Credit adds a non-negative amount to the beneficiary's balance.
	Credit(beneficiary [AddressSize]byte, amount fixedpoint.Dec) error

	// Balance returns the beneficiary's pending payout (zero if none).
	Balance(beneficiary [AddressSize]byte) (fixedpoint.Dec, error)

	// Withdraw zeroes the beneficiary's balance and then pays it out via
	// the rail. A zero balance fails with ErrNothingDue. A rail failure
	// restores the balance and fails with ErrTransferFailed; the balance
	// is never left zeroed without the funds having moved.
	Withdraw(beneficiary [AddressSize]byte, rail PaymentRail) (fixedpoint.Dec, error)
}

// MemLedger is an in-memory Ledger. Safe for concurrent use; the lock also
// serializes a beneficiary's withdrawal against itself so the same entry
// cannot be paid out twice.
type MemLedger struct {
	mu       sync.Mutex
	balances map[[AddressSize]byte]fixedpoint.Dec
}

// Compile-time interface check.
var _ Ledger = (*MemLedger)(nil)

// NewMemLedger creates an empty in-memory ledger.
func NewMemLedger() *MemLedger {
	return &MemLedger{balances: make(map[[AddressSize]byte]fixedpoint.Dec)}
}

// Credit adds a non-negative amount to the beneficiary's balance.
func (l *MemLedger) Credit(beneficiary [AddressSize]byte, amount fixedpoint.Dec) error {
	if amount.Sign() < 0 {
		return fmt.Errorf("%w: %s", ErrNegativeAmount, amount)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[beneficiary] = l.balances[beneficiary].Add(amount)
	return nil
}

// Balance returns the beneficiary's pending payout.
func (l *MemLedger) Balance(beneficiary [AddressSize]byte) (fixedpoint.Dec, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[beneficiary], nil
}

// Withdraw zeroes the balance, then pays it out. The zeroing happens before
// the rail call so a re-entrant withdrawal observes an empty entry; a rail
// failure rolls the balance back.
func (l *MemLedger) Withdraw(beneficiary [AddressSize]byte, rail PaymentRail) (fixedpoint.Dec, error) {
	if rail == nil {
		return fixedpoint.Zero(), ErrNilRail
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	due := l.balances[beneficiary]
	if due.IsZero() {
		return fixedpoint.Zero(), ErrNothingDue
	}

	l.balances[beneficiary] = fixedpoint.Zero()
	if err := rail.TransferValue(beneficiary, due); err != nil {
		l.balances[beneficiary] = due
		return fixedpoint.Zero(), fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	return due, nil
}
