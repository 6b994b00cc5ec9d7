package ledger

import "errors"

var (
	// ErrNothingDue indicates a withdrawal attempt against a zero balance.
	ErrNothingDue = errors.New("ledger: nothing due")

	// ErrTransferFailed indicates the external payment rail rejected the
	// payout; the balance has been restored.
	ErrTransferFailed = errors.New("ledger: payout transfer failed")

	// ErrNegativeAmount indicates an attempt to credit a negative amount.
	ErrNegativeAmount = errors.New("ledger: negative credit amount")

	// ErrNilRail indicates a withdrawal without a payment rail.
	ErrNilRail = errors.New("ledger: payment rail is nil")
)
