package ledger

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/royaltyorg/libroyalty-go/fixedpoint"
)

var bucketPayouts = []byte("payouts")

// BoltLedger persists payout balances in a bbolt database.
type BoltLedger struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Ledger = (*BoltLedger)(nil)

// OpenBoltLedger opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltLedger(dbPath string) (*BoltLedger, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("ledger: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPayouts)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger: create bucket: %w", err)
	}

	return &BoltLedger{db: db}, nil
}

// Close closes the underlying database.
func (l *BoltLedger) Close() error { return l.db.Close() }

// encodeDec serializes an amount using gob encoding.
func encodeDec(d fixedpoint.Dec) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeDec deserializes a gob-encoded amount. Missing data decodes to zero.
func decodeDec(data []byte) (fixedpoint.Dec, error) {
	if data == nil {
		return fixedpoint.Zero(), nil
	}
	var d fixedpoint.Dec
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&d); err != nil {
		return fixedpoint.Zero(), err
	}
	return d, nil
}

// Credit adds a non-negative amount to the beneficiary's balance.
func (l *BoltLedger) Credit(beneficiary [AddressSize]byte, amount fixedpoint.Dec) error {
	if amount.Sign() < 0 {
		return fmt.Errorf("%w: %s", ErrNegativeAmount, amount)
	}

	return l.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketPayouts)
		cur, err := decodeDec(b.Get(beneficiary[:]))
		if err != nil {
			return fmt.Errorf("boltledger: decode balance: %w", err)
		}
		data, err := encodeDec(cur.Add(amount))
		if err != nil {
			return fmt.Errorf("boltledger: encode balance: %w", err)
		}
		return b.Put(beneficiary[:], data)
	})
}

// Balance returns the beneficiary's pending payout.
func (l *BoltLedger) Balance(beneficiary [AddressSize]byte) (fixedpoint.Dec, error) {
	var due fixedpoint.Dec
	err := l.db.View(func(tx *bbolt.Tx) error {
		var err error
		due, err = decodeDec(tx.Bucket(bucketPayouts).Get(beneficiary[:]))
		if err != nil {
			return fmt.Errorf("boltledger: decode balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return fixedpoint.Zero(), err
	}
	return due, nil
}

// Withdraw zeroes the balance and pays it out inside a single bolt
// transaction. A rail failure aborts the transaction, so the zeroed
// balance is rolled back and never left behind without a completed payment.
func (l *BoltLedger) Withdraw(beneficiary [AddressSize]byte, rail PaymentRail) (fixedpoint.Dec, error) {
	if rail == nil {
		return fixedpoint.Zero(), ErrNilRail
	}

	var due fixedpoint.Dec
	err := l.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketPayouts)
		cur, err := decodeDec(b.Get(beneficiary[:]))
		if err != nil {
			return fmt.Errorf("boltledger: decode balance: %w", err)
		}
		if cur.IsZero() {
			return ErrNothingDue
		}

		zero, err := encodeDec(fixedpoint.Zero())
		if err != nil {
			return fmt.Errorf("boltledger: encode balance: %w", err)
		}
		if err := b.Put(beneficiary[:], zero); err != nil {
			return fmt.Errorf("boltledger: zero balance: %w", err)
		}

		if err := rail.TransferValue(beneficiary, cur); err != nil {
			return fmt.Errorf("%w: %w", ErrTransferFailed, err)
		}
		due = cur
		return nil
	})
	if err != nil {
		return fixedpoint.Zero(), err
	}
	return due, nil
}
