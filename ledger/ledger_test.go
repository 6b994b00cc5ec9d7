package ledger

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/royaltyorg/libroyalty-go/fixedpoint"
)

func makeAddr(seed byte) [AddressSize]byte {
	var addr [AddressSize]byte
	for i := range addr {
		addr[i] = seed
	}
	return addr
}

// runLedgerTests exercises the Ledger contract against any implementation.
func runLedgerTests(t *testing.T, newLedger func(t *testing.T) Ledger) {
	alice := makeAddr(0xAA)
	bob := makeAddr(0xBB)

	t.Run("balance starts at zero", func(t *testing.T) {
		l := newLedger(t)
		due, err := l.Balance(alice)
		require.NoError(t, err)
		assert.True(t, due.IsZero())
	})

	t.Run("credits merge additively", func(t *testing.T) {
		l := newLedger(t)
		require.NoError(t, l.Credit(alice, fixedpoint.MustParse("7.5")))
		require.NoError(t, l.Credit(alice, fixedpoint.MustParse("2.5")))
		require.NoError(t, l.Credit(bob, fixedpoint.FromInt64(1)))

		due, err := l.Balance(alice)
		require.NoError(t, err)
		assert.Equal(t, "10", due.String())

		due, err = l.Balance(bob)
		require.NoError(t, err)
		assert.Equal(t, "1", due.String())
	})

	t.Run("negative credit rejected", func(t *testing.T) {
		l := newLedger(t)
		err := l.Credit(alice, fixedpoint.MustParse("-1"))
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})

	t.Run("withdraw pays out and zeroes once", func(t *testing.T) {
		l := newLedger(t)
		rail := NewMemRail()
		require.NoError(t, l.Credit(alice, fixedpoint.FromInt64(50)))

		due, err := l.Withdraw(alice, rail)
		require.NoError(t, err)
		assert.Equal(t, "50", due.String())
		assert.Equal(t, "50", rail.TotalPaid(alice).String())

		balance, err := l.Balance(alice)
		require.NoError(t, err)
		assert.True(t, balance.IsZero())

		// Second withdrawal without an intervening credit fails.
		_, err = l.Withdraw(alice, rail)
		assert.ErrorIs(t, err, ErrNothingDue)
	})

	t.Run("withdraw with zero balance", func(t *testing.T) {
		l := newLedger(t)
		_, err := l.Withdraw(alice, NewMemRail())
		assert.ErrorIs(t, err, ErrNothingDue)
	})

	t.Run("rail failure restores balance", func(t *testing.T) {
		l := newLedger(t)
		require.NoError(t, l.Credit(alice, fixedpoint.FromInt64(50)))

		rail := NewMemRail()
		rail.Err = errors.New("recipient rejected")

		_, err := l.Withdraw(alice, rail)
		assert.ErrorIs(t, err, ErrTransferFailed)

		// Balance must not be left zeroed without the funds having moved.
		due, err := l.Balance(alice)
		require.NoError(t, err)
		assert.Equal(t, "50", due.String())

		// Clearing the fault lets the payout through.
		rail.Err = nil
		due, err = l.Withdraw(alice, rail)
		require.NoError(t, err)
		assert.Equal(t, "50", due.String())
	})

	t.Run("nil rail rejected", func(t *testing.T) {
		l := newLedger(t)
		require.NoError(t, l.Credit(alice, fixedpoint.FromInt64(1)))
		_, err := l.Withdraw(alice, nil)
		assert.ErrorIs(t, err, ErrNilRail)
	})
}

func TestMemLedger(t *testing.T) {
	runLedgerTests(t, func(t *testing.T) Ledger {
		return NewMemLedger()
	})
}

func TestBoltLedger(t *testing.T) {
	runLedgerTests(t, func(t *testing.T) Ledger {
		l, err := OpenBoltLedger(filepath.Join(t.TempDir(), "payouts.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = l.Close() })
		return l
	})
}

func TestBoltLedger_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payouts.db")
	alice := makeAddr(0xAA)

	l, err := OpenBoltLedger(path)
	require.NoError(t, err)
	require.NoError(t, l.Credit(alice, fixedpoint.MustParse("12.25")))
	require.NoError(t, l.Close())

	l, err = OpenBoltLedger(path)
	require.NoError(t, err)
	defer l.Close()

	due, err := l.Balance(alice)
	require.NoError(t, err)
	assert.Equal(t, "12.25", due.String())
}
