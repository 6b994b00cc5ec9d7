// Package royalty implements a Future-Royalty distribution engine: per-asset
// configuration, a bounded rolling window of recent owners, a geometric
// profit-split over 18-decimal fixed-point amounts, and the transfer
// orchestration that applies the split against a payout ledger.
package royalty

import (
	"github.com/google/uuid"

	"github.com/royaltyorg/libroyalty-go/fixedpoint"
)

// AddressSize is the length of an owner address in bytes.
const AddressSize = 20

// MaxGenerationCount bounds the ownership window capacity. The geometric
// series is evaluated with one fixed-point exponentiation per transfer, so
// the bound keeps intermediates well inside the precision guard.
const MaxGenerationCount = 100

// AssetID uniquely identifies a minted asset.
type AssetID = uuid.UUID

// Address identifies an owner or royalty beneficiary.
type Address [AddressSize]byte

// Config holds the per-asset royalty parameters. Immutable after mint.
type Config struct {
	// GenerationCount is the ownership window capacity, in (0, MaxGenerationCount].
	GenerationCount uint32

	// ProfitSharePercent is the fraction of sale profit earmarked for
	// distribution, in (0, 1].
	ProfitSharePercent fixedpoint.Dec

	// SuccessiveRatio is the common ratio of the geometric weighting across
	// window positions, > 0. A ratio below 1 favours the oldest owner in the
	// window; above 1 favours the newest; exactly 1 splits equally.
	SuccessiveRatio fixedpoint.Dec
}

// AssetState is the full royalty state tracked for one asset.
// It is gob-encoded by the persistent state stores.
type AssetState struct {
	Config Config

	// LastSoldPrice is the price recorded at the most recent processed
	// transfer, zero until the first sale.
	LastSoldPrice fixedpoint.Dec

	// OwnerCount is the total number of ownership changes ever recorded,
	// starting at 1 on mint. It only increases.
	OwnerCount uint64

	// Window holds the most recent owners, oldest first.
	// Its length never exceeds Config.GenerationCount and it is never
	// empty once the asset exists.
	Window []Address

	// Initialized is true once a valid configuration has been supplied.
	Initialized bool
}

// Clone returns a deep copy of the state.
func (s *AssetState) Clone() *AssetState {
	if s == nil {
		return nil
	}
	c := *s
	c.Window = make([]Address, len(s.Window))
	copy(c.Window, s.Window)
	return &c
}

// Share is one beneficiary's cut of a single distribution, position-aligned
// with the ownership window (oldest first).
type Share struct {
	Owner  Address
	Amount fixedpoint.Dec
}

// Info is the queryable royalty state of an asset.
type Info struct {
	GenerationCount    uint32
	ProfitSharePercent fixedpoint.Dec
	SuccessiveRatio    fixedpoint.Dec
	LastSoldPrice      fixedpoint.Dec
	OwnerCount         uint64
	Window             []Address
}
