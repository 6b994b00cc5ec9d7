package royalty

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/royaltyorg/libroyalty-go/fixedpoint"
	"github.com/royaltyorg/libroyalty-go/ledger"
)

// PaymentRail moves value to a party outside the engine. It is the rail
// used for seller refunds and payout withdrawals.
type PaymentRail = ledger.PaymentRail

// EngineOpts holds the collaborators an Engine is built from.
// States, Payouts, Registry and Rail are required; Logger and Metrics are
// optional.
type EngineOpts struct {
	States   StateStore
	Payouts  ledger.Ledger
	Registry Registry
	Rail     PaymentRail
	Logger   *zap.Logger
	Metrics  *Metrics
}

// Engine orchestrates asset lifecycle and per-transfer royalty
// distribution. Operations on the same asset are serialized by a per-asset
// lock; distinct assets proceed independently. Withdrawals are serialized
// per beneficiary by the ledger.
type Engine struct {
	states   StateStore
	payouts  ledger.Ledger
	registry Registry
	rail     PaymentRail
	log      *zap.Logger
	metrics  *Metrics

	mu         sync.Mutex // guards defaultCfg and locks
	defaultCfg *Config
	locks      map[AssetID]*sync.Mutex
}

// NewEngine creates an Engine from its collaborators.
func NewEngine(opts EngineOpts) (*Engine, error) {
	switch {
	case opts.States == nil:
		return nil, fmt.Errorf("%w: state store", ErrNilParam)
	case opts.Payouts == nil:
		return nil, fmt.Errorf("%w: payout ledger", ErrNilParam)
	case opts.Registry == nil:
		return nil, fmt.Errorf("%w: registry", ErrNilParam)
	case opts.Rail == nil:
		return nil, fmt.Errorf("%w: payment rail", ErrNilParam)
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Engine{
		states:   opts.States,
		payouts:  opts.Payouts,
		registry: opts.Registry,
		rail:     opts.Rail,
		log:      log,
		metrics:  opts.Metrics,
		locks:    make(map[AssetID]*sync.Mutex),
	}, nil
}

// assetLock returns the mutex serializing operations on one asset.
func (e *Engine) assetLock(asset AssetID) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, ok := e.locks[asset]
	if !ok {
		l = &sync.Mutex{}
		e.locks[asset] = l
	}
	return l
}

// SetDefaultConfig sets the process-wide default royalty configuration used
// by MintWithDefaultConfig. It can be set exactly once and is validated
// before being stored.
func (e *Engine) SetDefaultConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.defaultCfg != nil {
		return ErrDefaultConfigSet
	}
	c := cfg
	e.defaultCfg = &c
	return nil
}

// DefaultConfig returns the default configuration, if set.
func (e *Engine) DefaultConfig() (Config, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.defaultCfg == nil {
		return Config{}, false
	}
	return *e.defaultCfg, true
}

// MintWithConfig creates an asset with an explicit royalty configuration.
// The minting owner becomes the first window entry and OwnerCount starts
// at 1.
func (e *Engine) MintWithConfig(owner Address, cfg Config) (AssetID, error) {
	if err := cfg.Validate(); err != nil {
		return AssetID{}, err
	}

	id := uuid.New()
	state := &AssetState{
		Config:        cfg,
		LastSoldPrice: fixedpoint.Zero(),
		OwnerCount:    1,
		Window:        []Address{owner},
		Initialized:   true,
	}

	// State first, owner second, matching the transfer paths: a store
	// failure must not leave the registry pointing at an asset with no
	// royalty state.
	if err := e.states.Put(id, state); err != nil {
		return AssetID{}, fmt.Errorf("royalty: store state: %w", err)
	}
	if err := e.registry.RecordOwner(id, owner); err != nil {
		return AssetID{}, fmt.Errorf("royalty: record owner: %w", err)
	}

	e.metrics.incMinted()
	e.log.Info("asset minted",
		zap.String("asset", id.String()),
		zap.Uint32("generation_count", cfg.GenerationCount),
		zap.String("profit_share_percent", cfg.ProfitSharePercent.String()),
		zap.String("successive_ratio", cfg.SuccessiveRatio.String()),
	)
	return id, nil
}

// MintWithDefaultConfig creates an asset configured as a copy of the
// default configuration at mint time. Fails with ErrDefaultConfigUnset if
// no default has been set.
func (e *Engine) MintWithDefaultConfig(owner Address) (AssetID, error) {
	cfg, ok := e.DefaultConfig()
	if !ok {
		return AssetID{}, ErrDefaultConfigUnset
	}
	return e.MintWithConfig(owner, cfg)
}

// Transfer processes a sale of the asset from one owner to another.
//
// The payment must equal the declared sale price and the initiator must be
// authorized by the registry; any violation rejects the transfer before
// state is touched. A sale below the last recorded price takes the loss
// path: no distribution, the full payment is refunded to the initiator. A
// sale at or above it takes the profit path: the geometric split is
// computed, each share is credited to the payout ledger, and the remainder
// (payment minus the sum of all credited shares) is refunded to the
// initiator. Either way the sale price is recorded, the owner count is
// incremented and the ownership window shifts with the recipient as the
// newest entry.
func (e *Engine) Transfer(from, to Address, asset AssetID, soldPrice, payment fixedpoint.Dec) error {
	if soldPrice.Sign() < 0 {
		return ErrNegativePrice
	}
	if payment.Cmp(soldPrice) != 0 {
		return ErrPaymentMismatch
	}

	l := e.assetLock(asset)
	l.Lock()
	defer l.Unlock()

	state, err := e.states.Get(asset)
	if err != nil {
		return err
	}
	if !state.Initialized {
		return ErrNotInitialized
	}
	if !e.registry.IsAuthorized(from, asset) {
		return ErrUnauthorized
	}

	if soldPrice.Cmp(state.LastSoldPrice) < 0 {
		return e.completeNoDistribution(from, to, asset, state, soldPrice, payment)
	}

	profit := soldPrice.Sub(state.LastSoldPrice)
	shares, err := ComputeShares(profit, state.Config, state.OwnerCount, state.Window)
	if err != nil {
		return fmt.Errorf("royalty: compute shares: %w", err)
	}

	// Withhold the sum of all credited shares; everything else goes back
	// to the initiator. Credits plus refund always equal the payment.
	withheld := SumShares(shares)
	remainder := payment.Sub(withheld)

	if withheld.IsZero() {
		// Breakeven sale or a reward that truncated to nothing.
		return e.completeNoDistribution(from, to, asset, state, soldPrice, payment)
	}

	// The external refund runs before any mutation so a rail failure
	// aborts the transfer with nothing applied.
	if remainder.Sign() > 0 {
		if err := e.rail.TransferValue(from, remainder); err != nil {
			return fmt.Errorf("%w: refund: %w", ErrPaymentRailFailed, err)
		}
	}

	credited := 0
	for _, share := range shares {
		if share.Amount.Sign() <= 0 {
			continue
		}
		if err := e.payouts.Credit(share.Owner, share.Amount); err != nil {
			return fmt.Errorf("royalty: credit share: %w", err)
		}
		credited++
	}

	state.LastSoldPrice = soldPrice
	state.OwnerCount++
	state.ShiftWindow(to)

	if err := e.states.Put(asset, state); err != nil {
		return fmt.Errorf("royalty: store state: %w", err)
	}
	if err := e.registry.RecordOwner(asset, to); err != nil {
		return fmt.Errorf("royalty: record owner: %w", err)
	}

	e.metrics.incDistributed()
	e.metrics.addSharesCredited(credited)
	e.log.Info("royalty distributed",
		zap.String("asset", asset.String()),
		zap.String("sold_price", soldPrice.String()),
		zap.String("profit", profit.String()),
		zap.String("withheld", withheld.String()),
		zap.String("refund", remainder.String()),
		zap.Int("shares", credited),
		zap.Uint64("owner_count", state.OwnerCount),
	)
	return nil
}

// completeNoDistribution finishes a transfer on the no-distribution path:
// refund the full payment, record the price, bump the owner count and shift
// the window. Called with the asset lock held.
func (e *Engine) completeNoDistribution(from, to Address, asset AssetID, state *AssetState, soldPrice, payment fixedpoint.Dec) error {
	if payment.Sign() > 0 {
		if err := e.rail.TransferValue(from, payment); err != nil {
			return fmt.Errorf("%w: refund: %w", ErrPaymentRailFailed, err)
		}
	}

	state.LastSoldPrice = soldPrice
	state.OwnerCount++
	state.ShiftWindow(to)

	if err := e.states.Put(asset, state); err != nil {
		return fmt.Errorf("royalty: store state: %w", err)
	}
	if err := e.registry.RecordOwner(asset, to); err != nil {
		return fmt.Errorf("royalty: record owner: %w", err)
	}

	e.metrics.incNoDistribution()
	e.log.Info("transfer without distribution",
		zap.String("asset", asset.String()),
		zap.String("sold_price", soldPrice.String()),
		zap.String("refund", payment.String()),
		zap.Uint64("owner_count", state.OwnerCount),
	)
	return nil
}

// PlainTransfer processes an ownership change without a sale (a gift).
// It never distributes: the last sold price resets to zero, the owner
// count is incremented and the window shifts.
func (e *Engine) PlainTransfer(from, to Address, asset AssetID) error {
	l := e.assetLock(asset)
	l.Lock()
	defer l.Unlock()

	state, err := e.states.Get(asset)
	if err != nil {
		return err
	}
	if !state.Initialized {
		return ErrNotInitialized
	}
	if !e.registry.IsAuthorized(from, asset) {
		return ErrUnauthorized
	}

	state.LastSoldPrice = fixedpoint.Zero()
	state.OwnerCount++
	state.ShiftWindow(to)

	if err := e.states.Put(asset, state); err != nil {
		return fmt.Errorf("royalty: store state: %w", err)
	}
	if err := e.registry.RecordOwner(asset, to); err != nil {
		return fmt.Errorf("royalty: record owner: %w", err)
	}

	e.metrics.incNoDistribution()
	e.log.Info("plain transfer",
		zap.String("asset", asset.String()),
		zap.Uint64("owner_count", state.OwnerCount),
	)
	return nil
}

// Burn discards the asset's royalty state (configuration and window).
// Pending payout balances are keyed by beneficiary, not by asset, and
// survive the burn.
func (e *Engine) Burn(asset AssetID) error {
	l := e.assetLock(asset)
	l.Lock()
	defer l.Unlock()

	if err := e.states.Delete(asset); err != nil {
		return err
	}

	e.metrics.incBurned()
	e.log.Info("asset burned", zap.String("asset", asset.String()))
	return nil
}

// AssetInfo returns the asset's royalty configuration and running state.
func (e *Engine) AssetInfo(asset AssetID) (Info, error) {
	state, err := e.states.Get(asset)
	if err != nil {
		return Info{}, err
	}
	return Info{
		GenerationCount:    state.Config.GenerationCount,
		ProfitSharePercent: state.Config.ProfitSharePercent,
		SuccessiveRatio:    state.Config.SuccessiveRatio,
		LastSoldPrice:      state.LastSoldPrice,
		OwnerCount:         state.OwnerCount,
		Window:             state.Window,
	}, nil
}

// PendingPayout returns the beneficiary's accrued, withdrawable balance.
func (e *Engine) PendingPayout(beneficiary Address) (fixedpoint.Dec, error) {
	return e.payouts.Balance(beneficiary)
}

// Withdraw pays out the beneficiary's full pending balance through the
// payment rail and returns the amount moved.
func (e *Engine) Withdraw(beneficiary Address) (fixedpoint.Dec, error) {
	due, err := e.payouts.Withdraw(beneficiary, e.rail)
	if err != nil {
		return fixedpoint.Zero(), err
	}

	e.metrics.incWithdrawals()
	e.log.Info("payout withdrawn",
		zap.String("amount", due.String()),
	)
	return due, nil
}
