package royalty

import (
	"fmt"

	"github.com/royaltyorg/libroyalty-go/fixedpoint"
)

// ComputeShares evaluates the normalized geometric profit split for a sale.
//
// profit is soldPrice - lastSoldPrice (must not be negative; loss-making
// sales never reach distribution). ownerCount is the total number of
// ownership changes recorded for the asset and window holds the current
// owners, oldest first.
//
// With n = min(ownerCount, generationCount) eligible window slots and
// reward = profit * profitSharePercent, the share for slot i (1-based,
// i = 1 is the oldest owner) is
//
//	reward / n                                          if ratio == 1
//	reward * (1-ratio) * ratio^(i-1) / (1 - ratio^n)    otherwise
//
// Truncation residue from the fixed-point divisions is assigned to the
// newest eligible slot, so the n shares sum to reward exactly. The
// ratio == 1 equal-split case is a distinct branch: the general formula has
// a zero denominator there. All intermediates are signed, so ratios above 1
// work (numerator and denominator are then both negative).
//
// ComputeShares is a pure function of its inputs and never mutates state;
// it is exposed so distributions can be verified independently of a
// transfer.
func ComputeShares(profit fixedpoint.Dec, cfg Config, ownerCount uint64, window []Address) ([]Share, error) {
	if profit.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegativeProfit, profit)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := ownerCount
	if g := uint64(cfg.GenerationCount); g < n {
		n = g
	}
	if w := uint64(len(window)); w < n {
		n = w
	}
	if n == 0 {
		return nil, nil
	}

	reward := profit.Mul(cfg.ProfitSharePercent)
	shares := make([]Share, n)

	if cfg.SuccessiveRatio.Cmp(fixedpoint.One()) == 0 {
		each, err := reward.Div(fixedpoint.FromInt64(int64(n)))
		if err != nil {
			return nil, err
		}
		for i := range shares {
			shares[i] = Share{Owner: window[i], Amount: each}
		}
		assignResidue(shares, reward)
		return shares, nil
	}

	ratio := cfg.SuccessiveRatio
	ratioN, err := ratio.PowInt(n)
	if err != nil {
		return nil, err
	}
	denom := fixedpoint.One().Sub(ratioN)
	factor := reward.Mul(fixedpoint.One().Sub(ratio))

	// Walk ratio^(i-1) cumulatively instead of re-exponentiating per slot.
	pow := fixedpoint.One()
	for i := range shares {
		amount, err := factor.Mul(pow).Div(denom)
		if err != nil {
			return nil, err
		}
		shares[i] = Share{Owner: window[i], Amount: amount}
		pow = pow.Mul(ratio)
	}
	assignResidue(shares, reward)
	return shares, nil
}

// assignResidue adds the truncation leftover to the newest slot so the
// shares sum to reward exactly. Every computed share truncates toward zero,
// so the leftover is never negative.
func assignResidue(shares []Share, reward fixedpoint.Dec) {
	last := len(shares) - 1
	shares[last].Amount = shares[last].Amount.Add(reward.Sub(SumShares(shares)))
}

// SumShares returns the total amount across all shares. The transfer path
// withholds exactly this sum from the sale proceeds, so credited royalties
// and the seller refund always add back up to the payment.
func SumShares(shares []Share) fixedpoint.Dec {
	total := fixedpoint.Zero()
	for _, s := range shares {
		total = total.Add(s.Amount)
	}
	return total
}
