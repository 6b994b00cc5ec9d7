package royalty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/royaltyorg/libroyalty-go/fixedpoint"
)

func window(seeds ...byte) []Address {
	w := make([]Address, len(seeds))
	for i, s := range seeds {
		w[i] = makeAddr(s)
	}
	return w
}

// assertConservation checks that the shares sum to reward exactly: the
// truncation residue lands on the newest slot.
func assertConservation(t *testing.T, shares []Share, reward fixedpoint.Dec) {
	t.Helper()
	got := SumShares(shares)
	assert.Equal(t, 0, reward.Cmp(got), "shares sum to %s, want %s", got, reward)
}

func TestComputeShares_EqualSplit(t *testing.T) {
	cfg := validConfig() // ratio 1.0, percent 0.5, generations 3
	shares, err := ComputeShares(fixedpoint.FromInt64(30), cfg, 2, window(0xAA, 0xBB))
	require.NoError(t, err)
	require.Len(t, shares, 2)

	// reward 15 split equally.
	assert.Equal(t, "7.5", shares[0].Amount.String())
	assert.Equal(t, "7.5", shares[1].Amount.String())
	assert.Equal(t, makeAddr(0xAA), shares[0].Owner)
	assert.Equal(t, makeAddr(0xBB), shares[1].Owner)
	assertConservation(t, shares, fixedpoint.FromInt64(15))
}

func TestComputeShares_SingleOwner(t *testing.T) {
	cfg := validConfig()
	shares, err := ComputeShares(fixedpoint.FromInt64(100), cfg, 1, window(0xAA))
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, "50", shares[0].Amount.String())
}

func TestComputeShares_DecayingRatio(t *testing.T) {
	cfg := validConfig()
	cfg.SuccessiveRatio = fixedpoint.MustParse("0.5")

	shares, err := ComputeShares(fixedpoint.FromInt64(100), cfg, 2, window(0xAA, 0xBB))
	require.NoError(t, err)
	require.Len(t, shares, 2)

	// reward 50, weights 2/3 and 1/3: the oldest owner gets the most. The
	// unit lost to truncation is added back to the newest slot.
	assert.Equal(t, "33.333333333333333333", shares[0].Amount.String())
	assert.Equal(t, "16.666666666666666667", shares[1].Amount.String())
	assert.Equal(t, 1, shares[0].Amount.Cmp(shares[1].Amount))
	assertConservation(t, shares, fixedpoint.FromInt64(50))
}

func TestComputeShares_GrowingRatio(t *testing.T) {
	cfg := validConfig()
	cfg.SuccessiveRatio = fixedpoint.FromInt64(2)

	shares, err := ComputeShares(fixedpoint.FromInt64(100), cfg, 2, window(0xAA, 0xBB))
	require.NoError(t, err)
	require.Len(t, shares, 2)

	// Ratio above one reverses the ordering: the newest owner gets the most,
	// plus the truncation residue.
	assert.Equal(t, "16.666666666666666666", shares[0].Amount.String())
	assert.Equal(t, "33.333333333333333334", shares[1].Amount.String())
	assertConservation(t, shares, fixedpoint.FromInt64(50))
}

func TestComputeShares_ConservationAcrossConfigs(t *testing.T) {
	ratios := []string{"0.25", "0.5", "0.93", "1", "1.07", "2", "3.5"}
	percents := []string{"0.1", "0.5", "1"}
	w := window(1, 2, 3, 4, 5, 6, 7)

	for _, r := range ratios {
		for _, p := range percents {
			cfg := Config{
				GenerationCount:    uint32(len(w)),
				ProfitSharePercent: fixedpoint.MustParse(p),
				SuccessiveRatio:    fixedpoint.MustParse(r),
			}
			shares, err := ComputeShares(fixedpoint.MustParse("123.456"), cfg, 50, w)
			require.NoError(t, err, "ratio %s percent %s", r, p)
			require.Len(t, shares, len(w))

			reward := fixedpoint.MustParse("123.456").Mul(cfg.ProfitSharePercent)
			assertConservation(t, shares, reward)
			for _, s := range shares {
				assert.True(t, s.Amount.Sign() >= 0, "negative share for ratio %s", r)
			}
		}
	}
}

func TestComputeShares_OwnerCountLimitsEligibility(t *testing.T) {
	// Before the window fills, fewer slots than capacity are eligible.
	cfg := validConfig() // capacity 3
	shares, err := ComputeShares(fixedpoint.FromInt64(100), cfg, 1, window(0xAA))
	require.NoError(t, err)
	assert.Len(t, shares, 1)
}

func TestComputeShares_ZeroProfit(t *testing.T) {
	shares, err := ComputeShares(fixedpoint.Zero(), validConfig(), 3, window(1, 2, 3))
	require.NoError(t, err)
	require.Len(t, shares, 3)
	assert.True(t, SumShares(shares).IsZero())
}

func TestComputeShares_NegativeProfit(t *testing.T) {
	_, err := ComputeShares(fixedpoint.MustParse("-1"), validConfig(), 3, window(1, 2, 3))
	assert.ErrorIs(t, err, ErrNegativeProfit)
}

func TestComputeShares_InvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.GenerationCount = 0
	_, err := ComputeShares(fixedpoint.FromInt64(1), cfg, 1, window(1))
	assert.ErrorIs(t, err, ErrZeroGenerationCount)
}

func TestComputeShares_Pure(t *testing.T) {
	w := window(1, 2, 3)
	before := make([]Address, len(w))
	copy(before, w)

	_, err := ComputeShares(fixedpoint.FromInt64(100), validConfig(), 3, w)
	require.NoError(t, err)
	assert.Equal(t, before, w)
}
