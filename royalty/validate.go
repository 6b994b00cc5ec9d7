package royalty

import "github.com/royaltyorg/libroyalty-go/fixedpoint"

// Validate checks the configuration constraints and returns the first
// violation, or nil. It is called before any state mutation.
func (c Config) Validate() error {
	if c.GenerationCount == 0 {
		return ErrZeroGenerationCount
	}
	if c.GenerationCount > MaxGenerationCount {
		return ErrGenerationCountTooLarge
	}
	if c.ProfitSharePercent.Sign() <= 0 || c.ProfitSharePercent.Cmp(fixedpoint.One()) > 0 {
		return ErrInvalidProfitShare
	}
	if c.SuccessiveRatio.Sign() <= 0 {
		return ErrInvalidSuccessiveRatio
	}
	return nil
}
