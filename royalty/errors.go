package royalty

import "errors"

var (
	// ErrZeroGenerationCount indicates a configuration with no window capacity.
	ErrZeroGenerationCount = errors.New("royalty: generation count must be positive")

	// ErrGenerationCountTooLarge indicates a window capacity above MaxGenerationCount.
	ErrGenerationCountTooLarge = errors.New("royalty: generation count exceeds maximum")

	// ErrInvalidProfitShare indicates a profit share percent outside (0, 1].
	ErrInvalidProfitShare = errors.New("royalty: profit share percent must be in (0, 1]")

	// ErrInvalidSuccessiveRatio indicates a non-positive successive ratio.
	ErrInvalidSuccessiveRatio = errors.New("royalty: successive ratio must be positive")

	// ErrDefaultConfigUnset indicates a default-backed mint before the
	// default configuration has been set.
	ErrDefaultConfigUnset = errors.New("royalty: default configuration not set")

	// ErrDefaultConfigSet indicates a repeated attempt to set the
	// set-once default configuration.
	ErrDefaultConfigSet = errors.New("royalty: default configuration already set")

	// ErrAssetNotFound indicates no royalty state exists for the asset.
	ErrAssetNotFound = errors.New("royalty: asset not found")

	// ErrNotInitialized indicates royalty state without a valid configuration.
	ErrNotInitialized = errors.New("royalty: asset state not initialized")

	// ErrUnauthorized indicates the transfer initiator is not authorized
	// by the asset registry.
	ErrUnauthorized = errors.New("royalty: initiator not authorized to transfer asset")

	// ErrPaymentMismatch indicates the transferred payment does not equal
	// the declared sale price.
	ErrPaymentMismatch = errors.New("royalty: payment does not match declared sale price")

	// ErrPaymentRailFailed indicates the external payment rail rejected a
	// refund; the transfer is aborted with no state mutated.
	ErrPaymentRailFailed = errors.New("royalty: payment rail transfer failed")

	// ErrNegativePrice indicates a negative declared sale price.
	ErrNegativePrice = errors.New("royalty: sale price must not be negative")

	// ErrNegativeProfit indicates a profit-split request with negative profit.
	ErrNegativeProfit = errors.New("royalty: profit must not be negative")

	// ErrNilParam indicates a required dependency or parameter is nil.
	ErrNilParam = errors.New("royalty: nil parameter")
)
