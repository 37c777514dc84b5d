package apperrors

import "errors"

// Domain entity errors represent missing entities in the simulated market.
var (
	// ErrStockNotFound indicates that a stock with the given ID is not part of the portfolio.
	ErrStockNotFound = errors.New("stock not found")

	// ErrIndexNotFound indicates that a market index with the given ID does not exist.
	ErrIndexNotFound = errors.New("index not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Validation errors represent input that the feed or the settings store refuses.
var (
	// ErrInvalidInterval indicates an update interval that is not a positive number of milliseconds.
	ErrInvalidInterval = errors.New("update interval must be a positive number of milliseconds that fits in a duration")

	// ErrInvalidTransactionType indicates a transaction type other than buy or sell.
	ErrInvalidTransactionType = errors.New("transaction type must be buy or sell")

	// ErrInvalidLimit indicates a result limit that is not a positive integer.
	ErrInvalidLimit = errors.New("limit must be a positive integer")

	// ErrInvalidTimestamp indicates a timestamp that is not RFC 3339.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrDuplicateEntry indicates that two seed records share the same ID.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrNegativeAmount indicates that a price, value or share count is negative.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrNonFiniteAmount indicates that a price, value or share count is NaN or infinite.
	ErrNonFiniteAmount = errors.New("amount must be finite")
)

// Operation failure errors represent failures while running the feed or persisting its settings.
var (
	ErrFailedToRefresh          = errors.New("failed to refresh market data")
	ErrFailedToRetrieveSettings = errors.New("failed to retrieve settings")
	ErrFailedToSaveSettings     = errors.New("failed to save settings")
	ErrFailedToGetVersionInfo   = errors.New("failed to get version information")
)
