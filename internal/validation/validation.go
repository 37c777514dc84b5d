package validation

import (
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/ndewijer/Market-Data-Simulator/internal/apperrors"
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateID checks that an identifier is present and URL safe.
func ValidateID(id string) error {
	if id == "" {
		return apperrors.ErrEmptyID
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("invalid ID format: %q", id)
	}
	return nil
}

// ValidateAmount checks that a monetary value or share count is finite and not negative.
func ValidateAmount(v float64) error {
	if !finite(v) {
		return apperrors.ErrNonFiniteAmount
	}
	if v < 0 {
		return apperrors.ErrNegativeAmount
	}
	return nil
}

// MaxIntervalMs is the largest interval in milliseconds that fits in a time.Duration.
const MaxIntervalMs = math.MaxInt64 / int64(time.Millisecond)

// ValidateInterval checks an update interval in milliseconds.
func ValidateInterval(ms int64) error {
	if ms <= 0 || ms > MaxIntervalMs {
		return fmt.Errorf("%w: got %d", apperrors.ErrInvalidInterval, ms)
	}
	return nil
}

// IntervalFromMillis validates ms and converts it to a duration.
func IntervalFromMillis(ms int64) (time.Duration, error) {
	if err := ValidateInterval(ms); err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
