package marketdata

import (
	"fmt"
	"time"

	"github.com/ndewijer/Market-Data-Simulator/internal/apperrors"
)

// TimeAgo renders the time elapsed between then and now, e.g. "3 minutes ago".
// Anything under a minute, including a then in the future, is "just now".
func TimeAgo(then, now time.Time) string {
	seconds := int64(now.Sub(then) / time.Second)
	if seconds < 60 {
		return "just now"
	}

	minutes := seconds / 60
	if minutes < 60 {
		return plural(minutes, "minute")
	}

	hours := minutes / 60
	if hours < 24 {
		return plural(hours, "hour")
	}

	return plural(hours/24, "day")
}

// FormatTimeAgo parses an RFC 3339 timestamp and renders it with TimeAgo.
func FormatTimeAgo(timestamp string, now time.Time) (string, error) {
	then, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidTimestamp, timestamp)
	}
	return TimeAgo(then, now), nil
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
