package request

// SetIntervalRequest represents the request body for changing the update interval
type SetIntervalRequest struct {
	IntervalMs *int64 `json:"intervalMs"`
}

// SetAutoUpdateRequest represents the optional request body for the auto-update toggle.
// Without a body the current setting is flipped.
type SetAutoUpdateRequest struct {
	Enabled *bool `json:"enabled"`
}
