package model

// Setting keys as stored in the settings table.
const (
	SettingIntervalMs = "feed.intervalMs"
	SettingAutoUpdate = "feed.autoUpdate"
)

// FeedSettings holds the user-adjustable update loop settings that survive restarts.
type FeedSettings struct {
	IntervalMs int64 `json:"intervalMs"`
	AutoUpdate bool  `json:"autoUpdate"`
}
