// Package schedule post-processes catalog entries that carry a next-episode
// epoch signal: it normalizes the stored unit, applies a caller-supplied
// timezone offset, and computes the rolling weekly window used by the
// broadcast-schedule listings.
package schedule

import (
	"time"

	"github.com/user/anicatalog-go/internal/model"
)

// MillisThreshold separates seconds from milliseconds in the stored epoch
// signal. The unit is not recorded anywhere, so values above the threshold
// are assumed to be milliseconds. A magnitude heuristic: epoch seconds won't
// cross 1e12 until the year 33658, but a millisecond value below it (before
// 2001-09-09) would be misread as seconds.
const MillisThreshold = 1_000_000_000_000

// WindowDuration is the length of the weekly schedule window in seconds.
const WindowDuration = 7 * 24 * 60 * 60

// NormalizeEpoch converts a raw stored epoch value to seconds.
func NormalizeEpoch(v int64) int64 {
	if v > MillisThreshold {
		return v / 1000
	}
	return v
}

// AdjustTimezone shifts normalized epoch seconds by a whole-hour offset.
func AdjustTimezone(v int64, offsetHours int) int64 {
	return v + int64(offsetHours)*3600
}

// Adjust rewrites the next-episode field of every entry to its normalized,
// timezone-adjusted value. Entries without a next episode are untouched.
// The adjustment is presentation-only and applied uniformly; window
// filtering always happens on the raw value before this runs.
func Adjust(contents []*model.Content, offsetHours int) {
	for _, c := range contents {
		if c.NextEpisode == nil {
			continue
		}
		adjusted := AdjustTimezone(NormalizeEpoch(*c.NextEpisode), offsetHours)
		c.NextEpisode = &adjusted
	}
}

// WeekWindow returns the inclusive bounds of the rolling weekly window in
// epoch seconds: midnight of the current date in now's location, and exactly
// seven days later.
func WeekWindow(now time.Time) (start, end int64) {
	y, m, d := now.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, now.Location()).Unix()
	return start, start + WindowDuration
}
