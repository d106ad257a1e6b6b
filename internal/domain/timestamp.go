package domain

import "time"

// TimestampLayout is the ISO-8601 layout used wherever a task timestamp leaves
// the process. Nanoseconds are kept so the instant survives a round trip.
const TimestampLayout = time.RFC3339Nano

// FormatTimestamp renders t using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp parses a value produced by FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, s)
}
