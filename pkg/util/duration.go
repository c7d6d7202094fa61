package util

import (
	"time"

	iso8601 "github.com/senseyeio/duration"
)

var durationReference = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParseDuration reads an ISO 8601 duration such as PT30S. Calendar components
// are measured from a fixed UTC reference so the result is stable.
func ParseDuration(value string) (time.Duration, error) {
	parsed, err := iso8601.ParseISO8601(value)
	if err != nil {
		return 0, err
	}

	return parsed.Shift(durationReference).Sub(durationReference), nil
}
