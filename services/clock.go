package services

import "time"

// remainingSeconds reports the whole seconds left before the session limit,
// floored at zero. Pure function of its inputs, so successive calls with a
// non-decreasing now never increase the result.
func remainingSeconds(now, startedAt time.Time, limit time.Duration) int {
	remaining := limit - now.Sub(startedAt)
	if remaining <= 0 {
		return 0
	}
	return int(remaining / time.Second)
}
