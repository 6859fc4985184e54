package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemainingSeconds(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limit := 300 * time.Second

	assert.Equal(t, 300, remainingSeconds(start, start, limit))
	assert.Equal(t, 299, remainingSeconds(start.Add(1*time.Second), start, limit))
	assert.Equal(t, 0, remainingSeconds(start.Add(300*time.Second), start, limit))
	assert.Equal(t, 0, remainingSeconds(start.Add(10*time.Minute), start, limit), "remaining never goes negative")
}

func TestRemainingSecondsNonIncreasing(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limit := 300 * time.Second

	prev := remainingSeconds(start, start, limit)
	for elapsed := time.Second; elapsed <= 6*time.Minute; elapsed += 7 * time.Second {
		current := remainingSeconds(start.Add(elapsed), start, limit)
		assert.LessOrEqual(t, current, prev)
		prev = current
	}
}
