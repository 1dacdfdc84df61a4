package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_Expiry(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s := NewSession("abc", start, time.Hour)

	assert.False(t, s.IsExpired(start.Add(59*time.Minute)))
	assert.True(t, s.IsExpired(start.Add(61*time.Minute)))

	s.UpdateActivity(start.Add(50*time.Minute), time.Hour)
	assert.False(t, s.IsExpired(start.Add(100*time.Minute)))
	assert.Equal(t, start.Add(50*time.Minute), s.LastActivity)
}
