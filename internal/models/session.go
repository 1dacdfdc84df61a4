package models

import "time"

// Session is the bookkeeping for one visitor's cookie.
type Session struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
	LastActivity time.Time `json:"lastActivity"`
}

// NewSession starts a session that expires ttl after now.
func NewSession(id string, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:           id,
		CreatedAt:    now,
		ExpiresAt:    now.Add(ttl),
		LastActivity: now,
	}
}

// IsExpired checks if session has expired
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// UpdateActivity slides the expiry window forward.
func (s *Session) UpdateActivity(now time.Time, ttl time.Duration) {
	s.LastActivity = now
	s.ExpiresAt = now.Add(ttl)
}
