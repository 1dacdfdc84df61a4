package server

import (
	"context"
	"sync"
	"time"

	apperrors "recruitment-form/internal/common/errors"
	"recruitment-form/internal/common/logger"
	"recruitment-form/internal/common/metrics"
	"recruitment-form/internal/form"
	"recruitment-form/internal/models"
	"recruitment-form/internal/submission"

	"github.com/google/uuid"
)

// Session is one visitor's record and submission handler.
type Session struct {
	meta    *models.Session
	record  *form.Record
	handler *submission.Handler

	mu     sync.Mutex
	notice string
	errs   form.FieldErrors
}

func (s *Session) ID() string { return s.meta.ID }

func (s *Session) Record() *form.Record { return s.record }

func (s *Session) Handler() *submission.Handler { return s.handler }

// Notify stores a failure message for the next page render.
func (s *Session) Notify(message string) {
	s.mu.Lock()
	s.notice = message
	s.mu.Unlock()
}

// setErrors replaces the field errors shown on the next render.
func (s *Session) setErrors(errs form.FieldErrors) {
	s.mu.Lock()
	s.errs = errs
	s.mu.Unlock()
}

// takeView returns and clears the pending notice. Field errors stay until
// the next submit attempt.
func (s *Session) takeView() (string, form.FieldErrors) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notice := s.notice
	s.notice = ""
	return notice, s.errs
}

// SessionFactory builds the record and handler for a new session.
type SessionFactory func(id string, notifier submission.Notifier) (*form.Record, *submission.Handler, error)

// SessionStore keeps sessions in memory. Idle sessions are evicted after ttl
// and at most limit sessions are held at once (0 means no cap).
type SessionStore struct {
	ttl     time.Duration
	limit   int
	factory SessionFactory
	logger  logger.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore(ttl time.Duration, limit int, factory SessionFactory, log logger.Logger) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		limit:    limit,
		factory:  factory,
		logger:   log.WithFields(map[string]interface{}{"component": "sessions"}),
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns a live session and slides its expiry. A session with a
// request in flight is kept even past its expiry.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	now := st.now()
	if st.expiredLocked(s, now) {
		st.removeLocked(id)
		return nil, false
	}
	s.meta.UpdateActivity(now, st.ttl)
	return s, true
}

// Create starts a new session with a fresh default record. When the store
// is full, expired sessions are swept first; if none can go, Create fails
// with SESSION_LIMIT_REACHED.
func (st *SessionStore) Create() (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	if st.limit > 0 && len(st.sessions) >= st.limit {
		st.evictLocked(now)
		if len(st.sessions) >= st.limit {
			st.logger.Warn("session limit reached", map[string]interface{}{"limit": st.limit})
			return nil, apperrors.NewSessionLimitError(st.limit)
		}
	}

	id := uuid.NewString()
	s := &Session{meta: models.NewSession(id, now, st.ttl)}
	record, handler, err := st.factory(id, s)
	if err != nil {
		return nil, err
	}
	s.record = record
	s.handler = handler

	st.sessions[id] = s
	metrics.SessionsActive.Set(float64(len(st.sessions)))

	st.logger.Debug("session created", map[string]interface{}{"sessionId": id})
	return s, nil
}

func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Evict drops expired sessions, skipping any with a request in flight.
func (st *SessionStore) Evict() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.evictLocked(st.now())
}

// caller holds mu
func (st *SessionStore) evictLocked(now time.Time) int {
	evicted := 0
	for id, s := range st.sessions {
		if !st.expiredLocked(s, now) {
			continue
		}
		st.removeLocked(id)
		evicted++
	}
	if evicted > 0 {
		st.logger.Info("evicted idle sessions", map[string]interface{}{
			"evicted":   evicted,
			"remaining": len(st.sessions),
		})
	}
	return evicted
}

// Run evicts expired sessions every interval until ctx is done.
func (st *SessionStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Evict()
		}
	}
}

// caller holds mu
func (st *SessionStore) expiredLocked(s *Session, now time.Time) bool {
	return s.meta.IsExpired(now) && s.handler.State() != submission.StateSubmitting
}

// caller holds mu
func (st *SessionStore) removeLocked(id string) {
	delete(st.sessions, id)
	metrics.SessionsActive.Set(float64(len(st.sessions)))
}
