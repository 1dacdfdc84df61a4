// Package server serves the application form over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"recruitment-form/internal/common/config"
	apperrors "recruitment-form/internal/common/errors"
	"recruitment-form/internal/common/logger"
	"recruitment-form/internal/common/metrics"
	"recruitment-form/internal/form"
	"recruitment-form/internal/form/render"
	"recruitment-form/internal/models"
	"recruitment-form/internal/submission"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SessionCookie carries the visitor's session ID.
const SessionCookie = "application_session"

type Server struct {
	cfg    *config.Config
	schema *form.Schema
	page   *render.Page
	store  *SessionStore
	logger logger.Logger
	mux    *http.ServeMux
	http   *http.Server
	ready  atomic.Bool
}

func New(cfg *config.Config, schema *form.Schema, store *SessionStore, log logger.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		schema: schema,
		page:   render.NewPage(schema, ""),
		store:  store,
		logger: log.WithFields(map[string]interface{}{"component": "server"}),
		mux:    http.NewServeMux(),
	}
	s.routes()
	s.http = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.mux,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleForm)
	s.mux.HandleFunc("POST /field", s.handleField)
	s.mux.HandleFunc("POST /submit", s.handleSubmit)
	s.mux.HandleFunc("POST /reset", s.handleReset)

	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /ready", s.handleReady)
	s.mux.Handle("GET /metrics", promhttp.Handler())
}

// Handler exposes the routes, mainly for tests.
func (s *Server) Handler() http.Handler { return s.mux }

// SetReady flips the /ready probe.
func (s *Server) SetReady(ready bool) { s.ready.Store(ready) }

// ListenAndServe blocks until the server stops. http.ErrServerClosed is
// reported as nil.
func (s *Server) ListenAndServe() error {
	s.logger.Info("form server listening", map[string]interface{}{"addr": s.http.Addr})
	s.SetReady(true)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)
	return s.http.Shutdown(ctx)
}

// ==========================
// Form routes
// ==========================

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		s.sessionError(w, err)
		return
	}

	notice, errs := sess.takeView()
	state := sess.Handler().State()
	body, err := s.page.Render(sess.Record().Snapshot(), render.PageState{
		Submitting: state == submission.StateSubmitting,
		Submitted:  state == submission.StateSubmitted,
		Notice:     notice,
		Errors:     errs,
	})
	if err != nil {
		s.internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(body)
}

func (s *Server) handleField(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	defer r.Body.Close()

	var update models.FieldUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		metrics.FieldUpdatesTotal.WithLabelValues("rejected").Inc()
		writeJSON(w, http.StatusBadRequest, models.FieldUpdateResult{Error: "invalid JSON"})
		return
	}

	if err := s.schema.Check(update.Name, update.Value); err != nil {
		metrics.FieldUpdatesTotal.WithLabelValues("rejected").Inc()
		s.logger.Warn("field update rejected", map[string]interface{}{
			"sessionId": sess.ID(),
			"field":     update.Name,
			"error":     err.Error(),
		})
		writeJSON(w, http.StatusBadRequest, models.FieldUpdateResult{
			Name:  update.Name,
			Error: apperrors.AsStandardError(err).Message,
		})
		return
	}

	if err := sess.Handler().SetField(update.Name, update.Value); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidState) {
			s.internalError(w, err)
			return
		}
		metrics.FieldUpdatesTotal.WithLabelValues("frozen").Inc()
		writeJSON(w, http.StatusConflict, models.FieldUpdateResult{
			Name:  update.Name,
			Error: apperrors.AsStandardError(err).Message,
		})
		return
	}
	metrics.FieldUpdatesTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, models.FieldUpdateResult{Name: update.Name, Value: update.Value})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	handler := sess.Handler()
	for name, value := range s.page.Decode(r.PostForm) {
		if err := handler.SetField(name, value); err != nil {
			if errors.Is(err, apperrors.ErrInvalidState) {
				// Not Editing: keep the frozen record and let Submit report.
				break
			}
			s.internalError(w, err)
			return
		}
	}

	// The outbound request outlives an impatient browser.
	ctx := context.WithoutCancel(r.Context())
	result, err := handler.Submit(ctx)
	switch {
	case err == nil:
		sess.setErrors(nil)
	case errors.Is(err, apperrors.ErrValidationFailed):
		sess.setErrors(result.Errors)
	case errors.Is(err, apperrors.ErrSubmissionInFlight), errors.Is(err, apperrors.ErrInvalidState):
		// Ignored trigger; the page shows the current state.
	case apperrors.IsSubmissionFailure(err):
		sess.setErrors(nil)
	default:
		s.internalError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	if err := sess.Handler().Reset(); err != nil {
		s.logger.Warn("reset refused", map[string]interface{}{
			"sessionId": sess.ID(),
			"error":     err.Error(),
		})
	} else {
		sess.setErrors(nil)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ==========================
// Probes
// ==========================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthStatus{
		Status:    "healthy",
		Service:   s.cfg.App.Name,
		Version:   s.cfg.App.Version,
		Sessions:  s.store.Len(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status, code := "ready", http.StatusOK
	if !s.ready.Load() {
		status, code = "not ready", http.StatusServiceUnavailable
	}
	writeJSON(w, code, models.HealthStatus{
		Status:    status,
		Service:   s.cfg.App.Name,
		Version:   s.cfg.App.Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// ==========================
// Helpers
// ==========================

// session resolves the visitor's session from the cookie, starting a new
// one when the cookie is missing or stale.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, error) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if sess, ok := s.store.Get(c.Value); ok {
			return sess, nil
		}
	}

	sess, err := s.store.Create()
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID(),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Server.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Duration(s.cfg.Server.SessionTTL) * time.Millisecond / time.Second),
	})
	return sess, nil
}

func (s *Server) sessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, apperrors.ErrSessionLimit) {
		w.Header().Set("Retry-After", "60")
		http.Error(w, apperrors.AsStandardError(err).Message, http.StatusServiceUnavailable)
		return
	}
	s.internalError(w, err)
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.WithError(err).Error("request failed", nil)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
