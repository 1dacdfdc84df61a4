// internal/submission/handler.go
package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	apperrors "recruitment-form/internal/common/errors"
	apphttp "recruitment-form/internal/common/http"
	"recruitment-form/internal/common/logger"
	"recruitment-form/internal/common/metrics"
	"recruitment-form/internal/common/observability"
	"recruitment-form/internal/form"
	"recruitment-form/internal/models"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const Component = "submission"

// timestampLayout is RFC 3339 with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// HandlerOption customizes NewHandler.
type HandlerOption func(*Handler)

func WithNotifier(n Notifier) HandlerOption {
	return func(h *Handler) { h.notifier = n }
}

func WithObservability(obs *observability.Observability) HandlerOption {
	return func(h *Handler) { h.obs = obs }
}

// WithSessionID tags log entries and spans with the owning session.
func WithSessionID(id string) HandlerOption {
	return func(h *Handler) { h.sessionID = id }
}

// WithPayloadSchema reuses a schema compiled by CompilePayloadSchema.
func WithPayloadSchema(schema *gojsonschema.Schema) HandlerOption {
	return func(h *Handler) { h.schema = schema }
}

// WithClock replaces time.Now for the submittedAt stamp.
func WithClock(now func() time.Time) HandlerOption {
	return func(h *Handler) { h.now = now }
}

// Handler drives one record through Editing, Submitting and Submitted.
// At most one outbound request is in flight per handler.
type Handler struct {
	config    *Config
	record    *form.Record
	client    *apphttp.Client
	filter    FieldFilter
	schema    *gojsonschema.Schema
	notifier  Notifier
	obs       *observability.Observability
	errors    *apperrors.ErrorHandler
	logger    logger.Logger
	sessionID string
	now       func() time.Time

	// mu orders record writes against the Editing -> Submitting transition.
	mu    sync.Mutex
	state atomic.Int32
}

func NewHandler(config *Config, record *form.Record, client *apphttp.Client, log logger.Logger, opts ...HandlerOption) (*Handler, error) {
	h := &Handler{
		config:   config,
		record:   record,
		client:   client,
		filter:   NewFieldFilter(config.ExcludedFields),
		notifier: NotifierFunc(func(string) {}),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}

	if h.schema == nil {
		schema, err := CompilePayloadSchema(record.Schema(), h.filter)
		if err != nil {
			return nil, err
		}
		h.schema = schema
	}

	h.logger = log.WithFields(map[string]interface{}{
		"component": Component,
		"sessionId": h.sessionID,
	})
	h.errors = apperrors.NewErrorHandler(h.logger, config.FailureMessage)
	h.logger.Debug("submission handler ready", map[string]interface{}{
		"excludedFields": h.filter.Excluded(),
	})
	return h, nil
}

// State returns the current lifecycle state.
func (h *Handler) State() State {
	return State(h.state.Load())
}

// Submit validates the record and, if it passes, posts it once. A call while
// a request is pending returns SUBMISSION_IN_FLIGHT without side effects.
// On any failure the record is left untouched, the notifier is called and
// the state returns to Editing.
func (h *Handler) Submit(ctx context.Context) (*Result, error) {
	attemptID := uuid.NewString()

	snapshot, invalid, err := h.begin(ctx, attemptID)
	if err != nil {
		return invalid, err
	}

	metrics.SubmissionsInFlight.Inc()
	defer metrics.SubmissionsInFlight.Dec()

	ctx, span := h.obs.StartSpan(ctx, "submission.submit",
		attribute.String("attempt.id", attemptID),
		attribute.String("session.id", h.sessionID),
	)
	defer span.End()

	log := h.logger.WithFields(map[string]interface{}{"attemptId": attemptID})
	log.Info("submitting application", map[string]interface{}{
		"endpoint": h.config.EndpointURL,
	})

	start := time.Now()
	resp, err := h.send(ctx, snapshot)
	if err != nil {
		return h.fail(ctx, span, attemptID, start, resp, err), err
	}

	h.observe(ctx, metrics.OutcomeSuccess, time.Since(start))
	h.state.Store(int32(StateSubmitted))
	log.Info("application submitted", map[string]interface{}{
		"durationMs": time.Since(start).Milliseconds(),
	})

	return &Result{AttemptID: attemptID, State: StateSubmitted, Response: resp}, nil
}

// begin moves Editing to Submitting and returns the snapshot to send. The
// snapshot and the transition happen under mu, so no SetField lands between
// them.
func (h *Handler) begin(ctx context.Context, attemptID string) (map[string]interface{}, *Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch s := h.State(); s {
	case StateSubmitting:
		h.recordOutcome(ctx, metrics.OutcomeIgnored)
		return nil, nil, apperrors.NewSubmissionInFlightError()
	case StateSubmitted:
		return nil, nil, apperrors.NewInvalidStateError("submit", s.String())
	}

	snapshot := h.record.Snapshot()
	if errs := form.Validate(h.record.Schema(), snapshot); errs != nil {
		h.recordOutcome(ctx, metrics.OutcomeInvalid)
		err := apperrors.NewValidationFailedError(errs)
		h.errors.Handle(h.sessionID, err)
		return nil, &Result{AttemptID: attemptID, State: StateEditing, Errors: errs}, err
	}

	h.state.Store(int32(StateSubmitting))
	return snapshot, nil, nil
}

// SetField writes one field while Editing. Input is frozen while a request
// is pending and after a successful submission.
func (h *Handler) SetField(name string, value interface{}) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s := h.State(); s != StateEditing {
		return apperrors.NewInvalidStateError("set "+name, s.String())
	}
	return h.record.Set(name, value)
}

// Reset returns to Editing with a default record. It is refused while a
// request is pending.
func (h *Handler) Reset() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch s := h.State(); s {
	case StateSubmitting:
		return apperrors.NewInvalidStateError("reset", s.String())
	case StateSubmitted:
		h.record.Reset()
		h.state.Store(int32(StateEditing))
	default:
		h.record.Reset()
	}
	h.logger.Debug("form reset", nil)
	return nil
}

// BuildPayload shapes the outbound body from a record snapshot.
func (h *Handler) BuildPayload(snapshot map[string]interface{}) models.ApplicationPayload {
	payload := h.filter.Apply(snapshot)
	payload[models.SubmittedAtField] = h.now().UTC().Format(timestampLayout)
	return payload
}

func (h *Handler) send(ctx context.Context, snapshot map[string]interface{}) (*models.SubmissionResponse, error) {
	payload := h.BuildPayload(snapshot)
	if err := h.validatePayload(payload); err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewPayloadInvalidError(err.Error())
	}

	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	resp, err := h.client.Post(ctx, h.config.EndpointURL, h.config.ContentType, body)
	if err != nil {
		return nil, apperrors.NewTransportFailedError(err)
	}

	var out models.SubmissionResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, apperrors.NewProtocolFailedError(fmt.Sprintf("http status %d", resp.StatusCode), err)
	}
	if out.Status != h.config.SuccessStatus {
		return &out, apperrors.NewSubmissionRejectedError(out.Status, out.Message)
	}
	return &out, nil
}

func (h *Handler) validatePayload(payload models.ApplicationPayload) error {
	result, err := h.schema.Validate(gojsonschema.NewGoLoader(payload))
	if err != nil {
		return apperrors.NewPayloadInvalidError(fmt.Sprintf("validation error: %v", err))
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return apperrors.NewPayloadInvalidError(fmt.Sprintf("%v", errs))
	}
	return nil
}

func (h *Handler) fail(ctx context.Context, span trace.Span, attemptID string, start time.Time, resp *models.SubmissionResponse, err error) *Result {
	stdErr := apperrors.AsStandardError(err)

	outcome := metrics.OutcomeFailed
	if stdErr.Code == apperrors.ErrCodeSubmissionRejected {
		outcome = metrics.OutcomeRejected
	}
	h.observe(ctx, outcome, time.Since(start))

	span.RecordError(err)
	span.SetStatus(codes.Error, string(stdErr.Code))

	notice := h.errors.Handle(h.sessionID, err)
	h.notifier.Notify(notice)
	h.state.Store(int32(StateEditing))

	return &Result{
		AttemptID: attemptID,
		State:     StateEditing,
		Response:  resp,
		Notice:    notice,
	}
}

func (h *Handler) observe(ctx context.Context, outcome string, d time.Duration) {
	h.recordOutcome(ctx, outcome)
	metrics.SubmissionDuration.WithLabelValues(outcome).Observe(d.Seconds())
	h.obs.RecordSubmissionDuration(ctx, d, outcome)
}

func (h *Handler) recordOutcome(ctx context.Context, outcome string) {
	metrics.SubmissionsTotal.WithLabelValues(outcome).Inc()
	h.obs.RecordSubmission(ctx, outcome)
}

// CompilePayloadSchema compiles PayloadSchema once so handlers can share it.
func CompilePayloadSchema(s *form.Schema, filter FieldFilter) (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(PayloadSchema(s, filter)))
	if err != nil {
		return nil, fmt.Errorf("compile payload schema: %w", err)
	}
	return schema, nil
}

// PayloadSchema is the JSON Schema every outbound payload must satisfy:
// each non-excluded field with its kind's type, plus submittedAt.
func PayloadSchema(s *form.Schema, filter FieldFilter) map[string]interface{} {
	properties := make(map[string]interface{})
	required := []string{}
	for _, f := range s.Fields() {
		if filter.Excludes(f.Name) {
			continue
		}
		typ := "string"
		if f.Kind == form.KindBoolean {
			typ = "boolean"
		}
		properties[f.Name] = map[string]interface{}{"type": typ}
		required = append(required, f.Name)
	}
	properties[models.SubmittedAtField] = map[string]interface{}{
		"type":   "string",
		"format": "date-time",
	}
	required = append(required, models.SubmittedAtField)

	return map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}
