// Package errors provides standardized error handling for the application form.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Form state errors
const (
	ErrCodeUnknownField      ErrorCode = "UNKNOWN_FIELD"
	ErrCodeInvalidFieldValue ErrorCode = "INVALID_FIELD_VALUE"
	ErrCodeValidationFailed  ErrorCode = "FORM_VALIDATION_FAILED"
)

// Submission errors
const (
	ErrCodeSubmissionInFlight ErrorCode = "SUBMISSION_IN_FLIGHT"
	ErrCodeInvalidState       ErrorCode = "INVALID_STATE"
	ErrCodePayloadInvalid     ErrorCode = "PAYLOAD_INVALID"
	ErrCodeTransportFailed    ErrorCode = "TRANSPORT_FAILED"
	ErrCodeProtocolFailed     ErrorCode = "PROTOCOL_FAILED"
	ErrCodeSubmissionRejected ErrorCode = "SUBMISSION_REJECTED"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// Session errors
const (
	ErrCodeSessionLimit ErrorCode = "SESSION_LIMIT_REACHED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error { return e.cause }

// Is matches another StandardError by code so errors.Is works against the
// sentinel values below.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is checks.
var (
	ErrUnknownField       = &StandardError{Code: ErrCodeUnknownField}
	ErrInvalidFieldValue  = &StandardError{Code: ErrCodeInvalidFieldValue}
	ErrValidationFailed   = &StandardError{Code: ErrCodeValidationFailed}
	ErrSubmissionInFlight = &StandardError{Code: ErrCodeSubmissionInFlight}
	ErrInvalidState       = &StandardError{Code: ErrCodeInvalidState}
	ErrPayloadInvalid     = &StandardError{Code: ErrCodePayloadInvalid}
	ErrTransportFailed    = &StandardError{Code: ErrCodeTransportFailed}
	ErrProtocolFailed     = &StandardError{Code: ErrCodeProtocolFailed}
	ErrSubmissionRejected = &StandardError{Code: ErrCodeSubmissionRejected}
	ErrSessionLimit       = &StandardError{Code: ErrCodeSessionLimit}
)

// ==========================
// 2. Error Constructors
// ==========================

// NewUnknownFieldError reports a field name outside the schema.
func NewUnknownFieldError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownField,
		Message:   "Unknown form field",
		Details:   fmt.Sprintf("field: %s", name),
		Metadata:  map[string]interface{}{"field": name},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidFieldValueError reports a value of the wrong kind for a field.
func NewInvalidFieldValueError(name string, want string, got interface{}) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidFieldValue,
		Message:   "Invalid value for form field",
		Details:   fmt.Sprintf("field: %s, expected %s, got %T", name, want, got),
		Metadata:  map[string]interface{}{"field": name},
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError carries per-field messages from the validation pass.
func NewValidationFailedError(fieldErrors map[string]string) *StandardError {
	meta := make(map[string]interface{}, len(fieldErrors))
	for k, v := range fieldErrors {
		meta[k] = v
	}
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Please complete all required fields",
		Details:   fmt.Sprintf("%d invalid field(s)", len(fieldErrors)),
		Metadata:  meta,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionInFlightError is returned for a trigger while a request is pending.
func NewSubmissionInFlightError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionInFlight,
		Message:   "A submission is already in progress",
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidStateError reports an operation attempted in the wrong state.
func NewInvalidStateError(op, state string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidState,
		Message:   "Operation not allowed in current state",
		Details:   fmt.Sprintf("op: %s, state: %s", op, state),
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionLimitError is returned when the session store is full.
func NewSessionLimitError(limit int) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionLimit,
		Message:   "Too many open applications, please try again shortly",
		Details:   fmt.Sprintf("limit: %d", limit),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPayloadInvalidError reports a payload that failed its schema check.
func NewPayloadInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodePayloadInvalid,
		Message:   "Submission payload failed schema check",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewTransportFailedError wraps a network-level failure.
func NewTransportFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransportFailed,
		Message:   "Could not reach the application endpoint",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewProtocolFailedError reports a response that could not be interpreted.
func NewProtocolFailedError(details string, err error) *StandardError {
	se := &StandardError{
		Code:      ErrCodeProtocolFailed,
		Message:   "Unexpected response from the application endpoint",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
	if err != nil {
		se.Details = fmt.Sprintf("%s: %v", details, err)
	}
	return se
}

// NewSubmissionRejectedError reports a well-formed non-success status.
// message is the endpoint's human-readable text, possibly empty.
func NewSubmissionRejectedError(status, message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionRejected,
		Message:   message,
		Details:   fmt.Sprintf("status: %s", status),
		Metadata:  map[string]interface{}{"status": status},
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandardError normalizes any error into a StandardError.
func AsStandardError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var se *StandardError
	if stderrors.As(err, &se) {
		return se
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// IsSubmissionFailure reports whether err belongs to the failure family that
// returns the form to editing with a notice.
func IsSubmissionFailure(err error) bool {
	se := AsStandardError(err)
	if se == nil {
		return false
	}
	switch se.Code {
	case ErrCodeTransportFailed, ErrCodeProtocolFailed, ErrCodeSubmissionRejected, ErrCodePayloadInvalid:
		return true
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "FIELD") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "TRANSPORT"):
		return "TRANSPORT"
	case strings.Contains(codeStr, "PROTOCOL") || strings.Contains(codeStr, "REJECTED") || strings.Contains(codeStr, "PAYLOAD"):
		return "PROTOCOL"
	case strings.Contains(codeStr, "STATE") || strings.Contains(codeStr, "IN_FLIGHT"):
		return "STATE"
	case strings.Contains(codeStr, "LIMIT"):
		return "CAPACITY"
	default:
		return "OTHER"
	}
}
