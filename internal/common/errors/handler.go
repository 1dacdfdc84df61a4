// internal/common/errors/handler.go
package errors

// ErrorHandler turns submission errors into log entries and user notices.
type ErrorHandler struct {
	logger         Logger
	failureMessage string
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger, failureMessage string) *ErrorHandler {
	return &ErrorHandler{logger: logger, failureMessage: failureMessage}
}

// Handle logs err and returns the text to show the applicant.
func (h *ErrorHandler) Handle(sessionID string, err error) string {
	stdErr := AsStandardError(err)
	if stdErr == nil {
		return ""
	}

	fields := map[string]interface{}{
		"sessionId":     sessionID,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}

	switch GetErrorCategory(stdErr.Code) {
	case "VALIDATION", "STATE":
		h.logger.Warn("form request refused", fields)
	default:
		h.logger.Error("submission failed", fields)
	}

	return h.NoticeFor(stdErr)
}

// NoticeFor picks the applicant-facing text for an error. Rejections carry
// the endpoint's own message; every other failure gets the generic text.
func (h *ErrorHandler) NoticeFor(stdErr *StandardError) string {
	switch stdErr.Code {
	case ErrCodeSubmissionRejected:
		if stdErr.Message != "" {
			return stdErr.Message
		}
	case ErrCodeValidationFailed, ErrCodeSubmissionInFlight:
		return stdErr.Message
	}
	return h.failureMessage
}
