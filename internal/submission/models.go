// internal/submission/models.go
package submission

import (
	"sort"

	"recruitment-form/internal/form"
	"recruitment-form/internal/models"
)

// State of the submission lifecycle.
type State int32

const (
	StateEditing State = iota
	StateSubmitting
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Notifier surfaces a failure message to the applicant. It is called before
// the handler returns to Editing.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Result describes a finished Submit call.
type Result struct {
	AttemptID string                     `json:"attemptId"`
	State     State                      `json:"state"`
	Response  *models.SubmissionResponse `json:"response,omitempty"`
	Notice    string                     `json:"notice,omitempty"`
	Errors    form.FieldErrors           `json:"errors,omitempty"`
}

// FieldFilter is the deny list of record fields that never leave the form.
type FieldFilter struct {
	excluded map[string]struct{}
}

func NewFieldFilter(excluded []string) FieldFilter {
	f := FieldFilter{excluded: make(map[string]struct{}, len(excluded))}
	for _, name := range excluded {
		f.excluded[name] = struct{}{}
	}
	return f
}

// Excludes reports whether name is dropped from payloads.
func (f FieldFilter) Excludes(name string) bool {
	_, ok := f.excluded[name]
	return ok
}

// Excluded lists the denied names in sorted order.
func (f FieldFilter) Excluded() []string {
	out := make([]string, 0, len(f.excluded))
	for name := range f.excluded {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Apply copies values without the excluded fields.
func (f FieldFilter) Apply(values map[string]interface{}) models.ApplicationPayload {
	out := make(models.ApplicationPayload, len(values))
	for k, v := range values {
		if f.Excludes(k) {
			continue
		}
		out[k] = v
	}
	return out
}
