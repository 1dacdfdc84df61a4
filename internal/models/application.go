// internal/models/application.go
package models

// SubmittedAtField is the timestamp key added to every outbound payload.
const SubmittedAtField = "submittedAt"

// ApplicationPayload is the JSON object posted to the application endpoint:
// the record's fields minus the excluded ones, plus submittedAt.
type ApplicationPayload map[string]interface{}

// SubmissionResponse is the endpoint's reply. Status "success" is the only
// accepted outcome; Message is shown to the applicant otherwise.
type SubmissionResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// FieldUpdate is the body of a single-field change relayed by the page.
type FieldUpdate struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// FieldUpdateResult echoes the stored value back.
type FieldUpdateResult struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
	Error string      `json:"error,omitempty"`
}

// HealthStatus is returned by /health and /ready.
type HealthStatus struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Sessions  int    `json:"sessions,omitempty"`
	Timestamp string `json:"timestamp"`
}
