// internal/submission/config.go
package submission

import (
	"time"

	"recruitment-form/internal/common/config"
)

type Config struct {
	EndpointURL    string
	Timeout        time.Duration
	ContentType    string
	SuccessStatus  string
	ExcludedFields []string
	FailureMessage string
}

// LoadConfig converts the loaded submission section. Timeouts in the file
// are milliseconds.
func LoadConfig(sc config.SubmissionConfig) *Config {
	cfg := &Config{
		EndpointURL:    sc.EndpointURL,
		Timeout:        time.Duration(sc.Timeout) * time.Millisecond,
		ContentType:    sc.ContentType,
		SuccessStatus:  sc.SuccessStatus,
		ExcludedFields: sc.ExcludedFields,
		FailureMessage: sc.FailureMessage,
	}
	if cfg.ContentType == "" {
		cfg.ContentType = config.DefaultContentType
	}
	if cfg.SuccessStatus == "" {
		cfg.SuccessStatus = config.DefaultSuccessStatus
	}
	if cfg.FailureMessage == "" {
		cfg.FailureMessage = config.DefaultFailureMessage
	}
	return cfg
}
