// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Submission SubmissionConfig `mapstructure:"submission"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// IsDevelopment reports whether programming errors should fail fast.
func (a AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
	SessionTTL      int    `mapstructure:"session_ttl"`      // milliseconds
	MaxSessions     int    `mapstructure:"max_sessions"`     // 0 disables the cap
	CookieSecure    bool   `mapstructure:"cookie_secure"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SubmissionConfig describes the remote endpoint contract.
type SubmissionConfig struct {
	EndpointURL    string   `mapstructure:"endpoint_url"`
	Timeout        int      `mapstructure:"timeout"` // milliseconds
	ContentType    string   `mapstructure:"content_type"`
	SuccessStatus  string   `mapstructure:"success_status"`
	ExcludedFields []string `mapstructure:"excluded_fields"`
	FailureMessage string   `mapstructure:"failure_message"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
