package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
submission:
  endpoint_url: https://forms.example.com/exec
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "recruitment-form", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DefaultMaxSessions, cfg.Server.MaxSessions)
	assert.Equal(t, 30000, cfg.Submission.Timeout)
	assert.Equal(t, DefaultContentType, cfg.Submission.ContentType)
	assert.Equal(t, DefaultSuccessStatus, cfg.Submission.SuccessStatus)
	assert.Equal(t, []string{"confirmed"}, cfg.Submission.ExcludedFields)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_FORM_ENDPOINT", "https://hooks.example.com/apply")
	path := writeConfig(t, `
submission:
  endpoint_url: ${TEST_FORM_ENDPOINT}
  excluded_fields:
    - confirmed
    - alternateMobile
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.example.com/apply", cfg.Submission.EndpointURL)
	assert.Equal(t, []string{"confirmed", "alternateMobile"}, cfg.Submission.ExcludedFields)
}

func TestLoadFromFile_EndpointFromEnvironment(t *testing.T) {
	t.Setenv("SUBMISSION_ENDPOINT_URL", "http://localhost:9999/submit")
	path := writeConfig(t, `
app:
  environment: production
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/submit", cfg.Submission.EndpointURL)
	assert.False(t, cfg.App.IsDevelopment())
}

func TestResolve_UsesConfigFileFromEnvironment(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  max_sessions: 25
submission:
  endpoint_url: https://forms.example.com/exec
`)
	t.Setenv(ConfigFileEnv, path)

	cfg, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 25, cfg.Server.MaxSessions)

	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = Resolve()
	assert.Error(t, err)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing endpoint",
			body:    "app:\n  name: x\n",
			wantErr: "submission.endpoint_url is required",
		},
		{
			name:    "relative endpoint",
			body:    "submission:\n  endpoint_url: /exec\n",
			wantErr: "absolute http(s) URL",
		},
		{
			name:    "port out of range",
			body:    "server:\n  port: 70000\nsubmission:\n  endpoint_url: https://x.example.com\n",
			wantErr: "server.port out of range",
		},
		{
			name:    "negative session cap",
			body:    "server:\n  max_sessions: -1\nsubmission:\n  endpoint_url: https://x.example.com\n",
			wantErr: "server.max_sessions must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SUBMISSION_ENDPOINT_URL", "")
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestServerConfig_Addr(t *testing.T) {
	assert.Equal(t, ":8080", ServerConfig{Port: 8080}.Addr())
	assert.Equal(t, "127.0.0.1:9000", ServerConfig{Host: "127.0.0.1", Port: 9000}.Addr())
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}
