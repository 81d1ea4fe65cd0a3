package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "key")
	t.Setenv("LLM_PROVIDER", "gemini")

	cfg := Load()

	assert.Equal(t, "5000", cfg.App.Port)
	assert.Equal(t, "127.0.0.1", cfg.App.Host)
	assert.Equal(t, 60*time.Second, cfg.Ai.LLMTimeout)
	assert.Equal(t, []string{".pdf"}, cfg.Resources.Extensions)
	assert.Equal(t, 10*time.Second, cfg.Resources.PollInterval)
	assert.Equal(t, 10*time.Minute, cfg.Resources.LoadTimeout)
	assert.Equal(t, time.Duration(0), cfg.Cache.TTL)
	assert.True(t, cfg.Resources.LoadOnStartup)
	assert.False(t, cfg.Resources.Watch)
	assert.Equal(t, 2*time.Second, cfg.Resources.WatchDebounce)
	assert.Empty(t, cfg.Resources.ReloadSchedule)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LLM_TIMEOUT", "15")
	t.Setenv("RESOURCE_POLL_INTERVAL", "250ms")
	t.Setenv("RESOURCE_EXTENSIONS", ".pdf, .TXT ,")
	t.Setenv("RESOURCE_UPLOAD_CONCURRENCY", "2")
	t.Setenv("LOAD_ON_STARTUP", "false")
	t.Setenv("RESPONSE_CACHE_BACKEND", "REDIS")

	cfg := Load()

	assert.Equal(t, 15*time.Second, cfg.Ai.LLMTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Resources.PollInterval)
	assert.Equal(t, []string{".pdf", ".TXT"}, cfg.Resources.Extensions)
	assert.Equal(t, 2, cfg.Resources.UploadConcurrency)
	assert.False(t, cfg.Resources.LoadOnStartup)
	assert.Equal(t, "redis", cfg.Cache.Backend)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "gemini without key",
			env:     map[string]string{"LLM_PROVIDER": "gemini", "GOOGLE_API_KEY": ""},
			wantErr: "GOOGLE_API_KEY",
		},
		{
			name: "ollama needs no key",
			env:  map[string]string{"LLM_PROVIDER": "ollama", "GOOGLE_API_KEY": ""},
		},
		{
			name:    "unknown provider",
			env:     map[string]string{"LLM_PROVIDER": "bard"},
			wantErr: "invalid configuration",
		},
		{
			name:    "unknown name policy",
			env:     map[string]string{"LLM_PROVIDER": "ollama", "NAME_POLICY": "ignore"},
			wantErr: "invalid configuration",
		},
		{
			name:    "openai without key or base url",
			env:     map[string]string{"LLM_PROVIDER": "openai", "OPENAI_API_KEY": "", "OPENAI_BASE_URL": ""},
			wantErr: "OPENAI_API_KEY",
		},
		{
			name: "hourly reload schedule",
			env:  map[string]string{"LLM_PROVIDER": "ollama", "RESOURCE_RELOAD_SCHEDULE": "0 * * * *"},
		},
		{
			name:    "malformed reload schedule",
			env:     map[string]string{"LLM_PROVIDER": "ollama", "RESOURCE_RELOAD_SCHEDULE": "every hour"},
			wantErr: "RESOURCE_RELOAD_SCHEDULE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			err := Load().Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
