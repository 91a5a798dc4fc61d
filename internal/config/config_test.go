package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "empty config uses defaults",
			yaml: `{}`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "https://web-agr.chitai-gorod.ru", cfg.API.BaseURL)
				assert.Equal(t, "https://www.chitai-gorod.ru", cfg.API.SiteURL)
				assert.Equal(t, 15*time.Second, cfg.API.Timeout)
				assert.Equal(t, 213, cfg.API.CityID)
				assert.Equal(t, 2, cfg.API.Cities["Санкт-Петербург"])
				assert.Equal(t, 20, cfg.API.PerPage)
				assert.Equal(t, 5, cfg.API.MaxPages)
				assert.InDelta(t, 2.0, cfg.API.RateLimit.PerSecond, 1e-9)
				assert.Equal(t, 4, cfg.API.RateLimit.Burst)
				assert.Equal(t, int64(500), cfg.API.RateLimit.WindowLimit)
				assert.Equal(t, time.Hour, cfg.API.RateLimit.Window)
				assert.True(t, cfg.Auth.IsEnabled())
				assert.Equal(t, "token_cache.json", cfg.Auth.CacheFile)
				assert.Equal(t, 24*time.Hour, cfg.Auth.TTL)
				assert.Equal(t, 5*time.Minute, cfg.Auth.RefreshBuffer)
				assert.Equal(t, 2, cfg.Smoke.Parallelism)
				assert.Equal(t, 30*time.Second, cfg.Smoke.CheckTimeout)
				assert.Equal(t, "Лев Толстой", cfg.Smoke.Phrases.Author)
				assert.Equal(t, "книга", cfg.Smoke.Phrases.Generic)
				assert.Equal(t, "детектив", cfg.Smoke.Phrases.Genre)
				assert.Len(t, cfg.Smoke.TypoQueries, 3)
				assert.NotEmpty(t, cfg.Smoke.NonsenseQuery)
				assert.False(t, cfg.Database.Enabled())
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, 8080, cfg.Monitor.Port)
				assert.Equal(t, 15*time.Minute, cfg.Monitor.Interval)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "env var substitution",
			yaml: `
auth:
  token: "${TEST_CHITAI_TOKEN}"
  email: "${TEST_CHITAI_EMAIL}"
`,
			envVars: map[string]string{
				"TEST_CHITAI_TOKEN": "Bearer%20abc",
				"TEST_CHITAI_EMAIL": "qa@example.com",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "Bearer%20abc", cfg.Auth.Token)
				assert.Equal(t, "qa@example.com", cfg.Auth.Email)
			},
		},
		{
			name: "auth can be disabled",
			yaml: `
auth:
  enabled: false
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.False(t, cfg.Auth.IsEnabled())
			},
		},
		{
			name: "relative base url",
			yaml: `
api:
  base_url: /web/api
`,
			wantErr: `api.base_url must be an absolute URL (got "/web/api")`,
		},
		{
			name: "negative parallelism",
			yaml: `
smoke:
  parallelism: -1
`,
			wantErr: "smoke.parallelism must be at least 1",
		},
		{
			name: "database host without name and user",
			yaml: `
database:
  host: localhost
`,
			wantErr: "database.name is required when database.host is set",
		},
		{
			name: "discord enabled without webhook",
			yaml: `
notifications:
  discord:
    enabled: true
`,
			wantErr: "notifications.discord.webhook_url is required when discord is enabled",
		},
		{
			name: "unknown log format",
			yaml: `
logging:
  format: xml
`,
			wantErr: `logging.format must be one of: text, json (got "xml")`,
		},
		{
			name:    "invalid YAML",
			yaml:    `{{{not valid yaml`,
			wantErr: "parsing config YAML",
		},
		{
			name: "full config with overrides",
			yaml: `
api:
  base_url: http://localhost:9999
  site_url: http://localhost:9998
  timeout: 5s
  city_id: 2
  per_page: 48
  max_pages: 3
  rate_limit:
    per_second: 10
    burst: 20
    window_limit: 100
    window: 10m
auth:
  token: static
  cache_file: /tmp/tok.json
  ttl: 12h
  refresh_buffer: 1m
smoke:
  parallelism: 5
  check_timeout: 10s
  phrases:
    author: Достоевский
    generic: роман
    genre: фантастика
  typo_queries: ["Дастаевский"]
  nonsense_query: zzzz
database:
  host: db.example.com
  port: 5433
  name: chitai_qa
  user: qa
  password: pass
  sslmode: require
  pool_size: 2
monitor:
  host: 127.0.0.1
  port: 9090
  interval: 5m
notifications:
  discord:
    enabled: true
    webhook_url: https://discord.com/api/webhooks/123
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "http://localhost:9999", cfg.API.BaseURL)
				assert.Equal(t, 5*time.Second, cfg.API.Timeout)
				assert.Equal(t, 2, cfg.API.CityID)
				assert.Equal(t, 48, cfg.API.PerPage)
				assert.Equal(t, 3, cfg.API.MaxPages)
				assert.Equal(t, int64(100), cfg.API.RateLimit.WindowLimit)
				assert.Equal(t, 10*time.Minute, cfg.API.RateLimit.Window)
				assert.Equal(t, "static", cfg.Auth.Token)
				assert.Equal(t, 12*time.Hour, cfg.Auth.TTL)
				assert.Equal(t, 5, cfg.Smoke.Parallelism)
				assert.Equal(t, "Достоевский", cfg.Smoke.Phrases.Author)
				assert.Equal(t, []string{"Дастаевский"}, cfg.Smoke.TypoQueries)
				assert.Equal(t, "zzzz", cfg.Smoke.NonsenseQuery)
				assert.True(t, cfg.Database.Enabled())
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, 2, cfg.Database.PoolSize)
				assert.Equal(t, 9090, cfg.Monitor.Port)
				assert.Equal(t, 5*time.Minute, cfg.Monitor.Interval)
				assert.True(t, cfg.Notifications.Discord.Enabled)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Smoke.Parallelism = 0
	cfg.Notifications.Discord.Enabled = true
	cfg.Monitor.Interval = 500 * time.Millisecond
	cfg.Monitor.Retention = -time.Hour

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smoke.parallelism")
	assert.Contains(t, err.Error(), "monitor.interval")
	assert.Contains(t, err.Error(), "monitor.retention")
	assert.Contains(t, err.Error(), "notifications.discord.webhook_url")
}

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate(Default()))
}

func TestAPIConfig_ResolveCity(t *testing.T) {
	t.Parallel()

	api := Default().API

	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "", want: 213},
		{in: "Новосибирск", want: 65},
		{in: "42", want: 42},
		{in: "0", wantErr: true},
		{in: "Атлантида", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := api.ResolveCity(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		Name:     "chitai_qa",
		User:     "qa",
		Password: "testpass",
		SSLMode:  "disable",
	}
	assert.Equal(
		t,
		"host=localhost port=5432 dbname=chitai_qa user=qa password=testpass sslmode=disable",
		cfg.DSN(),
	)
}
