// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	API           APIConfig           `yaml:"api"`
	Auth          AuthConfig          `yaml:"auth"`
	Smoke         SmokeConfig         `yaml:"smoke"`
	Database      DatabaseConfig      `yaml:"database"`
	Monitor       MonitorConfig       `yaml:"monitor"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// APIConfig defines the site API client settings.
type APIConfig struct {
	BaseURL   string          `yaml:"base_url"`
	SiteURL   string          `yaml:"site_url"`
	Timeout   time.Duration   `yaml:"timeout"`
	CityID    int             `yaml:"city_id"`
	Cities    map[string]int  `yaml:"cities"`
	UserAgent string          `yaml:"user_agent"`
	PerPage   int             `yaml:"per_page"`
	MaxPages  int             `yaml:"max_pages"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines request pacing against the site API.
type RateLimitConfig struct {
	PerSecond   float64       `yaml:"per_second"`
	Burst       int           `yaml:"burst"`
	WindowLimit int64         `yaml:"window_limit"`
	Window      time.Duration `yaml:"window"`
}

// AuthConfig defines how bearer tokens are obtained.
type AuthConfig struct {
	Enabled       *bool         `yaml:"enabled"` // default: true
	Token         string        `yaml:"token"`
	Email         string        `yaml:"email"`
	Password      string        `yaml:"password"`
	CacheFile     string        `yaml:"cache_file"`
	TTL           time.Duration `yaml:"ttl"`
	RefreshBuffer time.Duration `yaml:"refresh_buffer"`
}

// IsEnabled reports whether requests should carry a bearer token.
func (a *AuthConfig) IsEnabled() bool {
	return a.Enabled == nil || *a.Enabled
}

// SmokeConfig defines the smoke suite inputs.
type SmokeConfig struct {
	Parallelism   int           `yaml:"parallelism"`
	CheckTimeout  time.Duration `yaml:"check_timeout"`
	Phrases       SmokePhrases  `yaml:"phrases"`
	TypoQueries   []string      `yaml:"typo_queries"`
	NonsenseQuery string        `yaml:"nonsense_query"`
}

// SmokePhrases are the search phrases the suite checks.
type SmokePhrases struct {
	Author  string `yaml:"author"`
	Generic string `yaml:"generic"`
	Genre   string `yaml:"genre"`
}

// DatabaseConfig defines PostgreSQL connection settings. An empty Host
// disables run history.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// Enabled reports whether a database is configured.
func (d *DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// MonitorConfig defines the long-running monitor settings.
type MonitorConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	Interval     time.Duration `yaml:"interval"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// Retention bounds how long run history is kept. Zero disables pruning.
	Retention time.Duration `yaml:"retention"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled      bool   `yaml:"enabled"`
	WebhookURL   string `yaml:"webhook_url"`
	NotifyOnPass bool   `yaml:"notify_on_pass"` // default: failed runs only
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration with every default applied, for running
// without a config file.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	applyAPIDefaults(&cfg.API)
	applyAuthDefaults(&cfg.Auth)
	applySmokeDefaults(&cfg.Smoke)
	applyDatabaseDefaults(&cfg.Database)
	applyMonitorDefaults(&cfg.Monitor)
	applyLoggingDefaults(&cfg.Logging)
}

func applyAPIDefaults(a *APIConfig) {
	if a.BaseURL == "" {
		a.BaseURL = "https://web-agr.chitai-gorod.ru"
	}
	if a.SiteURL == "" {
		a.SiteURL = "https://www.chitai-gorod.ru"
	}
	if a.Timeout == 0 {
		a.Timeout = 15 * time.Second
	}
	if a.CityID == 0 {
		a.CityID = 213
	}
	if a.Cities == nil {
		a.Cities = map[string]int{
			"Москва":          213,
			"Санкт-Петербург": 2,
			"Новосибирск":     65,
		}
	}
	if a.UserAgent == "" {
		a.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	}
	if a.PerPage == 0 {
		a.PerPage = 20
	}
	if a.MaxPages == 0 {
		a.MaxPages = 5
	}
	applyRateLimitDefaults(&a.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 2.0
	}
	if r.Burst == 0 {
		r.Burst = 4
	}
	if r.WindowLimit == 0 {
		r.WindowLimit = 500
	}
	if r.Window == 0 {
		r.Window = time.Hour
	}
}

func applyAuthDefaults(a *AuthConfig) {
	if a.CacheFile == "" {
		a.CacheFile = "token_cache.json"
	}
	if a.TTL == 0 {
		a.TTL = 24 * time.Hour
	}
	if a.RefreshBuffer == 0 {
		a.RefreshBuffer = 5 * time.Minute
	}
}

func applySmokeDefaults(s *SmokeConfig) {
	if s.Parallelism == 0 {
		s.Parallelism = 2
	}
	if s.CheckTimeout == 0 {
		s.CheckTimeout = 30 * time.Second
	}
	if s.Phrases.Author == "" {
		s.Phrases.Author = "Лев Толстой"
	}
	if s.Phrases.Generic == "" {
		s.Phrases.Generic = "книга"
	}
	if s.Phrases.Genre == "" {
		s.Phrases.Genre = "детектив"
	}
	if len(s.TypoQueries) == 0 {
		s.TypoQueries = []string{"Leв Tolsой", "лв тлстй", "Вайна и мир"}
	}
	if s.NonsenseQuery == "" {
		s.NonsenseQuery = "абвгдеёжзийклмнопрстуфхцчшщъыьэюя123"
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 5
	}
}

func applyMonitorDefaults(m *MonitorConfig) {
	if m.Host == "" {
		m.Host = "0.0.0.0"
	}
	if m.Port == 0 {
		m.Port = 8080
	}
	if m.Interval == 0 {
		m.Interval = 15 * time.Minute
	}
	if m.ReadTimeout == 0 {
		m.ReadTimeout = 30 * time.Second
	}
	if m.WriteTimeout == 0 {
		m.WriteTimeout = 30 * time.Second
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

// Validate checks a fully defaulted configuration. All problems are
// reported together.
func Validate(cfg *Config) error {
	var errs []error

	if u, err := url.Parse(cfg.API.BaseURL); err != nil || !u.IsAbs() {
		errs = append(errs, fmt.Errorf("api.base_url must be an absolute URL (got %q)", cfg.API.BaseURL))
	}
	if cfg.API.PerPage < 1 {
		errs = append(errs, fmt.Errorf("api.per_page must be at least 1"))
	}
	if cfg.API.RateLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("api.rate_limit.per_second must not be negative"))
	}

	if cfg.Monitor.Interval < time.Second {
		errs = append(errs, fmt.Errorf("monitor.interval must be at least 1s (got %s)", cfg.Monitor.Interval))
	}
	if cfg.Monitor.Retention < 0 {
		errs = append(errs, fmt.Errorf("monitor.retention must not be negative"))
	}

	if cfg.Smoke.Parallelism < 1 {
		errs = append(errs, fmt.Errorf("smoke.parallelism must be at least 1"))
	}

	if cfg.Database.Enabled() {
		if cfg.Database.Name == "" {
			errs = append(errs, fmt.Errorf("database.name is required when database.host is set"))
		}
		if cfg.Database.User == "" {
			errs = append(errs, fmt.Errorf("database.user is required when database.host is set"))
		}
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(
			errs,
			fmt.Errorf("notifications.discord.webhook_url is required when discord is enabled"),
		)
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be one of: text, json (got %q)", cfg.Logging.Format))
	}

	return errors.Join(errs...)
}

// ResolveCity maps a city name or numeric id to a city id. An empty value
// yields the configured default.
func (a *APIConfig) ResolveCity(v string) (int, error) {
	if v == "" {
		return a.CityID, nil
	}
	if id, ok := a.Cities[v]; ok {
		return id, nil
	}
	id, err := strconv.Atoi(v)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("unknown city %q", v)
	}
	return id, nil
}
