package chitai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/donaldgifford/chitai-gorod-qa/internal/metrics"
)

const (
	loginPath = "/web/api/v1/auth/login" //nolint:gosec // not a credential

	defaultTokenTTL      = 24 * time.Hour
	defaultRefreshBuffer = 5 * time.Minute

	bearerPrefix = "Bearer "
)

// Token sources, in resolution order.
const (
	SourceMemory = "memory"
	SourceCache  = "cache"
	SourceStatic = "static"
	SourceLogin  = "login"
)

// ErrNoToken is returned when no token source yields a token.
var ErrNoToken = errors.New("no access token available")

// NormalizeBearer returns the Authorization header value for a token.
// URL-encoded prefixes copied out of browser storage are decoded and bare
// tokens get the Bearer prefix.
func NormalizeBearer(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	token = strings.Replace(token, "Bearer%20", bearerPrefix, 1)
	if !strings.HasPrefix(token, bearerPrefix) {
		token = bearerPrefix + token
	}
	return token
}

// CachedTokenProvider implements TokenProvider by resolving a token from,
// in order: memory, the cache file, a static token and finally the login
// endpoint. Login tokens are persisted to the cache file. Thread-safe via
// mutex.
type CachedTokenProvider struct {
	baseURL       string
	userAgent     string
	staticToken   string
	email         string
	password      string
	cache         *TokenCache
	ttl           time.Duration
	refreshBuffer time.Duration
	client        *http.Client
	log           *slog.Logger

	mu      sync.Mutex
	token   string
	expiry  time.Time
	source  string
	nowFunc func() time.Time // for testing
}

// AuthOption configures the CachedTokenProvider.
type AuthOption func(*CachedTokenProvider)

// WithAuthBaseURL overrides the API host used for login.
func WithAuthBaseURL(u string) AuthOption {
	return func(p *CachedTokenProvider) {
		p.baseURL = u
	}
}

// WithStaticToken sets a pre-issued token, usually from the environment.
func WithStaticToken(token string) AuthOption {
	return func(p *CachedTokenProvider) {
		p.staticToken = token
	}
}

// WithCredentials enables login with email and password.
func WithCredentials(email, password string) AuthOption {
	return func(p *CachedTokenProvider) {
		p.email = email
		p.password = password
	}
}

// WithCacheFile persists login tokens to path. An empty path disables the
// file cache.
func WithCacheFile(path string) AuthOption {
	return func(p *CachedTokenProvider) {
		if path == "" {
			p.cache = nil
			return
		}
		p.cache = NewTokenCache(path)
	}
}

// WithTokenTTL sets the assumed token lifetime and how long before expiry a
// token is considered stale.
func WithTokenTTL(ttl, refreshBuffer time.Duration) AuthOption {
	return func(p *CachedTokenProvider) {
		p.ttl = ttl
		p.refreshBuffer = refreshBuffer
	}
}

// WithAuthHTTPClient overrides the default HTTP client.
func WithAuthHTTPClient(c *http.Client) AuthOption {
	return func(p *CachedTokenProvider) {
		p.client = c
	}
}

// WithAuthLogger sets the logger.
func WithAuthLogger(l *slog.Logger) AuthOption {
	return func(p *CachedTokenProvider) {
		p.log = l
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) AuthOption {
	return func(p *CachedTokenProvider) {
		p.nowFunc = f
	}
}

// NewCachedTokenProvider creates a token provider.
func NewCachedTokenProvider(opts ...AuthOption) *CachedTokenProvider {
	p := &CachedTokenProvider{
		baseURL:       DefaultBaseURL,
		userAgent:     DefaultUserAgent,
		ttl:           defaultTokenTTL,
		refreshBuffer: defaultRefreshBuffer,
		client:        &http.Client{Timeout: 30 * time.Second},
		log:           slog.New(slog.DiscardHandler),
		nowFunc:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Token returns a valid access token.
func (p *CachedTokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && p.nowFunc().Before(p.expiry) {
		metrics.TokenResolutionsTotal.WithLabelValues(SourceMemory).Inc()
		return p.token, nil
	}

	if p.cache != nil {
		entry, err := p.cache.Load()
		switch {
		case err != nil:
			p.log.Warn("reading token cache", "path", p.cache.Path(), "error", err)
		case entry != nil && p.nowFunc().Before(entry.ExpiresAt):
			p.set(entry.AccessToken, entry.ExpiresAt, SourceCache)
			return p.token, nil
		case entry != nil:
			p.log.Info("cached token expired", "expires_at", entry.ExpiresAt)
		}
	}

	return p.resolveLocked(ctx)
}

// Refresh discards the in-memory and cached token and resolves a new one
// from the static token or the login endpoint.
func (p *CachedTokenProvider) Refresh(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.token = ""
	p.expiry = time.Time{}

	if p.cache != nil {
		if err := p.cache.Clear(); err != nil {
			p.log.Warn("clearing token cache", "path", p.cache.Path(), "error", err)
		}
	}

	return p.resolveLocked(ctx)
}

// Source reports where the current token came from, or "" if none has
// been resolved.
func (p *CachedTokenProvider) Source() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.source
}

// ExpiresAt reports when the current token is considered stale.
func (p *CachedTokenProvider) ExpiresAt() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.expiry
}

func (p *CachedTokenProvider) resolveLocked(ctx context.Context) (string, error) {
	if p.staticToken != "" {
		p.set(p.staticToken, p.nowFunc().Add(p.ttl-p.refreshBuffer), SourceStatic)
		return p.token, nil
	}

	if p.email == "" || p.password == "" {
		metrics.TokenFailuresTotal.Inc()
		return "", ErrNoToken
	}

	token, err := p.login(ctx)
	if err != nil {
		metrics.TokenFailuresTotal.Inc()
		return "", fmt.Errorf("logging in: %w", err)
	}

	now := p.nowFunc()
	p.set(token, now.Add(p.ttl-p.refreshBuffer), SourceLogin)

	if p.cache != nil {
		entry := &CacheEntry{AccessToken: token, ExpiresAt: p.expiry, CachedAt: now}
		if err := p.cache.Save(entry); err != nil {
			p.log.Warn("writing token cache", "path", p.cache.Path(), "error", err)
		}
	}

	return p.token, nil
}

func (p *CachedTokenProvider) set(token string, expiry time.Time, source string) {
	p.token = token
	p.expiry = expiry
	p.source = source
	metrics.TokenResolutionsTotal.WithLabelValues(source).Inc()
	p.log.Info("resolved access token", "source", source, "expires_at", expiry)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

func (p *CachedTokenProvider) login(ctx context.Context) (string, error) {
	payload, err := json.Marshal(loginRequest{Email: p.email, Password: p.password})
	if err != nil {
		return "", fmt.Errorf("encoding login request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.baseURL+loginPath,
		bytes.NewReader(payload),
	)
	if err != nil {
		return "", fmt.Errorf("creating login request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing login request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading login response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed (status %d)", resp.StatusCode)
	}

	var lr loginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return "", fmt.Errorf("parsing login response: %w", err)
	}
	if lr.AccessToken == "" {
		return "", errors.New("login response has no access_token")
	}

	return lr.AccessToken, nil
}
