package chitai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/donaldgifford/chitai-gorod-qa/internal/metrics"
	domain "github.com/donaldgifford/chitai-gorod-qa/pkg/types"
)

const (
	// DefaultBaseURL is the site API host.
	DefaultBaseURL = "https://web-agr.chitai-gorod.ru"
	// DefaultSiteURL is the storefront host sent as the Referer.
	DefaultSiteURL = "https://www.chitai-gorod.ru"
	// DefaultUserAgent is a desktop Chrome user agent.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	// DefaultCityID is Moscow.
	DefaultCityID = 213
	// DefaultPerPage is the page size used when a request sets none.
	DefaultPerPage = 20

	searchPath  = "/web/api/v2/search/product"
	popularPath = "/web/api/v2/search/popular-search-phrases"
	cartPath    = "/web/api/v1/cart/short"

	endpointSearch  = "search"
	endpointPopular = "popular"
	endpointCart    = "cart"
)

// SearchClient implements API against the live site.
type SearchClient struct {
	baseURL     string
	siteURL     string
	cityID      int
	userAgent   string
	client      *http.Client
	rateLimiter *RateLimiter
	tokens      TokenProvider
	adapter     ResponseAdapter
	log         *slog.Logger
}

// Option configures the SearchClient.
type Option func(*SearchClient)

// WithBaseURL overrides the API host.
func WithBaseURL(u string) Option {
	return func(c *SearchClient) {
		c.baseURL = u
	}
}

// WithSiteURL overrides the storefront host used for the Referer header.
func WithSiteURL(u string) Option {
	return func(c *SearchClient) {
		c.siteURL = u
	}
}

// WithCityID sets the default customer city.
func WithCityID(id int) Option {
	return func(c *SearchClient) {
		c.cityID = id
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *SearchClient) {
		c.userAgent = ua
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *SearchClient) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter. When set, every request goes
// through Wait() first.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *SearchClient) {
		c.rateLimiter = r
	}
}

// WithTokenProvider enables bearer authentication.
func WithTokenProvider(tp TokenProvider) Option {
	return func(c *SearchClient) {
		c.tokens = tp
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *SearchClient) {
		c.log = l
	}
}

// NewSearchClient creates a new site API client.
func NewSearchClient(opts ...Option) *SearchClient {
	c := &SearchClient{
		baseURL:   DefaultBaseURL,
		siteURL:   DefaultSiteURL,
		cityID:    DefaultCityID,
		userAgent: DefaultUserAgent,
		client:    &http.Client{Timeout: 15 * time.Second},
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchProducts runs a product search. A non-200 response is reported in
// the result with OK=false; only transport and decode failures are errors.
func (c *SearchClient) SearchProducts(
	ctx context.Context,
	req SearchRequest,
) (*domain.SearchResult, error) {
	u := c.buildSearchURL(req)

	status, body, err := c.get(ctx, endpointSearch, u)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		c.log.Warn("search returned non-200", "phrase", req.Phrase, "status", status)
		return &domain.SearchResult{Status: domain.HTTPStatus(status)}, nil
	}

	env, err := DecodeEnvelope(body)
	if err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}
	c.logMalformed(env)

	result := c.adapter.AdaptSearchResponse(env)
	if result.OK {
		if dropped := result.Refs - result.Found; dropped > 0 {
			metrics.AdapterDroppedRefsTotal.Add(float64(dropped))
			c.log.Debug("dropped unmatched product refs", "phrase", req.Phrase, "dropped", dropped)
		}
	}

	c.log.Info("search completed",
		"phrase", req.Phrase,
		"ok", result.OK,
		"found", result.Found,
		"total", result.Total,
	)

	return result, nil
}

// PopularSearches fetches the popular search phrases.
func (c *SearchClient) PopularSearches(ctx context.Context) (*domain.PopularSearchResult, error) {
	status, body, err := c.get(ctx, endpointPopular, c.baseURL+popularPath)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		c.log.Warn("popular searches returned non-200", "status", status)
		return &domain.PopularSearchResult{Status: domain.HTTPStatus(status)}, nil
	}

	env, err := DecodeEnvelope(body)
	if err != nil {
		return nil, fmt.Errorf("parsing popular searches response: %w", err)
	}
	c.logMalformed(env)

	result := c.adapter.AdaptPopularSearchesResponse(env)
	c.log.Info("popular searches completed", "ok", result.OK, "count", result.Count)

	return result, nil
}

// logMalformed reports included entries whose attributes could not be
// decoded. The adapter skips them.
func (c *SearchClient) logMalformed(env *Envelope) {
	for i := range env.Included {
		if err := env.Included[i].AttrErr; err != nil {
			c.log.Warn("skipping malformed included resource",
				"type", env.Included[i].Type,
				"id", env.Included[i].ID.String(),
				"error", err,
			)
		}
	}
}

// CheckToken calls a protected endpoint and reports whether the current
// token is accepted.
func (c *SearchClient) CheckToken(ctx context.Context) (bool, error) {
	if c.tokens == nil {
		return false, ErrNoToken
	}

	status, _, err := c.get(ctx, endpointCart, c.baseURL+cartPath)
	if err != nil {
		return false, err
	}
	return status == http.StatusOK, nil
}

// get performs a rate-limited, authenticated GET and returns the status
// code and body.
func (c *SearchClient) get(ctx context.Context, endpoint, u string) (int, []byte, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrQuotaExhausted) {
				metrics.APIQuotaExhaustedTotal.Inc()
			}
			return 0, nil, fmt.Errorf("rate limit: %w", err)
		}
		metrics.APIWindowUsage.Set(float64(c.rateLimiter.Used()))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	if err := c.setHeaders(ctx, httpReq); err != nil {
		return 0, nil, err
	}

	c.log.Debug("api request", "method", http.MethodGet, "endpoint", endpoint)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	metrics.APIRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return 0, nil, fmt.Errorf("executing %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	metrics.APIRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response body: %w", err)
	}

	return resp.StatusCode, body, nil
}

func (c *SearchClient) setHeaders(ctx context.Context, req *http.Request) error {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, */*")
	req.Header.Set("Referer", c.siteURL+"/")

	if c.tokens == nil {
		return nil
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("getting auth token: %w", err)
	}
	req.Header.Set("Authorization", NormalizeBearer(token))
	return nil
}

func (c *SearchClient) buildSearchURL(req SearchRequest) string {
	cityID := req.CityID
	if cityID <= 0 {
		cityID = c.cityID
	}

	page := req.Page
	if page <= 0 {
		page = 1
	}

	perPage := req.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	params := url.Values{}
	params.Set("customerCityId", strconv.Itoa(cityID))
	params.Set("products[page]", strconv.Itoa(page))
	params.Set("products[per-page]", strconv.Itoa(perPage))
	params.Set("phrase", req.Phrase)

	return c.baseURL + searchPath + "?" + params.Encode()
}
