// Package main implements a mock chitai-gorod API server for local
// development. It serves a JSON fixture catalog through the search, popular
// phrases, login and cart endpoints so the harness can run without network
// access or an account.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/donaldgifford/chitai-gorod-qa/internal/chitai"
)

const (
	mockEmail    = "qa@example.com"
	mockPassword = "secret"
	tokenPrefix  = "mock-token-"
)

type catalog struct {
	Products []json.RawMessage `json:"products"`
	Phrases  []json.RawMessage `json:"phrases"`
}

type searchResponse struct {
	Data     chitai.Document   `json:"data"`
	Included []json.RawMessage `json:"included"`
}

type productResource struct {
	ID         chitai.ResourceID        `json:"id"`
	Attributes chitai.ProductAttributes `json:"attributes"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/catalog.json", "path to catalog fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixture, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "products", len(fixture.Products), "phrases", len(fixture.Phrases))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock chitai-gorod server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, newMux(logger, fixture)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(logger *slog.Logger, fixture *catalog) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /web/api/v1/auth/login", loginHandler(logger))
	mux.HandleFunc("GET /web/api/v1/cart/short", cartHandler())
	mux.HandleFunc("GET /web/api/v2/search/product", searchHandler(logger, fixture))
	mux.HandleFunc("GET /web/api/v2/search/popular-search-phrases", popularHandler(fixture))
	return mux
}

func loadFixture(path string) (*catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var c catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &c, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

// unauthorized mirrors the upstream error envelope.
func unauthorized(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusUnauthorized, map[string]any{
		"status": 401,
		"errors": []map[string]string{{"title": "Unauthorized", "detail": detail}},
	})
}

func loginHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"status": 400})
			return
		}
		if creds.Email != mockEmail || creds.Password != mockPassword {
			logger.Warn("login rejected", "email", creds.Email)
			unauthorized(w, "invalid credentials")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": tokenPrefix + strconv.FormatInt(time.Now().Unix(), 16),
			"token_type":   "Bearer",
		})
		logger.Info("issued mock token")
	}
}

func cartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer "+tokenPrefix) {
			unauthorized(w, "token missing or expired")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"quantity": 0}})
	}
}

func searchHandler(logger *slog.Logger, fixture *catalog) http.HandlerFunc {
	// Pre-index lowercased title and author surnames for filtering.
	type indexedProduct struct {
		raw  json.RawMessage
		id   chitai.ResourceID
		text string
	}
	products := make([]indexedProduct, 0, len(fixture.Products))
	for _, raw := range fixture.Products {
		var p productResource
		//nolint:errcheck,gosec // fixture data is trusted; indexing is best-effort
		json.Unmarshal(raw, &p)

		var text strings.Builder
		if p.Attributes.Title != nil {
			text.WriteString(*p.Attributes.Title)
		}
		for _, a := range p.Attributes.Authors {
			text.WriteString(" " + a.FirstName + " " + a.LastName)
		}
		products = append(products, indexedProduct{raw: raw, id: p.ID, text: strings.ToLower(text.String())})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		words := strings.Fields(strings.ToLower(q.Get("phrase")))
		page := queryInt(q.Get("products[page]"), 1)
		perPage := queryInt(q.Get("products[per-page]"), chitai.DefaultPerPage)

		// A product matches when it contains every word of the phrase.
		var matched []indexedProduct
		for _, p := range products {
			ok := true
			for _, word := range words {
				if !strings.Contains(p.text, word) {
					ok = false
					break
				}
			}
			if ok {
				matched = append(matched, p)
			}
		}
		total := len(matched)

		offset := (page - 1) * perPage
		if offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[offset:min(offset+perPage, len(matched))]
		}

		resp := searchResponse{
			Data: chitai.Document{
				ID:   "search",
				Type: "search",
				Relationships: chitai.Relationships{Products: &chitai.ProductsRelationship{
					Data: []chitai.ResourceRef{},
					Meta: &chitai.RelationshipMeta{Pagination: &chitai.Pagination{
						Total:       &total,
						Count:       len(matched),
						PerPage:     perPage,
						CurrentPage: page,
						TotalPages:  (total + perPage - 1) / perPage,
					}},
				}},
			},
			Included: []json.RawMessage{},
		}
		for _, p := range matched {
			resp.Data.Relationships.Products.Data = append(resp.Data.Relationships.Products.Data,
				chitai.ResourceRef{ID: p.id, Type: "product"})
			resp.Included = append(resp.Included, p.raw)
		}

		writeJSON(w, http.StatusOK, resp)
		logger.Info("search", "phrase", q.Get("phrase"), "matched", total, "returned", len(matched), "page", page)
	}
}

func popularHandler(fixture *catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		included := fixture.Phrases
		if included == nil {
			included = []json.RawMessage{}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"data":     map[string]any{"id": "popular", "type": "popularSearch"},
			"included": included,
		})
	}
}

func queryInt(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}
