// Package chitai provides a client for the chitai-gorod.ru storefront API
// and the adapter that flattens its JSON:API responses.
package chitai

import (
	"context"

	domain "github.com/donaldgifford/chitai-gorod-qa/pkg/types"
)

// SearchRequest defines the parameters for a product search.
type SearchRequest struct {
	Phrase  string
	Page    int // 1-based, default 1
	PerPage int // default 20
	CityID  int // 0 uses the client default
}

// API defines the site API operations used by the harness.
type API interface {
	SearchProducts(ctx context.Context, req SearchRequest) (*domain.SearchResult, error)
	PopularSearches(ctx context.Context) (*domain.PopularSearchResult, error)
}

// TokenProvider defines the interface for obtaining bearer tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}
