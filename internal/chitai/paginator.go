package chitai

import (
	"context"
	"fmt"
	"log/slog"

	domain "github.com/donaldgifford/chitai-gorod-qa/pkg/types"
)

const defaultMaxPages = 5

// Reasons a collection stopped.
const (
	StopTotalReached  = "total_reached"
	StopEmptyPage     = "empty_page"
	StopMaxPages      = "max_pages"
	StopUpstreamError = "upstream_error"
)

// Paginator walks search result pages.
type Paginator struct {
	client   API
	log      *slog.Logger
	maxPages int
}

// PaginatorOption configures the Paginator.
type PaginatorOption func(*Paginator)

// WithMaxPages overrides the default page cap.
func WithMaxPages(n int) PaginatorOption {
	return func(p *Paginator) {
		p.maxPages = n
	}
}

// WithPaginatorLogger sets the logger.
func WithPaginatorLogger(l *slog.Logger) PaginatorOption {
	return func(p *Paginator) {
		p.log = l
	}
}

// NewPaginator creates a new Paginator.
func NewPaginator(client API, opts ...PaginatorOption) *Paginator {
	p := &Paginator{
		client:   client,
		log:      slog.New(slog.DiscardHandler),
		maxPages: defaultMaxPages,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CollectResult holds the merged result of a multi-page search.
type CollectResult struct {
	Result    *domain.SearchResult
	PagesUsed int
	StoppedAt string
}

// Collect fetches pages starting at req.Page, stopping when:
// - a page comes back with no product references
// - the references seen reach the server total
// - a page is not ok (that page's result is returned as-is)
// - maxPages pages were fetched
//
// maxPages <= 0 uses the paginator default.
func (p *Paginator) Collect(
	ctx context.Context,
	req SearchRequest,
	maxPages int,
) (*CollectResult, error) {
	if maxPages <= 0 {
		maxPages = p.maxPages
	}
	if req.Page <= 0 {
		req.Page = 1
	}

	merged := &domain.SearchResult{OK: true, Books: []domain.BookSummary{}}
	out := &CollectResult{Result: merged}

	// Pages whose references were all dropped by the adapter still advance
	// through the result set, so progress is counted in references.
	seen := 0

	for range maxPages {
		page, err := p.client.SearchProducts(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("searching page %d: %w", req.Page, err)
		}

		out.PagesUsed++

		if !page.OK {
			out.Result = page
			out.StoppedAt = StopUpstreamError
			return out, nil
		}

		refs := max(page.Refs, page.Found)
		seen += refs

		merged.Total = page.Total
		merged.Books = append(merged.Books, page.Books...)
		merged.Found = len(merged.Books)
		merged.Refs = seen

		p.log.Debug("collected page",
			"phrase", req.Phrase,
			"page", req.Page,
			"found", page.Found,
			"refs", refs,
			"collected", merged.Found,
			"total", merged.Total,
		)

		if refs == 0 {
			out.StoppedAt = StopEmptyPage
			return out, nil
		}

		if seen >= merged.Total {
			out.StoppedAt = StopTotalReached
			return out, nil
		}

		req.Page++
	}

	out.StoppedAt = StopMaxPages
	return out, nil
}
