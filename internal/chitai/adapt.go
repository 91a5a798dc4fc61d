package chitai

import (
	"strconv"
	"strings"

	domain "github.com/donaldgifford/chitai-gorod-qa/pkg/types"
)

// canBuyStatus is the product status that marks an item as purchasable.
const canBuyStatus = "canBuy"

// ResponseAdapter turns site API envelopes into flat results. It holds no
// state; the zero value is ready to use and safe for concurrent calls.
type ResponseAdapter struct{}

// AdaptSearchResponse implements AdaptSearchResponse as a method so the
// adapter can be injected as a collaborator.
func (ResponseAdapter) AdaptSearchResponse(env *Envelope) *domain.SearchResult {
	return AdaptSearchResponse(env)
}

// AdaptPopularSearchesResponse implements AdaptPopularSearchesResponse as a
// method.
func (ResponseAdapter) AdaptPopularSearchesResponse(env *Envelope) *domain.PopularSearchResult {
	return AdaptPopularSearchesResponse(env)
}

// AdaptSearchResponse converts a product search envelope into a
// SearchResult.
//
// An envelope with a status key is an upstream error and is reported as-is.
// An envelope without data is malformed. Otherwise product references are
// inner-joined against the included products by id, in reference order;
// references with no matching product are dropped without error.
func AdaptSearchResponse(env *Envelope) *domain.SearchResult {
	if env == nil {
		return &domain.SearchResult{Error: domain.NoDataMessage}
	}
	if env.HasStatus() {
		return &domain.SearchResult{Status: env.Status}
	}
	if !env.HasData() {
		return &domain.SearchResult{Error: domain.NoDataMessage}
	}

	products := productIndex(env.Included)
	refs := env.ProductRefs()

	books := make([]domain.BookSummary, 0, len(refs))
	for _, ref := range refs {
		attrs, ok := products[ref.ID]
		if !ok {
			continue
		}
		books = append(books, toBookSummary(ref.ID, attrs))
	}

	total, ok := env.PaginationTotal()
	if !ok {
		total = len(books)
	}

	return &domain.SearchResult{
		OK:    true,
		Found: len(books),
		Total: total,
		Books: books,
		Refs:  len(refs),
	}
}

// AdaptPopularSearchesResponse converts a popular-search-phrases envelope
// into a PopularSearchResult. Phrases with empty text are skipped.
func AdaptPopularSearchesResponse(env *Envelope) *domain.PopularSearchResult {
	if env == nil {
		return &domain.PopularSearchResult{Error: domain.NoDataMessage}
	}
	if env.HasStatus() {
		return &domain.PopularSearchResult{Status: env.Status}
	}
	if !env.HasData() {
		return &domain.PopularSearchResult{Error: domain.NoDataMessage}
	}

	phrases := make([]domain.PopularPhrase, 0, len(env.Included))
	for i := range env.Included {
		r := &env.Included[i]
		if r.Type != TypePopularSearchPhrase || r.Phrase == nil || r.Phrase.PhraseText == "" {
			continue
		}
		phrases = append(phrases, domain.PopularPhrase{
			ID:   r.ID.String(),
			Text: r.Phrase.PhraseText,
		})
	}

	return &domain.PopularSearchResult{
		OK:      true,
		Count:   len(phrases),
		Phrases: phrases,
	}
}

// ProductRefs returns the product references of the primary resource, or
// nil when the envelope has none.
func (e *Envelope) ProductRefs() []ResourceRef {
	if e.Data == nil || e.Data.Relationships.Products == nil {
		return nil
	}
	return e.Data.Relationships.Products.Data
}

// PaginationTotal returns the server-reported product total, if present.
func (e *Envelope) PaginationTotal() (int, bool) {
	if e.Data == nil || e.Data.Relationships.Products == nil {
		return 0, false
	}
	meta := e.Data.Relationships.Products.Meta
	if meta == nil || meta.Pagination == nil || meta.Pagination.Total == nil {
		return 0, false
	}
	return *meta.Pagination.Total, true
}

// productIndex maps product ids to their attributes. A later duplicate id
// replaces an earlier one.
func productIndex(included []Resource) map[ResourceID]*ProductAttributes {
	idx := make(map[ResourceID]*ProductAttributes, len(included))
	for i := range included {
		r := &included[i]
		if r.Type != TypeProduct || r.Product == nil {
			continue
		}
		idx[r.ID] = r.Product
	}
	return idx
}

func toBookSummary(id ResourceID, p *ProductAttributes) domain.BookSummary {
	b := domain.BookSummary{
		ID:        id.String(),
		Title:     domain.UntitledBook,
		Author:    authorName(p.Authors),
		OldPrice:  p.OldPrice,
		Discount:  formatDiscount(p.Discount),
		Available: p.Status == canBuyStatus,
		Category:  domain.NoCategory,
		Rating:    parseRating(p.Rating),
	}

	if p.Title != nil {
		b.Title = *p.Title
	}

	if p.Price != nil {
		b.Price = *p.Price
	}

	if p.Category != nil && p.Category.Title != nil {
		b.Category = *p.Category.Title
	}

	if p.Publisher != nil && p.Publisher.Title != nil {
		b.Publisher = *p.Publisher.Title
	}

	return b
}

// authorName formats the first author as "Last First Middle", skipping
// empty parts.
func authorName(authors []Author) string {
	if len(authors) == 0 {
		return domain.UnknownAuthor
	}

	a := authors[0]
	parts := make([]string, 0, 3)
	for _, part := range []string{a.LastName, a.FirstName, a.MiddleName} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

func formatDiscount(d *float64) *string {
	if d == nil || *d == 0 {
		return nil
	}
	s := strconv.FormatFloat(*d, 'f', -1, 64) + "%"
	return &s
}

func parseRating(r *Rating) float64 {
	if r == nil || r.Count == "" {
		return 0
	}
	v, err := r.Count.Float64()
	if err != nil {
		return 0
	}
	return v
}
