package chitai_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/chitai-gorod-qa/internal/chitai"
	domain "github.com/donaldgifford/chitai-gorod-qa/pkg/types"
)

func decode(t *testing.T, body string) *chitai.Envelope {
	t.Helper()
	env, err := chitai.DecodeEnvelope([]byte(body))
	require.NoError(t, err)
	return env
}

func ptr[T any](v T) *T {
	return &v
}

func TestAdaptSearchResponse_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want *domain.SearchResult
	}{
		{
			name: "single product without pagination",
			body: `{
				"data": {"relationships": {"products": {"data": [{"id": "1", "type": "product"}]}}},
				"included": [{
					"type": "product", "id": "1",
					"attributes": {
						"title": "Война и мир",
						"authors": [{"lastName": "Толстой", "firstName": "Лев"}],
						"price": 500,
						"status": "canBuy"
					}
				}]
			}`,
			want: &domain.SearchResult{
				OK:    true,
				Found: 1,
				Total: 1,
				Refs:  1,
				Books: []domain.BookSummary{{
					ID:        "1",
					Title:     "Война и мир",
					Author:    "Толстой Лев",
					Price:     500,
					Available: true,
					Category:  domain.NoCategory,
				}},
			},
		},
		{
			name: "upstream status",
			body: `{"status": 403}`,
			want: &domain.SearchResult{Status: json.RawMessage(`403`)},
		},
		{
			name: "status wins over well-formed data",
			body: `{
				"status": "error",
				"data": {"relationships": {"products": {"data": [{"id": "1"}]}}},
				"included": [{"type": "product", "id": "1", "attributes": {"title": "x"}}]
			}`,
			want: &domain.SearchResult{Status: json.RawMessage(`"error"`)},
		},
		{
			name: "missing data",
			body: `{"included": []}`,
			want: &domain.SearchResult{Error: domain.NoDataMessage},
		},
		{
			name: "null data is present but empty",
			body: `{"data": null}`,
			want: &domain.SearchResult{OK: true, Books: []domain.BookSummary{}},
		},
		{
			name: "fully populated product",
			body: `{
				"data": {"relationships": {"products": {
					"data": [{"id": 42}],
					"meta": {"pagination": {"total": 1337}}
				}}},
				"included": [{
					"type": "product", "id": 42,
					"attributes": {
						"title": "Анна Каренина",
						"authors": [{"lastName": "Толстой", "firstName": "Лев", "middleName": "Николаевич"}],
						"price": 399.5,
						"oldPrice": 499,
						"discount": 20,
						"status": "preOrder",
						"category": {"id": 1, "title": "Классика"},
						"publisher": {"title": "АСТ"},
						"rating": {"count": "4.5"}
					}
				}]
			}`,
			want: &domain.SearchResult{
				OK:    true,
				Found: 1,
				Total: 1337,
				Refs:  1,
				Books: []domain.BookSummary{{
					ID:        "42",
					Title:     "Анна Каренина",
					Author:    "Толстой Лев Николаевич",
					Price:     399.5,
					OldPrice:  ptr(499.0),
					Discount:  ptr("20%"),
					Available: false,
					Category:  "Классика",
					Publisher: "АСТ",
					Rating:    4.5,
				}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := chitai.AdaptSearchResponse(decode(t, tt.body))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("AdaptSearchResponse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAdaptSearchResponse_ReferentialJoin(t *testing.T) {
	t.Parallel()

	env := decode(t, `{
		"data": {"relationships": {"products": {"data": [
			{"id": "3"}, {"id": "missing"}, {"id": "1"}, {"id": "phrase"}
		]}}},
		"included": [
			{"type": "product", "id": "1", "attributes": {"title": "one"}},
			{"type": "product", "id": "2", "attributes": {"title": "two"}},
			{"type": "product", "id": "3", "attributes": {"title": "three"}},
			{"type": "popularSearchPhrase", "id": "phrase", "attributes": {"phraseText": "x"}}
		]
	}`)

	got := chitai.AdaptSearchResponse(env)

	require.True(t, got.OK)
	assert.Equal(t, 2, got.Found)
	assert.Equal(t, 2, got.Total)
	require.Len(t, got.Books, 2)
	assert.Equal(t, "3", got.Books[0].ID, "books follow reference order")
	assert.Equal(t, "1", got.Books[1].ID)
	assert.Len(t, env.ProductRefs(), 4)
}

func TestAdaptSearchResponse_DuplicateProductLastWins(t *testing.T) {
	t.Parallel()

	env := decode(t, `{
		"data": {"relationships": {"products": {"data": [{"id": "1"}]}}},
		"included": [
			{"type": "product", "id": "1", "attributes": {"title": "old"}},
			{"type": "product", "id": "1", "attributes": {"title": "new"}}
		]
	}`)

	got := chitai.AdaptSearchResponse(env)
	require.Len(t, got.Books, 1)
	assert.Equal(t, "new", got.Books[0].Title)
}

func TestAdaptSearchResponse_Author(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		authors string
		want    string
	}{
		{name: "absent", authors: ``, want: domain.UnknownAuthor},
		{name: "empty list", authors: `"authors": [],`, want: domain.UnknownAuthor},
		{name: "last and first", authors: `"authors": [{"lastName": "Толстой", "firstName": "Лев"}],`, want: "Толстой Лев"},
		{name: "only first author used", authors: `"authors": [{"lastName": "Ильф"}, {"lastName": "Петров"}],`, want: "Ильф"},
		{name: "skips empty middle", authors: `"authors": [{"lastName": "Кристи", "firstName": "", "middleName": "Агата"}],`, want: "Кристи Агата"},
		{name: "all parts empty", authors: `"authors": [{"lastName": ""}],`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := decode(t, `{
				"data": {"relationships": {"products": {"data": [{"id": "1"}]}}},
				"included": [{"type": "product", "id": "1", "attributes": {`+tt.authors+` "title": "t"}}]
			}`)

			got := chitai.AdaptSearchResponse(env)
			require.Len(t, got.Books, 1)
			assert.Equal(t, tt.want, got.Books[0].Author)
		})
	}
}

func TestAdaptSearchResponse_Discount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		discount string
		want     *string
	}{
		{name: "integer", discount: `15`, want: ptr("15%")},
		{name: "fractional", discount: `12.5`, want: ptr("12.5%")},
		{name: "zero", discount: `0`, want: nil},
		{name: "null", discount: `null`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := decode(t, `{
				"data": {"relationships": {"products": {"data": [{"id": "1"}]}}},
				"included": [{"type": "product", "id": "1", "attributes": {"discount": `+tt.discount+`}}]
			}`)

			got := chitai.AdaptSearchResponse(env)
			require.Len(t, got.Books, 1)
			assert.Equal(t, tt.want, got.Books[0].Discount)
		})
	}
}

func TestAdaptSearchResponse_Defaults(t *testing.T) {
	t.Parallel()

	env := decode(t, `{
		"data": {"relationships": {"products": {"data": [{"id": "1"}]}}},
		"included": [{"type": "product", "id": "1", "attributes": null}]
	}`)

	got := chitai.AdaptSearchResponse(env)
	require.Len(t, got.Books, 1)

	b := got.Books[0]
	assert.Equal(t, domain.UntitledBook, b.Title)
	assert.Equal(t, domain.UnknownAuthor, b.Author)
	assert.Equal(t, domain.NoCategory, b.Category)
	assert.Empty(t, b.Publisher)
	assert.Zero(t, b.Price)
	assert.Nil(t, b.OldPrice)
	assert.Nil(t, b.Discount)
	assert.False(t, b.Available)
	assert.Zero(t, b.Rating)
}

func TestAdaptSearchResponse_Rating(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rating string
		want   float64
	}{
		{name: "number", rating: `{"count": 17}`, want: 17},
		{name: "quoted number", rating: `{"count": "3.25"}`, want: 3.25},
		{name: "missing count", rating: `{}`, want: 0},
		{name: "null block", rating: `null`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := decode(t, `{
				"data": {"relationships": {"products": {"data": [{"id": "1"}]}}},
				"included": [{"type": "product", "id": "1", "attributes": {"rating": `+tt.rating+`}}]
			}`)

			got := chitai.AdaptSearchResponse(env)
			require.Len(t, got.Books, 1)
			assert.InDelta(t, tt.want, got.Books[0].Rating, 1e-9)
		})
	}
}

func TestAdaptSearchResponse_PaginationFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		meta      string
		wantTotal int
	}{
		{name: "no meta", meta: ``, wantTotal: 2},
		{name: "no pagination", meta: `, "meta": {}`, wantTotal: 2},
		{name: "no total", meta: `, "meta": {"pagination": {"count": 2}}`, wantTotal: 2},
		{name: "explicit total", meta: `, "meta": {"pagination": {"total": 90}}`, wantTotal: 90},
		{name: "zero total", meta: `, "meta": {"pagination": {"total": 0}}`, wantTotal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := decode(t, `{
				"data": {"relationships": {"products": {"data": [{"id": "1"}, {"id": "2"}]`+tt.meta+`}}},
				"included": [
					{"type": "product", "id": "1", "attributes": {}},
					{"type": "product", "id": "2", "attributes": {}}
				]
			}`)

			got := chitai.AdaptSearchResponse(env)
			assert.Equal(t, 2, got.Found)
			assert.Equal(t, tt.wantTotal, got.Total)
		})
	}
}

func TestAdaptSearchResponse_NilEnvelope(t *testing.T) {
	t.Parallel()

	got := chitai.AdaptSearchResponse(nil)
	assert.False(t, got.OK)
	assert.Equal(t, domain.NoDataMessage, got.Error)
}

func TestAdaptPopularSearchesResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want *domain.PopularSearchResult
	}{
		{
			name: "skips empty phrase text",
			body: `{
				"data": {"id": "popular"},
				"included": [
					{"type": "popularSearchPhrase", "id": "p1", "attributes": {"phraseText": "роман"}},
					{"type": "popularSearchPhrase", "id": "p2", "attributes": {"phraseText": ""}}
				]
			}`,
			want: &domain.PopularSearchResult{
				OK:      true,
				Count:   1,
				Phrases: []domain.PopularPhrase{{ID: "p1", Text: "роман"}},
			},
		},
		{
			name: "skips other types and missing attributes",
			body: `{
				"data": [],
				"included": [
					{"type": "product", "id": "1", "attributes": {"phraseText": "не фраза"}},
					{"type": "popularSearchPhrase", "id": "p3"},
					{"type": "popularSearchPhrase", "id": 7, "attributes": {"phraseText": "фэнтези"}}
				]
			}`,
			want: &domain.PopularSearchResult{
				OK:      true,
				Count:   1,
				Phrases: []domain.PopularPhrase{{ID: "7", Text: "фэнтези"}},
			},
		},
		{
			name: "upstream status",
			body: `{"status": 500, "included": []}`,
			want: &domain.PopularSearchResult{Status: json.RawMessage(`500`)},
		},
		{
			name: "missing data",
			body: `{}`,
			want: &domain.PopularSearchResult{Error: domain.NoDataMessage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := chitai.AdaptPopularSearchesResponse(decode(t, tt.body))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("AdaptPopularSearchesResponse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResponseAdapter_ConcurrentUse(t *testing.T) {
	t.Parallel()

	env := decode(t, `{
		"data": {"relationships": {"products": {"data": [{"id": "1"}]}}},
		"included": [{"type": "product", "id": "1", "attributes": {"title": "t"}}]
	}`)

	var adapter chitai.ResponseAdapter
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := adapter.AdaptSearchResponse(env)
			assert.Equal(t, 1, got.Found)
		}()
	}
	wg.Wait()

	require.Len(t, env.Included, 1)
	assert.Equal(t, "t", *env.Included[0].Product.Title, "adapter must not mutate its input")
}
