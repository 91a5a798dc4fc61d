package chitai_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/chitai-gorod-qa/internal/chitai"
	"github.com/donaldgifford/chitai-gorod-qa/internal/chitai/mocks"
	domain "github.com/donaldgifford/chitai-gorod-qa/pkg/types"
)

func page(total int, ids ...string) *domain.SearchResult {
	books := make([]domain.BookSummary, 0, len(ids))
	for _, id := range ids {
		books = append(books, domain.BookSummary{ID: id})
	}
	return &domain.SearchResult{OK: true, Found: len(books), Total: total, Books: books}
}

// pageWithDropped is a page with extra references the adapter could not
// resolve.
func pageWithDropped(total, dropped int, ids ...string) *domain.SearchResult {
	p := page(total, ids...)
	p.Refs = len(ids) + dropped
	return p
}

func pageReq(n int) any {
	return mock.MatchedBy(func(r chitai.SearchRequest) bool { return r.Page == n })
}

func TestPaginator_Collect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		maxPages    int
		setupMocks  func(*mocks.MockAPI)
		wantBooks   []string
		wantPages   int
		wantStopped string
		wantOK      bool
		wantErr     bool
	}{
		{
			name:     "stops when total reached",
			maxPages: 5,
			setupMocks: func(m *mocks.MockAPI) {
				m.EXPECT().SearchProducts(mock.Anything, pageReq(1)).Return(page(3, "a", "b"), nil).Once()
				m.EXPECT().SearchProducts(mock.Anything, pageReq(2)).Return(page(3, "c"), nil).Once()
			},
			wantBooks:   []string{"a", "b", "c"},
			wantPages:   2,
			wantStopped: chitai.StopTotalReached,
			wantOK:      true,
		},
		{
			name:     "stops on empty page",
			maxPages: 5,
			setupMocks: func(m *mocks.MockAPI) {
				m.EXPECT().SearchProducts(mock.Anything, pageReq(1)).Return(page(100, "a"), nil).Once()
				m.EXPECT().SearchProducts(mock.Anything, pageReq(2)).Return(page(100), nil).Once()
			},
			wantBooks:   []string{"a"},
			wantPages:   2,
			wantStopped: chitai.StopEmptyPage,
			wantOK:      true,
		},
		{
			name:     "page of dropped refs is not empty",
			maxPages: 5,
			setupMocks: func(m *mocks.MockAPI) {
				m.EXPECT().SearchProducts(mock.Anything, pageReq(1)).Return(page(5, "a", "b"), nil).Once()
				m.EXPECT().SearchProducts(mock.Anything, pageReq(2)).Return(pageWithDropped(5, 2), nil).Once()
				m.EXPECT().SearchProducts(mock.Anything, pageReq(3)).Return(page(5, "e"), nil).Once()
			},
			wantBooks:   []string{"a", "b", "e"},
			wantPages:   3,
			wantStopped: chitai.StopTotalReached,
			wantOK:      true,
		},
		{
			name:     "total counts dropped refs",
			maxPages: 5,
			setupMocks: func(m *mocks.MockAPI) {
				m.EXPECT().SearchProducts(mock.Anything, pageReq(1)).Return(pageWithDropped(3, 1, "a", "b"), nil).Once()
			},
			wantBooks:   []string{"a", "b"},
			wantPages:   1,
			wantStopped: chitai.StopTotalReached,
			wantOK:      true,
		},
		{
			name:     "stops at max pages",
			maxPages: 2,
			setupMocks: func(m *mocks.MockAPI) {
				m.EXPECT().SearchProducts(mock.Anything, pageReq(1)).Return(page(100, "a"), nil).Once()
				m.EXPECT().SearchProducts(mock.Anything, pageReq(2)).Return(page(100, "b"), nil).Once()
			},
			wantBooks:   []string{"a", "b"},
			wantPages:   2,
			wantStopped: chitai.StopMaxPages,
			wantOK:      true,
		},
		{
			name:     "returns failed page as-is",
			maxPages: 5,
			setupMocks: func(m *mocks.MockAPI) {
				m.EXPECT().SearchProducts(mock.Anything, pageReq(1)).Return(page(100, "a"), nil).Once()
				m.EXPECT().SearchProducts(mock.Anything, pageReq(2)).
					Return(&domain.SearchResult{Status: domain.HTTPStatus(429)}, nil).Once()
			},
			wantPages:   2,
			wantStopped: chitai.StopUpstreamError,
		},
		{
			name:     "transport error",
			maxPages: 5,
			setupMocks: func(m *mocks.MockAPI) {
				m.EXPECT().SearchProducts(mock.Anything, pageReq(1)).Return(nil, errors.New("connection reset")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := mocks.NewMockAPI(t)
			tt.setupMocks(api)

			p := chitai.NewPaginator(api)
			got, err := p.Collect(context.Background(), chitai.SearchRequest{Phrase: "x"}, tt.maxPages)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "searching page 1")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPages, got.PagesUsed)
			assert.Equal(t, tt.wantStopped, got.StoppedAt)
			assert.Equal(t, tt.wantOK, got.Result.OK)

			if tt.wantOK {
				ids := make([]string, 0, len(got.Result.Books))
				for _, b := range got.Result.Books {
					ids = append(ids, b.ID)
				}
				assert.Equal(t, tt.wantBooks, ids)
				assert.Equal(t, len(tt.wantBooks), got.Result.Found)
			}
		})
	}
}

func TestPaginator_DefaultMaxPages(t *testing.T) {
	t.Parallel()

	api := mocks.NewMockAPI(t)
	api.EXPECT().SearchProducts(mock.Anything, mock.Anything).Return(page(1000, "x"), nil).Times(3)

	p := chitai.NewPaginator(api, chitai.WithMaxPages(3))
	got, err := p.Collect(context.Background(), chitai.SearchRequest{Phrase: "x"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, got.PagesUsed)
	assert.Equal(t, chitai.StopMaxPages, got.StoppedAt)
}
