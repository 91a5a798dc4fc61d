package chitai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/chitai-gorod-qa/internal/chitai"
)

func TestDecodeEnvelope_KeyPresence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantStatus bool
		wantData   bool
		wantDoc    bool
	}{
		{name: "empty object", body: `{}`},
		{name: "status only", body: `{"status": 404}`, wantStatus: true},
		{name: "null status still present", body: `{"status": null}`, wantStatus: true},
		{name: "null data still present", body: `{"data": null}`, wantData: true},
		{name: "array data", body: `{"data": []}`, wantData: true},
		{name: "object data", body: `{"data": {"id": "s"}}`, wantData: true, wantDoc: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, err := chitai.DecodeEnvelope([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, env.HasStatus())
			assert.Equal(t, tt.wantData, env.HasData())
			assert.Equal(t, tt.wantDoc, env.Data != nil)
		})
	}
}

func TestDecodeEnvelope_ResourceIDs(t *testing.T) {
	t.Parallel()

	env, err := chitai.DecodeEnvelope([]byte(`{
		"data": {"relationships": {"products": {"data": [{"id": 101}, {"id": "102"}, {"id": null}]}}},
		"included": [{"type": "product", "id": 101, "attributes": {"title": "t"}}]
	}`))
	require.NoError(t, err)

	refs := env.ProductRefs()
	require.Len(t, refs, 3)
	assert.Equal(t, "101", refs[0].ID.String())
	assert.Equal(t, "102", refs[1].ID.String())
	assert.Empty(t, refs[2].ID.String())
	assert.Equal(t, chitai.ResourceID("101"), env.Included[0].ID)
}

func TestDecodeEnvelope_TypedAttributes(t *testing.T) {
	t.Parallel()

	env, err := chitai.DecodeEnvelope([]byte(`{
		"data": {},
		"included": [
			{"type": "product", "id": "1", "attributes": {"title": "t", "price": 10}},
			{"type": "popularSearchPhrase", "id": "p", "attributes": {"phraseText": "роман"}},
			{"type": "author", "id": "a", "attributes": {"name": "x"}}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, env.Included, 3)

	require.NotNil(t, env.Included[0].Product)
	assert.Nil(t, env.Included[0].Phrase)
	assert.InDelta(t, 10.0, *env.Included[0].Product.Price, 1e-9)

	require.NotNil(t, env.Included[1].Phrase)
	assert.Equal(t, "роман", env.Included[1].Phrase.PhraseText)

	assert.Nil(t, env.Included[2].Product)
	assert.Nil(t, env.Included[2].Phrase)
	assert.JSONEq(t, `{"name": "x"}`, string(env.Included[2].Raw))
}

func TestDecodeEnvelope_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `nope`},
		{name: "bad resource id", body: `{"data": {}, "included": [{"type": "product", "id": {}}]}`},
		{name: "bad document", body: `{"data": {"relationships": {"products": {"data": "x"}}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := chitai.DecodeEnvelope([]byte(tt.body))
			require.Error(t, err)
		})
	}
}

func TestDecodeEnvelope_MalformedAttributes(t *testing.T) {
	t.Parallel()

	env, err := chitai.DecodeEnvelope([]byte(`{
		"data": {"relationships": {"products": {"data": [
			{"type": "product", "id": "1"},
			{"type": "product", "id": "2"}
		]}}},
		"included": [
			{"type": "product", "id": "1", "attributes": {"title": "Анна Каренина", "price": 450}},
			{"type": "product", "id": "2", "attributes": {"price": "free"}},
			{"type": "product", "id": "99", "attributes": {"price": "500"}},
			{"type": "popularSearchPhrase", "id": "p1", "attributes": {"phraseText": 7}}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, env.Included, 4)

	assert.NotNil(t, env.Included[0].Product)
	assert.NoError(t, env.Included[0].AttrErr)
	for _, r := range env.Included[1:] {
		assert.Nil(t, r.Product, r.ID.String())
		assert.Nil(t, r.Phrase, r.ID.String())
		assert.Error(t, r.AttrErr, r.ID.String())
	}

	res := chitai.AdaptSearchResponse(env)
	require.True(t, res.OK)
	assert.Equal(t, 1, res.Found)
	require.Len(t, res.Books, 1)
	assert.Equal(t, "1", res.Books[0].ID)
	assert.Equal(t, "Анна Каренина", res.Books[0].Title)

	popular := chitai.AdaptPopularSearchesResponse(env)
	assert.True(t, popular.OK)
	assert.Equal(t, 0, popular.Count)
}

func TestPaginationTotal(t *testing.T) {
	t.Parallel()

	env, err := chitai.DecodeEnvelope([]byte(`{"data": {"relationships": {"products": {"data": [], "meta": {"pagination": {"total": 12}}}}}}`))
	require.NoError(t, err)

	total, ok := env.PaginationTotal()
	assert.True(t, ok)
	assert.Equal(t, 12, total)

	var empty chitai.Envelope
	_, ok = empty.PaginationTotal()
	assert.False(t, ok)
	assert.Nil(t, empty.ProductRefs())
}
