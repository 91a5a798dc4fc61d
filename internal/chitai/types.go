package chitai

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Resource type discriminators used in the included section.
const (
	TypeProduct             = "product"
	TypePopularSearchPhrase = "popularSearchPhrase"
)

// Envelope is a decoded JSON:API response from the site's search API.
//
// Presence of the status and data keys matters to the adapter, so both are
// tracked independently of their values: a key carrying JSON null still
// counts as present.
type Envelope struct {
	// Status is kept verbatim. It is set only on error envelopes.
	Status   json.RawMessage
	Data     *Document
	Included []Resource

	hasData bool
}

// HasStatus reports whether the envelope carried a status key.
func (e *Envelope) HasStatus() bool {
	return len(e.Status) > 0
}

// HasData reports whether the envelope carried a data key.
func (e *Envelope) HasData() bool {
	return e.hasData
}

type rawEnvelope struct {
	Status   json.RawMessage `json:"status"`
	Data     json.RawMessage `json:"data"`
	Included []Resource      `json:"included"`
}

// UnmarshalJSON decodes the envelope and its side-loaded resources in one
// pass.
func (e *Envelope) UnmarshalJSON(b []byte) error {
	var raw rawEnvelope
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*e = Envelope{
		Status:   raw.Status,
		Included: raw.Included,
		hasData:  len(raw.Data) > 0,
	}

	// Only object documents carry relationships; the popular phrases
	// endpoint may send a bare array.
	if e.hasData && isObject(raw.Data) {
		var doc Document
		if err := json.Unmarshal(raw.Data, &doc); err != nil {
			return fmt.Errorf("decoding data: %w", err)
		}
		e.Data = &doc
	}

	return nil
}

// DecodeEnvelope parses a raw response body into an Envelope.
func DecodeEnvelope(body []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Document is the primary resource of a search response.
type Document struct {
	ID            ResourceID    `json:"id"`
	Type          string        `json:"type"`
	Relationships Relationships `json:"relationships"`
}

// Relationships holds the relationships of the primary search resource.
type Relationships struct {
	Products *ProductsRelationship `json:"products"`
}

// ProductsRelationship lists product references in result order.
type ProductsRelationship struct {
	Data []ResourceRef     `json:"data"`
	Meta *RelationshipMeta `json:"meta"`
}

// RelationshipMeta carries relationship metadata.
type RelationshipMeta struct {
	Pagination *Pagination `json:"pagination"`
}

// Pagination is the server-reported paging state.
type Pagination struct {
	Total       *int `json:"total"`
	Count       int  `json:"count"`
	PerPage     int  `json:"perPage"`
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
}

// ResourceRef references a side-loaded resource.
type ResourceRef struct {
	ID   ResourceID `json:"id"`
	Type string     `json:"type"`
}

// Resource is an entry of the included section. Attributes are decoded
// according to Type; unknown types keep only their raw attributes.
// Attributes that do not fit their type leave Product and Phrase nil and set
// AttrErr, so the entry drops out of adaptation instead of failing the
// whole response.
type Resource struct {
	ID   ResourceID
	Type string

	Product *ProductAttributes
	Phrase  *PhraseAttributes
	Raw     json.RawMessage
	AttrErr error
}

type rawResource struct {
	ID         ResourceID      `json:"id"`
	Type       string          `json:"type"`
	Attributes json.RawMessage `json:"attributes"`
}

// UnmarshalJSON decodes a resource and its type-specific attributes.
func (r *Resource) UnmarshalJSON(b []byte) error {
	var raw rawResource
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*r = Resource{ID: raw.ID, Type: raw.Type, Raw: raw.Attributes}

	attrs := raw.Attributes
	if len(attrs) == 0 || isNull(attrs) {
		attrs = []byte("{}")
	}

	switch raw.Type {
	case TypeProduct:
		var p ProductAttributes
		if err := json.Unmarshal(attrs, &p); err != nil {
			r.AttrErr = fmt.Errorf("decoding product %s attributes: %w", raw.ID, err)
			return nil
		}
		r.Product = &p
	case TypePopularSearchPhrase:
		var p PhraseAttributes
		if err := json.Unmarshal(attrs, &p); err != nil {
			r.AttrErr = fmt.Errorf("decoding phrase %s attributes: %w", raw.ID, err)
			return nil
		}
		r.Phrase = &p
	}

	return nil
}

// ProductAttributes are the fields of a product resource the adapter reads.
type ProductAttributes struct {
	Title     *string  `json:"title"`
	Authors   []Author `json:"authors"`
	Price     *float64 `json:"price"`
	OldPrice  *float64 `json:"oldPrice"`
	Discount  *float64 `json:"discount"`
	Status    string   `json:"status"`
	Category  *Titled  `json:"category"`
	Publisher *Titled  `json:"publisher"`
	Rating    *Rating  `json:"rating"`
}

// Author is one entry of a product's authors list.
type Author struct {
	ID         ResourceID `json:"id"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	MiddleName string     `json:"middleName"`
}

// Titled is a nested object identified by its title (category, publisher).
type Titled struct {
	ID    ResourceID `json:"id"`
	Title *string    `json:"title"`
}

// Rating holds the rating block of a product. Count may arrive as a JSON
// number or a quoted number.
type Rating struct {
	Count json.Number `json:"count"`
}

// PhraseAttributes are the fields of a popularSearchPhrase resource.
type PhraseAttributes struct {
	PhraseText string `json:"phraseText"`
}

// ResourceID is a JSON:API identifier. The site mostly sends strings but
// some endpoints emit bare numbers.
type ResourceID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ResourceID) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ResourceID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("resource id must be a string or number: %w", err)
	}
	*id = ResourceID(n.String())
	return nil
}

// String returns the identifier as a plain string.
func (id ResourceID) String() string {
	return string(id)
}

func isObject(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '{'
}

func isNull(b []byte) bool {
	return bytes.Equal(bytes.TrimSpace(b), []byte("null"))
}
