// Package domain defines the result types produced by the chitai-gorod
// API harness.
package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

// Placeholders used when the upstream payload omits a field.
const (
	UnknownAuthor = "Неизвестный автор"
	UntitledBook  = "Без названия"
	NoCategory    = "Без категории"
	NoDataMessage = "No data"
)

// BookSummary is a flat view of one product from a search response.
type BookSummary struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Price     float64  `json:"price"`
	OldPrice  *float64 `json:"old_price"`
	Discount  *string  `json:"discount"`
	Available bool     `json:"available"`
	Category  string   `json:"category"`
	Publisher string   `json:"publisher"`

	// Rating carries rating.count from the upstream payload, which is a
	// vote count rather than an average score.
	Rating float64 `json:"rating"`
}

// SearchResult is the adapted product search response.
type SearchResult struct {
	OK     bool            `json:"ok"`
	Status json.RawMessage `json:"status,omitempty"`
	Error  string          `json:"error,omitempty"`
	Found  int             `json:"found"`
	Total  int             `json:"total"`
	Books  []BookSummary   `json:"books"`

	// Refs counts the product references on the page, including ones
	// dropped for lack of a side-loaded product.
	Refs int `json:"-"`
}

// PopularPhrase is a single popular search phrase.
type PopularPhrase struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PopularSearchResult is the adapted popular-search-phrases response.
type PopularSearchResult struct {
	OK      bool            `json:"ok"`
	Status  json.RawMessage `json:"status,omitempty"`
	Error   string          `json:"error,omitempty"`
	Count   int             `json:"count"`
	Phrases []PopularPhrase `json:"phrases"`
}

// HTTPStatus encodes an HTTP status code the way upstream error envelopes
// carry it, so transport-level failures and embedded error objects share
// one representation.
func HTTPStatus(code int) json.RawMessage {
	return json.RawMessage(strconv.Itoa(code))
}

// StatusCode returns the numeric status carried by a failed result, if the
// status is a JSON number or a numeric string.
func StatusCode(status json.RawMessage) (int, bool) {
	if len(status) == 0 {
		return 0, false
	}

	var n json.Number
	if err := json.Unmarshal(status, &n); err != nil {
		return 0, false
	}
	code, err := strconv.Atoi(n.String())
	if err != nil {
		return 0, false
	}
	return code, true
}

// CheckStatus is the outcome of a single smoke check.
type CheckStatus string

// Check status constants.
const (
	CheckPassed  CheckStatus = "passed"
	CheckFailed  CheckStatus = "failed"
	CheckErrored CheckStatus = "errored"
)

// CheckResult records one smoke check execution.
type CheckResult struct {
	RunID      string         `json:"run_id"             db:"run_id"`
	Name       string         `json:"name"               db:"name"`
	Status     CheckStatus    `json:"status"             db:"status"`
	Message    string         `json:"message,omitempty"  db:"message"`
	Details    map[string]any `json:"details,omitempty"  db:"details"`
	DurationMS int64          `json:"duration_ms"        db:"duration_ms"`
}

// Passed reports whether the check passed.
func (c *CheckResult) Passed() bool {
	return c.Status == CheckPassed
}

// SmokeRun records one execution of the smoke suite.
type SmokeRun struct {
	ID          string        `json:"id"                     db:"id"`
	StartedAt   time.Time     `json:"started_at"             db:"started_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty" db:"completed_at"`
	Passed      bool          `json:"passed"                 db:"passed"`
	Trigger     string        `json:"trigger"                db:"trigger"`
	Results     []CheckResult `json:"results,omitempty"`
}

// FailedChecks returns the results that did not pass.
func (r *SmokeRun) FailedChecks() []CheckResult {
	var failed []CheckResult
	for i := range r.Results {
		if !r.Results[i].Passed() {
			failed = append(failed, r.Results[i])
		}
	}
	return failed
}

// Duration returns the wall-clock time of the run, or zero while running.
func (r *SmokeRun) Duration() time.Duration {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}
