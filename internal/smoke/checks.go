package smoke

import (
	"context"
	"fmt"
	"strings"

	"github.com/donaldgifford/chitai-gorod-qa/internal/chitai"
	domain "github.com/donaldgifford/chitai-gorod-qa/pkg/types"
)

// Check names.
const (
	CheckSearchAuthor    = "search_tolstoy"
	CheckSearchBooks     = "search_books"
	CheckSearchDetective = "search_detective"
	CheckPopularSearches = "popular_searches"
	CheckSearchTypos     = "search_typos"
)

// Authors whose presence in detective results is recorded.
var detectiveAuthors = []string{"Кристи", "Чейз", "Конан", "Маринина", "Акунин"}

// Substrings that mark a popular phrase as book-related.
var bookIndicators = []string{"книг", "автор", "роман", "детектив", "фантастик"}

// Outcome is what a check reports when it ran to completion.
type Outcome struct {
	Passed  bool
	Message string
	Details map[string]any
}

func pass(msg string, details map[string]any) Outcome {
	return Outcome{Passed: true, Message: msg, Details: details}
}

func fail(msg string, details map[string]any) Outcome {
	return Outcome{Message: msg, Details: details}
}

// Check is one named smoke check. Run returns an error only when the check
// could not talk to the API; assertion failures are reported in Outcome.
type Check struct {
	Name string
	Run  func(ctx context.Context, api chitai.API) (Outcome, error)
}

// Inputs are the queries the default checks send.
type Inputs struct {
	AuthorPhrase  string
	GenericPhrase string
	GenrePhrase   string
	TypoQueries   []string
	NonsenseQuery string
}

// DefaultChecks returns the standard check set in registration order.
func DefaultChecks(in Inputs) []Check {
	return []Check{
		{Name: CheckSearchAuthor, Run: searchAuthor(in.AuthorPhrase)},
		{Name: CheckSearchBooks, Run: searchBooks(in.GenericPhrase)},
		{Name: CheckSearchDetective, Run: searchDetective(in.GenrePhrase)},
		{Name: CheckPopularSearches, Run: popularSearches},
		{Name: CheckSearchTypos, Run: searchTypos(in.TypoQueries, in.NonsenseQuery)},
	}
}

func search(ctx context.Context, api chitai.API, phrase string) (*domain.SearchResult, error) {
	res, err := api.SearchProducts(ctx, chitai.SearchRequest{Phrase: phrase})
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", phrase, err)
	}
	return res, nil
}

func notOK(status []byte, errMsg string) string {
	if len(status) > 0 {
		return fmt.Sprintf("API did not respond ok (status %s)", status)
	}
	if errMsg != "" {
		return fmt.Sprintf("API did not respond ok (%s)", errMsg)
	}
	return "API did not respond ok"
}

// searchAuthor expects results whose first book is by the surname, which is
// the last word of the phrase.
func searchAuthor(phrase string) func(context.Context, chitai.API) (Outcome, error) {
	surname := phrase
	if f := strings.Fields(phrase); len(f) > 0 {
		surname = f[len(f)-1]
	}

	return func(ctx context.Context, api chitai.API) (Outcome, error) {
		res, err := search(ctx, api, phrase)
		if err != nil {
			return Outcome{}, err
		}

		details := map[string]any{"phrase": phrase, "found": res.Found, "total": res.Total}

		if !res.OK {
			return fail(notOK(res.Status, res.Error), details), nil
		}
		if res.Total <= 0 {
			return fail("no books found", details), nil
		}

		if len(res.Books) > 0 {
			first := res.Books[0]
			details["first_title"] = first.Title
			details["first_author"] = first.Author
			if !strings.Contains(first.Author, surname) {
				return fail(fmt.Sprintf("first book author %q does not contain %q", first.Author, surname), details), nil
			}
		}

		return pass(fmt.Sprintf("found %d of %d books", res.Found, res.Total), details), nil
	}
}

func searchBooks(phrase string) func(context.Context, chitai.API) (Outcome, error) {
	return func(ctx context.Context, api chitai.API) (Outcome, error) {
		res, err := search(ctx, api, phrase)
		if err != nil {
			return Outcome{}, err
		}

		details := map[string]any{"phrase": phrase, "found": res.Found, "total": res.Total}

		if !res.OK {
			return fail(notOK(res.Status, res.Error), details), nil
		}
		if res.Found <= 0 {
			return fail("no products found", details), nil
		}

		return pass(fmt.Sprintf("found %d products", res.Found), details), nil
	}
}

func searchDetective(phrase string) func(context.Context, chitai.API) (Outcome, error) {
	return func(ctx context.Context, api chitai.API) (Outcome, error) {
		res, err := search(ctx, api, phrase)
		if err != nil {
			return Outcome{}, err
		}

		details := map[string]any{"phrase": phrase, "found": res.Found, "total": res.Total}

		if !res.OK {
			return fail(notOK(res.Status, res.Error), details), nil
		}
		if res.Total <= 0 {
			return fail("no detectives found", details), nil
		}

		if known := knownAuthors(res.Books, 3); len(known) > 0 {
			details["known_authors"] = known
		}

		return pass(fmt.Sprintf("%d detectives in catalog", res.Total), details), nil
	}
}

// knownAuthors returns the surnames of recognized detective authors among
// the first n books, without duplicates.
func knownAuthors(books []domain.BookSummary, n int) []string {
	var out []string
	seen := make(map[string]bool)

	for i := range books[:min(n, len(books))] {
		author := books[i].Author
		for _, kw := range detectiveAuthors {
			if !strings.Contains(author, kw) {
				continue
			}
			surname := strings.Fields(author)[0]
			if !seen[surname] {
				seen[surname] = true
				out = append(out, surname)
			}
			break
		}
	}

	return out
}

func popularSearches(ctx context.Context, api chitai.API) (Outcome, error) {
	res, err := api.PopularSearches(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("fetching popular searches: %w", err)
	}

	details := map[string]any{"count": res.Count}

	if !res.OK {
		return fail(notOK(res.Status, res.Error), details), nil
	}
	if res.Count <= 0 {
		return fail("no popular phrases", details), nil
	}

	top := make([]string, 0, 3)
	var all strings.Builder
	for i, p := range res.Phrases {
		if i < 3 {
			top = append(top, p.Text)
		}
		all.WriteString(strings.ToLower(p.Text))
		all.WriteByte(' ')
	}
	details["top"] = top
	details["has_book_phrases"] = containsAny(all.String(), bookIndicators)

	return pass(fmt.Sprintf("%d popular phrases", res.Count), details), nil
}

// searchTypos is informational: misspelled queries may or may not match.
// It fails only when a request cannot be made or the nonsense query is not
// answered ok.
func searchTypos(queries []string, nonsense string) func(context.Context, chitai.API) (Outcome, error) {
	return func(ctx context.Context, api chitai.API) (Outcome, error) {
		typos := make(map[string]int, len(queries))
		for _, q := range queries {
			res, err := search(ctx, api, q)
			if err != nil {
				return Outcome{}, err
			}
			if res.OK {
				typos[q] = len(res.Books)
			} else {
				typos[q] = 0
			}
		}

		details := map[string]any{"typos": typos}

		res, err := search(ctx, api, nonsense)
		if err != nil {
			return Outcome{}, err
		}
		if !res.OK {
			return fail("nonsense query: "+notOK(res.Status, res.Error), details), nil
		}
		details["nonsense_found"] = res.Found

		msg := fmt.Sprintf("%d typo queries sent, nonsense query matched %d", len(queries), res.Found)
		return pass(msg, details), nil
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
