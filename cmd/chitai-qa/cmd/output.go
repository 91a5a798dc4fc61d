package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	domain "github.com/donaldgifford/chitai-gorod-qa/pkg/types"
)

const timeLayout = "2006-01-02 15:04:05"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printBooksTable(w io.Writer, res *domain.SearchResult) error {
	tw := newTabWriter(w)
	tw.writef("ID\tTITLE\tAUTHOR\tPRICE\tOLD\tDISCOUNT\tAVAILABLE\n")
	for i := range res.Books {
		b := &res.Books[i]
		oldPrice := "-"
		if b.OldPrice != nil {
			oldPrice = formatPrice(*b.OldPrice)
		}
		discount := "-"
		if b.Discount != nil {
			discount = *b.Discount
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\t%v\n",
			b.ID,
			truncate(b.Title, 40),
			truncate(b.Author, 30),
			formatPrice(b.Price),
			oldPrice,
			discount,
			b.Available,
		)
	}
	tw.writef("\nfound %d of %d\n", res.Found, res.Total)
	return tw.finish()
}

func printPopularTable(w io.Writer, res *domain.PopularSearchResult) error {
	tw := newTabWriter(w)
	tw.writef("ID\tPHRASE\n")
	for _, p := range res.Phrases {
		tw.writef("%s\t%s\n", p.ID, p.Text)
	}
	return tw.finish()
}

func printRunTable(w io.Writer, run *domain.SmokeRun) error {
	tw := newTabWriter(w)
	tw.writef("CHECK\tSTATUS\tDURATION\tMESSAGE\n")
	for i := range run.Results {
		r := &run.Results[i]
		tw.writef("%s\t%s\t%dms\t%s\n", r.Name, r.Status, r.DurationMS, truncate(r.Message, 80))
	}

	verdict := "PASSED"
	if !run.Passed {
		verdict = "FAILED"
	}
	tw.writef("\n%s\t%d/%d checks passed in %s (run %s)\n",
		verdict,
		len(run.Results)-len(run.FailedChecks()),
		len(run.Results),
		run.Duration().Round(time.Millisecond),
		run.ID,
	)
	return tw.finish()
}

func printRunsTable(w io.Writer, runs []domain.SmokeRun, total int) error {
	tw := newTabWriter(w)
	tw.writef("ID\tSTARTED\tTRIGGER\tRESULT\tDURATION\n")
	for i := range runs {
		r := &runs[i]
		result, duration := "running", "-"
		if r.CompletedAt != nil {
			result = "failed"
			if r.Passed {
				result = "passed"
			}
			duration = r.Duration().Round(time.Millisecond).String()
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			r.StartedAt.Local().Format(timeLayout),
			r.Trigger,
			result,
			duration,
		)
	}
	tw.writef("\nshowing %d of %d runs\n", len(runs), total)
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64) + " ₽"
}

// truncate shortens s to maxLen runes.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	return string(r[:maxLen-3]) + "..."
}
