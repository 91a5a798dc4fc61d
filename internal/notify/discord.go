package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	domain "github.com/donaldgifford/chitai-gorod-qa/pkg/types"
)

const (
	colorGreen = 0x2ECC71 // all checks passed
	colorRed   = 0xE74C3C // a check failed
	colorGray  = 0x95A5A6 // a check errored and none failed

	// Discord caps embed fields at 25.
	maxFields = 25
	// and field values at 1024 characters.
	maxFieldValue = 1024
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// NotifyRun posts a run summary as a Discord embed. Only checks that did
// not pass get a field.
func (d *DiscordNotifier) NotifyRun(ctx context.Context, run *domain.SmokeRun) error {
	payload := discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(run)},
	}
	return d.post(ctx, payload)
}

func buildEmbed(run *domain.SmokeRun) discordEmbed {
	failed := run.FailedChecks()

	embed := discordEmbed{
		Color:       runColor(run),
		Description: fmt.Sprintf("Run `%s` (%s), %d/%d checks passed in %s.", run.ID, run.Trigger, len(run.Results)-len(failed), len(run.Results), run.Duration().Round(time.Millisecond)),
		Timestamp:   run.StartedAt.UTC().Format(time.RFC3339),
	}

	if run.Passed {
		embed.Title = "Smoke run passed"
	} else {
		embed.Title = fmt.Sprintf("Smoke run failed: %d check(s)", len(failed))
	}

	for i := range failed {
		if len(embed.Fields) == maxFields {
			break
		}
		c := &failed[i]
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name:  fmt.Sprintf("%s (%s)", c.Name, c.Status),
			Value: truncate(fieldValue(c), maxFieldValue),
		})
	}

	return embed
}

func runColor(run *domain.SmokeRun) int {
	if run.Passed {
		return colorGreen
	}
	for i := range run.Results {
		if run.Results[i].Status == domain.CheckFailed {
			return colorRed
		}
	}
	return colorGray
}

func fieldValue(c *domain.CheckResult) string {
	if strings.TrimSpace(c.Message) == "" {
		return "no message"
	}
	return c.Message
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
