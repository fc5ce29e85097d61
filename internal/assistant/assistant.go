// Package assistant bridges the reader chat widget to a hosted generation
// API. Faults never escape: every failure degrades to a fixed editorial
// message and the underlying cause is only logged.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"techtimes/internal/model"
)

// User-facing fallback messages. These are part of the product copy, not
// error text, and change only with editorial sign-off.
const (
	msgNoCredential = "I cannot access the news archives at this moment. (Missing API Key)"
	msgNoComment    = "The editorial board is unable to comment at this time."
	msgMaintenance  = "Our archives are currently undergoing maintenance. Please check back later."
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// httpClient is the part of http.Client the bridge uses.
type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Articles yields the current wire as context for the system instruction.
type Articles func() []model.Article

// Bridge sends chat turns to the generation API.
type Bridge struct {
	apiKey   string
	modelID  string
	baseURL  string
	client   httpClient
	articles Articles
	log      *slog.Logger
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(b *Bridge) { b.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c httpClient) Option {
	return func(b *Bridge) { b.client = c }
}

// New creates a Bridge. An empty apiKey is allowed; Send then answers with a
// fixed unavailable message and performs no network I/O.
func New(apiKey, modelID string, articles Articles, log *slog.Logger, opts ...Option) *Bridge {
	b := &Bridge{
		apiKey:   apiKey,
		modelID:  modelID,
		baseURL:  defaultBaseURL,
		client:   &http.Client{Timeout: 30 * time.Second},
		articles: articles,
		log:      log,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Wire format of the generateContent endpoint.
type generateRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Send submits the conversation so far and returns the assistant's reply.
// It never returns an error: missing credentials, transport faults, bad
// statuses, and empty responses each map to a fixed message.
func (b *Bridge) Send(ctx context.Context, history []model.ChatMessage) string {
	if b.apiKey == "" {
		return msgNoCredential
	}

	contents := make([]content, 0, len(history))
	for _, m := range history {
		contents = append(contents, content{
			Role:  string(m.Role),
			Parts: []part{{Text: m.Text}},
		})
	}

	body, err := json.Marshal(generateRequest{
		Contents:          contents,
		SystemInstruction: &content{Parts: []part{{Text: b.systemInstruction()}}},
	})
	if err != nil {
		b.log.Error("chat request not serialized", "error", err)
		return msgMaintenance
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", b.baseURL, b.modelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		b.log.Error("chat request not built", "error", err)
		return msgMaintenance
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		b.log.Error("generation API unreachable", "error", err)
		return msgMaintenance
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		b.log.Error("generation API refused request",
			"status", resp.StatusCode, "body", string(snippet))
		return msgMaintenance
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		b.log.Error("generation API response unreadable", "error", err)
		return msgMaintenance
	}

	text := extractText(out)
	if text == "" {
		return msgNoComment
	}
	return text
}

// extractText joins the text parts of the first candidate.
func extractText(out generateResponse) string {
	if len(out.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String())
}

// systemInstruction builds the editorial persona prompt around a snapshot of
// the current wire.
func (b *Bridge) systemInstruction() string {
	var wire strings.Builder
	for i, a := range b.articles() {
		if i > 0 {
			wire.WriteByte('\n')
		}
		fmt.Fprintf(&wire, "- %q (%s). Section: %s. Lead: %s",
			a.Title, a.PublicationDate, a.Category, a.Preview)
	}

	return `You are the Executive Editor for "The Tech Times", a prestigious technology newspaper.
Your tone is authoritative, intelligent, slightly traditional yet forward-looking (like a mix of The New York Times and Wired).

Here is our current news wire:
` + wire.String() + `

Answer user questions about these stories. Summarize complex tech topics into clear, journalistic prose.
If asked about topics not in the wire, provide general tech knowledge but mention you are checking the archives.
Keep answers brief (under 3-4 sentences) and professional.`
}
