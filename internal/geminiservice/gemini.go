package geminiservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// --- Gemini API Configuration ---
const (
	defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"
	defaultTimeout  = 30 * time.Second

	// defaultMimeType is used when an attachment arrives without a declared type.
	defaultMimeType = "application/octet-stream"
)

// FallbackReply is returned when the upstream call succeeds but carries no
// usable text. An empty payload is not treated as an error.
const FallbackReply = "Sorry, I could not generate a response right now."

// Config holds the upstream credential and endpoint, resolved once at startup
// and injected into the client. The key travels as a URL query parameter.
type Config struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

// ConfigFromEnv reads the Gemini configuration from the process environment.
// A missing key is a recoverable condition handled by the chat handler, so no
// error is returned here.
func ConfigFromEnv() Config {
	cfg := Config{
		APIKey:   os.Getenv("GEMINI_API_KEY"),
		Endpoint: os.Getenv("GEMINI_ENDPOINT"),
		Timeout:  defaultTimeout,
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	return cfg
}

// Client calls the Gemini generateContent REST endpoint. It is stateless
// across calls; nothing survives a request except what the caller re-sends.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// HasAPIKey reports whether the upstream credential was configured.
func (c *Client) HasAPIKey() bool {
	return c.cfg.APIKey != ""
}

// UpstreamError carries the verbatim non-2xx detail from Gemini so the chat
// handler can surface it inside an in-band diagnostic message.
type UpstreamError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %s: %s", e.Status, e.Body)
}

// --- Structs for Gemini API Request/Response ---

type geminiPayload struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends the composed prompt (plus at most one inline attachment) to
// Gemini and reduces the reply to plain text. Exactly one attempt is made:
// the user re-sending their message is the retry mechanism, so a failed call
// surfaces immediately instead of being retried here.
func (c *Client) Generate(ctx context.Context, prompt string, att *Attachment) (string, error) {
	parts := []geminiPart{{Text: prompt}}
	if att != nil {
		mimeType := att.Type
		if mimeType == "" {
			mimeType = defaultMimeType
		}
		parts = append(parts, geminiPart{
			InlineData: &geminiInlineData{MimeType: mimeType, Data: att.Data},
		})
	}

	payload := geminiPayload{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+"?key="+c.cfg.APIKey, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Info().Int("prompt_len", len(prompt)).Bool("attachment", att != nil).Msg("Calling Gemini API")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Warn().Str("status", resp.Status).Msg("Gemini API returned non-2xx status")
		return "", &UpstreamError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var geminiResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	// Concatenate every text fragment of the first candidate. An empty or
	// malformed payload degrades to the fixed fallback sentence.
	if len(geminiResp.Candidates) == 0 {
		return FallbackReply, nil
	}
	var b strings.Builder
	for _, part := range geminiResp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	if b.Len() == 0 {
		return FallbackReply, nil
	}
	return b.String(), nil
}
