// Package analysis wraps the external label-analysis provider: one image in,
// structured wine attributes or a classified failure out.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"vinoscan/internal/config"
	"vinoscan/internal/imaging"
	"vinoscan/internal/wine"
)

// Sentinel failures, each mapped to a distinct user-facing message by the
// alerts package.
var (
	ErrMissingCredential = errors.New("analysis api key missing")
	ErrUnreachable       = errors.New("analysis service unreachable")
	ErrEmptyResponse     = errors.New("analysis returned an empty response")
	ErrMalformedResponse = errors.New("analysis response could not be parsed")
	ErrProvider          = errors.New("analysis provider error")
)

const labelPrompt = "Analyze this wine label. Extract the following information in JSON format: " +
	"name of the wine, the maker/winery, the vintage year, the type (categorize as exactly one of: " +
	"Red, White, Rosé, Champagne/Sparkling, or Other), and a brief professional tasting description."

const (
	defaultHTTPTimeout    = 15 * time.Second
	defaultRetryAttempts  = 3
	defaultRetryBaseDelay = 1 * time.Second
	defaultRetryMaxDelay  = 10 * time.Second
)

// Client issues label-analysis requests. One request carries one image; the
// design holds a single request in flight at a time (enforced by the staging
// session, not here). Transient transport failures and retryable provider
// statuses are retried with exponential backoff.
type Client struct {
	cfg        config.Analysis
	httpClient *http.Client

	retryMaxAttempts int
	retryBaseDelay   time.Duration
	retryMaxDelay    time.Duration
	sleeper          func(time.Duration)
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRetryMaxAttempts overrides the default retry count.
func WithRetryMaxAttempts(attempts int) Option {
	return func(c *Client) {
		c.retryMaxAttempts = attempts
	}
}

// WithSleeper overrides how retry sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		if sleeper != nil {
			c.sleeper = sleeper
		}
	}
}

// NewClient constructs an analysis client from configuration.
func NewClient(cfg config.Analysis, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg:              cfg,
		httpClient:       &http.Client{Timeout: timeout},
		retryMaxAttempts: defaultRetryAttempts,
		retryBaseDelay:   defaultRetryBaseDelay,
		retryMaxDelay:    defaultRetryMaxDelay,
		sleeper:          time.Sleep,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type generateRequest struct {
	Contents         []content       `json:"contents"`
	GenerationConfig *generateConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateConfig struct {
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   *responseSchema `json:"responseSchema,omitempty"`
}

type responseSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]schemaProperty `json:"properties,omitempty"`
	Required   []string                  `json:"required,omitempty"`
}

type schemaProperty struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// labelSchema constrains the provider to the exact document labelPayload
// decodes.
func labelSchema() *responseSchema {
	return &responseSchema{
		Type: "OBJECT",
		Properties: map[string]schemaProperty{
			"name":  {Type: "STRING"},
			"maker": {Type: "STRING"},
			"year":  {Type: "STRING"},
			"type": {
				Type:        "STRING",
				Description: "Must be one of: Red, White, Rosé, Champagne/Sparkling, Other",
			},
			"description": {Type: "STRING"},
		},
		Required: []string{"name", "maker", "year", "type", "description"},
	}
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// labelPayload is the JSON document the provider is instructed to emit.
type labelPayload struct {
	Name        string `json:"name"`
	Maker       string `json:"maker"`
	Year        string `json:"year"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// AnalyzeLabel sends one encoded image (data URL or bare base64) and returns
// the structured attributes, with omitted fields defaulted to safe
// placeholders and the type coerced to the closed set.
func (c *Client) AnalyzeLabel(ctx context.Context, imageDataURL string) (wine.LabelFacts, error) {
	var empty wine.LabelFacts
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return empty, ErrMissingCredential
	}

	attempts := c.retryMaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		facts, retryable, err := c.analyzeOnce(ctx, imageDataURL)
		if err == nil {
			return facts, nil
		}
		if !retryable || attempt == attempts {
			return empty, err
		}
		lastErr = err

		delay := c.retryBaseDelay << (attempt - 1)
		if delay > c.retryMaxDelay {
			delay = c.retryMaxDelay
		}
		c.sleeper(delay)
		if ctx.Err() != nil {
			return empty, ctx.Err()
		}
	}
	return empty, lastErr
}

// analyzeOnce performs a single request. The retryable flag is set for
// transport failures and provider statuses worth retrying (429, 5xx).
func (c *Client) analyzeOnce(ctx context.Context, imageDataURL string) (wine.LabelFacts, bool, error) {
	var empty wine.LabelFacts

	payload := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: labelPrompt},
				{InlineData: &inlineData{
					MimeType: "image/jpeg",
					Data:     imaging.Base64Payload(imageDataURL),
				}},
			},
		}},
		GenerationConfig: &generateConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   labelSchema(),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return empty, false, fmt.Errorf("encode analysis request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent",
		strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return empty, false, fmt.Errorf("build analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return empty, false, ctx.Err()
		}
		return empty, true, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return empty, true, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	var parsed generateResponse
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		if decodeErr == nil && parsed.Error != nil && parsed.Error.Message != "" {
			return empty, retryable, fmt.Errorf("%w: %s", ErrProvider, parsed.Error.Message)
		}
		return empty, retryable, fmt.Errorf("%w: http %d", ErrProvider, resp.StatusCode)
	}
	if decodeErr != nil {
		return empty, false, fmt.Errorf("%w: %v", ErrMalformedResponse, decodeErr)
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return empty, false, fmt.Errorf("%w: %s", ErrProvider, parsed.Error.Message)
	}

	text := extractText(parsed)
	if strings.TrimSpace(text) == "" {
		return empty, false, ErrEmptyResponse
	}

	var doc labelPayload
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return empty, false, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return normalizeFacts(doc), false, nil
}

func extractText(resp generateResponse) string {
	for _, candidate := range resp.Candidates {
		for _, p := range candidate.Content.Parts {
			if p.Text != "" {
				return p.Text
			}
		}
	}
	return ""
}

var typeCaser = cases.Title(language.Und)

// normalizeFacts applies the placeholder defaults and coerces the type to the
// closed set. The coercion forgives casing ("red", "ROSÉ") but any value that
// still fails to match maps to Other.
func normalizeFacts(doc labelPayload) wine.LabelFacts {
	facts := wine.LabelFacts{
		Name:        strings.TrimSpace(doc.Name),
		Maker:       strings.TrimSpace(doc.Maker),
		Year:        strings.TrimSpace(doc.Year),
		Description: strings.TrimSpace(doc.Description),
	}
	if facts.Name == "" {
		facts.Name = "Unknown Wine"
	}
	if facts.Maker == "" {
		facts.Maker = "Unknown Maker"
	}
	if facts.Year == "" {
		facts.Year = "N/V"
	}

	rawType := strings.TrimSpace(doc.Type)
	if wine.ValidType(rawType) {
		facts.Type = wine.Type(rawType)
	} else {
		facts.Type = wine.ParseType(typeCaser.String(strings.ToLower(rawType)), wine.TypeOther)
	}
	return facts
}
