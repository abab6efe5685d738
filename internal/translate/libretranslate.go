package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/goliatone/go-news/pkg/interfaces"
)

// DefaultEndpoint is where a locally run LibreTranslate instance listens.
const DefaultEndpoint = "http://localhost:5000/translate"

// Client talks to a LibreTranslate-compatible HTTP endpoint. It satisfies
// interfaces.TranslationProvider.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

var _ interfaces.TranslationProvider = (*Client)(nil)

// ClientOption customises the client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithAPIKey sets the api_key field sent with every request.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// NewClient constructs a client for the given endpoint. An empty endpoint
// selects DefaultEndpoint.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type translateRequest struct {
	Query  string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error,omitempty"`
}

// Translate performs a single translation call.
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	payload, err := json.Marshal(translateRequest{
		Query:  text,
		Source: source,
		Target: target,
		Format: "text",
		APIKey: c.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("libretranslate: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("libretranslate: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("libretranslate: %w", err)
	}
	defer res.Body.Close()

	var decoded translateResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("libretranslate: decode response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		message := decoded.Error
		if message == "" {
			message = res.Status
		}
		return "", fmt.Errorf("libretranslate: %s", message)
	}

	if decoded.TranslatedText == "" {
		return "", fmt.Errorf("libretranslate: empty translation for %s->%s", source, target)
	}

	return decoded.TranslatedText, nil
}
