package pagespeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL  = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"
	defaultStrategy = "mobile"
	defaultTimeout  = 60 * time.Second

	// Cap on raw error-body text kept for diagnostics.
	maxErrorBodyRunes = 300
)

// ErrMalformed marks a 2xx response whose body did not decode into the
// expected shape.
var ErrMalformed = errors.New("malformed pagespeed response")

type Config struct {
	APIKey   string
	BaseURL  string
	Strategy string
	Timeout  time.Duration
}

// Client issues runPagespeed requests. It stays transport-only: callers own
// logging and error classification.
type Client struct {
	apiKey     string
	baseURL    string
	strategy   string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Strategy == "" {
		cfg.Strategy = defaultStrategy
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &Client{
		apiKey:   cfg.APIKey,
		baseURL:  cfg.BaseURL,
		strategy: cfg.Strategy,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Run requests one performance measurement for the target URL.
func (c *Client) Run(ctx context.Context, target string) (*Response, error) {
	endpoint := fmt.Sprintf("%s?url=%s&key=%s&strategy=%s&category=performance",
		c.baseURL, encodeTarget(target), url.QueryEscape(c.apiKey), c.strategy)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.apiError(resp.StatusCode, body)
	}

	var parsed Response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return &parsed, nil
}

func (c *Client) apiError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		apiErr.Message = envelope.Error.Message
		if len(envelope.Error.Errors) > 0 {
			apiErr.Reason = envelope.Error.Errors[0].Reason
		}
		return apiErr
	}

	apiErr.Body = c.redact(truncateRunes(string(body), maxErrorBodyRunes))
	return apiErr
}

func (c *Client) redact(s string) string {
	if c.apiKey == "" {
		return s
	}
	return strings.ReplaceAll(s, c.apiKey, "REDACTED")
}

// encodeTarget percent-encodes a target URL for use as a query value while
// keeping it readable. Unreserved characters and :/?=& pass through;
// everything else becomes %XX on its UTF-8 bytes.
func encodeTarget(target string) string {
	const safe = ":/?=&"

	var b strings.Builder
	b.Grow(len(target))
	for i := 0; i < len(target); i++ {
		ch := target[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
			b.WriteByte(ch)
		case ch == '-' || ch == '_' || ch == '.' || ch == '~':
			b.WriteByte(ch)
		case strings.IndexByte(safe, ch) >= 0:
			b.WriteByte(ch)
		default:
			fmt.Fprintf(&b, "%%%02X", ch)
		}
	}
	return b.String()
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
