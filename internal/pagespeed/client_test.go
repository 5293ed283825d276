package pagespeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRunSendsExpectedQuery(t *testing.T) {
	var gotRawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"lighthouseResult":{"categories":{"performance":{"score":0.5}},"audits":{}}}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})

	if _, err := client.Run(context.Background(), "https://example.com/blog"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"url=https://example.com/blog",
		"key=test-key",
		"strategy=mobile",
		"category=performance",
	} {
		if !strings.Contains(gotRawQuery, want) {
			t.Fatalf("query %q missing %q", gotRawQuery, want)
		}
	}
}

func TestRunEncodesTargetPreservingURLCharacters(t *testing.T) {
	var gotRawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"lighthouseResult":{}}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL})

	if _, err := client.Run(context.Background(), "https://example.com/a b?x=1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(gotRawQuery, "url=https://example.com/a%20b?x=1") {
		t.Fatalf("target not encoded as expected: %q", gotRawQuery)
	}
}

func TestRunParsesStructuredAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Quota exceeded for quota metric","errors":[{"reason":"rateLimitExceeded"}]}}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL})

	_, err := client.Run(context.Background(), "https://example.com")
	if err == nil {
		t.Fatal("expected error for 429 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Quota exceeded for quota metric" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
	if apiErr.Reason != "rateLimitExceeded" {
		t.Fatalf("unexpected reason: %q", apiErr.Reason)
	}
}

func TestRunRedactsKeyInRawErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream exploded while handling key=super-secret-key"))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "super-secret-key", BaseURL: server.URL})

	_, err := client.Run(context.Background(), "https://example.com")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if strings.Contains(apiErr.Body, "super-secret-key") {
		t.Fatalf("API key leaked into error body: %q", apiErr.Body)
	}
	if !strings.Contains(apiErr.Body, "REDACTED") {
		t.Fatalf("expected redaction marker in body: %q", apiErr.Body)
	}
	if strings.Contains(err.Error(), "super-secret-key") {
		t.Fatalf("API key leaked into error text: %q", err.Error())
	}
}

func TestRunMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>definitely not json</html>"))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL})

	_, err := client.Run(context.Background(), "https://example.com")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestRunDecodesLighthouseResult(t *testing.T) {
	payload := `{
		"lighthouseResult": {
			"categories": {"performance": {"score": 0.73}},
			"audits": {
				"largest-contentful-paint": {"score": 0.6, "numericValue": 2500},
				"cumulative-layout-shift": {"score": 0.9, "numericValue": 0.123456},
				"unused-javascript": {"score": 0.4, "details": {"type": "opportunity", "overallSavingsMs": 800}}
			}
		}
	}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL})

	resp, err := client.Run(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	score := resp.LighthouseResult.Categories.Performance.Score
	if score == nil || *score != 0.73 {
		t.Fatalf("unexpected performance score: %v", score)
	}

	audits := resp.LighthouseResult.Audits
	if len(audits) != 3 {
		t.Fatalf("expected 3 audits, got %d", len(audits))
	}
	if audits[0].ID != "largest-contentful-paint" || audits[2].ID != "unused-javascript" {
		t.Fatalf("audit order not preserved: %v, %v", audits[0].ID, audits[2].ID)
	}

	lcp, ok := audits.Get("largest-contentful-paint")
	if !ok || lcp.NumericValue != 2500 {
		t.Fatalf("unexpected LCP audit: %+v", lcp)
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{APIKey: "k"})

	if client.baseURL != defaultBaseURL {
		t.Fatalf("unexpected base URL: %s", client.baseURL)
	}
	if client.strategy != defaultStrategy {
		t.Fatalf("unexpected strategy: %s", client.strategy)
	}
	if client.httpClient.Timeout != defaultTimeout {
		t.Fatalf("unexpected timeout: %s", client.httpClient.Timeout)
	}
}

func TestEncodeTarget(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://example.com", "https://example.com"},
		{"https://example.com/path?a=1&b=2", "https://example.com/path?a=1&b=2"},
		{"https://example.com/a b", "https://example.com/a%20b"},
		{"https://example.com/ü", "https://example.com/%C3%BC"},
		{"https://example.com/#frag", "https://example.com/%23frag"},
	}
	for _, tc := range cases {
		if got := encodeTarget(tc.in); got != tc.want {
			t.Errorf("encodeTarget(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
