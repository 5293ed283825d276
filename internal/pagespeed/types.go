package pagespeed

import (
	"fmt"

	"github.com/enqinsel/seo-pulse/internal/audit"
)

// Response is the subset of the v5 runPagespeed payload this system reads.
type Response struct {
	LighthouseResult LighthouseResult `json:"lighthouseResult"`
}

type LighthouseResult struct {
	Categories Categories `json:"categories"`
	Audits     audit.List `json:"audits"`
}

type Categories struct {
	Performance Category `json:"performance"`
}

// Category score is 0.0-1.0; null happens when Lighthouse could not score
// the category.
type Category struct {
	Score *float64 `json:"score"`
}

// APIError is a non-2xx reply from the measurement API. Message and Reason
// come from Google's structured error envelope when it parses; otherwise
// Body keeps a short, key-redacted slice of the raw response.
type APIError struct {
	StatusCode int
	Message    string
	Reason     string
	Body       string
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "" && e.Reason != "":
		return fmt.Sprintf("pagespeed API status %d: %s (%s)", e.StatusCode, e.Message, e.Reason)
	case e.Message != "":
		return fmt.Sprintf("pagespeed API status %d: %s", e.StatusCode, e.Message)
	case e.Body != "":
		return fmt.Sprintf("pagespeed API status %d: %s", e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("pagespeed API status %d", e.StatusCode)
	}
}

// errorEnvelope is the shape of Google API error bodies.
type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}
