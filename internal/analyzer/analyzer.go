package analyzer

import (
	"context"
	"errors"
	"math"
	"net"
	"net/url"
	"strings"

	"github.com/enqinsel/seo-pulse/internal/audit"
	"github.com/enqinsel/seo-pulse/internal/pagespeed"
	"github.com/enqinsel/seo-pulse/pkg/logging"
)

const (
	lcpAuditID = "largest-contentful-paint"
	clsAuditID = "cumulative-layout-shift"
)

// SiteMetrics is the normalized outcome of one site measurement: score on a
// 0-100 scale, LCP in seconds, CLS unitless, plus the ranked recommendations.
type SiteMetrics struct {
	Score           int
	LCP             float64
	CLS             float64
	Recommendations []audit.Recommendation
}

// MeasurementClient runs one performance measurement per call.
type MeasurementClient interface {
	Run(ctx context.Context, target string) (*pagespeed.Response, error)
}

// Analyzer turns raw measurement responses into SiteMetrics and maps every
// failure onto the AnalysisError taxonomy. It never lets a client error
// escape unclassified.
type Analyzer struct {
	client MeasurementClient
	apiKey string
	logger logging.Logger
}

func New(client MeasurementClient, apiKey string, logger logging.Logger) *Analyzer {
	return &Analyzer{client: client, apiKey: apiKey, logger: logger}
}

// Analyze measures one site and normalizes the response. On failure it
// returns a *AnalysisError and logs the classified cause; partial metrics are
// never returned.
func (a *Analyzer) Analyze(ctx context.Context, target string) (*SiteMetrics, error) {
	target = strings.TrimSpace(target)

	a.logger.WithField("url", target).Info("Scanning site")

	resp, err := a.client.Run(ctx, target)
	if err != nil {
		analysisErr := a.classify(err)
		a.logFailure(target, analysisErr)
		return nil, analysisErr
	}

	lighthouse := resp.LighthouseResult

	var rawScore float64
	if lighthouse.Categories.Performance.Score != nil {
		rawScore = *lighthouse.Categories.Performance.Score
	}
	score := int(math.Round(rawScore * 100))

	var lcpMs float64
	if rec, ok := lighthouse.Audits.Get(lcpAuditID); ok {
		lcpMs = rec.NumericValue
	}
	lcp := round2(lcpMs / 1000)

	var rawCLS float64
	if rec, ok := lighthouse.Audits.Get(clsAuditID); ok {
		rawCLS = rec.NumericValue
	}
	cls := round4(rawCLS)

	recommendations := audit.Extract(lighthouse.Audits)

	a.logger.WithFields(logging.Fields{
		"url":             target,
		"score":           score,
		"lcp_seconds":     lcp,
		"cls":             cls,
		"recommendations": len(recommendations),
	}).Info("Analysis complete")

	return &SiteMetrics{
		Score:           score,
		LCP:             lcp,
		CLS:             cls,
		Recommendations: recommendations,
	}, nil
}

// classify maps a client error onto the taxonomy. Timeouts are checked before
// transport failures because a timed-out request surfaces as both.
func (a *Analyzer) classify(err error) *AnalysisError {
	var apiErr *pagespeed.APIError
	var netErr net.Error
	var urlErr *url.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return &AnalysisError{
			Kind:    KindTimeout,
			Message: "the measurement API did not answer in time",
			Err:     err,
		}
	case errors.As(err, &apiErr):
		msg := apiErr.Message
		if msg == "" {
			msg = apiErr.Body
		}
		return &AnalysisError{
			Kind:       KindHTTPStatus,
			StatusCode: apiErr.StatusCode,
			Message:    a.redact(msg),
			Reason:     apiErr.Reason,
			Err:        err,
		}
	case errors.Is(err, pagespeed.ErrMalformed):
		return &AnalysisError{
			Kind:    KindMalformed,
			Message: a.redact(err.Error()),
			Err:     err,
		}
	case errors.As(err, &urlErr):
		return &AnalysisError{
			Kind:    KindTransport,
			Message: a.redact(err.Error()),
			Err:     err,
		}
	default:
		return &AnalysisError{
			Kind:    KindUnknown,
			Message: a.redact(err.Error()),
			Err:     err,
		}
	}
}

func (a *Analyzer) logFailure(target string, analysisErr *AnalysisError) {
	entry := a.logger.WithFields(logging.Fields{
		"url":  target,
		"kind": string(analysisErr.Kind),
	})

	switch analysisErr.Kind {
	case KindTimeout:
		entry.Error("Timed out waiting for the measurement API")
	case KindHTTPStatus:
		entry = entry.WithField("status", analysisErr.StatusCode)
		if analysisErr.Reason != "" {
			entry = entry.WithField("reason", analysisErr.Reason)
		}
		entry.WithField("api_message", analysisErr.Message).Error("Measurement API rejected the request")
	case KindTransport:
		entry.WithField("error", analysisErr.Message).Error("Could not reach the measurement API")
	case KindMalformed:
		entry.WithField("error", analysisErr.Message).Error("Measurement API returned an unexpected payload")
	default:
		entry.WithField("error", analysisErr.Message).Error("Unexpected analysis failure")
	}
}

// redact removes the API key from free-form error text. The key can appear
// raw or percent-encoded inside request URLs, so both spellings are replaced.
func (a *Analyzer) redact(s string) string {
	if a.apiKey == "" {
		return s
	}
	s = strings.ReplaceAll(s, a.apiKey, "REDACTED")
	if escaped := url.QueryEscape(a.apiKey); escaped != a.apiKey {
		s = strings.ReplaceAll(s, escaped, "REDACTED")
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
