package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/enqinsel/seo-pulse/internal/analyzer"
	"github.com/enqinsel/seo-pulse/internal/report"
	"github.com/enqinsel/seo-pulse/internal/store"
	"github.com/enqinsel/seo-pulse/pkg/logging"
)

const defaultRateLimit = 5 * time.Second

// SiteAnalyzer measures one site.
type SiteAnalyzer interface {
	Analyze(ctx context.Context, url string) (*analyzer.SiteMetrics, error)
}

// ReportComposer renders the comparative report.
type ReportComposer interface {
	Compose(primary report.SiteResult, comparisons []report.SiteResult) string
}

// ReportDelivery sends the finished report text.
type ReportDelivery interface {
	SendReport(ctx context.Context, content string) error
}

// Config wires the runner's collaborators. Out and Sleep exist so tests can
// capture the printed report and skip real waiting.
type Config struct {
	PrimaryLabel string
	RateLimit    time.Duration
	Registry     store.SiteRegistry
	Results      store.ResultStore
	Analyzer     SiteAnalyzer
	Composer     ReportComposer
	Delivery     ReportDelivery
	Logger       logging.Logger
	Out          io.Writer
	Sleep        func(time.Duration)
}

// Summary is the outcome of one scan run.
type Summary struct {
	Scanned    int
	Succeeded  int
	Failed     int
	ReportSent bool
}

// Runner drives one scan: list sites, measure each with the configured
// inter-call delay, persist results, then compose and deliver the report.
type Runner struct {
	primaryLabel string
	rateLimit    time.Duration
	registry     store.SiteRegistry
	results      store.ResultStore
	analyzer     SiteAnalyzer
	composer     ReportComposer
	delivery     ReportDelivery
	logger       logging.Logger
	out          io.Writer
	sleep        func(time.Duration)
}

func New(cfg Config) *Runner {
	r := &Runner{
		primaryLabel: cfg.PrimaryLabel,
		rateLimit:    cfg.RateLimit,
		registry:     cfg.Registry,
		results:      cfg.Results,
		analyzer:     cfg.Analyzer,
		composer:     cfg.Composer,
		delivery:     cfg.Delivery,
		logger:       cfg.Logger,
		out:          cfg.Out,
		sleep:        cfg.Sleep,
	}
	if r.rateLimit <= 0 {
		r.rateLimit = defaultRateLimit
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.sleep == nil {
		r.sleep = time.Sleep
	}
	return r
}

// Run executes one full scan. Analyzer and store failures are absorbed per
// site; an empty or unavailable site list ends the run normally without a
// report. The delay is honored between every pair of sites regardless of
// each site's outcome, never after the last one.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	log := r.logger.WithField("run_id", uuid.New().String())

	sites, err := r.registry.Sites(ctx)
	if err != nil {
		log.WithError(err).Error("Could not fetch sites")
	}
	if len(sites) == 0 {
		log.Warn("No sites to track")
		return Summary{}, nil
	}
	log.WithField("count", len(sites)).Info("Sites loaded")

	summary := Summary{Scanned: len(sites)}
	var primary *report.SiteResult
	var comparisons []report.SiteResult

	for i, site := range sites {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		log.Infof("[%d/%d] %s", i+1, len(sites), site.Label)

		metrics, err := r.analyzer.Analyze(ctx, site.URL)
		if err != nil {
			summary.Failed++
			log.WithField("site", site.Label).Warn("No data for site, skipping")
		} else {
			summary.Succeeded++

			if id, err := r.results.SaveSpeedLog(ctx, store.SpeedLog{
				SiteID:           site.ID,
				PerformanceScore: metrics.Score,
				LCPSpeed:         metrics.LCP,
				CLSScore:         metrics.CLS,
				Recommendations:  metrics.Recommendations,
			}); err != nil {
				log.WithError(err).WithField("site", site.Label).Warn("Could not save speed log")
			} else {
				log.WithField("log_id", id).Info("Saved to database")
			}

			result := report.SiteResult{
				Label:           site.Label,
				URL:             site.URL,
				Score:           metrics.Score,
				LCP:             metrics.LCP,
				CLS:             metrics.CLS,
				Recommendations: metrics.Recommendations,
			}
			if site.Label == r.primaryLabel {
				primary = &result
			} else {
				comparisons = append(comparisons, result)
			}
		}

		if i < len(sites)-1 {
			log.Infof("Waiting for API rate limit (%s)", r.rateLimit)
			r.sleep(r.rateLimit)
		}
	}

	log.Infof("Scan complete: %d succeeded, %d failed", summary.Succeeded, summary.Failed)

	if primary == nil {
		log.Warnf("No site labeled %q was scanned, skipping the report", r.primaryLabel)
		log.Infof("Make sure the sites table has a row labeled %q", r.primaryLabel)
	} else {
		content := r.composer.Compose(*primary, comparisons)
		fmt.Fprintf(r.out, "\n%s\n\n", content)

		if err := r.delivery.SendReport(ctx, content); err == nil {
			summary.ReportSent = true
		}
	}

	log.Info("SEO-Pulse run complete")
	return summary, nil
}
