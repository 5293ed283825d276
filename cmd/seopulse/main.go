package main

import (
	"context"

	"github.com/enqinsel/seo-pulse/internal/analyzer"
	seoconfig "github.com/enqinsel/seo-pulse/internal/config"
	"github.com/enqinsel/seo-pulse/internal/notify"
	"github.com/enqinsel/seo-pulse/internal/pagespeed"
	"github.com/enqinsel/seo-pulse/internal/report"
	"github.com/enqinsel/seo-pulse/internal/runner"
	"github.com/enqinsel/seo-pulse/internal/store"
	"github.com/enqinsel/seo-pulse/pkg/config"
	"github.com/enqinsel/seo-pulse/pkg/database"
	"github.com/enqinsel/seo-pulse/pkg/email"
	"github.com/enqinsel/seo-pulse/pkg/logging"
	"github.com/enqinsel/seo-pulse/pkg/version"
)

func main() {
	// Setup logger
	logger := logging.NewLoggerWithService("seopulse")

	// Load environment variables
	config.LoadEnv(logger)

	logger.WithFields(logging.Fields{
		"version": version.Version,
		"commit":  version.GetShortCommit(),
	}).Info("Starting SEO-Pulse (Site Performance Scanner)")

	cfg := seoconfig.LoadConfig()

	// Pick the site registry / result store backend
	var registry store.SiteRegistry
	var results store.ResultStore
	switch cfg.StoreBackend {
	case seoconfig.BackendPostgres:
		dbConfig := database.DefaultConfig()
		dbConfig.URL = cfg.DatabaseURL
		db := database.MustConnect(dbConfig, logger)
		defer func() { _ = db.Close() }()

		pg := store.NewPostgresStore(db)
		registry, results = pg, pg
	default:
		sb := store.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey)
		registry, results = sb, sb
	}

	// Measurement pipeline
	client := pagespeed.NewClient(pagespeed.Config{
		APIKey:   cfg.PageSpeedAPIKey,
		BaseURL:  cfg.PageSpeedAPIURL,
		Strategy: cfg.Strategy,
		Timeout:  cfg.RequestTimeout,
	})
	siteAnalyzer := analyzer.New(client, cfg.PageSpeedAPIKey, logger)

	// Report delivery
	sender := email.NewSender(email.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.EmailSender,
		Password: cfg.EmailPassword,
		From:     cfg.EmailSender,
	})
	notifier := notify.NewEmailNotifier(sender, cfg.EmailSender, logger)

	scan := runner.New(runner.Config{
		PrimaryLabel: cfg.PrimaryLabel,
		RateLimit:    cfg.RateLimit,
		Registry:     registry,
		Results:      results,
		Analyzer:     siteAnalyzer,
		Composer:     report.NewComposer(),
		Delivery:     notifier,
		Logger:       logger,
	})

	summary, err := scan.Run(context.Background())
	if err != nil {
		logger.WithError(err).Fatal("Scan aborted")
	}
	logger.WithFields(logging.Fields{
		"scanned":     summary.Scanned,
		"succeeded":   summary.Succeeded,
		"failed":      summary.Failed,
		"report_sent": summary.ReportSent,
	}).Info("SEO-Pulse finished")
}
