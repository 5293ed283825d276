package config

import (
	"time"

	"github.com/enqinsel/seo-pulse/pkg/config"
)

// Backend names for the site registry / result store pair.
const (
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
)

// Config stores environment configuration for SEO-Pulse.
type Config struct {
	SupabaseURL     string
	SupabaseKey     string
	PageSpeedAPIKey string
	PageSpeedAPIURL string
	Strategy        string
	RequestTimeout  time.Duration
	RateLimit       time.Duration
	PrimaryLabel    string
	EmailSender     string
	EmailPassword   string
	SMTPHost        string
	SMTPPort        string
	StoreBackend    string
	DatabaseURL     string
}

// LoadConfig loads the SEO-Pulse configuration from environment variables.
// The five secrets are hard requirements and abort startup when absent;
// everything else has a default.
func LoadConfig() Config {
	cfg := Config{
		SupabaseURL:     config.RequireEnv("SUPABASE_URL"),
		SupabaseKey:     config.RequireEnv("SUPABASE_KEY"),
		PageSpeedAPIKey: config.RequireEnv("PAGESPEED_API_KEY"),
		EmailSender:     config.RequireEnv("EMAIL_SENDER"),
		EmailPassword:   config.RequireEnv("EMAIL_PASSWORD"),
		PageSpeedAPIURL: config.GetEnv("PAGESPEED_API_URL", ""),
		Strategy:        config.GetEnv("PAGESPEED_STRATEGY", "mobile"),
		RequestTimeout:  time.Duration(config.GetEnvInt("PAGESPEED_TIMEOUT_SECONDS", 60)) * time.Second,
		RateLimit:       time.Duration(config.GetEnvInt("API_RATE_LIMIT_SECONDS", 5)) * time.Second,
		PrimaryLabel:    config.GetEnv("PRIMARY_SITE_LABEL", "My Site"),
		SMTPHost:        config.GetEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:        config.GetEnv("SMTP_PORT", "587"),
		StoreBackend:    config.GetEnv("STORE_BACKEND", BackendSupabase),
	}
	if cfg.StoreBackend == BackendPostgres {
		cfg.DatabaseURL = config.RequireEnv("DATABASE_URL")
	}
	return cfg
}
