package store

import (
	"context"

	"github.com/enqinsel/seo-pulse/internal/audit"
)

// Site is one tracked web property from the sites table.
type Site struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
	URL   string `json:"site_url"`
}

// SpeedLog is one measurement appended to the speed_logs table.
type SpeedLog struct {
	SiteID           int64                  `json:"site_id"`
	PerformanceScore int                    `json:"performance_score"`
	LCPSpeed         float64                `json:"lcp_speed"`
	CLSScore         float64                `json:"cls_score"`
	Recommendations  []audit.Recommendation `json:"recommendations"`
}

// SiteRegistry lists the monitored sites.
type SiteRegistry interface {
	Sites(ctx context.Context) ([]Site, error)
}

// ResultStore appends computed metrics and returns the new row id.
type ResultStore interface {
	SaveSpeedLog(ctx context.Context, entry SpeedLog) (int64, error)
}
