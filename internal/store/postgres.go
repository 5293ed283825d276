package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PostgresStore serves the registry and result contracts from a plain
// Postgres connection for deployments without Supabase.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Sites returns every row of the sites table ordered by id.
func (s *PostgresStore) Sites(ctx context.Context) ([]Site, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, site_url
		FROM sites
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	defer rows.Close()

	var sites []Site
	for rows.Next() {
		var site Site
		if err := rows.Scan(&site.ID, &site.Label, &site.URL); err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	return sites, nil
}

// SaveSpeedLog appends one measurement. Recommendations land in a jsonb
// column so the row shape matches the Supabase table.
func (s *PostgresStore) SaveSpeedLog(ctx context.Context, entry SpeedLog) (int64, error) {
	recommendations, err := json.Marshal(entry.Recommendations)
	if err != nil {
		return 0, fmt.Errorf("encode recommendations: %w", err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO speed_logs (site_id, performance_score, lcp_speed, cls_score, recommendations)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, entry.SiteID, entry.PerformanceScore, entry.LCPSpeed, entry.CLSScore, recommendations).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert speed log: %w", err)
	}
	return id, nil
}
