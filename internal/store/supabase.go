package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SupabaseError is a non-2xx answer from the Supabase REST interface.
type SupabaseError struct {
	StatusCode int
	Body       string
}

func (e *SupabaseError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("supabase returned status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("supabase returned status %d", e.StatusCode)
}

// SupabaseStore reads sites and appends speed logs through the Supabase
// PostgREST endpoint. It implements SiteRegistry and ResultStore.
type SupabaseStore struct {
	baseURL string
	key     string
	client  *http.Client
}

type SupabaseOption func(*SupabaseStore)

func WithHTTPClient(httpClient *http.Client) SupabaseOption {
	return func(s *SupabaseStore) {
		if httpClient != nil {
			s.client = httpClient
		}
	}
}

func NewSupabaseStore(baseURL, key string, opts ...SupabaseOption) *SupabaseStore {
	s := &SupabaseStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sites returns every row of the sites table ordered by id.
func (s *SupabaseStore) Sites(ctx context.Context) ([]Site, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"/rest/v1/sites?select=*&order=id.asc", nil)
	if err != nil {
		return nil, err
	}

	var sites []Site
	if err := s.do(req, &sites); err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	return sites, nil
}

// SaveSpeedLog appends one measurement and returns the new row id taken from
// the representation echoed back by PostgREST.
func (s *SupabaseStore) SaveSpeedLog(ctx context.Context, entry SpeedLog) (int64, error) {
	jsonBody, err := json.Marshal(entry)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/rest/v1/speed_logs", bytes.NewBuffer(jsonBody))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	var rows []struct {
		ID int64 `json:"id"`
	}
	if err := s.do(req, &rows); err != nil {
		return 0, fmt.Errorf("insert speed log: %w", err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("insert speed log: empty representation")
	}
	return rows[0].ID, nil
}

func (s *SupabaseStore) do(req *http.Request, out interface{}) error {
	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return &SupabaseError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}
