package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"optigenius/internal/model"
)

// ErrNotFound is returned when a report does not exist or is owned by a
// different user.
var ErrNotFound = errors.New("report not found")

// Store persists analysis reports in Postgres via a shared *sql.DB with
// pooling. The full result is kept as JSONB; a few columns are lifted
// out for listing without decoding every row.
type Store struct {
	DB *sql.DB
}

func New(database *sql.DB) *Store {
	return &Store{DB: database}
}

// ReportSummary is the listing view of a stored report.
type ReportSummary struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	SEOScore  int       `json:"seoScore"`
	CreatedAt time.Time `json:"createdAt"`
}

// Report is a stored report with its full analysis payload.
type Report struct {
	ID        uuid.UUID            `json:"id"`
	URL       string               `json:"url"`
	SEOScore  int                  `json:"seoScore"`
	CreatedAt time.Time            `json:"createdAt"`
	Result    model.AnalysisResult `json:"result"`
}

// SaveReport stores one analysis result for a user and returns the new
// report id.
func (s *Store) SaveReport(ctx context.Context, userID string, result *model.AnalysisResult) (uuid.UUID, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal report: %w", err)
	}

	id := uuid.New()
	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO reports (id, user_id, url, seo_score, data) VALUES ($1, $2, $3, $4, $5)`,
		id, userID, result.URL, result.SEOScore, payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert report: %w", err)
	}
	return id, nil
}

// ListReports returns the user's most recent reports, newest first,
// capped at 50.
func (s *Store) ListReports(ctx context.Context, userID string) ([]ReportSummary, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, url, seo_score, created_at FROM reports
		 WHERE user_id = $1 ORDER BY created_at DESC LIMIT 50`, userID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	out := make([]ReportSummary, 0)
	for rows.Next() {
		var r ReportSummary
		if err := rows.Scan(&r.ID, &r.URL, &r.SEOScore, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetReport fetches a single report with its full payload.
func (s *Store) GetReport(ctx context.Context, id uuid.UUID, userID string) (*Report, error) {
	var (
		r       Report
		payload []byte
	)
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, url, seo_score, created_at, data FROM reports
		 WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&r.ID, &r.URL, &r.SEOScore, &r.CreatedAt, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}

	if err := json.Unmarshal(payload, &r.Result); err != nil {
		return nil, fmt.Errorf("decode report payload: %w", err)
	}
	return &r, nil
}

// DeleteReport removes a report owned by the user. Deleting someone
// else's report reports ErrNotFound rather than leaking existence.
func (s *Store) DeleteReport(ctx context.Context, id uuid.UUID, userID string) error {
	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM reports WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteReportsOlderThan removes reports created before the cutoff and
// returns how many rows were deleted. Used by the retention job.
func (s *Store) DeleteReportsOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM reports WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old reports: %w", err)
	}
	return res.RowsAffected()
}
