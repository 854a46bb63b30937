package jobs

import (
	"context"
	"log/slog"
	"time"

	"optigenius/internal/config"
	"optigenius/internal/metrics"
	"optigenius/internal/store"
)

// RetentionStats captures the number of records deleted by TTL cleanup.
type RetentionStats struct {
	ReportsDeleted int64 `json:"reportsDeleted"`
}

// CleanupExpiredData deletes old reports based on retention settings so
// that the database does not grow without bound.
func CleanupExpiredData(ctx context.Context, cfg *config.Config, st *store.Store) RetentionStats {
	var stats RetentionStats

	if cfg.Retention.ReportDays > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -cfg.Retention.ReportDays)
		if n, err := st.DeleteReportsOlderThan(ctx, cutoff); err == nil && n > 0 {
			stats.ReportsDeleted += n
			metrics.RecordRetentionReports(n)
		}
	}

	return stats
}

// RunRetentionLoop runs TTL cleanup on a fixed interval until the
// context is canceled. Callers run this in its own goroutine.
func RunRetentionLoop(ctx context.Context, cfg *config.Config, st *store.Store, logger *slog.Logger) {
	if !cfg.Retention.Enabled {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}

	interval := time.Duration(cfg.Retention.CleanupIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		stats := CleanupExpiredData(ctx, cfg, st)
		if stats.ReportsDeleted > 0 {
			logger.Info("retention cleanup", "reports_deleted", stats.ReportsDeleted)
		}
	}
}
