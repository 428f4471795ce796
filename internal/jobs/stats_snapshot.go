package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"PengaduanKPU/internal/config"
	"PengaduanKPU/internal/logger"
	"PengaduanKPU/internal/store"
)

type SnapshotConfig struct {
	Schedule string
	TimeZone string
}

func NewDefaultSnapshotConfig() SnapshotConfig {
	return SnapshotConfig{
		Schedule: config.DefaultStatsSchedule,
		TimeZone: config.DefaultTimeZone,
	}
}

// RunStatisticsSnapshot schedules the nightly per-status complaint counts
// into the audit log, so the dashboard numbers have a daily paper trail.
// The returned cron is running; the caller owns stopping it.
func RunStatisticsSnapshot(cfg SnapshotConfig, pool *pgxpool.Pool) (*cron.Cron, error) {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.TimeZone, err)
	}

	c := cron.New(cron.WithLocation(loc))
	st := store.New(pool)
	_, err = c.AddFunc(cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		stats, err := st.Statistics(ctx)
		if err != nil {
			logger.Audit(fmt.Sprintf("[Snapshot] statistics query failed: %v", err))
			return
		}
		logger.Audit(fmt.Sprintf("[Snapshot] complaints total=%d selesai=%d proses=%d pending=%d",
			stats.Total, stats.Selesai, stats.Proses, stats.Pending))
	})
	if err != nil {
		return nil, fmt.Errorf("schedule %q: %w", cfg.Schedule, err)
	}
	c.Start()
	return c, nil
}
