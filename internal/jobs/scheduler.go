package jobs

import (
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"PengaduanKPU/internal/logger"
	"PengaduanKPU/internal/serviceiface"
)

// CronService owns the scheduled background jobs. Today that is the nightly
// statistics snapshot; new jobs register here.
type CronService struct {
	config map[string]interface{}
	pool   *pgxpool.Pool
	cron   *cron.Cron
}

func NewCronService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	return &CronService{config: cfg, pool: pool}
}

func (s *CronService) Name() string { return "jobs" }

func (s *CronService) Start() error {
	cfg := NewDefaultSnapshotConfig()
	if s.config != nil {
		if schedule, ok := s.config["stats_schedule"].(string); ok && schedule != "" {
			cfg.Schedule = schedule
		}
	}

	c, err := RunStatisticsSnapshot(cfg, s.pool)
	if err != nil {
		return fmt.Errorf("failed to start statistics snapshot job: %w", err)
	}
	s.cron = c
	logger.Audit("Statistics snapshot job scheduled")
	return nil
}

func (s *CronService) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	log.Println("Cron service stopped.")
	return nil
}
