// Package scheduler runs the periodic saved-chart retention job.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/junhoahn/manse-api/internal/config"
	"github.com/junhoahn/manse-api/internal/database"
)

// Scheduler owns the cron runner for background maintenance jobs.
type Scheduler struct {
	cron   *cron.Cron
	db     *database.DB
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a scheduler. It does not start any jobs.
func New(db *database.DB, cfg *config.Config, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers the retention job and begins the cron loop. It is an
// error to call Start when retention is disabled.
func (s *Scheduler) Start() error {
	if s.cfg.ChartRetentionDays <= 0 {
		return fmt.Errorf("chart retention is disabled")
	}

	_, err := s.cron.AddFunc(s.cfg.CleanupSchedule, func() {
		if err := s.CleanupOldCharts(context.Background()); err != nil {
			s.logger.Error("chart cleanup failed", slog.Any("error", err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule cleanup job %q: %w", s.cfg.CleanupSchedule, err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started",
		slog.String("schedule", s.cfg.CleanupSchedule),
		slog.Int("retention_days", s.cfg.ChartRetentionDays),
	)
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// CleanupOldCharts deletes saved charts older than the retention window.
func (s *Scheduler) CleanupOldCharts(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -s.cfg.ChartRetentionDays)

	deleted, err := s.db.DeleteChartsBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("delete old charts: %w", err)
	}

	if deleted > 0 {
		s.logger.Info("old charts deleted",
			slog.Int64("count", deleted),
			slog.Time("cutoff", cutoff),
		)
	}
	return nil
}
