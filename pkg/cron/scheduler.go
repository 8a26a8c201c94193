// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/expense-exterminator/backend/pkg/storage"
)

// Scheduler manages background scheduled jobs using robfig/cron.
type Scheduler struct {
	cron     *cron.Cron
	store    storage.Store
	maxAge   time.Duration
	schedule string
	logger   *slog.Logger
}

// NewScheduler creates a new job scheduler sweeping stale files out of the
// staging store. Uploads are deleted by the request that staged them; the
// sweep only catches leftovers from crashed requests.
func NewScheduler(store storage.Store, schedule string, maxAge time.Duration, logger *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:     c,
		store:    store,
		maxAge:   maxAge,
		schedule: schedule,
		logger:   logger,
	}
}

// Start begins scheduled jobs.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.sweepUploads)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.Int("jobs", len(s.cron.Entries())),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow manually triggers the upload sweep (for testing/admin).
func (s *Scheduler) RunNow() {
	go s.sweepUploads()
}

// sweepUploads removes staged files older than the configured max age.
func (s *Scheduler) sweepUploads() {
	removed, err := s.store.SweepOlderThan(s.maxAge)
	if err != nil {
		s.logger.Error("upload sweep failed", slog.Any("error", err))
		return
	}
	if removed > 0 {
		s.logger.Info("upload sweep completed", slog.Int("removed", removed))
	}
}
