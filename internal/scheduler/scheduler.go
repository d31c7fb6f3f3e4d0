package scheduler

import (
	"context"
	"time"

	"gymcore/internal/logger"
	"gymcore/internal/loyalty"
	"gymcore/internal/membership"
)

// Scheduler runs the daily maintenance jobs: membership lifecycle
// sweep (auto-reactivate, auto-expire), loyalty point expiry, and
// tier recomputation.
type Scheduler struct {
	memberships membership.Service
	loyalty     loyalty.Service
	interval    time.Duration
}

func New(memberships membership.Service, loyaltySvc loyalty.Service) *Scheduler {
	return &Scheduler{
		memberships: memberships,
		loyalty:     loyaltySvc,
		interval:    24 * time.Hour,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	logger.Info("Scheduler started")

	// Run once on startup so a restarted instance doesn't wait a full day.
	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if summary, err := s.memberships.RunDailySweep(ctx); err != nil {
		logger.Errorf("Lifecycle sweep failed: %v", err)
	} else {
		logger.Infof("Lifecycle sweep: %d reactivated, %d expired, %d failures",
			summary.Reactivated, summary.Expired, summary.Failures)
	}

	if summary, err := s.loyalty.ProcessExpiredPoints(ctx); err != nil {
		logger.Errorf("Loyalty expiry failed: %v", err)
	} else {
		logger.Infof("Loyalty expiry: %d activities expired, %d failures",
			summary.Expired, summary.Failures)
	}

	if updated, err := s.loyalty.RecomputeTiers(ctx); err != nil {
		logger.Errorf("Tier recompute failed: %v", err)
	} else if updated > 0 {
		logger.Infof("Tier recompute: %d profiles updated", updated)
	}
}
