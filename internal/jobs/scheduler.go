package jobs

import (
	"context"
	"time"

	"covenfield_backend/internal/http/handlers"
	"covenfield_backend/internal/logger"
	"covenfield_backend/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic sweeps: listing expiry, regatta state
// transitions, and pruning of expired boosts and old ad watch rows.
type Scheduler struct {
	cron   *cron.Cron
	h      *handlers.Handler
	boosts *repository.BoostRepository
}

func NewScheduler(db *pgxpool.Pool, h *handlers.Handler) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		h:      h,
		boosts: repository.NewBoostRepository(db),
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@every 1m", s.sweepMinute); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@every 1h", s.sweepHour); err != nil {
		return err
	}
	s.cron.Start()
	logger.Info("job scheduler started")
	return nil
}

// Stop waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Info("job scheduler stopped")
}

func (s *Scheduler) sweepMinute() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.h.Market.ExpireListings(ctx); err != nil {
		logger.Error("listing expiry sweep failed", "error", err)
	}
	if err := s.h.Regatta.Sweep(ctx); err != nil {
		logger.Error("regatta sweep failed", "error", err)
	}
}

func (s *Scheduler) sweepHour() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if n, err := s.boosts.PruneExpired(ctx, time.Now()); err != nil {
		logger.Error("boost prune failed", "error", err)
	} else if n > 0 {
		logger.Info("pruned expired boosts", "count", n)
	}
	if _, err := s.h.Ads.PruneWatches(ctx); err != nil {
		logger.Error("ad watch prune failed", "error", err)
	}
}
