package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/DamianTarnowski/SportRental-sub002/internal/clock"
)

// HoldStore is the slice of the hold store the sweeper needs.
type HoldStore interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

const defaultSweepInterval = time.Minute

// Sweeper periodically reclaims expired holds. It is hygiene, not
// correctness: availability queries already ignore expired holds, so a failed
// sweep only delays physical cleanup.
type Sweeper struct {
	store    HoldStore
	clock    clock.Clock
	logger   *zap.Logger
	interval time.Duration
}

func NewSweeper(store HoldStore, clk clock.Clock, logger *zap.Logger, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sweeper{
		store:    store,
		clock:    clk,
		logger:   logger,
		interval: interval,
	}
}

// Run loops until ctx is cancelled. Sweep errors are logged and swallowed;
// the loop always goes back to sleep and retries on the next tick.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("hold sweeper started", zap.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("hold sweeper stopped")
			return
		case <-ticker.C:
			if err := s.sweep(ctx); err != nil {
				s.logger.Error("sweep failed", zap.Error(err))
			}
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) error {
	removed, err := s.store.DeleteExpired(ctx, s.clock.Now())
	if err != nil {
		return err
	}
	if removed > 0 {
		s.logger.Info("expired holds reclaimed", zap.Int64("count", removed))
	}
	return nil
}
