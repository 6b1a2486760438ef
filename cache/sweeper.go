package cache

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ZaguanLabs/lingo/metrics"
)

// Sweeper periodically deletes expired entries from the durable store.
// Reads already exclude expired rows, so the sweep exists to reclaim
// space, not for correctness.
type Sweeper struct {
	store    *Store
	interval time.Duration
	logger   *logrus.Logger
}

// NewSweeper creates a sweeper. A zero interval defaults to daily.
func NewSweeper(store *Store, interval time.Duration, logger *logrus.Logger) *Sweeper {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.ErrorLevel)
	}
	return &Sweeper{store: store, interval: interval, logger: logger}
}

// Start runs the sweep loop until the context is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logEntry := s.logger.WithField("component", "cache_sweeper")
	logEntry.Info("Starting expiry sweeper")

	for {
		select {
		case <-ticker.C:
			s.sweep(logEntry)
		case <-ctx.Done():
			logEntry.Info("Stopping expiry sweeper")
			return
		}
	}
}

// Sweep runs a single expiry pass and returns the count deleted.
func (s *Sweeper) Sweep() (int64, error) {
	count, err := s.store.DeleteExpired()
	if err == nil {
		metrics.StoreSweepDeleted.Add(float64(count))
	}
	return count, err
}

func (s *Sweeper) sweep(logEntry *logrus.Entry) {
	count, err := s.Sweep()
	if err != nil {
		logEntry.WithError(err).Error("Expiry sweep failed")
		return
	}
	if count > 0 {
		logEntry.WithField("deleted", count).Info("Expiry sweep completed")
	}
}
