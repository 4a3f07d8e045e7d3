package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/projetointerclasse/interclasse/internal/interclasse/store"
)

// HousekeepingService periodically removes expired entries from stores that
// cannot expire them on their own.
type HousekeepingService struct {
	Stores   []store.Expirer
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService sweeps every KV in kvs that implements store.Expirer.
// A non-positive interval defaults to 10 minutes.
func NewHousekeepingService(logger *slog.Logger, interval time.Duration, kvs ...store.KV) *HousekeepingService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	var expirers []store.Expirer
	for _, kv := range kvs {
		if e, ok := kv.(store.Expirer); ok {
			expirers = append(expirers, e)
		}
	}

	return &HousekeepingService{
		Stores:   expirers,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the sweeper in the background until Stop is called.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval, "stores", len(s.Stores))
}

// Stop blocks until any in-progress sweep has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep runs one pass over every store. A failing store does not stop the others.
func (s *HousekeepingService) Sweep(ctx context.Context) int64 {
	var total int64
	for _, e := range s.Stores {
		n, err := e.DeleteExpired(ctx)
		if err != nil {
			s.Logger.Error("failed to delete expired entries", "error", err)
			continue
		}
		total += n
	}

	housekeepingSwept.Add(float64(total))
	s.Logger.Debug("housekeeping sweep completed", "deleted", total)
	return total
}
