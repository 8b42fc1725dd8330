package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// SessionStore deletes session rows that expired before a cutoff.
type SessionStore interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// SessionSweeper periodically removes expired session rows. Expired
// sessions are already rejected at verify time; the sweeper only keeps the
// table from growing without bound.
type SessionSweeper struct {
	store    SessionStore
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// NewSessionSweeper creates a new session sweeper job
func NewSessionSweeper(store SessionStore, interval time.Duration) *SessionSweeper {
	if interval == 0 {
		interval = 1 * time.Hour
	}
	return &SessionSweeper{
		store:    store,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the sweeper job
func (s *SessionSweeper) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run()
	slog.Info("session sweeper started", slog.Duration("interval", s.interval))
}

// Stop gracefully stops the sweeper job
func (s *SessionSweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	slog.Info("session sweeper stopped")
}

func (s *SessionSweeper) run() {
	defer s.wg.Done()

	// Run immediately on start
	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *SessionSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := s.store.DeleteExpired(ctx, time.Now())
	if err != nil {
		slog.Error("session sweep failed", slog.Any("error", err))
		return
	}
	if deleted > 0 {
		slog.Info("session sweep", slog.Int64("deleted", deleted))
	}
}

// RunOnce sweeps once (for testing or manual trigger)
func (s *SessionSweeper) RunOnce(ctx context.Context) error {
	_, err := s.store.DeleteExpired(ctx, time.Now())
	return err
}

// IsRunning returns whether the sweeper is running
func (s *SessionSweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
