package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingStore struct {
	calls   atomic.Int64
	deleted int64
	err     error
}

func (s *countingStore) DeleteExpired(context.Context, time.Time) (int64, error) {
	s.calls.Add(1)
	return s.deleted, s.err
}

func TestSessionSweeper_StartSweepsImmediately(t *testing.T) {
	t.Parallel()
	store := &countingStore{deleted: 3}
	sweeper := NewSessionSweeper(store, time.Hour)

	sweeper.Start()
	defer sweeper.Stop()

	deadline := time.After(time.Second)
	for store.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("sweeper did not run on start")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSessionSweeper_StopIsIdempotent(t *testing.T) {
	t.Parallel()
	sweeper := NewSessionSweeper(&countingStore{}, time.Hour)

	sweeper.Start()
	if !sweeper.IsRunning() {
		t.Error("IsRunning() = false after Start")
	}
	sweeper.Stop()
	sweeper.Stop()
	if sweeper.IsRunning() {
		t.Error("IsRunning() = true after Stop")
	}
}

func TestSessionSweeper_RunOnce_PropagatesError(t *testing.T) {
	t.Parallel()
	wantErr := errors.New("store down")
	sweeper := NewSessionSweeper(&countingStore{err: wantErr}, time.Hour)

	if err := sweeper.RunOnce(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("RunOnce() error = %v, want %v", err, wantErr)
	}
}
