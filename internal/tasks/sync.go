package tasks

import (
	"context"
	"time"
)

type SyncResult struct {
	Count      int       `json:"count"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Sync is a handle on a running SyncToDatabase call.
type Sync struct {
	done   chan struct{}
	result SyncResult
}

func newSync() *Sync {
	return &Sync{done: make(chan struct{})}
}

func (s *Sync) finish(result SyncResult) {
	s.result = result
	close(s.done)
}

// Done is closed once the sync has completed.
func (s *Sync) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the sync completes or ctx ends. Giving up on the wait does
// not stop the sync.
func (s *Sync) Wait(ctx context.Context) (SyncResult, error) {
	select {
	case <-s.done:
		return s.result, nil
	case <-ctx.Done():
		return SyncResult{}, ctx.Err()
	}
}
