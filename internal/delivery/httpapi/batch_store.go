package httpapi

import (
	"fmt"
	"sync"
	"time"

	"github.com/yourusername/bazaar-admin/internal/domain/entity"
)

const batchRetention = 2 * time.Hour

// batchStore keeps uploaded batches between preview and run. While a run is
// going the rows belong to the run goroutine; readers only ever see the
// public copy, which is updated from progress events under mu.
type batchStore struct {
	mu      sync.Mutex
	batches map[string]*entity.ImportBatch
	now     func() time.Time
}

func newBatchStore() *batchStore {
	return &batchStore{
		batches: make(map[string]*entity.ImportBatch),
		now:     time.Now,
	}
}

func (s *batchStore) put(batch *entity.ImportBatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	s.batches[batch.ID] = batch
}

// get returns a snapshot of the batch if userID owns it
func (s *batchStore) get(id, userID string) (*entity.ImportBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, ok := s.batches[id]
	if !ok || batch.UserID != userID {
		return nil, fmt.Errorf("%w: import batch %s", entity.ErrNotFound, id)
	}
	return batch.Clone(), nil
}

// claim marks a ready batch as importing and hands the caller a private copy
// to run. A batch can be claimed once.
func (s *batchStore) claim(id, userID string) (*entity.ImportBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, ok := s.batches[id]
	if !ok || batch.UserID != userID {
		return nil, fmt.Errorf("%w: import batch %s", entity.ErrNotFound, id)
	}
	if batch.Phase != entity.PhaseReady {
		return nil, fmt.Errorf("%w: batch %s is %s", entity.ErrBatchNotReady, id, batch.Phase)
	}
	if batch.ValidCount() == 0 {
		return nil, entity.ErrNoValidRows
	}

	work := batch.Clone()
	batch.Phase = entity.PhaseImporting
	batch.StartedAt = s.now()
	return work, nil
}

// progress copies one attempted row into the public batch
func (s *batchStore) progress(id string, p entity.ImportProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, ok := s.batches[id]
	if !ok {
		return
	}
	batch.Progress = p
	if p.Index >= 0 && p.Index < len(batch.Rows) {
		batch.Rows[p.Index] = p.Result
	}
}

// finish publishes the final state of a run
func (s *batchStore) finish(work *entity.ImportBatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.batches[work.ID] = work
}

// release returns a claimed batch to ready after a run that never started
func (s *batchStore) release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if batch, ok := s.batches[id]; ok && batch.Phase == entity.PhaseImporting {
		batch.Phase = entity.PhaseReady
		batch.StartedAt = time.Time{}
	}
}

func (s *batchStore) pruneLocked() {
	cutoff := s.now().Add(-batchRetention)
	for id, b := range s.batches {
		if b.Phase != entity.PhaseImporting && b.CreatedAt.Before(cutoff) {
			delete(s.batches, id)
		}
	}
}
