// Package memstore provides an in-memory staging store, used by tests and
// as a reference implementation of the store contract.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"tmerle/ledgerstage/internal/models"
	"tmerle/ledgerstage/internal/staging"
)

// Store keeps staged transactions in memory, guarded by a mutex so the
// importer may insert rows concurrently and the conditional commit stays
// atomic.
type Store struct {
	mu    sync.Mutex
	rows  map[string]*models.StagedTransaction
	order []string
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		rows: make(map[string]*models.StagedTransaction),
	}
}

// Create persists a new staged transaction and returns its assigned id.
func (s *Store) Create(ctx context.Context, tx *models.StagedTransaction) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *tx
	stored.ID = uuid.NewString()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	s.rows[stored.ID] = &stored
	s.order = append(s.order, stored.ID)

	return stored.ID, nil
}

// Get returns a copy of the staged transaction with the given id.
func (s *Store) Get(ctx context.Context, id string) (*models.StagedTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, staging.ErrNotFound
	}
	copied := *row
	return &copied, nil
}

// ListPending returns all uncommitted, imported transactions owned by the
// user, in creation order.
func (s *Store) ListPending(ctx context.Context, userID string) ([]models.StagedTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []models.StagedTransaction
	for _, id := range s.order {
		row := s.rows[id]
		if row.UserID == userID && row.Imported && !row.Committed {
			pending = append(pending, *row)
		}
	}
	return pending, nil
}

// MarkCommitted flips Committed to true only if it is currently false.
func (s *Store) MarkCommitted(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return staging.ErrNotFound
	}
	if row.Committed {
		return staging.ErrAlreadyCommitted
	}
	row.Committed = true
	return nil
}

// DeletePending removes the listed transactions owned by the user, skipping
// committed rows silently.
func (s *Store) DeletePending(ctx context.Context, userID string, ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for _, id := range ids {
		row, ok := s.rows[id]
		if !ok || row.UserID != userID || row.Committed {
			continue
		}
		delete(s.rows, id)
		deleted++
	}

	if deleted > 0 {
		remaining := s.order[:0]
		for _, id := range s.order {
			if _, ok := s.rows[id]; ok {
				remaining = append(remaining, id)
			}
		}
		s.order = remaining
	}

	return deleted, nil
}
