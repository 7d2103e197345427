// Package ledger defines the interface the promotion engine writes
// committed entries through. The ledger itself is owned by the
// surrounding application; the pipeline only produces entries.
package ledger

import (
	"context"
	"sync"

	"tmerle/ledgerstage/internal/models"
)

// Writer records permanent ledger entries produced by promotion.
type Writer interface {
	Record(ctx context.Context, entry models.LedgerEntry) error
}

// MemoryWriter collects entries in memory. Used by tests and dry runs.
type MemoryWriter struct {
	mu      sync.Mutex
	Entries []models.LedgerEntry
	Err     error
}

// Record appends the entry, or returns the configured error.
func (w *MemoryWriter) Record(ctx context.Context, entry models.LedgerEntry) error {
	if w.Err != nil {
		return w.Err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Entries = append(w.Entries, entry)
	return nil
}

// CountByKind returns how many recorded entries have the given kind.
func (w *MemoryWriter) CountByKind(kind models.Kind) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for _, e := range w.Entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
