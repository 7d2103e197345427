// Package staging defines the contract between the pipeline and the store
// that holds staged transactions. Persistence itself lives behind this
// interface so the pipeline logic is testable without a real database and
// so the exactly-once commit guarantee can be enforced by a conditional
// update at the boundary.
package staging

import (
	"context"
	"errors"

	"tmerle/ledgerstage/internal/models"
)

var (
	// ErrNotFound means no staged transaction exists with the given id.
	ErrNotFound = errors.New("staged transaction not found")

	// ErrAlreadyCommitted means the conditional commit found the record
	// already committed. Repeating a promotion must surface this rather
	// than create a second ledger entry.
	ErrAlreadyCommitted = errors.New("staged transaction already committed")
)

// Store is the staging store contract.
//
// MarkCommitted must be conditional on Committed being false at the moment
// of the write, so two concurrent promotions of the same id cannot both
// succeed. DeletePending must leave committed rows untouched.
type Store interface {
	// Create persists a new staged transaction and returns its assigned id.
	Create(ctx context.Context, tx *models.StagedTransaction) (string, error)

	// Get returns the staged transaction with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*models.StagedTransaction, error)

	// ListPending returns all uncommitted, imported transactions owned by
	// the user, in creation order.
	ListPending(ctx context.Context, userID string) ([]models.StagedTransaction, error)

	// MarkCommitted flips Committed to true if and only if it is currently
	// false. Returns ErrNotFound or ErrAlreadyCommitted otherwise.
	MarkCommitted(ctx context.Context, id string) error

	// DeletePending removes the listed transactions owned by the user,
	// skipping committed rows silently. Returns how many were removed.
	DeletePending(ctx context.Context, userID string, ids []string) (int, error)
}
