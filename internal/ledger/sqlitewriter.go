package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"tmerle/ledgerstage/internal/dateutils"
	"tmerle/ledgerstage/internal/models"
	"tmerle/ledgerstage/internal/staging"
)

// SQLiteWriter records ledger entries into the ledger_entries table,
// sharing the staging database connection.
type SQLiteWriter struct {
	db *sql.DB
}

// NewSQLiteWriter creates a Writer over an already-open connection whose
// schema includes the ledger_entries table.
func NewSQLiteWriter(db *sql.DB) *SQLiteWriter {
	return &SQLiteWriter{db: db}
}

// Record inserts one ledger entry.
func (w *SQLiteWriter) Record(ctx context.Context, entry models.LedgerEntry) error {
	_, err := w.db.ExecContext(ctx, `
		INSERT INTO ledger_entries (user_id, kind, category_id, amount, description, date, source_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.UserID, string(entry.Kind), entry.CategoryID, entry.Amount.String(),
		entry.Description, dateutils.ToISODate(entry.Date), entry.SourceID)
	if err != nil {
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}
	return nil
}

// RecordAndCommit inserts the ledger entry and flips the committed flag on
// its source staged transaction in one database transaction. When the
// conditional flip matches nothing the whole transaction rolls back, so a
// promotion that loses a race cannot leave an orphan ledger entry behind.
// Returns staging.ErrNotFound or staging.ErrAlreadyCommitted when the
// source row cannot be committed.
func (w *SQLiteWriter) RecordAndCommit(ctx context.Context, entry models.LedgerEntry) error {
	dbTx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin promotion transaction: %w", err)
	}
	defer func() {
		_ = dbTx.Rollback()
	}()

	if _, err := dbTx.ExecContext(ctx, `
		INSERT INTO ledger_entries (user_id, kind, category_id, amount, description, date, source_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.UserID, string(entry.Kind), entry.CategoryID, entry.Amount.String(),
		entry.Description, dateutils.ToISODate(entry.Date), entry.SourceID); err != nil {
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}

	res, err := dbTx.ExecContext(ctx,
		`UPDATE staged_transactions SET committed = 1 WHERE id = ? AND committed = 0`,
		entry.SourceID)
	if err != nil {
		return fmt.Errorf("failed to mark transaction committed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check committed update: %w", err)
	}
	if affected != 1 {
		var committed int
		err := dbTx.QueryRowContext(ctx,
			`SELECT committed FROM staged_transactions WHERE id = ?`, entry.SourceID).Scan(&committed)
		if err == sql.ErrNoRows {
			return staging.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to inspect staged transaction: %w", err)
		}
		return staging.ErrAlreadyCommitted
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit promotion transaction: %w", err)
	}
	return nil
}
