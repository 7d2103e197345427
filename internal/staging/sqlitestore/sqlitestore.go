// Package sqlitestore provides the SQLite-backed staging store.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/shopspring/decimal"

	"tmerle/ledgerstage/internal/dateutils"
	"tmerle/ledgerstage/internal/models"
	"tmerle/ledgerstage/internal/staging"
)

// Store is a staging.Store backed by a SQLite database. The database is
// opened in WAL mode so concurrent inserts from the import worker pool do
// not serialize on readers.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open opens (creating if necessary) the SQLite database at dbPath and
// initializes the schema.
func Open(dbPath string) (*Store, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", dbPath)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying connection, shared with the ledger writer.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Create persists a new staged transaction and returns its assigned id.
func (s *Store) Create(ctx context.Context, tx *models.StagedTransaction) (string, error) {
	id := uuid.NewString()
	createdAt := tx.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO staged_transactions
			(id, user_id, kind, amount, description, date, category_hint, source, imported, committed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)`,
		id, tx.UserID, string(tx.Kind), tx.Amount.String(), tx.Description,
		dateutils.ToISODate(tx.Date), tx.CategoryHint, tx.Source, boolToInt(tx.Imported), createdAt)
	if err != nil {
		return "", fmt.Errorf("failed to insert staged transaction: %w", err)
	}

	return id, nil
}

// Get returns the staged transaction with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*models.StagedTransaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, kind, amount, description, date, category_hint, source, imported, committed, created_at
		FROM staged_transactions WHERE id = ?`, id)

	tx, err := scanStaged(row)
	if err == sql.ErrNoRows {
		return nil, staging.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load staged transaction: %w", err)
	}
	return tx, nil
}

// ListPending returns all uncommitted, imported transactions owned by the
// user, in creation order.
func (s *Store) ListPending(ctx context.Context, userID string) ([]models.StagedTransaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, kind, amount, description, date, category_hint, source, imported, committed, created_at
		FROM staged_transactions
		WHERE user_id = ? AND committed = 0 AND imported = 1
		ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending transactions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var pending []models.StagedTransaction
	for rows.Next() {
		tx, err := scanStaged(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staged transaction: %w", err)
		}
		pending = append(pending, *tx)
	}
	return pending, rows.Err()
}

// MarkCommitted flips committed to true with a conditional update, so
// repeating the call (or racing promotions of the same id) cannot succeed
// twice.
func (s *Store) MarkCommitted(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE staged_transactions SET committed = 1 WHERE id = ? AND committed = 0`, id)
	if err != nil {
		return fmt.Errorf("failed to mark transaction committed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check committed update: %w", err)
	}
	if affected == 1 {
		return nil
	}

	// The conditional update matched nothing: either the row is gone or it
	// was already committed.
	var committed int
	err = s.db.QueryRowContext(ctx,
		`SELECT committed FROM staged_transactions WHERE id = ?`, id).Scan(&committed)
	if err == sql.ErrNoRows {
		return staging.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to inspect staged transaction: %w", err)
	}
	return staging.ErrAlreadyCommitted
}

// DeletePending removes the listed transactions owned by the user, leaving
// committed rows untouched.
func (s *Store) DeletePending(ctx context.Context, userID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, userID)
	for _, id := range ids {
		args = append(args, id)
	}

	res, err := s.db.ExecContext(ctx, fmt.Sprintf(
		`DELETE FROM staged_transactions
		 WHERE user_id = ? AND committed = 0 AND id IN (%s)`, placeholders), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete pending transactions: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted transactions: %w", err)
	}
	return int(affected), nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanStaged(sc scanner) (*models.StagedTransaction, error) {
	var (
		tx                  models.StagedTransaction
		kind, amount, date  string
		imported, committed int
		createdAt           time.Time
	)
	err := sc.Scan(&tx.ID, &tx.UserID, &kind, &amount, &tx.Description, &date,
		&tx.CategoryHint, &tx.Source, &imported, &committed, &createdAt)
	if err != nil {
		return nil, err
	}

	tx.Kind = models.Kind(kind)
	tx.Imported = imported != 0
	tx.Committed = committed != 0
	tx.CreatedAt = createdAt

	tx.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("corrupt amount %q: %w", amount, err)
	}

	tx.Date, _, err = dateutils.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("corrupt date %q: %w", date, err)
	}

	return &tx, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
