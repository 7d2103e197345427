package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmerle/ledgerstage/internal/config"
	"tmerle/ledgerstage/internal/logging"
	"tmerle/ledgerstage/internal/models"
)

const statementCSV = "date,description,amount,category\n" +
	"2024-01-15,Salary,5000,\n" +
	"2024-01-16,Groceries,-150.50,Food\n" +
	"2024-01-17,Coffee,abc,\n"

const categoriesYAML = `users:
  user-1:
    - id: cat-food
      name: Food
    - id: cat-other
      name: Other
`

func newTestService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()

	categoriesFile := filepath.Join(dir, "categories.yaml")
	require.NoError(t, os.WriteFile(categoriesFile, []byte(categoriesYAML), 0o644))

	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = ","
	cfg.Store.Path = filepath.Join(dir, "staging.db")
	cfg.Categories.File = categoriesFile
	cfg.Import.Workers = 1

	svc, err := New(cfg, &logging.MockLogger{})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, svc.Close())
	})
	return svc
}

func TestServiceUploadReviewPromoteDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	report, err := svc.Upload(ctx, "user-1", "statement.csv", "", []byte(statementCSV), "")
	require.NoError(t, err)
	assert.Equal(t, 2, report.SuccessCount)
	assert.Equal(t, 1, report.FailureCount)
	assert.Equal(t, "statement.csv", report.FileName)

	pending, err := svc.ListPending(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, pending, 2)

	ids := []string{pending[0].ID, pending[1].ID}
	result, err := svc.Promote(ctx, "user-1", ids, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.IncomeCreated)
	assert.Equal(t, 1, result.ExpensesCreated)
	assert.Empty(t, result.Errors)

	// Promotion emptied the pending set; deleting the same ids is a no-op.
	pending, err = svc.ListPending(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, pending)

	deleted, err := svc.DeletePending(ctx, "user-1", ids)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestServiceDeletePending(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, "user-1", "statement.csv", "", []byte(statementCSV), "")
	require.NoError(t, err)

	pending, err := svc.ListPending(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, pending, 2)

	var ids []string
	for _, tx := range pending {
		assert.True(t, tx.Kind.Valid())
		ids = append(ids, tx.ID)
	}

	deleted, err := svc.DeletePending(ctx, "user-1", ids)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	pending, err = svc.ListPending(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestServicePromoteExpenseCategoryFromHint(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, "user-1", "statement.csv", "", []byte(statementCSV), "")
	require.NoError(t, err)

	pending, err := svc.ListPending(ctx, "user-1")
	require.NoError(t, err)

	var expenseID string
	for _, tx := range pending {
		if tx.Kind == models.KindExpense {
			expenseID = tx.ID
		}
	}
	require.NotEmpty(t, expenseID)

	result, err := svc.Promote(ctx, "user-1", []string{expenseID}, nil)
	require.NoError(t, err)
	require.Empty(t, result.Errors)

	var categoryID string
	err = svc.store.DB().QueryRow(
		`SELECT category_id FROM ledger_entries WHERE source_id = ?`, expenseID).
		Scan(&categoryID)
	require.NoError(t, err)
	assert.Equal(t, "cat-food", categoryID)
}
