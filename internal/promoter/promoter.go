// Package promoter converts staged transactions into permanent ledger
// entries. Promotion is idempotent per id: the staging store's conditional
// commit guarantees a transaction is promoted at most once, and a repeat
// attempt is reported as an error instead of creating a duplicate entry.
package promoter

import (
	"context"
	"errors"
	"strings"

	"tmerle/ledgerstage/internal/categories"
	"tmerle/ledgerstage/internal/ledger"
	"tmerle/ledgerstage/internal/logging"
	"tmerle/ledgerstage/internal/models"
	"tmerle/ledgerstage/internal/pipelineerror"
	"tmerle/ledgerstage/internal/staging"
)

// Promoter drives the staging-to-ledger promotion lifecycle.
type Promoter struct {
	store     staging.Store
	directory categories.Directory
	writer    ledger.Writer
	logger    logging.Logger
}

// atomicRecorder is implemented by writers that can insert the ledger
// entry and flip the staged row's committed flag in one transaction.
// When the writer offers it, a lost promotion race cannot leave an orphan
// ledger entry behind.
type atomicRecorder interface {
	RecordAndCommit(ctx context.Context, entry models.LedgerEntry) error
}

// New creates a Promoter.
func New(store staging.Store, directory categories.Directory, writer ledger.Writer, logger logging.Logger) *Promoter {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Promoter{
		store:     store,
		directory: directory,
		writer:    writer,
		logger:    logger,
	}
}

// Promote converts the selected staged transactions into ledger entries.
//
// The zero-categories precondition is checked once up front: categorizing
// expenses needs at least one category to exist, so without any the whole
// call fails before touching a row. After that, every id is handled
// independently; unresolvable ids (not found, not owned, already
// committed) become per-id errors and the rest proceed.
//
// Expense categories resolve in strict order: caller override for the id,
// case-insensitive exact match of the category hint against the user's
// category names, then the user's first category.
func (p *Promoter) Promote(ctx context.Context, userID string, ids []string, overrides map[string]string) (*models.PromotionResult, error) {
	cats, err := p.directory.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		return nil, &pipelineerror.PreconditionError{
			Operation: "promote",
			Reason:    "user has no categories; create at least one before promoting",
		}
	}

	result := &models.PromotionResult{}
	for _, id := range ids {
		p.promoteOne(ctx, userID, id, cats, overrides, result)
	}

	p.logger.Info("Promotion completed",
		logging.Field{Key: logging.FieldUser, Value: userID},
		logging.Field{Key: "income_created", Value: result.IncomeCreated},
		logging.Field{Key: "expenses_created", Value: result.ExpensesCreated},
		logging.Field{Key: "errors", Value: len(result.Errors)})

	return result, nil
}

func (p *Promoter) promoteOne(ctx context.Context, userID, id string, cats []models.Category, overrides map[string]string, result *models.PromotionResult) {
	tx, err := p.store.Get(ctx, id)
	if err != nil {
		reason := "lookup failed"
		if errors.Is(err, staging.ErrNotFound) {
			reason = "not found"
		}
		result.Errors = append(result.Errors, models.PromotionError{ID: id, Reason: reason})
		return
	}
	if tx.UserID != userID {
		result.Errors = append(result.Errors, models.PromotionError{ID: id, Reason: "not owned by user"})
		return
	}
	if tx.Committed {
		result.Errors = append(result.Errors, models.PromotionError{ID: id, Reason: "already committed"})
		return
	}

	entry := models.LedgerEntry{
		UserID:      tx.UserID,
		Kind:        tx.Kind,
		Amount:      tx.Amount,
		Description: tx.Description,
		Date:        tx.Date,
		SourceID:    tx.ID,
	}
	if tx.Kind == models.KindExpense {
		entry.CategoryID = resolveCategory(tx, cats, overrides)
	}

	if aw, ok := p.writer.(atomicRecorder); ok {
		if err := aw.RecordAndCommit(ctx, entry); err != nil {
			reason := "failed to write ledger entry"
			switch {
			case errors.Is(err, staging.ErrAlreadyCommitted):
				reason = "already committed"
			case errors.Is(err, staging.ErrNotFound):
				reason = "not found"
			default:
				p.logger.WithError(err).Error("Failed to write ledger entry",
					logging.Field{Key: logging.FieldID, Value: id})
			}
			result.Errors = append(result.Errors, models.PromotionError{ID: id, Reason: reason})
			return
		}
	} else {
		if err := p.writer.Record(ctx, entry); err != nil {
			p.logger.WithError(err).Error("Failed to write ledger entry",
				logging.Field{Key: logging.FieldID, Value: id})
			result.Errors = append(result.Errors, models.PromotionError{ID: id, Reason: "failed to write ledger entry"})
			return
		}

		// Conditional flip: a concurrent promotion of the same id loses
		// here and is reported instead of double-counting.
		if err := p.store.MarkCommitted(ctx, id); err != nil {
			reason := "failed to mark committed"
			if errors.Is(err, staging.ErrAlreadyCommitted) {
				reason = "already committed"
			}
			result.Errors = append(result.Errors, models.PromotionError{ID: id, Reason: reason})
			return
		}
	}

	if tx.Kind == models.KindIncome {
		result.IncomeCreated++
	} else {
		result.ExpensesCreated++
	}

	p.logger.Debug("Staged transaction promoted",
		logging.Field{Key: logging.FieldID, Value: id},
		logging.Field{Key: logging.FieldKind, Value: tx.Kind},
		logging.Field{Key: logging.FieldCategory, Value: entry.CategoryID})
}

// resolveCategory picks the expense category id: explicit override first,
// then an exact case-insensitive hint match, then the user's first
// category as the stable default.
func resolveCategory(tx *models.StagedTransaction, cats []models.Category, overrides map[string]string) string {
	if override, ok := overrides[tx.ID]; ok && override != "" {
		return override
	}

	if hint := strings.TrimSpace(tx.CategoryHint); hint != "" {
		for _, cat := range cats {
			if strings.EqualFold(cat.Name, hint) {
				return cat.ID
			}
		}
	}

	return cats[0].ID
}

// Delete removes the listed staged transactions that are still pending.
// Committed rows in the set are skipped silently, which makes bulk
// "delete everything pending" calls safe to repeat.
func (p *Promoter) Delete(ctx context.Context, userID string, ids []string) (int, error) {
	deleted, err := p.store.DeletePending(ctx, userID, ids)
	if err != nil {
		return 0, err
	}

	p.logger.Info("Pending transactions deleted",
		logging.Field{Key: logging.FieldUser, Value: userID},
		logging.Field{Key: logging.FieldCount, Value: deleted})

	return deleted, nil
}
