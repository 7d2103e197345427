// Package service wires the pipeline's components together for the CLI:
// staging store, category directory, ledger writer, importer and promoter.
package service

import (
	"context"
	"fmt"

	"tmerle/ledgerstage/internal/categories"
	"tmerle/ledgerstage/internal/config"
	"tmerle/ledgerstage/internal/importer"
	"tmerle/ledgerstage/internal/ledger"
	"tmerle/ledgerstage/internal/logging"
	"tmerle/ledgerstage/internal/models"
	"tmerle/ledgerstage/internal/promoter"
	"tmerle/ledgerstage/internal/staging/sqlitestore"
)

// Service bundles the pipeline operations behind one handle.
type Service struct {
	store    *sqlitestore.Store
	importer *importer.Importer
	promoter *promoter.Promoter
	logger   logging.Logger
}

// New builds a Service from configuration: SQLite staging store, YAML
// category directory, and a ledger writer sharing the staging database.
func New(cfg *config.Config, logger logging.Logger) (*Service, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	store, err := sqlitestore.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open staging store: %w", err)
	}

	directory := categories.NewYAMLStore(cfg.Categories.File)
	categories.SetLogger(logger)

	writer := ledger.NewSQLiteWriter(store.DB())

	imp := importer.New(store, logger,
		importer.WithDelimiter(rune(cfg.CSV.Delimiter[0])),
		importer.WithWorkers(cfg.Import.Workers))

	return &Service{
		store:    store,
		importer: imp,
		promoter: promoter.New(store, directory, writer, logger),
		logger:   logger,
	}, nil
}

// Close releases the underlying store.
func (s *Service) Close() error {
	return s.store.Close()
}

// Upload ingests raw file bytes for the user.
func (s *Service) Upload(ctx context.Context, userID, fileName, contentType string, data []byte, source string) (*models.ImportReport, error) {
	return s.importer.Upload(ctx, userID, fileName, contentType, data, source)
}

// ListPending returns the user's uncommitted staged transactions.
func (s *Service) ListPending(ctx context.Context, userID string) ([]models.StagedTransaction, error) {
	return s.store.ListPending(ctx, userID)
}

// Promote converts the selected staged transactions into ledger entries.
func (s *Service) Promote(ctx context.Context, userID string, ids []string, overrides map[string]string) (*models.PromotionResult, error) {
	return s.promoter.Promote(ctx, userID, ids, overrides)
}

// DeletePending removes the selected staged transactions that are still
// uncommitted.
func (s *Service) DeletePending(ctx context.Context, userID string, ids []string) (int, error) {
	return s.promoter.Delete(ctx, userID, ids)
}
