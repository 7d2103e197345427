// Package importer drives the ingestion pipeline: tokenize, detect column
// roles, normalize each data row, and persist valid rows as staged
// transactions. A single row's failure never aborts the batch.
package importer

import (
	"context"
	"fmt"
	"strings"

	"tmerle/ledgerstage/internal/columns"
	"tmerle/ledgerstage/internal/logging"
	"tmerle/ledgerstage/internal/models"
	"tmerle/ledgerstage/internal/normalizer"
	"tmerle/ledgerstage/internal/pipelineerror"
	"tmerle/ledgerstage/internal/staging"
	"tmerle/ledgerstage/internal/tokenizer"
)

// DefaultDelimiter is the field delimiter used unless configured otherwise.
const DefaultDelimiter = ','

// Importer converts raw file text into staged transactions.
type Importer struct {
	store     staging.Store
	logger    logging.Logger
	delimiter rune
	workers   int
}

// Option configures an Importer.
type Option func(*Importer)

// WithDelimiter sets the field delimiter.
func WithDelimiter(delim rune) Option {
	return func(i *Importer) { i.delimiter = delim }
}

// WithWorkers bounds the number of rows normalized and persisted in
// parallel. Values below one fall back to sequential processing.
func WithWorkers(n int) Option {
	return func(i *Importer) { i.workers = n }
}

// New creates an Importer writing to the given staging store.
func New(store staging.Store, logger logging.Logger, opts ...Option) *Importer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	imp := &Importer{
		store:     store,
		logger:    logger,
		delimiter: DefaultDelimiter,
		workers:   1,
	}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// Import parses fileText and stages every valid data row for the user.
//
// The whole file is rejected (no rows processed) when it has fewer than
// two lines or when the header does not yield the mandatory column roles.
// After that point every row is accounted for individually: successes are
// persisted and counted, failures are recorded with their 1-based line
// number, and processing always continues to the next row. The report is
// returned even when no row succeeded.
func (i *Importer) Import(ctx context.Context, userID, fileText, source string) (*models.ImportReport, error) {
	lines := splitLines(fileText)
	if len(lines) < 2 {
		return nil, &pipelineerror.FileRejectedError{
			Reason: "file must contain a header row and at least one data row",
		}
	}

	header := tokenizer.SplitLine(lines[0], i.delimiter)
	roles, err := columns.DetectRoles(header)
	if err != nil {
		i.logger.WithError(err).Warn("Column role detection failed",
			logging.Field{Key: logging.FieldUser, Value: userID},
			logging.Field{Key: logging.FieldSource, Value: source})
		return nil, err
	}

	report := &models.ImportReport{Source: source}

	results := i.processRows(ctx, userID, lines, roles, source)
	for _, res := range results {
		if res.failure != nil {
			report.FailureCount++
			report.Failures = append(report.Failures, models.RowFailure{
				Line:   res.failure.Line,
				Reason: res.failure.Reason,
			})
			continue
		}
		report.SuccessCount++
		if len(report.Preview) < models.PreviewLimit {
			report.Preview = append(report.Preview, *res.row)
		}
	}

	i.logger.Info("Import completed",
		logging.Field{Key: logging.FieldUser, Value: userID},
		logging.Field{Key: logging.FieldSource, Value: source},
		logging.Field{Key: "succeeded", Value: report.SuccessCount},
		logging.Field{Key: "failed", Value: report.FailureCount})

	return report, nil
}

// rowResult pairs one data row's outcome with its original file position.
type rowResult struct {
	line    int
	row     *models.NormalizedRow
	failure *pipelineerror.RowError
}

// processRow normalizes and persists one data row.
func (i *Importer) processRow(ctx context.Context, userID, rawLine, source string, roles columns.RoleMap, line int) rowResult {
	tokens := tokenizer.SplitLine(rawLine, i.delimiter)

	row, rowErr := normalizer.NormalizeRow(tokens, roles, line)
	if rowErr != nil {
		return rowResult{line: line, failure: rowErr}
	}

	staged := &models.StagedTransaction{
		UserID:       userID,
		Kind:         row.Kind,
		Amount:       row.Amount,
		Description:  row.Description,
		Date:         row.Date,
		CategoryHint: row.CategoryHint,
		Source:       source,
		Imported:     true,
	}
	if _, err := i.store.Create(ctx, staged); err != nil {
		i.logger.WithError(err).Error("Failed to persist staged transaction",
			logging.Field{Key: logging.FieldLine, Value: line})
		return rowResult{line: line, failure: pipelineerror.NewRowError(
			line, fmt.Sprintf("failed to stage row: %v", err), err)}
	}

	return rowResult{line: line, row: row}
}

// splitLines splits file text into physical lines, tolerating CRLF endings
// and a trailing newline.
func splitLines(fileText string) []string {
	normalized := strings.ReplaceAll(fileText, "\r\n", "\n")
	normalized = strings.TrimSuffix(normalized, "\n")
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, "\n")
}
