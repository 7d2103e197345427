// Package export writes staged transactions back out as CSV, the standard
// way to hand the pending set to a spreadsheet for review.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"tmerle/ledgerstage/internal/dateutils"
	"tmerle/ledgerstage/internal/logging"
	"tmerle/ledgerstage/internal/models"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// stagedRow is the flat CSV projection of a staged transaction.
type stagedRow struct {
	ID           string `csv:"id"`
	Date         string `csv:"date"`
	Description  string `csv:"description"`
	Amount       string `csv:"amount"`
	Kind         string `csv:"kind"`
	CategoryHint string `csv:"category_hint"`
	Source       string `csv:"source"`
}

// WriteStagedCSV writes the transactions to csvFile, one row each, with
// amounts fixed to two decimal places and ISO dates.
func WriteStagedCSV(transactions []models.StagedTransaction, csvFile string, delimiter rune) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	log.Info("Writing staged transactions to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	if err := os.MkdirAll(filepath.Dir(csvFile), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := make([]stagedRow, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, stagedRow{
			ID:           tx.ID,
			Date:         dateutils.ToISODate(tx.Date),
			Description:  tx.Description,
			Amount:       tx.Amount.StringFixed(2),
			Kind:         string(tx.Kind),
			CategoryHint: tx.CategoryHint,
			Source:       tx.Source,
		})
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = delimiter

	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	return nil
}
