// Package models defines the core data types shared across the ingestion
// and staging pipeline.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the income/expense classification of a transaction.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid reports whether k is one of the two known classifications.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// NormalizedRow is the result of normalizing one CSV data row.
// Amount is always a positive magnitude; direction is carried by Kind.
type NormalizedRow struct {
	Date         time.Time       `json:"date"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Kind         Kind            `json:"kind"`
	CategoryHint string          `json:"category_hint,omitempty"`
}

// StagedTransaction is the durable unit produced by a file import.
// It waits in the staging store until the user promotes or deletes it.
// Once Committed is true the record is immutable: it can no longer be
// promoted again or deleted through the pipeline.
type StagedTransaction struct {
	ID           string          `json:"id" yaml:"id"`
	UserID       string          `json:"user_id" yaml:"user_id"`
	Kind         Kind            `json:"kind" yaml:"kind"`
	Amount       decimal.Decimal `json:"amount" yaml:"amount"`
	Description  string          `json:"description" yaml:"description"`
	Date         time.Time       `json:"date" yaml:"date"`
	CategoryHint string          `json:"category_hint,omitempty" yaml:"category_hint,omitempty"`
	Source       string          `json:"source,omitempty" yaml:"source,omitempty"`
	Imported     bool            `json:"imported" yaml:"imported"`
	Committed    bool            `json:"committed" yaml:"committed"`
	CreatedAt    time.Time       `json:"created_at" yaml:"created_at"`
}

// Category is a user-defined category from the external category directory.
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// LedgerEntry is the permanent record written when a staged transaction is
// promoted. CategoryID is only set for expense entries.
type LedgerEntry struct {
	UserID      string          `json:"user_id"`
	Kind        Kind            `json:"kind"`
	CategoryID  string          `json:"category_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	SourceID    string          `json:"source_id"`
}

// RowFailure records why a single data row was rejected during import.
// Line is the 1-based physical line number in the file, header included.
type RowFailure struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// PreviewLimit caps how many accepted rows an ImportReport carries back
// to the caller for display.
const PreviewLimit = 10

// ImportReport summarizes one import call. It is returned to the caller
// and never persisted.
type ImportReport struct {
	FileName     string          `json:"file_name,omitempty"`
	FileSize     int64           `json:"file_size,omitempty"`
	Source       string          `json:"source,omitempty"`
	SuccessCount int             `json:"success_count"`
	FailureCount int             `json:"failure_count"`
	Failures     []RowFailure    `json:"failures,omitempty"`
	Preview      []NormalizedRow `json:"preview,omitempty"`
}

// PromotionError records why a single staged transaction could not be
// promoted. The other ids in the same call are unaffected.
type PromotionError struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// PromotionResult summarizes one promotion call.
type PromotionResult struct {
	IncomeCreated   int              `json:"income_created"`
	ExpensesCreated int              `json:"expenses_created"`
	Errors          []PromotionError `json:"errors,omitempty"`
}
