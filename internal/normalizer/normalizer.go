// Package normalizer turns tokenized CSV data rows into normalized records
// ready for staging.
package normalizer

import (
	"strings"

	"tmerle/ledgerstage/internal/amountutils"
	"tmerle/ledgerstage/internal/columns"
	"tmerle/ledgerstage/internal/dateutils"
	"tmerle/ledgerstage/internal/models"
	"tmerle/ledgerstage/internal/pipelineerror"
)

// incomeKeywords and expenseKeywords classify a transaction when a type
// column is present. Matching is substring-based and case-insensitive.
// Income keywords are tested first.
var (
	incomeKeywords  = []string{"credit", "deposit", "income", "+"}
	expenseKeywords = []string{"debit", "withdrawal", "expense", "payment", "-"}
)

// NormalizeRow produces a NormalizedRow from one data row's tokens and the
// detected role map, or a RowError carrying the row's 1-based line number.
//
// The amount is stored as a positive magnitude. When a type column is
// mapped its keywords decide the kind regardless of the amount's literal
// sign; without a type column (or when no keyword matches) the sign of the
// raw amount token decides: non-negative is income, negative is expense.
func NormalizeRow(tokens []string, roles columns.RoleMap, line int) (*models.NormalizedRow, *pipelineerror.RowError) {
	dateTok := tokenAt(tokens, roles, columns.RoleDate)
	descTok := tokenAt(tokens, roles, columns.RoleDescription)
	amountTok := tokenAt(tokens, roles, columns.RoleAmount)

	if dateTok == "" || descTok == "" || amountTok == "" {
		return nil, pipelineerror.NewRowError(line, pipelineerror.ReasonMissingField, nil)
	}

	date, _, err := dateutils.ParseDate(dateTok)
	if err != nil {
		return nil, pipelineerror.NewRowError(line, pipelineerror.ReasonInvalidDate, err)
	}

	amount, err := amountutils.Parse(amountTok)
	if err != nil {
		return nil, pipelineerror.NewRowError(line, pipelineerror.ReasonInvalidAmount, err)
	}
	magnitude := amount.Abs()
	if !magnitude.IsPositive() {
		return nil, pipelineerror.NewRowError(line, pipelineerror.ReasonInvalidAmount, nil)
	}

	kind := classifyKind(tokenAt(tokens, roles, columns.RoleType), roles.Has(columns.RoleType), amountTok)

	row := &models.NormalizedRow{
		Date:         date,
		Description:  descTok,
		Amount:       magnitude,
		Kind:         kind,
		CategoryHint: tokenAt(tokens, roles, columns.RoleCategory),
	}

	return row, nil
}

// classifyKind applies the fixed sign-vs-keyword precedence rule: a mapped
// type column with a recognized keyword wins; otherwise the raw amount
// token's sign decides.
func classifyKind(typeTok string, typeMapped bool, amountTok string) models.Kind {
	if typeMapped {
		lowered := strings.ToLower(typeTok)
		for _, kw := range incomeKeywords {
			if strings.Contains(lowered, kw) {
				return models.KindIncome
			}
		}
		for _, kw := range expenseKeywords {
			if strings.Contains(lowered, kw) {
				return models.KindExpense
			}
		}
	}

	if amountutils.IsNegative(amountTok) {
		return models.KindExpense
	}
	return models.KindIncome
}

// tokenAt returns the trimmed token for a role, or "" when the role is
// unmapped or the row is too short for its index.
func tokenAt(tokens []string, roles columns.RoleMap, role columns.Role) string {
	idx, ok := roles.Index(role)
	if !ok || idx >= len(tokens) {
		return ""
	}
	return strings.TrimSpace(tokens[idx])
}
