package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmerle/ledgerstage/internal/columns"
	"tmerle/ledgerstage/internal/models"
	"tmerle/ledgerstage/internal/pipelineerror"
)

func detect(t *testing.T, header ...string) columns.RoleMap {
	t.Helper()
	roles, err := columns.DetectRoles(header)
	require.NoError(t, err)
	return roles
}

func TestNormalizeRowSignClassification(t *testing.T) {
	roles := detect(t, "date", "description", "amount")

	tests := []struct {
		name           string
		tokens         []string
		expectedKind   models.Kind
		expectedAmount string
	}{
		{"Negative amount is expense", []string{"2024-01-16", "Groceries", "-150.50"}, models.KindExpense, "150.5"},
		{"Positive amount is income", []string{"2024-01-15", "Salary", "5000"}, models.KindIncome, "5000"},
		{"Parenthesized amount is expense", []string{"2024-01-17", "Office chair", "(299.99)"}, models.KindExpense, "299.99"},
		{"Formatted amount keeps magnitude", []string{"2024-01-18", "Bonus", "$1,234.56"}, models.KindIncome, "1234.56"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			row, rowErr := NormalizeRow(tc.tokens, roles, 2)
			require.Nil(t, rowErr)
			assert.Equal(t, tc.expectedKind, row.Kind)
			assert.Equal(t, tc.expectedAmount, row.Amount.String())
			assert.Equal(t, tc.tokens[1], row.Description)
		})
	}
}

func TestNormalizeRowTypeKeywordPrecedence(t *testing.T) {
	roles := detect(t, "date", "memo", "value", "debit/credit")

	tests := []struct {
		name         string
		tokens       []string
		expectedKind models.Kind
	}{
		{"Debit keyword overrides positive sign", []string{"01/16/2024", "Walmart", "150.50", "debit"}, models.KindExpense},
		{"Credit keyword overrides negative sign", []string{"01/16/2024", "Refund", "-42.00", "credit"}, models.KindIncome},
		{"Keyword match is case-insensitive", []string{"01/16/2024", "Payroll", "5000", "DEPOSIT"}, models.KindIncome},
		{"Credit checked before debit", []string{"01/16/2024", "Transfer", "10.00", "debit/credit"}, models.KindIncome},
		{"Unrecognized type falls back to sign", []string{"01/16/2024", "Groceries", "-20.00", "misc"}, models.KindExpense},
		{"Empty type falls back to sign", []string{"01/16/2024", "Payroll", "5000", ""}, models.KindIncome},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			row, rowErr := NormalizeRow(tc.tokens, roles, 2)
			require.Nil(t, rowErr)
			assert.Equal(t, tc.expectedKind, row.Kind)
			assert.True(t, row.Amount.IsPositive())
		})
	}
}

func TestNormalizeRowCategoryHint(t *testing.T) {
	roles := detect(t, "date", "description", "amount", "category")

	row, rowErr := NormalizeRow([]string{"2024-01-16", "Groceries", "-150.50", "Food"}, roles, 2)
	require.Nil(t, rowErr)
	assert.Equal(t, "Food", row.CategoryHint)

	// Short row: category column missing entirely.
	row, rowErr = NormalizeRow([]string{"2024-01-16", "Groceries", "-150.50"}, roles, 3)
	require.Nil(t, rowErr)
	assert.Equal(t, "", row.CategoryHint)
}

func TestNormalizeRowFailures(t *testing.T) {
	roles := detect(t, "date", "description", "amount")

	tests := []struct {
		name           string
		tokens         []string
		line           int
		expectedReason string
	}{
		{"Missing date", []string{"", "Groceries", "-150.50"}, 2, pipelineerror.ReasonMissingField},
		{"Missing description", []string{"2024-01-16", "", "-150.50"}, 3, pipelineerror.ReasonMissingField},
		{"Missing amount", []string{"2024-01-16", "Groceries", ""}, 4, pipelineerror.ReasonMissingField},
		{"Row too short", []string{"2024-01-16", "Groceries"}, 5, pipelineerror.ReasonMissingField},
		{"Invalid date", []string{"not-a-date", "Groceries", "-150.50"}, 6, pipelineerror.ReasonInvalidDate},
		{"Invalid amount", []string{"2024-01-16", "Groceries", "abc"}, 7, pipelineerror.ReasonInvalidAmount},
		{"Zero amount", []string{"2024-01-16", "Groceries", "0.00"}, 8, pipelineerror.ReasonInvalidAmount},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			row, rowErr := NormalizeRow(tc.tokens, roles, tc.line)
			assert.Nil(t, row)
			require.NotNil(t, rowErr)
			assert.Equal(t, tc.line, rowErr.Line)
			assert.Equal(t, tc.expectedReason, rowErr.Reason)
		})
	}
}
