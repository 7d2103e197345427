package amountutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain decimal", "150.50", "150.50"},
		{"Negative", "-150.50", "-150.50"},
		{"US thousands", "1,234.56", "1234.56"},
		{"European thousands", "1.234,56", "1234.56"},
		{"Comma decimal", "1234,56", "1234.56"},
		{"Comma thousands only", "1,234", "1234"},
		{"Swiss apostrophes", "1'234.56", "1234.56"},
		{"Currency symbol", "€1.234,56", "1234.56"},
		{"Currency code", "CHF 1'234.56", "1234.56"},
		{"Dollar sign", "$1,234.56", "1234.56"},
		{"Internal spaces", "1 234,56", "1234.56"},
		{"Parenthesized negative", "(15.00)", "-15.00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Standardize(tc.input))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"Integer", "5000", "5000", false},
		{"Decimal", "150.50", "150.5", false},
		{"Negative decimal", "-150.50", "-150.5", false},
		{"Formatted", "$1,234.56", "1234.56", false},
		{"Parenthesized", "(42.00)", "-42", false},
		{"Empty string", "", "", true},
		{"Only currency symbol", "CHF", "", true},
		{"Garbage", "abc", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := Parse(tc.input)

			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, amount.String())
		})
	}
}

func TestIsNegative(t *testing.T) {
	assert.True(t, IsNegative("-150.50"))
	assert.True(t, IsNegative("(15.00)"))
	assert.True(t, IsNegative(" -1,234.56 "))
	assert.False(t, IsNegative("150.50"))
	assert.False(t, IsNegative("+150.50"))
	assert.False(t, IsNegative("0"))
}
