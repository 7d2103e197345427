// Package amountutils provides parsing and normalization of monetary
// amount strings as they appear in bank exports.
package amountutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyRe = regexp.MustCompile(`[€$£¥₣₤₧₹₺₽₩฿₫₲₴₸₼₪\s]|CHF|USD|EUR|GBP`)

// Standardize converts the various currency string formats found in bank
// exports to a plain decimal string. Handles patterns like "CHF 1'234.56",
// "€1.234,56", "$1,234.56" and "1 234,56".
func Standardize(amountStr string) string {
	amountStr = currencyRe.ReplaceAllString(amountStr, "")

	// Accounting convention: parenthesized amounts are negative.
	if strings.HasPrefix(amountStr, "(") && strings.HasSuffix(amountStr, ")") {
		amountStr = "-" + amountStr[1:len(amountStr)-1]
	}

	if strings.Contains(amountStr, ",") && strings.Contains(amountStr, ".") {
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// European format (1.234,56)
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// US format (1,234.56)
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	} else if strings.Contains(amountStr, ",") {
		// Only a comma present: decimal separator (1234,56) when the last
		// group is at most two digits, thousands separator (1,234) otherwise.
		parts := strings.Split(amountStr, ",")
		if len(parts) > 1 && len(parts[len(parts)-1]) <= 2 {
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	// Apostrophes as thousands separators (1'234.56)
	amountStr = strings.ReplaceAll(amountStr, "'", "")

	return amountStr
}

// Parse parses a raw amount token into a decimal value, stripping currency
// symbols and thousands separators first. The sign is preserved.
func Parse(amountStr string) (decimal.Decimal, error) {
	standardized := Standardize(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("empty amount string")
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// IsNegative reports whether the raw amount token carries a negative sign,
// either a leading minus or the parenthesized accounting form.
func IsNegative(amountStr string) bool {
	return strings.HasPrefix(Standardize(strings.TrimSpace(amountStr)), "-")
}
