package models

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxPlausibleTotal is the ceiling above which a parsed monetary value is
// treated as an OCR misread and discarded.
var MaxPlausibleTotal = decimal.NewFromInt(10_000_000)

var (
	// europeanGroupingRe matches amounts like "1.234,56" where "." groups
	// thousands and "," is the decimal separator.
	europeanGroupingRe = regexp.MustCompile(`^\d{1,3}(\.\d{3})*,\d{2}$`)
	// usGroupingRe matches amounts like "1,234.56".
	usGroupingRe = regexp.MustCompile(`^\d{1,3}(,\d{3})+\.\d{2}$`)
	// grouped integers without a decimal tail: "12,000" and "12.000".
	// Zero-decimal currencies (KRW, JPY) print totals this way.
	commaGroupedIntRe = regexp.MustCompile(`^\d{1,3}(,\d{3})+$`)
	dotGroupedIntRe   = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)
)

// currencyTokens are stripped from amount strings before numeric parsing.
var currencyTokens = []string{
	"CHF", "EUR", "USD", "GBP", "TRY", "TL", "KRW", "CNY", "JPY", "SAR", "AED",
	"$", "€", "£", "₺", "₩", "¥", "﷼",
}

// ParseAmount converts a raw monetary token into a decimal value.
//
// Separator ambiguity is resolved the only way that is safe on OCR input:
// a token shaped like three-digit grouping with a comma-decimal tail
// ("1.234,56") reads "." as grouping and "," as the decimal mark; the
// mirrored US shape ("1,234.56") reads the other way; anything else gets a
// plain comma-to-period substitution ("4,90" -> 4.90).
//
// The second return value is false when the token does not parse or the
// value falls outside the plausible range (0, 10'000'000) exclusive.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	amount := strings.TrimSpace(raw)
	for _, token := range currencyTokens {
		amount = strings.ReplaceAll(amount, token, "")
	}
	amount = strings.TrimSpace(amount)
	amount = strings.ReplaceAll(amount, " ", "")
	// Swiss thousands separator
	amount = strings.ReplaceAll(amount, "'", "")

	switch {
	case europeanGroupingRe.MatchString(amount):
		amount = strings.ReplaceAll(amount, ".", "")
		amount = strings.ReplaceAll(amount, ",", ".")
	case usGroupingRe.MatchString(amount):
		amount = strings.ReplaceAll(amount, ",", "")
	case commaGroupedIntRe.MatchString(amount):
		amount = strings.ReplaceAll(amount, ",", "")
	case dotGroupedIntRe.MatchString(amount):
		amount = strings.ReplaceAll(amount, ".", "")
	default:
		amount = strings.ReplaceAll(amount, ",", ".")
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, false
	}
	if !IsPlausibleTotal(dec) {
		return decimal.Zero, false
	}
	return dec, true
}

// IsPlausibleTotal reports whether a monetary value sits inside the sanity
// bounds for a single invoice total.
func IsPlausibleTotal(d decimal.Decimal) bool {
	return d.IsPositive() && d.LessThan(MaxPlausibleTotal)
}
