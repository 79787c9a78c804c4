package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"autotax/invoice-engine/internal/models"
)

// vatLabelRe identifies a VAT/tax label in any supported language.
var vatLabelRe = regexp.MustCompile(`(?i)\b(?:vat|mwst|ust|mehrwertsteuer|umsatzsteuer|tva|kdv|tax|steuer)\b|부가세|税额|税率|增值税|ضريبة|الضريبة`)

// labeledRateRe captures a percentage following a VAT label on the same
// line.
var labeledRateRe = regexp.MustCompile(`(?i)(?:vat|mwst|ust|mehrwertsteuer|umsatzsteuer|tva|kdv|tax|steuer|부가세|税率|增值税|ضريبة)[^%\n]{0,20}?(\d{1,2}(?:[.,]\d{1,2})?)\s*%`)

// bareRateRe captures any percentage token.
var bareRateRe = regexp.MustCompile(`(\d{1,2}(?:[.,]\d{1,2})?)\s*%`)

// plausibleVATRates are the economically sensible rates. A bare "NN%"
// token is only accepted when NN is one of these, so discount and margin
// percentages elsewhere on the page never leak in as a VAT rate.
var plausibleVATRates = func() map[string]struct{} {
	rates := []string{
		"0", "1", "2.1", "3", "5", "5.5", "6", "7", "7.7", "8", "8.1", "9",
		"10", "12", "13", "14", "15", "16", "17", "18", "19", "20", "21",
		"22", "23", "24", "25",
	}
	set := make(map[string]struct{}, len(rates))
	for _, r := range rates {
		set[r] = struct{}{}
	}
	return set
}()

// VATRate resolves the VAT percentage: a labeled rate first, then a bare
// percentage restricted to the plausible-rate set.
func VATRate(text string) *decimal.Decimal {
	candidates := Resolve(text, []Tier{
		{Rank: 1, Match: func(t string) []models.FieldCandidate {
			if m := labeledRateRe.FindStringSubmatch(t); m != nil {
				return []models.FieldCandidate{{Value: m[1]}}
			}
			return nil
		}},
		{Rank: 2, Match: func(t string) []models.FieldCandidate {
			var out []models.FieldCandidate
			for _, m := range bareRateRe.FindAllStringSubmatch(t, -1) {
				if isPlausibleRate(m[1]) {
					out = append(out, models.FieldCandidate{Value: m[1]})
				}
			}
			return out
		}},
	})
	if len(candidates) == 0 {
		return nil
	}
	rate, err := decimal.NewFromString(strings.ReplaceAll(candidates[0].Value, ",", "."))
	if err != nil {
		return nil
	}
	return models.DecimalPtr(rate)
}

func isPlausibleRate(raw string) bool {
	rate, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
	if err != nil {
		return false
	}
	_, ok := plausibleVATRates[rate.String()]
	return ok
}

// VATAmount resolves the monetary VAT value: the last money token on a
// VAT-labeled line that is not immediately followed by a percent sign.
// Skipping percent-adjacent tokens keeps the rate from being re-captured
// as the amount.
func VATAmount(text string) *decimal.Decimal {
	for _, line := range strings.Split(text, "\n") {
		if !vatLabelRe.MatchString(line) {
			continue
		}
		var last *decimal.Decimal
		for _, loc := range moneyTokenRe.FindAllStringIndex(line, -1) {
			if followedByPercent(line, loc[1]) {
				continue
			}
			value, ok := models.ParseAmount(line[loc[0]:loc[1]])
			if !ok {
				continue
			}
			last = models.DecimalPtr(value)
		}
		if last != nil {
			return last
		}
	}
	return nil
}

// followedByPercent reports whether the next non-space character after
// offset is '%'. RE2 has no lookahead, so the check is done by hand.
func followedByPercent(line string, offset int) bool {
	rest := strings.TrimLeft(line[offset:], " ")
	return strings.HasPrefix(rest, "%")
}
