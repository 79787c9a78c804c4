package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"autotax/invoice-engine/internal/models"
)

// moneyToken matches the monetary shapes seen on invoices: European
// grouping ("1.234,56"), US grouping ("1,234.56"), Swiss grouping
// ("1'234.56"), grouped integers without decimals ("12,000", "12.000",
// common for KRW and JPY), and plain decimals ("4,90", "4.90", "12").
// The trailing \b keeps a grouped integer from being split after its
// first separator pair.
const moneyToken = `\d{1,3}(?:\.\d{3})*,\d{2}\b|\d{1,3}(?:,\d{3})+\.\d{2}\b|\d{1,3}(?:'\d{3})+[.,]\d{2}\b|\d{1,3}(?:,\d{3})+\b|\d{1,3}(?:\.\d{3})+\b|\d+[.,]\d{2}\b|\d+`

var moneyTokenRe = regexp.MustCompile(moneyToken)

// grandTotalLabels are explicit, high-confidence total phrases. A line
// carrying one of these almost always names the payable amount.
var grandTotalLabels = []string{
	"grand total", "amount due", "total due", "to pay", "balance due",
	"zu zahlen", "zahlbetrag", "gesamtbetrag", "endbetrag", "rechnungsbetrag",
	"genel toplam", "ödenecek tutar", "odenecek tutar",
	"montant total", "total ttc", "net à payer", "net a payer",
	"المجموع الإجمالي", "الإجمالي النهائي", "المبلغ المستحق",
	"총합계", "총 합계", "결제금액", "결제 금액",
	"应付金额", "应付总额", "总计", "合计金额",
}

// genericTotalLabels cover the broader total/subtotal/amount family. Less
// trustworthy than an explicit grand-total phrase, still far better than a
// bare number.
var genericTotalLabels = []string{
	"subtotal", "sub-total", "total", "amount",
	"summe", "gesamt", "betrag", "brutto", "zwischensumme",
	"toplam", "tutar",
	"montant", "somme",
	"المجموع", "المبلغ",
	"합계", "금액", "소계",
	"金额", "合计", "小计",
}

// currencyAdjacentRe accepts a bare number as a last-resort total only
// when a currency symbol or ISO code sits right next to it.
var currencyAdjacentRe = regexp.MustCompile(
	`(?i)(?:€|\$|£|₺|₩|¥|﷼|EUR|USD|CHF|GBP|TRY|TL|KRW|CNY|JPY|SAR|AED)\s*(` + moneyToken + `)` +
		`|(` + moneyToken + `)\s*(?:€|\$|£|₺|₩|¥|﷼|EUR|USD|CHF|GBP|TRY|TL|KRW|CNY|JPY|SAR|AED)`)

// Total resolves the invoice total through a three-tier cascade: explicit
// grand-total phrases, then the generic total/amount family, then a bare
// currency-adjacent number. Within the winning tier the largest plausible
// value is taken, since subtotal lines always carry less than the payable
// line. Returns nil when nothing plausible is found.
func Total(text string) *decimal.Decimal {
	candidates := Resolve(text, []Tier{
		{Rank: 1, Match: labeledAmounts(grandTotalLabels)},
		{Rank: 2, Match: labeledAmounts(genericTotalLabels)},
		{Rank: 3, Match: currencyAdjacentAmounts},
	})
	if len(candidates) == 0 {
		return nil
	}

	best := decimal.Zero
	found := false
	for _, c := range candidates {
		value, ok := models.ParseAmount(c.Value)
		if !ok {
			continue
		}
		if !found || value.GreaterThan(best) {
			best = value
			found = true
		}
	}
	if !found {
		return nil
	}
	return models.DecimalPtr(best)
}

// labeledAmounts builds a tier matcher that collects every money token on a
// line containing one of the given labels, taken from the text after the
// label.
func labeledAmounts(labels []string) func(string) []models.FieldCandidate {
	return func(text string) []models.FieldCandidate {
		var out []models.FieldCandidate
		for _, line := range strings.Split(text, "\n") {
			lower := strings.ToLower(line)
			labelEnd := -1
			for _, label := range labels {
				if idx := strings.Index(lower, label); idx >= 0 {
					end := idx + len(label)
					if end > labelEnd {
						labelEnd = end
					}
				}
			}
			if labelEnd < 0 {
				continue
			}
			for _, token := range moneyTokenRe.FindAllString(lower[labelEnd:], -1) {
				if _, ok := models.ParseAmount(token); ok {
					out = append(out, models.FieldCandidate{Value: token})
				}
			}
		}
		return out
	}
}

// currencyAdjacentAmounts is the lowest tier: numbers glued to a currency
// marker anywhere in the text, with no label at all.
func currencyAdjacentAmounts(text string) []models.FieldCandidate {
	var out []models.FieldCandidate
	for _, groups := range currencyAdjacentRe.FindAllStringSubmatch(text, -1) {
		token := groups[1]
		if token == "" {
			token = groups[2]
		}
		if _, ok := models.ParseAmount(token); ok {
			out = append(out, models.FieldCandidate{Value: token})
		}
	}
	return out
}
