package extract

import (
	"strings"

	"autotax/invoice-engine/internal/models"
)

// itemIgnoreTokens marks lines that are metadata rather than purchased
// positions: dates, times, tax lines and the totals block.
var itemIgnoreTokens = []string{
	"datum", "uhrzeit", "zeit", "transaktion", "beleg",
	"mwst", "steuer", "summe", "gesamt", "total", "betrag",
	"tarih", "saat", "toplam", "tutar", "kdv",
	"date", "time", "vat", "tax", "subtotal",
}

// LineItems captures best-effort item positions: every remaining line that
// ends in a money token becomes one item, with the rest of the line as its
// description. Advisory only; items never influence reconciliation or
// triage.
func LineItems(text string) []models.LineItem {
	var items []models.LineItem
	for _, line := range strings.Split(text, "\n") {
		clean := strings.TrimSpace(line)
		if clean == "" {
			continue
		}
		lower := strings.ToLower(clean)
		if containsAnyToken(lower, itemIgnoreTokens) {
			continue
		}
		tokens := moneyTokenRe.FindAllString(clean, -1)
		if len(tokens) == 0 {
			continue
		}
		raw := tokens[len(tokens)-1]
		amount, ok := models.ParseAmount(raw)
		if !ok {
			continue
		}
		description := strings.TrimSpace(strings.Replace(clean, raw, "", 1))
		description = strings.Trim(description, " -€$£₺₩¥")
		if description == "" {
			continue
		}
		items = append(items, models.LineItem{
			RawLine:     clean,
			Description: description,
			Amount:      amount,
		})
	}
	return items
}

func containsAnyToken(line string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(line, token) {
			return true
		}
	}
	return false
}
