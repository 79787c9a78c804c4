package extract

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotal(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "german summe line",
			text:     "REWE\nSumme: 1.234,56 €",
			expected: "1234.56",
		},
		{
			name:     "grand total beats generic total",
			text:     "Subtotal: 90,00\nGrand Total: 100,00\nTotal: 95,00",
			expected: "100",
		},
		{
			name:     "largest within winning tier",
			text:     "Subtotal: 90,00\nTotal: 107,10",
			expected: "107.1",
		},
		{
			name:     "turkish genel toplam",
			text:     "Ara Toplam: 50,00\nGenel Toplam: 59,00 TL",
			expected: "59",
		},
		{
			name:     "korean total",
			text:     "소계 10,000\n합계 12,000",
			expected: "12000",
		},
		{
			name:     "labeled total beats larger bare currency number",
			text:     "Summe: 20,00\nKartenlimit 500,00 €",
			expected: "20",
		},
		{
			name:     "currency adjacent fallback",
			text:     "Danke fuer Ihren Einkauf\n42,50 €",
			expected: "42.5",
		},
		{
			name:     "no candidate",
			text:     "Vielen Dank\nBis bald",
			expected: "",
		},
		{
			name:     "implausible value rejected",
			text:     "Total: 99999999,00",
			expected: "",
		},
		{
			name:     "french montant",
			text:     "Montant total: 18,90 EUR",
			expected: "18.9",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Total(tc.text)
			if tc.expected == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			expected, err := decimal.NewFromString(tc.expected)
			require.NoError(t, err)
			assert.True(t, expected.Equal(*got), "expected %s, got %s", expected, got)
		})
	}
}
