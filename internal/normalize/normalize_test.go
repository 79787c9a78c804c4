package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "whitespace collapse",
			raw:      "REWE   Markt\t GmbH\n\n\nSumme   12,99",
			expected: "REWE Markt GmbH\nSumme 12,99",
		},
		{
			name:     "misread token correction",
			raw:      "T0TAL 42,00",
			expected: "TOTAL 42,00",
		},
		{
			name:     "misread vendor correction",
			raw:      "REVVE Markt",
			expected: "REWE Markt",
		},
		{
			name:     "misread is case insensitive",
			raw:      "t0tal 5,00",
			expected: "TOTAL 5,00",
		},
		{
			name:     "broken year collapse",
			raw:      "Datum: 2 024",
			expected: "Datum: 2024",
		},
		{
			name:     "broken year with letter O",
			raw:      "Datum: 2O24",
			expected: "Datum: 2024",
		},
		{
			name:     "recognition garbage dropped",
			raw:      "Summe \x00\a 9,99",
			expected: "Summe 9,99",
		},
		{
			name:     "arabic diacritics removed",
			raw:      "المجموعُ 50",
			expected: "المجموع 50",
		},
		{
			name:     "korean preserved",
			raw:      "합계 12,000",
			expected: "합계 12,000",
		},
		{
			name:     "cjk preserved",
			raw:      "合计 ¥100",
			expected: "合计 ¥100",
		},
		{
			name:     "currency symbols preserved",
			raw:      "Summe 12,99 €",
			expected: "Summe 12,99 €",
		},
		{
			name:     "empty input",
			raw:      "",
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Clean(tc.raw))
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"REVVE Markt\nT0TAL 1.234,56 €\nDatum: 2 024",
		"합계 12,000원\n카드 결제",
		"المجموع 50 ريال",
		"plain text already clean",
	}
	for _, raw := range inputs {
		once := Clean(raw)
		twice := Clean(once)
		assert.Equal(t, once, twice, "Clean must be idempotent for %q", raw)
	}
}
