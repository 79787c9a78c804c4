package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"iso", "Date: 2024-03-12", "2024-03-12"},
		{"iso with dots", "2024.03.12", "2024-03-12"},
		{"german dotted is day first", "Datum: 12.03.2024", "2024-03-12"},
		{"dotted two digit year low pivots to 2000s", "12.03.24", "2024-03-12"},
		{"dotted two digit year high pivots to 1900s", "12.03.99", "1999-03-12"},
		{"slash ambiguous defaults month first", "03/12/2024", "2024-03-12"},
		{"slash first above twelve is day first", "23/03/2024", "2024-03-23"},
		{"latin month english", "Invoice date: 12 March 2024", "2024-03-12"},
		{"latin month german", "12. März 2024", "2024-03-12"},
		{"latin month turkish", "12 Mart 2024", "2024-03-12"},
		{"cjk date", "2024年3月12日", "2024-03-12"},
		{"korean date", "2024년 3월 12일", "2024-03-12"},
		{"arabic month date", "12 مارس 2024", "2024-03-12"},
		{"iso beats dotted when both present", "12.01.2023\n2024-03-12", "2024-03-12"},
		{"invalid day rejected", "32.03.2024", ""},
		{"out of range year rejected", "12.03.2150", ""},
		{"nonexistent date rejected", "31.02.2024", ""},
		{"no date", "Danke fuer Ihren Einkauf", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Date(tc.text)
			if tc.expected == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.expected, *got)
		})
	}
}

func TestClock(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"basic", "Uhrzeit 14:32", "14:32"},
		{"with seconds", "14:32:07", "14:32:07"},
		{"single digit hour padded", "9:05", "09:05"},
		{"invalid hour", "25:00", ""},
		{"no clock", "Summe 12,99", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Clock(tc.text)
			if tc.expected == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.expected, *got)
		})
	}
}
