package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autotax/invoice-engine/internal/dictionary"
)

func TestClassifierCategory(t *testing.T) {
	classifier := NewClassifier(dictionary.Default())

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"restaurant text", "Restaurant zur Post\nSumme 45,00", "food"},
		{"fuel text", "Tankstelle\nDiesel 50L", "fuel"},
		{"hotel text", "Hotel Krone\nÜbernachtung", "hotel"},
		{"pharmacy text", "Apotheke am Markt", "health"},
		{"no hit", "Unbekannter Beleg 12,00", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := classifier.Category(tc.text)
			if tc.expected == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.expected, *got)
		})
	}
}

func TestClassifierPaymentMethod(t *testing.T) {
	classifier := NewClassifier(dictionary.Default())

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"brand beats generic card", "Bezahlt mit VISA Karte", "visa"},
		{"twint", "TWINT Zahlung", "twint"},
		{"cash german", "Bar bezahlt", "cash"},
		{"no hit", "Summe 12,99", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := classifier.PaymentMethod(tc.text)
			if tc.expected == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.expected, *got)
		})
	}
}

