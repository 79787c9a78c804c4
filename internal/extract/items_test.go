package extract

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItems(t *testing.T) {
	text := "REWE Markt\n" +
		"Bio Milch 1,19\n" +
		"Brot Vollkorn 2,49\n" +
		"Datum: 12.03.2024\n" +
		"Summe: 3,68"

	items := LineItems(text)
	require.Len(t, items, 2)

	assert.Equal(t, "Bio Milch", items[0].Description)
	assert.True(t, decimal.NewFromFloat(1.19).Equal(items[0].Amount))
	assert.Equal(t, "Brot Vollkorn", items[1].Description)
	assert.True(t, decimal.NewFromFloat(2.49).Equal(items[1].Amount))
}

func TestLineItemsSkipsMetadataLines(t *testing.T) {
	text := "Datum: 12.03.2024\nUhrzeit 14:32\nMwSt 19% 0,60\nSumme 3,68"
	assert.Empty(t, LineItems(text))
}

func TestLineItemsLastTokenIsAmount(t *testing.T) {
	items := LineItems("2x Cola 0,5L 3,00")
	require.Len(t, items, 1)
	assert.True(t, decimal.NewFromFloat(3.00).Equal(items[0].Amount))
}
