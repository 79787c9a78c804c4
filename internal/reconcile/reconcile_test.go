package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autotax/invoice-engine/internal/models"
)

func TestMergePayloadWins(t *testing.T) {
	ocr := models.Fields{
		Vendor: models.StringPtr("REWE Markt"),
		Date:   models.StringPtr("2024-03-12"),
		Total:  models.DecimalPtr(decimal.NewFromFloat(41.50)),
	}
	qr := models.QRFields{
		Fields: models.Fields{
			Total: models.DecimalPtr(decimal.NewFromFloat(42.00)),
		},
		Raw: "total=42.00",
	}

	merged := Merge(ocr, qr)

	require.NotNil(t, merged.Total)
	assert.True(t, decimal.NewFromFloat(42.00).Equal(*merged.Total), "payload total must override the recognized one")
	require.NotNil(t, merged.Vendor)
	assert.Equal(t, "REWE Markt", *merged.Vendor, "fields absent from the payload keep the recognized value")
	assert.False(t, merged.NeedsReview)
	assert.Nil(t, merged.ReviewReason)
}

func TestMergeRecognizedFillsPayloadGaps(t *testing.T) {
	ocr := models.Fields{
		Vendor: models.StringPtr("Migros"),
		Date:   models.StringPtr("2024-01-05"),
	}
	qr := models.QRFields{
		Fields: models.Fields{
			Total: models.DecimalPtr(decimal.NewFromFloat(19.90)),
		},
	}

	merged := Merge(ocr, qr)

	require.NotNil(t, merged.Vendor)
	assert.Equal(t, "Migros", *merged.Vendor)
	require.NotNil(t, merged.Total)
	assert.True(t, decimal.NewFromFloat(19.90).Equal(*merged.Total))
	assert.False(t, merged.NeedsReview)
}

func TestMergeMissingTotalFlagsReview(t *testing.T) {
	ocr := models.Fields{
		Vendor: models.StringPtr("Unleserlich GmbH"),
		Date:   models.StringPtr("2024-02-02"),
	}

	merged := Merge(ocr, models.QRFields{})

	assert.Nil(t, merged.Total)
	assert.True(t, merged.NeedsReview)
	require.NotNil(t, merged.ReviewReason)
	assert.Equal(t, ReviewReasonNoTotal, *merged.ReviewReason)
}

func TestMergeEmptyBothSides(t *testing.T) {
	merged := Merge(models.Fields{}, models.QRFields{})

	assert.Nil(t, merged.Vendor)
	assert.True(t, merged.NeedsReview)
	require.NotNil(t, merged.ReviewReason)
	assert.Equal(t, "total could not be determined", *merged.ReviewReason)
}
