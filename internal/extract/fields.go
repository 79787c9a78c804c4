package extract

import (
	"autotax/invoice-engine/internal/dictionary"
	"autotax/invoice-engine/internal/models"
)

// FieldExtractor runs the full set of field extractors over normalized
// text. It is stateless apart from the immutable dictionary, so one
// instance is safe to share across concurrent extractions.
type FieldExtractor struct {
	vendor     *VendorExtractor
	classifier *Classifier
}

// NewFieldExtractor builds the extractor set over the given dictionary.
func NewFieldExtractor(dict *dictionary.Dictionary) *FieldExtractor {
	return &FieldExtractor{
		vendor:     NewVendorExtractor(dict),
		classifier: NewClassifier(dict),
	}
}

// Extract runs every extractor independently and assembles the candidate
// field set. Each field is optional; misses stay nil.
func (e *FieldExtractor) Extract(text string) models.Fields {
	return models.Fields{
		Vendor:        e.vendor.Extract(text),
		Date:          Date(text),
		Time:          Clock(text),
		Total:         Total(text),
		InvoiceNumber: InvoiceNumber(text),
		VATRate:       VATRate(text),
		VATAmount:     VATAmount(text),
		Category:      e.classifier.Category(text),
		PaymentMethod: e.classifier.PaymentMethod(text),
	}
}
