package extract

import (
	"strings"

	"autotax/invoice-engine/internal/dictionary"
	"autotax/invoice-engine/internal/models"
)

// Classifier assigns a category and a payment method from the keyword
// tables. Both matchers are first-hit-wins over ordered tables and never
// force a default: no hit means no value.
type Classifier struct {
	dict *dictionary.Dictionary
}

// NewClassifier builds a classifier over the given dictionary.
func NewClassifier(dict *dictionary.Dictionary) *Classifier {
	return &Classifier{dict: dict}
}

// Category returns the first category bucket with any keyword hit, or nil.
func (c *Classifier) Category(text string) *string {
	lower := strings.ToLower(text)
	for _, bucket := range c.dict.Categories {
		for _, keyword := range bucket.Keywords {
			if strings.Contains(lower, strings.ToLower(keyword)) {
				return models.StringPtr(bucket.Name)
			}
		}
	}
	return nil
}

// PaymentMethod returns the first payment method with any keyword hit, or
// nil. The table is ordered with card brands before generic tokens, so
// "visa" resolves to visa rather than plain "card".
func (c *Classifier) PaymentMethod(text string) *string {
	lower := strings.ToLower(text)
	for _, method := range c.dict.Payments {
		for _, keyword := range method.Keywords {
			if strings.Contains(lower, strings.ToLower(keyword)) {
				return models.StringPtr(method.Method)
			}
		}
	}
	return nil
}
