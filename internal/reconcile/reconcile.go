// Package reconcile merges the OCR-derived field set with the QR-derived
// one and decides the review triage state.
package reconcile

import "autotax/invoice-engine/internal/models"

// ReviewReasonNoTotal is the fixed explanation attached whenever the
// merged record lacks a total.
const ReviewReasonNoTotal = "total could not be determined"

// Merge applies QR fields as overrides on the OCR fields, field by field.
// A present QR value always wins: machine-readable payloads are strictly
// more reliable than recognized text. The reverse never happens — an OCR
// value cannot displace a QR value.
//
// After the merge, triage: a record without a total needs review, with the
// fixed reason; otherwise both flags are clear.
func Merge(ocr models.Fields, qr models.QRFields) models.ReconciledInvoice {
	merged := ocr

	if qr.Vendor != nil {
		merged.Vendor = qr.Vendor
	}
	if qr.Date != nil {
		merged.Date = qr.Date
	}
	if qr.Time != nil {
		merged.Time = qr.Time
	}
	if qr.Total != nil {
		merged.Total = qr.Total
	}
	if qr.InvoiceNumber != nil {
		merged.InvoiceNumber = qr.InvoiceNumber
	}
	if qr.VATRate != nil {
		merged.VATRate = qr.VATRate
	}
	if qr.VATAmount != nil {
		merged.VATAmount = qr.VATAmount
	}
	if qr.Category != nil {
		merged.Category = qr.Category
	}
	if qr.PaymentMethod != nil {
		merged.PaymentMethod = qr.PaymentMethod
	}

	invoice := models.ReconciledInvoice{Fields: merged}
	if merged.Total == nil {
		invoice.NeedsReview = true
		invoice.ReviewReason = models.StringPtr(ReviewReasonNoTotal)
	}
	return invoice
}
