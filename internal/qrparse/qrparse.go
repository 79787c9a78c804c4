// Package qrparse decodes machine-readable payload strings into the
// canonical invoice field vocabulary, independent of OCR.
//
// Four payload grammars exist in the wild: URL query strings, key=value or
// key:value lines, pipe-delimited positional fields, and semicolon-
// delimited pairs. Exactly one grammar is applied per payload — the first
// whose structure matches — and grammars are never combined. The undecoded
// payload is always preserved under Raw, so a payload matching no grammar
// still yields a usable (raw-only) result rather than an error.
package qrparse

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"autotax/invoice-engine/internal/dictionary"
	"autotax/invoice-engine/internal/extract"
	"autotax/invoice-engine/internal/models"
)

// Grammar discriminates the supported payload shapes.
type Grammar int

const (
	GrammarNone Grammar = iota
	GrammarURL
	GrammarKeyValue
	GrammarPipe
	GrammarSemicolon
)

func (g Grammar) String() string {
	switch g {
	case GrammarURL:
		return "url"
	case GrammarKeyValue:
		return "key_value"
	case GrammarPipe:
		return "pipe"
	case GrammarSemicolon:
		return "semicolon"
	default:
		return "none"
	}
}

// keyValueRe matches key=value / key:value tokens. Keys start with a
// letter from any supported script so clock tokens like "12:30" never read
// as a pair.
var keyValueRe = regexp.MustCompile(`(?m)([\p{L}][\p{L}\p{N}_]*)\s*[=:]\s*([^\n;|]+)`)

// DetectGrammar inspects the payload shape and picks the grammar, in
// priority order. The discriminator is separate from the parsers so the
// one-grammar-only rule stays visible in one place.
func DetectGrammar(payload string) Grammar {
	trimmed := strings.TrimSpace(payload)
	if trimmed == "" {
		return GrammarNone
	}
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://"):
		return GrammarURL
	case keyValueRe.MatchString(trimmed):
		return GrammarKeyValue
	case strings.Contains(trimmed, "|"):
		return GrammarPipe
	case strings.Contains(trimmed, ";"):
		return GrammarSemicolon
	default:
		return GrammarNone
	}
}

// Parser decodes payloads using the shared key vocabulary.
type Parser struct {
	dict *dictionary.Dictionary
}

// NewParser builds a payload parser over the given dictionary.
func NewParser(dict *dictionary.Dictionary) *Parser {
	return &Parser{dict: dict}
}

// Parse decodes a raw payload. Raw is always set; fields are filled only
// by the single grammar that matched.
func (p *Parser) Parse(payload string) models.QRFields {
	out := models.QRFields{Raw: payload}
	trimmed := strings.TrimSpace(payload)

	switch DetectGrammar(payload) {
	case GrammarURL:
		p.parseURL(trimmed, &out.Fields)
	case GrammarKeyValue:
		p.parseKeyValue(trimmed, &out.Fields)
	case GrammarPipe:
		p.parsePipe(trimmed, &out.Fields)
	case GrammarSemicolon:
		p.parseSemicolon(trimmed, &out.Fields)
	case GrammarNone:
		// Malformed payload: keep raw only.
	}
	return out
}

func (p *Parser) parseURL(payload string, fields *models.Fields) {
	u, err := url.Parse(payload)
	if err != nil {
		return
	}
	for key, values := range u.Query() {
		if len(values) == 0 {
			continue
		}
		p.assign(fields, key, values[0])
	}
}

func (p *Parser) parseKeyValue(payload string, fields *models.Fields) {
	for _, m := range keyValueRe.FindAllStringSubmatch(payload, -1) {
		p.assign(fields, m[1], m[2])
	}
}

// parsePipe applies the fixed positional schema: vendor, tax id, date,
// time, total, VAT amount, invoice number. Extra fields are truncated;
// shorter payloads fill what they have. The tax id position has no
// canonical field and is skipped.
func (p *Parser) parsePipe(payload string, fields *models.Fields) {
	parts := strings.Split(payload, "|")
	positions := []string{
		models.FieldVendor, "", models.FieldDate, models.FieldTime,
		models.FieldTotal, models.FieldVATAmount, models.FieldInvoiceNumber,
	}
	for i, part := range parts {
		if i >= len(positions) {
			break
		}
		if positions[i] == "" {
			continue
		}
		setCanonical(fields, positions[i], part)
	}
}

func (p *Parser) parseSemicolon(payload string, fields *models.Fields) {
	for _, segment := range strings.Split(payload, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		sep := strings.IndexAny(segment, "=:")
		if sep <= 0 {
			continue
		}
		p.assign(fields, segment[:sep], segment[sep+1:])
	}
}

// assign maps a payload key through the multi-language vocabulary onto a
// canonical field. Unknown keys are dropped.
func (p *Parser) assign(fields *models.Fields, key, value string) {
	canonical, ok := p.dict.QRKeys[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return
	}
	setCanonical(fields, canonical, value)
}

// setCanonical writes one canonical field, reusing the OCR-side value
// parsers so payload values obey the same plausibility rules as text
// values. A field already set by an earlier token is not overwritten.
func setCanonical(fields *models.Fields, name, raw string) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return
	}
	switch name {
	case models.FieldVendor:
		if fields.Vendor == nil {
			fields.Vendor = models.StringPtr(value)
		}
	case models.FieldDate:
		if fields.Date == nil {
			fields.Date = extract.Date(value)
		}
	case models.FieldTime:
		if fields.Time == nil {
			fields.Time = extract.Clock(value)
		}
	case models.FieldTotal:
		if fields.Total == nil {
			if amount, ok := models.ParseAmount(value); ok {
				fields.Total = models.DecimalPtr(amount)
			}
		}
	case models.FieldVATAmount:
		if fields.VATAmount == nil {
			if amount, ok := models.ParseAmount(value); ok {
				fields.VATAmount = models.DecimalPtr(amount)
			}
		}
	case models.FieldVATRate:
		if fields.VATRate == nil {
			cleaned := strings.TrimSuffix(strings.TrimSpace(value), "%")
			cleaned = strings.ReplaceAll(strings.TrimSpace(cleaned), ",", ".")
			if rate, err := decimal.NewFromString(cleaned); err == nil && !rate.IsNegative() {
				fields.VATRate = models.DecimalPtr(rate)
			}
		}
	case models.FieldInvoiceNumber:
		if fields.InvoiceNumber == nil {
			fields.InvoiceNumber = models.StringPtr(value)
		}
	}
}
