package extract

import (
	"regexp"
	"strings"
	"unicode"

	"autotax/invoice-engine/internal/dictionary"
	"autotax/invoice-engine/internal/models"
)

// vendorBlocklist rejects lines that carry non-vendor signals: banking
// references, tax ids, invoice labels, dates, contact data, postal codes
// and digit noise. Mirrors the signals that dominate invoice headers.
var vendorBlocklist = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bIBAN\b`),
	regexp.MustCompile(`(?i)\bBIC\b`),
	regexp.MustCompile(`(?i)\bUSt\b`),
	regexp.MustCompile(`(?i)\bVAT\b`),
	regexp.MustCompile(`(?i)\bMwSt\b`),
	regexp.MustCompile(`(?i)\bSteuer`),
	regexp.MustCompile(`(?i)\bRechnung`),
	regexp.MustCompile(`(?i)\bInvoice\b`),
	regexp.MustCompile(`(?i)\bFatura\b`),
	regexp.MustCompile(`(?i)\bKunden`),
	regexp.MustCompile(`(?i)\bBestell`),
	regexp.MustCompile(`(?i)\bAuftrag`),
	regexp.MustCompile(`(?i)\bLiefer`),
	regexp.MustCompile(`(?i)\bZahlungsziel\b`),
	regexp.MustCompile(`(?i)\bDatum\b`),
	regexp.MustCompile(`(?i)\bDate\b`),
	regexp.MustCompile(`(?i)\bTarih\b`),
	regexp.MustCompile(`(?i)\bTel\b`),
	regexp.MustCompile(`(?i)\bFax\b`),
	regexp.MustCompile(`(?i)\bEmail\b`),
	regexp.MustCompile(`(?i)\bAdresse\b`),
	regexp.MustCompile(`(?i)\b(?:No|Nr)\.?\s*[:#]`),
	regexp.MustCompile(`(?i)\b(?:total|subtotal|summe|gesamt|betrag|toplam|tutar|montant|somme)\b`),
	regexp.MustCompile(`\b\d{5}\b`),              // postal code
	regexp.MustCompile(`\+?\d[\d\s/().-]{7,}\d`), // phone number
	regexp.MustCompile(`\d{1,2}[./]\d{1,2}[./]\d{2,4}`),
	regexp.MustCompile(`(?i)\.(txt|html|js|css|pdf)\b`), // filename junk
}

// VendorExtractor resolves the issuing vendor. The curated brand
// dictionary is checked first; the line heuristic only runs when no known
// brand appears anywhere in the text.
type VendorExtractor struct {
	dict *dictionary.Dictionary
}

// NewVendorExtractor builds a vendor extractor over the given dictionary.
func NewVendorExtractor(dict *dictionary.Dictionary) *VendorExtractor {
	return &VendorExtractor{dict: dict}
}

// Extract returns the canonical vendor name, or nil when neither the
// dictionary nor the heuristic produces a candidate.
func (e *VendorExtractor) Extract(text string) *string {
	upper := strings.ToUpper(text)
	for _, brand := range e.dict.Vendors {
		for _, variant := range brand.Variants {
			if strings.Contains(upper, strings.ToUpper(variant)) {
				return models.StringPtr(brand.Name)
			}
		}
	}
	return heuristicVendor(text)
}

// heuristicVendor scans the top of the document: of the first ten
// non-empty lines that survive the block-list, prefer an all-uppercase
// line (brands print their name in caps), else the longest line with no
// digits (addresses carry digits), else the longest survivor.
func heuristicVendor(text string) *string {
	var head []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		head = append(head, line)
		if len(head) == 10 {
			break
		}
	}

	var candidates []string
	for _, line := range head {
		if len([]rune(line)) < 3 && !isUpperLine(line) {
			continue
		}
		if isDigitsOnly(line) {
			continue
		}
		if blocklisted(line) {
			continue
		}
		candidates = append(candidates, line)
	}
	if len(candidates) == 0 {
		return nil
	}

	var upperLines []string
	for _, c := range candidates {
		if isUpperLine(c) {
			upperLines = append(upperLines, c)
		}
	}
	if len(upperLines) > 0 {
		return models.StringPtr(titleCase(longest(upperLines)))
	}

	var digitFree []string
	for _, c := range candidates {
		if !strings.ContainsAny(c, "0123456789") {
			digitFree = append(digitFree, c)
		}
	}
	if len(digitFree) > 0 {
		return models.StringPtr(titleCase(longest(digitFree)))
	}

	return models.StringPtr(titleCase(longest(candidates)))
}

func blocklisted(line string) bool {
	for _, re := range vendorBlocklist {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func isDigitsOnly(line string) bool {
	hasDigit := false
	for _, r := range line {
		if unicode.IsDigit(r) {
			hasDigit = true
			continue
		}
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return hasDigit
}

// isUpperLine reports whether a line contains at least one letter and no
// lowercase letters.
func isUpperLine(line string) bool {
	hasLetter := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func longest(lines []string) string {
	best := lines[0]
	for _, l := range lines[1:] {
		if len([]rune(l)) > len([]rune(best)) {
			best = l
		}
	}
	return best
}

// titleCase uppercases the first letter of each space-separated word and
// lowercases the rest, turning an all-caps header line into a display name.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
