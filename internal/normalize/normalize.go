// Package normalize cleans raw OCR output before field extraction.
//
// Clean is pure and idempotent: normalizing already-normalized text changes
// nothing, which keeps extraction reproducible across re-ingestions.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

// allowedRanges lists the script ranges kept by the character filter.
// Everything else (control glyphs, recognition garbage, stray symbols from
// unrelated scripts) is dropped.
var allowedRanges = []*unicode.RangeTable{
	{R16: []unicode.Range16{
		{Lo: 0x0020, Hi: 0x007E, Stride: 1}, // ASCII printable
		{Lo: 0x00A1, Hi: 0x024F, Stride: 1}, // Latin-1 supplement + Latin extended
		{Lo: 0x0600, Hi: 0x06FF, Stride: 1}, // Arabic
		{Lo: 0x0750, Hi: 0x077F, Stride: 1}, // Arabic supplement
		{Lo: 0x1100, Hi: 0x11FF, Stride: 1}, // Hangul jamo
		{Lo: 0x20A0, Hi: 0x20CF, Stride: 1}, // currency symbols
		{Lo: 0x3000, Hi: 0x303F, Stride: 1}, // CJK punctuation
		{Lo: 0x3040, Hi: 0x30FF, Stride: 1}, // Hiragana + katakana
		{Lo: 0x4E00, Hi: 0x9FFF, Stride: 1}, // CJK unified ideographs
		{Lo: 0xAC00, Hi: 0xD7AF, Stride: 1}, // Hangul syllables
		{Lo: 0xFB50, Hi: 0xFDFF, Stride: 1}, // Arabic presentation forms A
		{Lo: 0xFE70, Hi: 0xFEFF, Stride: 1}, // Arabic presentation forms B
	}},
}

// tashkeel covers Arabic diacritical marks that OCR frequently attaches to
// adjacent glyphs.
var tashkeel = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x064B, Hi: 0x065F, Stride: 1},
		{Lo: 0x0670, Hi: 0x0670, Stride: 1},
		{Lo: 0x06D6, Hi: 0x06DC, Stride: 1},
		{Lo: 0x06DF, Hi: 0x06E8, Stride: 1},
		{Lo: 0x06EA, Hi: 0x06ED, Stride: 1},
	},
}

// misreadTokens maps known digit/letter confusions of high-value tokens
// back to their intended spelling. Matching is case-insensitive on whole
// words; the canonical uppercase form is substituted.
var misreadTokens = map[string]string{
	"T0TAL":   "TOTAL",
	"TOTA1":   "TOTAL",
	"T0TA1":   "TOTAL",
	"SUMNE":   "SUMME",
	"SUMM3":   "SUMME",
	"BETRA6":  "BETRAG",
	"GESAMT7": "GESAMT",
	"REVVE":   "REWE",
	"REWF":    "REWE",
	"M1GROS":  "MIGROS",
	"C00P":    "COOP",
	"L1DL":    "LIDL",
	"A1DI":    "ALDI",
	"EDEKA4":  "EDEKA",
	"TOPLAN":  "TOPLAM",
}

var misreadRe *regexp.Regexp

func init() {
	alternatives := make([]string, 0, len(misreadTokens))
	for token := range misreadTokens {
		alternatives = append(alternatives, regexp.QuoteMeta(token))
	}
	misreadRe = regexp.MustCompile(`(?i)\b(` + strings.Join(alternatives, "|") + `)\b`)
}

// brokenYearRe catches a "20" year prefix shredded by recognition noise:
// "2 024", "2O24", "2 0 2 4". The capture is the final decade+year digit
// pair of a 202x token.
var brokenYearRe = regexp.MustCompile(`\b2\s*[0OoQ]\s*2\s*(\d)\b`)

var spaceRunRe = regexp.MustCompile(`[ \t]+`)

// Clean normalizes raw OCR text. Steps run in a fixed order: script
// filtering, tashkeel removal, misread-token correction, broken-year
// collapse, whitespace collapse. Line structure is preserved because the
// extractors are line-oriented; empty lines are dropped.
func Clean(raw string) string {
	filtered := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || r == ' ' {
			return r
		}
		if unicode.Is(tashkeel, r) {
			return -1
		}
		for _, table := range allowedRanges {
			if unicode.Is(table, r) {
				return r
			}
		}
		return -1
	}, raw)

	corrected := misreadRe.ReplaceAllStringFunc(filtered, func(m string) string {
		if canonical, ok := misreadTokens[strings.ToUpper(m)]; ok {
			return canonical
		}
		return m
	})

	corrected = brokenYearRe.ReplaceAllString(corrected, "202$1")

	lines := strings.Split(corrected, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(spaceRunRe.ReplaceAllString(line, " "))
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
