package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"autotax/invoice-engine/internal/models"
)

// Latin month names across the supported locales, lowercased. Includes the
// common three-letter abbreviations.
var latinMonths = map[string]time.Month{
	// English
	"january": 1, "february": 2, "march": 3, "april": 4, "may": 5,
	"june": 6, "july": 7, "august": 8, "september": 9, "october": 10,
	"november": 11, "december": 12,
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "jun": 6, "jul": 7,
	"aug": 8, "sep": 9, "sept": 9, "oct": 10, "nov": 11, "dec": 12,
	// German
	"januar": 1, "februar": 2, "märz": 3, "maerz": 3, "mai": 5, "juni": 6,
	"juli": 7, "oktober": 10, "dezember": 12, "okt": 10, "dez": 12,
	// French
	"janvier": 1, "février": 2, "fevrier": 2, "mars": 3, "avril": 4,
	"juin": 6, "juillet": 7, "août": 8, "aout": 8, "septembre": 9,
	"octobre": 10, "novembre": 11, "décembre": 12, "decembre": 12,
	// Turkish
	"ocak": 1, "şubat": 2, "subat": 2, "mart": 3, "nisan": 4, "mayıs": 5,
	"mayis": 5, "haziran": 6, "temmuz": 7, "ağustos": 8, "agustos": 8,
	"eylül": 9, "eylul": 9, "ekim": 10, "kasım": 11, "kasim": 11,
	"aralık": 12, "aralik": 12,
}

// Arabic Gregorian month names.
var arabicMonths = map[string]time.Month{
	"يناير": 1, "فبراير": 2, "مارس": 3, "أبريل": 4, "ابريل": 4,
	"مايو": 5, "يونيو": 6, "يوليو": 7, "أغسطس": 8, "اغسطس": 8,
	"سبتمبر": 9, "أكتوبر": 10, "اكتوبر": 10, "نوفمبر": 11, "ديسمبر": 12,
}

var (
	isoDateRe    = regexp.MustCompile(`\b(\d{4})[-./](\d{1,2})[-./](\d{1,2})\b`)
	cjkDateRe    = regexp.MustCompile(`(\d{4})\s*年\s*(\d{1,2})\s*月\s*(\d{1,2})\s*日`)
	koreanDateRe = regexp.MustCompile(`(\d{4})\s*년\s*(\d{1,2})\s*월\s*(\d{1,2})\s*일`)
	arabicDateRe = regexp.MustCompile(`(\d{1,2})\s+(\p{Arabic}+)\s+(\d{4})`)
	dotDateRe    = regexp.MustCompile(`\b(\d{1,2})\.(\d{1,2})\.(\d{2,4})\b`)
	slashDateRe  = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2,4})\b`)
	latinDateRe  = regexp.MustCompile(`(?i)\b(\d{1,2})\.?\s+(\p{L}+)\.?\s+(\d{4})\b`)
)

// Date finds the single most plausible issue date and returns it as an ISO
// string (YYYY-MM-DD). Patterns run in descending priority; the first
// successfully parsed, in-range date wins, since invoices normally carry
// exactly one issue date. Returns nil when no pattern yields a valid date.
func Date(text string) *string {
	type matcher func(string) (time.Time, bool)
	matchers := []matcher{
		matchISODate,
		matchCJKDate,
		matchArabicMonthDate,
		matchNumericDate,
		matchLatinMonthDate,
	}
	for _, m := range matchers {
		if t, ok := m(text); ok {
			return models.StringPtr(t.Format(models.DateLayoutISO))
		}
	}
	return nil
}

// expandYear widens a two-digit year using a pivot at 49: values up to 49
// become 20xx, everything above becomes 19xx.
func expandYear(raw string) int {
	year, _ := strconv.Atoi(raw)
	if len(raw) == 2 {
		if year <= 49 {
			return 2000 + year
		}
		return 1900 + year
	}
	return year
}

// buildDate validates the component triple: the day must exist in the
// month and the year must fall within [1900, 2100].
func buildDate(year, month, day int) (time.Time, bool) {
	if year < 1900 || year > 2100 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func matchISODate(text string) (time.Time, bool) {
	for _, g := range isoDateRe.FindAllStringSubmatch(text, -1) {
		year, _ := strconv.Atoi(g[1])
		month, _ := strconv.Atoi(g[2])
		day, _ := strconv.Atoi(g[3])
		if t, ok := buildDate(year, month, day); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func matchCJKDate(text string) (time.Time, bool) {
	for _, re := range []*regexp.Regexp{cjkDateRe, koreanDateRe} {
		for _, g := range re.FindAllStringSubmatch(text, -1) {
			year, _ := strconv.Atoi(g[1])
			month, _ := strconv.Atoi(g[2])
			day, _ := strconv.Atoi(g[3])
			if t, ok := buildDate(year, month, day); ok {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func matchArabicMonthDate(text string) (time.Time, bool) {
	for _, g := range arabicDateRe.FindAllStringSubmatch(text, -1) {
		month, ok := arabicMonths[g[2]]
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(g[1])
		year, _ := strconv.Atoi(g[3])
		if t, ok := buildDate(year, int(month), day); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// matchNumericDate handles D.M.YYYY and D/M/YYYY. The dotted form is
// always day-first. The slash form is ambiguous: a first group above 12
// cannot be a month, so it flips to day-first; otherwise month-first is
// assumed.
func matchNumericDate(text string) (time.Time, bool) {
	for _, g := range dotDateRe.FindAllStringSubmatch(text, -1) {
		day, _ := strconv.Atoi(g[1])
		month, _ := strconv.Atoi(g[2])
		if t, ok := buildDate(expandYear(g[3]), month, day); ok {
			return t, true
		}
	}
	for _, g := range slashDateRe.FindAllStringSubmatch(text, -1) {
		first, _ := strconv.Atoi(g[1])
		second, _ := strconv.Atoi(g[2])
		year := expandYear(g[3])
		var t time.Time
		var ok bool
		if first > 12 {
			t, ok = buildDate(year, second, first)
		} else {
			t, ok = buildDate(year, first, second)
		}
		if ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func matchLatinMonthDate(text string) (time.Time, bool) {
	for _, g := range latinDateRe.FindAllStringSubmatch(text, -1) {
		month, ok := latinMonths[strings.ToLower(g[2])]
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(g[1])
		year, _ := strconv.Atoi(g[3])
		if t, ok := buildDate(year, int(month), day); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// Clock finds the first well-formed HH:MM or HH:MM:SS token.
func Clock(text string) *string {
	m := clockRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	hour, _ := strconv.Atoi(m[1])
	value := fmt.Sprintf("%02d:%s", hour, m[2])
	if m[3] != "" {
		value += ":" + m[3]
	}
	return models.StringPtr(value)
}

var clockRe = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)(?::([0-5]\d))?\b`)
