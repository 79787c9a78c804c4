package extract

import (
	"regexp"
	"strings"

	"autotax/invoice-engine/internal/models"
)

// idToken is the shape of an invoice identifier after a label. It must
// start alphanumeric and may carry dashes, slashes and dots.
const idToken = `([A-Za-z0-9][A-Za-z0-9\-/.]*)`

// labeledNumberRes are the trusted, language-specific invoice-number
// labels.
var labeledNumberRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)invoice\s*(?:number|no|#)\.?\s*[:\-]?\s*` + idToken),
	regexp.MustCompile(`(?i)inv\.?\s*no\.?\s*[:\-]?\s*` + idToken),
	regexp.MustCompile(`(?i)rechnungs?\s*-?\s*n(?:ummer|r)\.?\s*[:\-]?\s*` + idToken),
	regexp.MustCompile(`(?i)rg\.?\s*-?\s*nr\.?\s*[:\-]?\s*` + idToken),
	regexp.MustCompile(`(?i)facture\s*n[°o]\.?\s*[:\-]?\s*` + idToken),
	regexp.MustCompile(`(?i)fatura\s*(?:no|numaras[ıi])\.?\s*[:\-]?\s*` + idToken),
	regexp.MustCompile(`(?i)bill\s*(?:number|no)\.?\s*[:\-]?\s*` + idToken),
	regexp.MustCompile(`(?i)faktura\s*n[ro]\.?\s*[:\-]?\s*` + idToken),
	regexp.MustCompile(`رقم\s*الفاتورة\s*[:\-]?\s*` + idToken),
	regexp.MustCompile(`(?:송장|계산서|영수증)\s*번호\s*[:\-]?\s*` + idToken),
	regexp.MustCompile(`發票號碼?\s*[:\-]?\s*` + idToken),
	regexp.MustCompile(`发票号码?\s*[:\-]?\s*` + idToken),
}

// bareNumberRe is the lowest-trust fallback. A bare "No./Nr./#" label
// collides with customer numbers and order numbers, so it only ever runs
// when every language-specific label missed.
var bareNumberRe = regexp.MustCompile(`(?i)(?:^|\s)(?:no\.?|nr\.?|#)\s*[:\-]?\s*` + idToken)

// InvoiceNumber resolves the invoice identifier through the labeled
// cascade. A candidate must contain at least one digit; pure words after a
// label are label bleed, not identifiers.
func InvoiceNumber(text string) *string {
	candidates := Resolve(text, []Tier{
		{Rank: 1, Match: func(t string) []models.FieldCandidate {
			var out []models.FieldCandidate
			for _, re := range labeledNumberRes {
				if m := re.FindStringSubmatch(t); m != nil && containsDigit(m[1]) {
					out = append(out, models.FieldCandidate{Value: m[1]})
				}
			}
			return out
		}},
		{Rank: 2, Match: func(t string) []models.FieldCandidate {
			if m := bareNumberRe.FindStringSubmatch(t); m != nil && containsDigit(m[1]) {
				return []models.FieldCandidate{{Value: m[1]}}
			}
			return nil
		}},
	})
	if len(candidates) == 0 {
		return nil
	}
	return models.StringPtr(strings.TrimRight(candidates[0].Value, "."))
}

func containsDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}
