// Package extract implements the field extractors that turn normalized OCR
// text into candidate invoice fields.
//
// Every extractor is a tiered cascade: an ordered list of matcher functions
// in descending trust. The cascade stops at the first tier that yields at
// least one plausible candidate; later tiers are fallbacks, never additive.
// All extractors are pure functions and report "no match" as an absent
// value.
package extract

import "autotax/invoice-engine/internal/models"

// Tier is one rung of a cascade. Rank orders tiers (lower is more
// trusted); Match returns every plausible candidate the tier can see.
type Tier struct {
	Rank  int
	Match func(text string) []models.FieldCandidate
}

// Resolve folds over the tiers in order and returns the candidates of the
// first tier that produced any, tagged with that tier's rank. The
// short-circuit keeps precedence auditable tier by tier.
func Resolve(text string, tiers []Tier) []models.FieldCandidate {
	for _, tier := range tiers {
		candidates := tier.Match(text)
		if len(candidates) == 0 {
			continue
		}
		for i := range candidates {
			candidates[i].Tier = tier.Rank
		}
		return candidates
	}
	return nil
}
