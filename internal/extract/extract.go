// Package extract pulls structured tender offer terms out of raw SEC filing
// text with regex heuristics. It is intentionally forgiving: filings vary
// wildly in formatting, so extraction returns whatever it can find and never
// fails.
package extract

import "sort"

// excerptRadius is how many bytes of surrounding context to keep around the
// first odd-lot match.
const excerptRadius = 200

// maxConditions caps how many condition sentences are kept per pattern.
const maxConditions = 5

// Terms holds everything extracted from a single filing document.
type Terms struct {
	OfferPrices       []string `json:"offer_prices"`
	ExpiryDates       []string `json:"expiry_dates"`
	HasOddLotPriority bool     `json:"has_odd_lot_priority"`
	HasProration      bool     `json:"has_proration"`
	TotalValues       []string `json:"total_values"`
	Conditions        []string `json:"conditions"`
	OddLotExcerpt     string   `json:"odd_lot_excerpt,omitempty"`
}

// ExtractTerms scans filing text for offer prices, expiry dates, odd-lot and
// proration language, aggregate values, and offer conditions.
func ExtractTerms(text string) *Terms {
	terms := &Terms{}

	for _, re := range offerPricePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			for _, group := range m[1:] {
				if group != "" {
					terms.OfferPrices = append(terms.OfferPrices, group)
				}
			}
		}
	}

	for _, re := range expiryDatePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			terms.ExpiryDates = append(terms.ExpiryDates, m[1])
		}
	}

	for _, re := range oddLotPatterns {
		if loc := re.FindStringIndex(text); loc != nil {
			terms.HasOddLotPriority = true
			terms.OddLotExcerpt = excerpt(text, loc[0], loc[1])
			break
		}
	}

	for _, re := range prorationPatterns {
		if re.MatchString(text) {
			terms.HasProration = true
			break
		}
	}

	for _, re := range totalValuePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			terms.TotalValues = append(terms.TotalValues, m[1])
		}
	}

	for _, re := range conditionPatterns {
		matches := re.FindAllStringSubmatch(text, maxConditions)
		for _, m := range matches {
			terms.Conditions = append(terms.Conditions, m[1])
		}
	}

	terms.OfferPrices = dedupe(terms.OfferPrices)
	terms.ExpiryDates = dedupe(terms.ExpiryDates)
	terms.TotalValues = dedupe(terms.TotalValues)

	return terms
}

// excerpt returns the match plus up to excerptRadius bytes of context on
// each side.
func excerpt(text string, start, end int) string {
	from := start - excerptRadius
	if from < 0 {
		from = 0
	}
	to := end + excerptRadius
	if to > len(text) {
		to = len(text)
	}
	return text[from:to]
}

// dedupe removes duplicates and sorts for stable output.
func dedupe(vals []string) []string {
	if len(vals) == 0 {
		return vals
	}
	seen := make(map[string]struct{}, len(vals))
	out := vals[:0]
	for _, v := range vals {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
