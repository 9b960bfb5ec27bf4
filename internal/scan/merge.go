package scan

import (
	"tenderscan/internal/types"
)

// MergeSources combines deal stubs from multiple discovery sources into one
// record per identity. Sources are ordered by trust: the first source wins,
// later sources only fill fields the record does not have yet.
//
// Identity key is the ticker when present. Records without a ticker from the
// primary (first) source fall back to their registry key (CIK, then company
// name); ticker-less records from later sources cannot be deduplicated
// reliably and are dropped. Output preserves insertion order of first
// occurrence.
func MergeSources(sources ...[]types.Deal) []types.Deal {
	merged := make(map[string]*types.Deal)
	var order []string

	for i, source := range sources {
		primary := i == 0
		for _, stub := range dedupeSource(source) {
			key := stub.Ticker
			if key == "" {
				if !primary {
					continue
				}
				key = stub.RegistryKey()
				if key == "" {
					continue
				}
			}

			existing, ok := merged[key]
			if !ok {
				d := stub
				merged[key] = &d
				order = append(order, key)
				continue
			}
			fillMissing(existing, &stub)
		}
	}

	out := make([]types.Deal, 0, len(order))
	for _, k := range order {
		out = append(out, *merged[k])
	}
	return out
}

// dedupeSource collapses duplicate stubs within a single source, e.g.
// amended filings for the same company. The stub with the lexicographically
// greater filed-date string replaces the earlier one outright. First
// occurrence order is preserved.
func dedupeSource(source []types.Deal) []types.Deal {
	seen := make(map[string]int)
	out := make([]types.Deal, 0, len(source))

	for _, stub := range source {
		key := stub.Ticker
		if key == "" {
			key = stub.RegistryKey()
		}
		if key == "" {
			out = append(out, stub)
			continue
		}

		idx, ok := seen[key]
		if !ok {
			seen[key] = len(out)
			out = append(out, stub)
			continue
		}
		if stub.FiledDate > out[idx].FiledDate {
			out[idx] = stub
		}
	}
	return out
}

// fillMissing adopts src's values for every field dst has not set. A field
// counts as set when it is non-zero: empty strings, nil pointers, zero
// numerics, false booleans and empty slices are all fillable.
func fillMissing(dst, src *types.Deal) {
	if dst.Ticker == "" {
		dst.Ticker = src.Ticker
	}
	if dst.CompanyName == "" {
		dst.CompanyName = src.CompanyName
	}
	if dst.CIK == "" {
		dst.CIK = src.CIK
	}
	if dst.FilingType == "" {
		dst.FilingType = src.FilingType
	}
	if dst.FilingID == "" {
		dst.FilingID = src.FilingID
	}
	if dst.FilingURL == "" {
		dst.FilingURL = src.FilingURL
	}
	if dst.FiledDate == "" {
		dst.FiledDate = src.FiledDate
	}
	if dst.OfferType == "" {
		dst.OfferType = src.OfferType
	}
	if dst.OfferTypeDetail == "" {
		dst.OfferTypeDetail = src.OfferTypeDetail
	}
	if dst.OfferPrice == "" {
		dst.OfferPrice = src.OfferPrice
	}
	if dst.OfferPriceLow == nil {
		dst.OfferPriceLow = src.OfferPriceLow
	}
	if dst.OfferPriceHigh == nil {
		dst.OfferPriceHigh = src.OfferPriceHigh
	}
	if dst.ExpiryDate == "" {
		dst.ExpiryDate = src.ExpiryDate
	}
	if len(dst.Conditions) == 0 {
		dst.Conditions = src.Conditions
	}
	if !dst.OddLotPriority {
		dst.OddLotPriority = src.OddLotPriority
	}
	if dst.OddLotThreshold == 0 {
		dst.OddLotThreshold = src.OddLotThreshold
	}
	if dst.TotalValue == "" {
		dst.TotalValue = src.TotalValue
	}
	if dst.TotalValueNum == 0 {
		dst.TotalValueNum = src.TotalValueNum
	}
	if dst.Status == "" {
		dst.Status = src.Status
	}
	if dst.CurrentPrice == nil {
		dst.CurrentPrice = src.CurrentPrice
	}
	if dst.SharesOutstanding == 0 {
		dst.SharesOutstanding = src.SharesOutstanding
	}
	if dst.MarketCap == 0 {
		dst.MarketCap = src.MarketCap
	}
}

// ApplyQuote overlays fresh market data on a deal. Live quote values win
// over whatever a discovery source carried, except the display name which
// only fills an absent company name.
func ApplyQuote(d *types.Deal, q *types.Quote) {
	if q == nil {
		return
	}
	if q.CurrentPrice != nil {
		d.CurrentPrice = q.CurrentPrice
	}
	if q.SharesOutstanding != 0 {
		d.SharesOutstanding = q.SharesOutstanding
	}
	if q.MarketCap != 0 {
		d.MarketCap = q.MarketCap
	}
	if d.CompanyName == "" {
		d.CompanyName = q.Name
	}
}
