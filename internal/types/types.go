package types

import "strings"

// VerificationStatus is the outcome of cross-checking a deal against its
// regulatory filing. Exactly one status is set per reconciled deal.
type VerificationStatus string

const (
	StatusVerified              VerificationStatus = "verified"
	StatusNoFilingFound         VerificationStatus = "no_filing_found"
	StatusFilingNotDownloadable VerificationStatus = "filing_not_downloadable"
)

// DefaultOddLotThreshold is the share count below which odd-lot priority
// conventionally applies.
const DefaultOddLotThreshold = 100

// OddLotScenario holds the economics of tendering a small fixed lot.
type OddLotScenario struct {
	Qty     int     `json:"qty"`
	Cost    float64 `json:"cost"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// Deal is the canonical record flowing through the pipeline. Discovery
// sources produce partial stubs; each stage fills in its own fields.
// Optional numerics are pointers so that absence propagates instead of
// silently degrading to zero.
type Deal struct {
	// Identity
	Ticker      string `json:"ticker,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	CIK         string `json:"cik,omitempty"`
	FilingType  string `json:"filing_type,omitempty"`
	FilingID    string `json:"filing_id,omitempty"`
	FilingURL   string `json:"filing_url,omitempty"`
	FiledDate   string `json:"filed_date,omitempty"`

	// Offer terms
	OfferType       string   `json:"offer_type,omitempty"`
	OfferTypeDetail string   `json:"offer_type_detail,omitempty"`
	OfferPrice      string   `json:"offer_price,omitempty"` // display string, e.g. "5.75-6.50"
	OfferPriceLow   *float64 `json:"offer_price_low,omitempty"`
	OfferPriceHigh  *float64 `json:"offer_price_high,omitempty"`
	ExpiryDate      string   `json:"expiry_date,omitempty"`
	Conditions      []string `json:"conditions,omitempty"`
	OddLotPriority  bool     `json:"odd_lot_priority"`
	OddLotThreshold int      `json:"odd_lot_threshold,omitempty"`
	TotalValue      string   `json:"total_value,omitempty"`
	TotalValueNum   int64    `json:"total_value_num,omitempty"`
	Status          string   `json:"status,omitempty"`

	// Market data
	CurrentPrice      *float64 `json:"current_price,omitempty"`
	SharesOutstanding int64    `json:"shares_outstanding,omitempty"`
	MarketCap         int64    `json:"market_cap,omitempty"`

	// Derived metrics (computed, never input)
	SpreadAbs        *float64         `json:"spread_abs,omitempty"`
	SpreadPct        *float64         `json:"spread_pct,omitempty"`
	SpreadAbsLow     *float64         `json:"spread_abs_low,omitempty"`
	SpreadPctLow     *float64         `json:"spread_pct_low,omitempty"`
	DaysRemaining    *int             `json:"days_remaining,omitempty"`
	AnnualizedReturn *float64         `json:"annualized_return,omitempty"`
	OddLots          []OddLotScenario `json:"odd_lots,omitempty"`

	// Derived annotations
	Risks             []string `json:"risks,omitempty"`
	Analysis          string   `json:"analysis,omitempty"`
	Score             float64  `json:"score"`
	Rank              int      `json:"rank,omitempty"`
	RankLabel         string   `json:"rank_label,omitempty"`
	Rating            int      `json:"rating,omitempty"`
	NeedsVerification bool     `json:"needs_verification,omitempty"`

	// Verification fields (set only after reconciliation)
	VerificationStatus  VerificationStatus `json:"verification_status,omitempty"`
	VerificationNotes   string             `json:"verification_notes,omitempty"`
	VerifiedOfferPrices []string           `json:"verified_offer_prices,omitempty"`
	VerifiedExpiryDates []string           `json:"verified_expiry_dates,omitempty"`
	VerifiedConditions  []string           `json:"verified_conditions,omitempty"`
	ProrationConfirmed  bool               `json:"proration_confirmed,omitempty"`
	OddLotVerified      bool               `json:"odd_lot_verified,omitempty"`
	OddLotExcerpt       string             `json:"odd_lot_excerpt,omitempty"`
}

// HasSpread reports whether spread metrics could be derived for the deal.
func (d *Deal) HasSpread() bool {
	return d.SpreadPct != nil
}

// IsPartial reports whether the offer is a partial acquisition, the
// highest-proration-risk offer category.
func (d *Deal) IsPartial() bool {
	return strings.Contains(d.OfferType, "Partial")
}

// IsDutchAuction reports whether the offer uses a price range settled by
// subscription level rather than a fixed price.
func (d *Deal) IsDutchAuction() bool {
	return strings.Contains(d.OfferType, "Dutch Auction")
}

// RegistryKey returns the fallback identity key used when a ticker is
// absent: the source registry identifier (CIK), then the company name.
func (d *Deal) RegistryKey() string {
	if d.CIK != "" {
		return d.CIK
	}
	return d.CompanyName
}

// OddLotScenario returns the computed economics for the given lot size,
// or nil if odd-lot metrics were not computed.
func (d *Deal) OddLotScenario(qty int) *OddLotScenario {
	for i := range d.OddLots {
		if d.OddLots[i].Qty == qty {
			return &d.OddLots[i]
		}
	}
	return nil
}

// RatingStars renders the 1-5 rating tier as a star string for reports.
func (d *Deal) RatingStars() string {
	if d.Rating <= 0 {
		return ""
	}
	return strings.Repeat("⭐", d.Rating)
}

// Quote is a market-data snapshot used to enrich scanned deals.
type Quote struct {
	Ticker            string   `json:"ticker"`
	CurrentPrice      *float64 `json:"current_price,omitempty"`
	SharesOutstanding int64    `json:"shares_outstanding,omitempty"`
	MarketCap         int64    `json:"market_cap,omitempty"`
	Name              string   `json:"name,omitempty"`
}

// ScanResult is the JSON envelope written after a scan or verification run.
type ScanResult struct {
	ScanDate           string `json:"scan_date"`
	VerificationDate   string `json:"verification_date,omitempty"`
	TotalOpportunities int    `json:"total_opportunities"`
	Deals              []Deal `json:"deals"`
}
