package datasource

import (
	"context"

	"tenderscan/internal/types"
)

// SampleSource serves a fixed set of representative deals for dry runs: a
// Dutch auction issuer bid, a fixed-price issuer bid, a partial third-party
// offer, and two full acquisitions. No network access required.
type SampleSource struct{}

// NewSampleSource returns the dry-run source.
func NewSampleSource() *SampleSource { return &SampleSource{} }

// Name implements interfaces.DealSource.
func (s *SampleSource) Name() string { return "sample" }

// FetchDeals returns copies of the sample deals.
func (s *SampleSource) FetchDeals(ctx context.Context) ([]types.Deal, error) {
	deals := make([]types.Deal, len(sampleDeals))
	copy(deals, sampleDeals)
	return deals, nil
}

func f64(v float64) *float64 { return &v }

var sampleDeals = []types.Deal{
	{
		Ticker:            "YEXT",
		CompanyName:       "Yext, Inc.",
		OfferType:         "Issuer Bid (Dutch Auction)",
		OfferTypeDetail:   "Modified Dutch Auction, issuer repurchase",
		OfferPrice:        "5.75-6.50",
		OfferPriceLow:     f64(5.75),
		OfferPriceHigh:    f64(6.50),
		CurrentPrice:      f64(5.68),
		TotalValue:        "180,000,000",
		TotalValueNum:     180000000,
		ExpiryDate:        "2026-03-12",
		FilingType:        "SC TO-I",
		FilingURL:         "https://www.sec.gov/cgi-bin/browse-edgar?action=getcompany&company=yext&CIK=&type=SC+TO-I&dateb=&owner=include&count=10",
		FilingID:          "SC TO-I (Yext)",
		OddLotPriority:    true,
		OddLotThreshold:   100,
		SharesOutstanding: 117600000,
		MarketCap:         668000000,
		Conditions:        []string{"No minimum tender condition for issuer bid"},
		Status:            "active",
	},
	{
		Ticker:            "DCBO",
		CompanyName:       "Docebo Inc.",
		OfferType:         "Issuer Bid (Fixed Price)",
		OfferTypeDetail:   "Fixed Price Substantial Issuer Bid",
		OfferPrice:        "20.40",
		OfferPriceLow:     f64(20.40),
		OfferPriceHigh:    f64(20.40),
		CurrentPrice:      f64(17.05),
		TotalValue:        "60,000,000",
		TotalValueNum:     60000000,
		ExpiryDate:        "2026-03-10",
		FilingType:        "SC TO-I",
		FilingURL:         "https://www.sec.gov/cgi-bin/browse-edgar?action=getcompany&company=docebo&CIK=&type=SC+TO-I&dateb=&owner=include&count=10",
		FilingID:          "SC TO-I (Docebo)",
		OddLotPriority:    true,
		OddLotThreshold:   100,
		SharesOutstanding: 28750000,
		MarketCap:         490000000,
		Conditions:        []string{"Intercap Equity may participate to maintain ownership %"},
		Status:            "active",
	},
	{
		Ticker:            "LE",
		CompanyName:       "Lands' End, Inc.",
		OfferType:         "Third-Party (Partial)",
		OfferTypeDetail:   "Third-Party partial acquisition by WHP Global",
		OfferPrice:        "45.00",
		OfferPriceLow:     f64(45.00),
		OfferPriceHigh:    f64(45.00),
		CurrentPrice:      f64(17.40),
		TotalValue:        "100,000,000",
		TotalValueNum:     100000000,
		ExpiryDate:        "2026-03-26",
		FilingType:        "SC TO-T",
		FilingURL:         "https://www.sec.gov/cgi-bin/browse-edgar?action=getcompany&company=lands+end&CIK=&type=SC+TO-T&dateb=&owner=include&count=10",
		FilingID:          "SC TO-T (Lands' End / WHP)",
		OddLotThreshold:   100,
		SharesOutstanding: 31000000,
		MarketCap:         539000000,
		Conditions:        []string{"JV transaction must close first", "Only acquiring ~7% of shares"},
		Status:            "active",
	},
	{
		Ticker:            "GLDD",
		CompanyName:       "Great Lakes Dredge & Dock Corp.",
		OfferType:         "Third-Party (Full Acquisition)",
		OfferTypeDetail:   "All-cash acquisition by Saltchuk Resources",
		OfferPrice:        "17.00",
		OfferPriceLow:     f64(17.00),
		OfferPriceHigh:    f64(17.00),
		CurrentPrice:      f64(16.91),
		TotalValue:        "1,200,000,000",
		TotalValueNum:     1200000000,
		ExpiryDate:        "2026-06-30",
		FilingType:        "SC TO-T",
		FilingURL:         "https://www.sec.gov/cgi-bin/browse-edgar?action=getcompany&company=great+lakes+dredge&CIK=&type=SC+TO-T&dateb=&owner=include&count=10",
		FilingID:          "SC TO-T (GLDD / Saltchuk)",
		OddLotThreshold:   100,
		SharesOutstanding: 66000000,
		MarketCap:         1116000000,
		Conditions:        []string{"Regulatory approval required", "Majority tender condition"},
		Status:            "active",
	},
	{
		Ticker:            "ACLX",
		CompanyName:       "Arcellx, Inc.",
		OfferType:         "Third-Party (Full Acquisition)",
		OfferTypeDetail:   "All-cash acquisition by Gilead Sciences + $5 CVR",
		OfferPrice:        "115.00",
		OfferPriceLow:     f64(115.00),
		OfferPriceHigh:    f64(115.00),
		CurrentPrice:      f64(115.00),
		TotalValue:        "7,800,000,000",
		TotalValueNum:     7800000000,
		ExpiryDate:        "2026-06-30",
		FilingType:        "SC TO-T",
		FilingURL:         "https://www.sec.gov/cgi-bin/browse-edgar?action=getcompany&company=arcellx&CIK=&type=SC+TO-T&dateb=&owner=include&count=10",
		FilingID:          "SC TO-T (ACLX / Gilead)",
		OddLotThreshold:   100,
		SharesOutstanding: 67800000,
		MarketCap:         7797000000,
		Conditions:        []string{"Regulatory approval", "$5 CVR contingent on anito-cel sales >= $6B by 2029"},
		Status:            "active",
	},
}
