package scan

import (
	"testing"

	"tenderscan/internal/types"
)

func TestMergeSourcesFillsMissingFields(t *testing.T) {
	edgar := []types.Deal{
		{Ticker: "YEXT", CompanyName: "Yext, Inc.", FilingType: "SC TO-I", CIK: "0001614178"},
	}
	ia := []types.Deal{
		{Ticker: "YEXT", OfferPrice: "5.75-6.50", ExpiryDate: "2026-03-12", FilingType: "Unknown"},
	}

	merged := MergeSources(edgar, ia)
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged deal, got %d", len(merged))
	}

	d := merged[0]
	if d.FilingType != "SC TO-I" {
		t.Errorf("primary source filing type should win, got %q", d.FilingType)
	}
	if d.OfferPrice != "5.75-6.50" {
		t.Errorf("missing offer price should be filled from secondary source, got %q", d.OfferPrice)
	}
	if d.ExpiryDate != "2026-03-12" {
		t.Errorf("missing expiry should be filled, got %q", d.ExpiryDate)
	}
	if d.CompanyName != "Yext, Inc." {
		t.Errorf("company name should be untouched, got %q", d.CompanyName)
	}
}

func TestMergeSourcesDedupesWithinSourceByFiledDate(t *testing.T) {
	edgar := []types.Deal{
		{Ticker: "DCBO", FiledDate: "2026-01-10", FilingID: "original"},
		{Ticker: "DCBO", FiledDate: "2026-02-01", FilingID: "amendment"},
		{Ticker: "DCBO", FiledDate: "2026-01-20", FilingID: "stale"},
	}

	merged := MergeSources(edgar)
	if len(merged) != 1 {
		t.Fatalf("expected 1 deal after dedup, got %d", len(merged))
	}
	if merged[0].FilingID != "amendment" {
		t.Errorf("most recent filing should replace earlier ones, got %q", merged[0].FilingID)
	}
}

func TestMergeSourcesDropsTickerlessFromSecondarySources(t *testing.T) {
	edgar := []types.Deal{
		{CompanyName: "Some Private Fund LP", CIK: "0009999999"},
	}
	ia := []types.Deal{
		{CompanyName: "Unidentifiable Co"},
	}

	merged := MergeSources(edgar, ia)
	if len(merged) != 1 {
		t.Fatalf("expected 1 deal, got %d", len(merged))
	}
	if merged[0].CIK != "0009999999" {
		t.Errorf("primary ticker-less deal should be kept by CIK, got %+v", merged[0])
	}
}

func TestMergeSourcesPreservesInsertionOrder(t *testing.T) {
	edgar := []types.Deal{
		{Ticker: "AAA"},
		{Ticker: "BBB"},
	}
	ia := []types.Deal{
		{Ticker: "CCC"},
		{Ticker: "AAA", OfferPrice: "10.00"},
	}

	merged := MergeSources(edgar, ia)
	want := []string{"AAA", "BBB", "CCC"}
	if len(merged) != len(want) {
		t.Fatalf("expected %d deals, got %d", len(want), len(merged))
	}
	for i, ticker := range want {
		if merged[i].Ticker != ticker {
			t.Errorf("position %d: expected %s, got %s", i, ticker, merged[i].Ticker)
		}
	}
}

func TestMergeSourcesIdempotent(t *testing.T) {
	src := []types.Deal{
		{Ticker: "GLDD", OfferPrice: "17.00"},
		{Ticker: "ACLX", OfferPrice: "115.00"},
	}

	once := MergeSources(src)
	twice := MergeSources(once)
	if len(once) != len(twice) {
		t.Fatalf("re-merging changed deal count: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Ticker != twice[i].Ticker || once[i].OfferPrice != twice[i].OfferPrice {
			t.Errorf("re-merging changed deal %d: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestApplyQuoteLiveDataWins(t *testing.T) {
	stale := 10.0
	live := 17.05
	d := types.Deal{Ticker: "DCBO", CompanyName: "Docebo Inc.", CurrentPrice: &stale}
	q := types.Quote{Ticker: "DCBO", CurrentPrice: &live, MarketCap: 490000000, Name: "Docebo"}

	ApplyQuote(&d, &q)
	if *d.CurrentPrice != 17.05 {
		t.Errorf("live price should overwrite stale price, got %v", *d.CurrentPrice)
	}
	if d.MarketCap != 490000000 {
		t.Errorf("market cap should be applied, got %d", d.MarketCap)
	}
	if d.CompanyName != "Docebo Inc." {
		t.Errorf("existing company name should not be overwritten, got %q", d.CompanyName)
	}
}

func TestApplyQuoteFillsAbsentName(t *testing.T) {
	d := types.Deal{Ticker: "LE"}
	q := types.Quote{Ticker: "LE", Name: "Lands' End"}

	ApplyQuote(&d, &q)
	if d.CompanyName != "Lands' End" {
		t.Errorf("absent company name should be filled from quote, got %q", d.CompanyName)
	}
}
