package datasource

import (
	"context"
	"testing"

	"tenderscan/internal/types"
)

func TestExtractTicker(t *testing.T) {
	cases := []struct {
		display string
		want    string
	}{
		{"Yext, Inc.  (YEXT)  (CIK 0001614178)", "YEXT"},
		{"Docebo Inc. (DCBO) (CIK 0001829959)", "DCBO"},
		{"Some Private Fund LP (CIK 0009999999)", ""},
		{"", ""},
		{"Lands' End, Inc. (LE)", "LE"},
	}
	for _, c := range cases {
		if got := extractTicker(c.display); got != c.want {
			t.Errorf("extractTicker(%q) = %q, want %q", c.display, got, c.want)
		}
	}
}

func TestCleanCompanyName(t *testing.T) {
	cases := []struct {
		display string
		want    string
	}{
		{"Yext, Inc.  (YEXT)  (CIK 0001614178)", "Yext, Inc."},
		{"Some Private Fund LP (CIK 0009999999)", "Some Private Fund LP"},
		{"", "Unknown"},
		{"(ABCD)", "Unknown"},
	}
	for _, c := range cases {
		if got := cleanCompanyName(c.display); got != c.want {
			t.Errorf("cleanCompanyName(%q) = %q, want %q", c.display, got, c.want)
		}
	}
}

func TestFilingIndexURL(t *testing.T) {
	got := filingIndexURL("0001193125-26-045678:d12345dsctoi.htm", "0001614178")
	want := "https://www.sec.gov/Archives/edgar/data/1614178/000119312526045678/0001193125-26-045678-index.htm"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if got := filingIndexURL("no-colon-here", "0001614178"); got != "" {
		t.Errorf("hit id without document part should yield no URL, got %q", got)
	}
	if got := filingIndexURL("acc:doc", ""); got != "" {
		t.Errorf("missing CIK should yield no URL, got %q", got)
	}
}

func TestParseOfferPrice(t *testing.T) {
	cases := []struct {
		raw       string
		low, high float64
		parsed    bool
	}{
		{"$20.40", 20.40, 20.40, true},
		{"$5.75 - $6.50", 5.75, 6.50, true},
		{"5.75 to 6.50", 5.75, 6.50, true},
		{"TBD", 0, 0, false},
	}
	for _, c := range cases {
		d := types.Deal{OfferPrice: c.raw}
		parseOfferPrice(&d)
		if !c.parsed {
			if d.OfferPriceLow != nil {
				t.Errorf("%q should not parse, got %v", c.raw, *d.OfferPriceLow)
			}
			continue
		}
		if d.OfferPriceLow == nil || d.OfferPriceHigh == nil {
			t.Errorf("%q should parse", c.raw)
			continue
		}
		if *d.OfferPriceLow != c.low || *d.OfferPriceHigh != c.high {
			t.Errorf("%q parsed as %v-%v, want %v-%v", c.raw, *d.OfferPriceLow, *d.OfferPriceHigh, c.low, c.high)
		}
	}
}

func TestSampleSourceDeals(t *testing.T) {
	src := NewSampleSource()
	deals, err := src.FetchDeals(context.Background())
	if err != nil {
		t.Fatalf("sample source must not fail: %v", err)
	}
	if len(deals) != 5 {
		t.Fatalf("expected 5 sample deals, got %d", len(deals))
	}

	byTicker := make(map[string]types.Deal)
	for _, d := range deals {
		byTicker[d.Ticker] = d
	}

	yext, ok := byTicker["YEXT"]
	if !ok {
		t.Fatal("YEXT missing from samples")
	}
	if !yext.IsDutchAuction() || !yext.OddLotPriority {
		t.Errorf("YEXT should be an odd-lot dutch auction: %+v", yext)
	}
	if *yext.OfferPriceLow != 5.75 || *yext.OfferPriceHigh != 6.50 {
		t.Errorf("YEXT price range wrong: %v-%v", *yext.OfferPriceLow, *yext.OfferPriceHigh)
	}

	le := byTicker["LE"]
	if !le.IsPartial() {
		t.Errorf("LE should be a partial offer, got %q", le.OfferType)
	}
}
