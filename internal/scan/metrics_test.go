package scan

import (
	"testing"
	"time"

	"tenderscan/internal/types"
)

func f64(v float64) *float64 { return &v }

var testNow = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func TestComputeMetricsFixedPrice(t *testing.T) {
	d := types.Deal{
		Ticker:         "DCBO",
		OfferPriceLow:  f64(20.40),
		OfferPriceHigh: f64(20.40),
		CurrentPrice:   f64(17.05),
		ExpiryDate:     "2026-03-11",
	}

	out := ComputeMetrics(d, testNow)

	if out.SpreadAbs == nil || *out.SpreadAbs != 3.35 {
		t.Fatalf("expected spread abs 3.35, got %v", out.SpreadAbs)
	}
	if *out.SpreadPct != 19.65 {
		t.Errorf("expected spread pct 19.65, got %v", *out.SpreadPct)
	}
	// Fixed price offers alias the low-end metrics to the high end.
	if *out.SpreadAbsLow != 3.35 || *out.SpreadPctLow != 19.65 {
		t.Errorf("low-end metrics should equal high-end for fixed price, got %v / %v",
			*out.SpreadAbsLow, *out.SpreadPctLow)
	}
	if *out.DaysRemaining != 10 {
		t.Errorf("expected 10 days remaining, got %d", *out.DaysRemaining)
	}
	if *out.AnnualizedReturn != 717.2 {
		t.Errorf("expected annualized 717.2, got %v", *out.AnnualizedReturn)
	}
}

func TestComputeMetricsDutchAuctionLowEnd(t *testing.T) {
	d := types.Deal{
		Ticker:         "YEXT",
		OfferPriceLow:  f64(5.75),
		OfferPriceHigh: f64(6.50),
		CurrentPrice:   f64(5.68),
		OddLotPriority: true,
		ExpiryDate:     "2026-03-12",
	}

	out := ComputeMetrics(d, testNow)

	if *out.SpreadAbs != 0.82 || *out.SpreadPct != 14.44 {
		t.Errorf("high-end spread: got %v / %v", *out.SpreadAbs, *out.SpreadPct)
	}
	if *out.SpreadAbsLow != 0.07 || *out.SpreadPctLow != 1.23 {
		t.Errorf("low-end spread: got %v / %v", *out.SpreadAbsLow, *out.SpreadPctLow)
	}
}

func TestComputeMetricsOddLotScenarios(t *testing.T) {
	d := types.Deal{
		Ticker:         "YEXT",
		OfferPriceLow:  f64(5.75),
		OfferPriceHigh: f64(6.50),
		CurrentPrice:   f64(5.68),
		OddLotPriority: true,
		ExpiryDate:     "2026-03-12",
	}

	out := ComputeMetrics(d, testNow)

	lot := out.OddLotScenario(99)
	if lot == nil {
		t.Fatal("expected a 99-share scenario")
	}
	if lot.Cost != 562.32 || lot.Revenue != 643.50 || lot.Profit != 81.18 {
		t.Errorf("99-share economics: got cost %v revenue %v profit %v", lot.Cost, lot.Revenue, lot.Profit)
	}
	if out.OddLotScenario(50) == nil {
		t.Error("expected a 50-share scenario")
	}
}

func TestComputeMetricsNoOddLotScenariosWithoutPriority(t *testing.T) {
	d := types.Deal{
		Ticker:         "GLDD",
		OfferPriceHigh: f64(17.00),
		CurrentPrice:   f64(16.91),
		ExpiryDate:     "2026-06-30",
	}

	out := ComputeMetrics(d, testNow)
	if len(out.OddLots) != 0 {
		t.Errorf("no odd-lot scenarios expected without priority, got %d", len(out.OddLots))
	}
}

func TestComputeMetricsUnparseableExpiryDefaults(t *testing.T) {
	d := types.Deal{
		Ticker:         "XXXX",
		OfferPriceHigh: f64(10.00),
		CurrentPrice:   f64(9.00),
		ExpiryDate:     "upon completion of the merger",
	}

	out := ComputeMetrics(d, testNow)
	if out.DaysRemaining == nil || *out.DaysRemaining != 30 {
		t.Errorf("unparseable expiry should default to 30 days, got %v", out.DaysRemaining)
	}
}

func TestComputeMetricsPastExpiryFloorsAtOneDay(t *testing.T) {
	d := types.Deal{
		Ticker:         "XXXX",
		OfferPriceHigh: f64(10.00),
		CurrentPrice:   f64(9.00),
		ExpiryDate:     "2026-02-01",
	}

	out := ComputeMetrics(d, testNow)
	if *out.DaysRemaining != 1 {
		t.Errorf("past expiry should floor at 1 day, got %d", *out.DaysRemaining)
	}
}

func TestComputeMetricsMissingPricesLeavesDealUntouched(t *testing.T) {
	d := types.Deal{Ticker: "UNKN", ExpiryDate: "2026-03-12"}

	out := ComputeMetrics(d, testNow)
	if out.SpreadPct != nil || out.DaysRemaining != nil || out.AnnualizedReturn != nil {
		t.Errorf("deal without prices should gain no metrics: %+v", out)
	}
	if out.HasSpread() {
		t.Error("HasSpread should be false without metrics")
	}
}

func TestComputeMetricsParsesLongFormDates(t *testing.T) {
	d := types.Deal{
		Ticker:         "XXXX",
		OfferPriceHigh: f64(10.00),
		CurrentPrice:   f64(9.00),
		ExpiryDate:     "March 12, 2026",
	}

	out := ComputeMetrics(d, testNow)
	if *out.DaysRemaining != 11 {
		t.Errorf("expected 11 days for March 12, got %d", *out.DaysRemaining)
	}
}
