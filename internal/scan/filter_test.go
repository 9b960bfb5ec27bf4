package scan

import (
	"context"
	"testing"

	"tenderscan/internal/types"
)

func TestFilterEligibleSpreadThreshold(t *testing.T) {
	deals := []types.Deal{
		{Ticker: "THIN", SpreadPct: f64(0.3), DaysRemaining: intp(20)},
		{Ticker: "OK", SpreadPct: f64(2.0), DaysRemaining: intp(20)},
	}

	out := FilterEligible(context.Background(), deals, Criteria{MinSpreadPct: 0.5, MaxDaysToExpiry: 90})
	if len(out) != 1 || out[0].Ticker != "OK" {
		t.Fatalf("expected only OK to survive, got %+v", out)
	}
}

func TestFilterEligibleZeroMinSpreadKeepsEverything(t *testing.T) {
	deals := []types.Deal{
		{Ticker: "NEG", SpreadPct: f64(-3), DaysRemaining: intp(20)},
	}

	out := FilterEligible(context.Background(), deals, Criteria{MinSpreadPct: 0, MaxDaysToExpiry: 90})
	if len(out) != 1 {
		t.Fatalf("min spread of zero must not filter, got %d deals", len(out))
	}
}

func TestFilterEligibleMaxDays(t *testing.T) {
	deals := []types.Deal{
		{Ticker: "FAR", SpreadPct: f64(5), DaysRemaining: intp(120)},
		{Ticker: "SOON", SpreadPct: f64(5), DaysRemaining: intp(30)},
	}

	out := FilterEligible(context.Background(), deals, Criteria{MaxDaysToExpiry: 90})
	if len(out) != 1 || out[0].Ticker != "SOON" {
		t.Fatalf("expected only SOON to survive, got %+v", out)
	}
}

func TestFilterEligibleOddLotOnly(t *testing.T) {
	deals := []types.Deal{
		{Ticker: "NOLOT", SpreadPct: f64(5), DaysRemaining: intp(30)},
		{Ticker: "LOT", SpreadPct: f64(5), DaysRemaining: intp(30), OddLotPriority: true},
	}

	out := FilterEligible(context.Background(), deals, Criteria{MaxDaysToExpiry: 90, OddLotOnly: true})
	if len(out) != 1 || out[0].Ticker != "LOT" {
		t.Fatalf("expected only LOT to survive, got %+v", out)
	}
}

func TestFilterEligibleKeepsSpreadlessDealsForVerification(t *testing.T) {
	deals := []types.Deal{
		{Ticker: "UNKN", FilingType: "SC TO-I"},
	}

	out := FilterEligible(context.Background(), deals, Criteria{MinSpreadPct: 0.5, MaxDaysToExpiry: 90})
	if len(out) != 1 {
		t.Fatalf("spread-less deal must be kept, got %d deals", len(out))
	}
	d := out[0]
	if !d.NeedsVerification {
		t.Error("spread-less deal should be flagged for verification")
	}
	if d.OfferType != "Pending Verification" {
		t.Errorf("default offer type expected, got %q", d.OfferType)
	}
	if d.OfferTypeDetail != "Details pending, needs filing review" {
		t.Errorf("default offer detail expected, got %q", d.OfferTypeDetail)
	}
}

func TestFilterEligibleSpreadlessKeepsExistingOfferType(t *testing.T) {
	deals := []types.Deal{
		{Ticker: "UNKN", OfferType: "Issuer Bid (Fixed Price)"},
	}

	out := FilterEligible(context.Background(), deals, Criteria{})
	if out[0].OfferType != "Issuer Bid (Fixed Price)" {
		t.Errorf("existing offer type must not be replaced, got %q", out[0].OfferType)
	}
}
