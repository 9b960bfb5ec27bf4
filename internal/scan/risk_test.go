package scan

import (
	"strings"
	"testing"

	"tenderscan/internal/types"
)

func TestRiskFlagsOrderAndCaveat(t *testing.T) {
	d := types.Deal{
		Ticker:        "LE",
		OfferType:     "Third-Party (Partial)",
		SpreadPct:     f64(158.62),
		DaysRemaining: intp(25),
		Conditions:    []string{"JV transaction must close first", "Only acquiring ~7% of shares"},
	}

	risks := RiskFlags(&d)

	if len(risks) < 6 {
		t.Fatalf("expected at least 6 risk flags, got %d: %v", len(risks), risks)
	}
	if !strings.Contains(risks[0], "Abnormally large spread") {
		t.Errorf("large spread should come first, got %q", risks[0])
	}
	if !strings.Contains(risks[1], "Partial acquisition") {
		t.Errorf("partial flag expected second, got %q", risks[1])
	}
	if risks[3] != "📋 Condition: JV transaction must close first" {
		t.Errorf("conditions must appear verbatim in order, got %q", risks[3])
	}
	if risks[4] != "📋 Condition: Only acquiring ~7% of shares" {
		t.Errorf("second condition wrong, got %q", risks[4])
	}
	last := risks[len(risks)-1]
	if !strings.Contains(last, "withdrawn or amended") {
		t.Errorf("withdrawal caveat must always come last, got %q", last)
	}
}

func TestRiskFlagsNegativeSpread(t *testing.T) {
	d := types.Deal{Ticker: "XXXX", SpreadPct: f64(-1.5), OddLotPriority: true, DaysRemaining: intp(30)}
	risks := RiskFlags(&d)
	if !strings.Contains(risks[0], "Negative spread") {
		t.Errorf("expected negative spread flag first, got %q", risks[0])
	}
	for _, r := range risks {
		if strings.Contains(r, "No odd-lot priority") {
			t.Errorf("odd-lot flag should not fire when priority is set: %q", r)
		}
	}
}

func TestRiskFlagsLongAndImminentAreIndependent(t *testing.T) {
	long := types.Deal{Ticker: "GLDD", SpreadPct: f64(0.53), DaysRemaining: intp(121)}
	risks := RiskFlags(&long)
	if !containsSubstring(risks, "Long holding period") {
		t.Errorf("expected long holding flag for 121 days: %v", risks)
	}
	if containsSubstring(risks, "Imminent deadline") {
		t.Errorf("imminent flag should not fire for 121 days: %v", risks)
	}

	imminent := types.Deal{Ticker: "DCBO", SpreadPct: f64(19.65), DaysRemaining: intp(3)}
	risks = RiskFlags(&imminent)
	if !containsSubstring(risks, "Imminent deadline") {
		t.Errorf("expected imminent flag for 3 days: %v", risks)
	}
}

func TestRiskFlagsUnverifiedDealTreatedAsImminent(t *testing.T) {
	// No metrics at all: days behaves as zero, which trips the imminent
	// flag so unverified deals are surfaced rather than hidden.
	d := types.Deal{Ticker: "UNKN"}
	risks := RiskFlags(&d)
	if !containsSubstring(risks, "Imminent deadline") {
		t.Errorf("deal without metrics should carry the imminent flag: %v", risks)
	}
}

func TestAnalysisTextTiers(t *testing.T) {
	prime := types.Deal{Ticker: "YEXT", SpreadPct: f64(14.44), OddLotPriority: true, DaysRemaining: intp(40)}
	text := AnalysisText(&prime)
	if !strings.Contains(text, "high-quality odd-lot arbitrage opportunity") {
		t.Errorf("spread >10 with odd-lot should read as high quality: %q", text)
	}

	moderate := types.Deal{Ticker: "AAAA", SpreadPct: f64(7), OddLotPriority: true, DaysRemaining: intp(40)}
	text = AnalysisText(&moderate)
	if !strings.Contains(text, "moderate spread") {
		t.Errorf("spread 5-10 with odd-lot should read as moderate: %q", text)
	}

	thin := types.Deal{Ticker: "GLDD", SpreadPct: f64(0.53), DaysRemaining: intp(121)}
	text = AnalysisText(&thin)
	if !strings.Contains(text, "positive spread") {
		t.Errorf("small positive spread without odd-lot: %q", text)
	}

	flat := types.Deal{Ticker: "ACLX", SpreadPct: f64(0), DaysRemaining: intp(121)}
	text = AnalysisText(&flat)
	if !strings.Contains(text, "minimal or negative spread") {
		t.Errorf("zero spread should read as minimal: %q", text)
	}
}

func TestAnalysisTextMechanismWarnings(t *testing.T) {
	dutch := types.Deal{
		Ticker:         "YEXT",
		OfferType:      "Issuer Bid (Dutch Auction)",
		SpreadPct:      f64(14.44),
		OddLotPriority: true,
		DaysRemaining:  intp(11),
	}
	text := AnalysisText(&dutch)
	if !strings.Contains(text, "Dutch auction mechanism") {
		t.Errorf("dutch auction note missing: %q", text)
	}
	if !strings.Contains(text, "Only 11 days until expiry") {
		t.Errorf("urgency note missing for 11 days: %q", text)
	}

	partial := types.Deal{Ticker: "LE", OfferType: "Third-Party (Partial)", SpreadPct: f64(158.62), DaysRemaining: intp(25)}
	text = AnalysisText(&partial)
	if !strings.Contains(text, "partial acquisition with very high proration risk") {
		t.Errorf("partial warning missing: %q", text)
	}
}

func containsSubstring(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
