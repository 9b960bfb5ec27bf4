package scan

import (
	"fmt"

	"tenderscan/internal/types"
)

// Risk flag thresholds.
const (
	largeSpreadPct     = 20.0
	longHoldingDays    = 60
	imminentDeadline   = 5
	urgentAnalysisDays = 14
)

// RiskFlags derives the ordered list of risk factors for a deal after
// metrics. Order is significant: structural risks come first, the generic
// withdrawal caveat is always last. A deal with no computed metrics is
// treated as spread 0 and days 0, so the imminent-deadline flag fires for
// unverified deals rather than hiding them.
func RiskFlags(d *types.Deal) []string {
	spread := 0.0
	if d.SpreadPct != nil {
		spread = *d.SpreadPct
	}
	days := 0
	if d.DaysRemaining != nil {
		days = *d.DaysRemaining
	}

	var risks []string

	if spread < 0 {
		risks = append(risks, "⚠️ Negative spread: current price is above the offer price")
	}
	if spread > largeSpreadPct {
		risks = append(risks, "⚠️ Abnormally large spread: may reflect high proration or condition risk")
	}

	if d.IsPartial() {
		risks = append(risks, "🔴 Partial acquisition: serious proration risk")
	}
	if !d.OddLotPriority {
		risks = append(risks, "⚠️ No odd-lot priority: pro-rata reduction applies to all holders")
	}

	for _, cond := range d.Conditions {
		risks = append(risks, fmt.Sprintf("📋 Condition: %s", cond))
	}

	// Evaluated independently, not as an else-branch.
	if days > longHoldingDays {
		risks = append(risks, "⏳ Long holding period: capital stays tied up")
	}
	if days <= imminentDeadline {
		risks = append(risks, "⚡ Imminent deadline: little time left to act")
	}

	risks = append(risks, "📉 Offer may be withdrawn or amended")

	return risks
}

// AnalysisText builds the human-readable narrative for a deal: a quality
// summary keyed on spread and odd-lot priority, plus mechanism-specific
// warnings for Dutch auctions and partial acquisitions.
func AnalysisText(d *types.Deal) string {
	ticker := d.Ticker
	if ticker == "" {
		ticker = "Unknown"
	}
	spread := 0.0
	if d.SpreadPct != nil {
		spread = *d.SpreadPct
	}
	days := 0
	if d.DaysRemaining != nil {
		days = *d.DaysRemaining
	}

	var lines []string

	switch {
	case spread > 10 && d.OddLotPriority:
		lines = append(lines, fmt.Sprintf("**%s is a high-quality odd-lot arbitrage opportunity.** Spread of %.2f%%, and odd-lot holders (<100 shares) are exempt from proration.", ticker, spread))
	case spread > 5 && d.OddLotPriority:
		lines = append(lines, fmt.Sprintf("%s offers a moderate spread (%.2f%%); odd-lot priority adds certainty.", ticker, spread))
	case spread > 0:
		lines = append(lines, fmt.Sprintf("%s has a positive spread (%.2f%%), but watch proration and condition risk.", ticker, spread))
	default:
		lines = append(lines, fmt.Sprintf("%s currently shows a minimal or negative spread (%.2f%%), leaving little arbitrage room.", ticker, spread))
	}

	if d.IsDutchAuction() {
		lines = append(lines, "Under the Dutch auction mechanism the final clearing price depends on subscription levels and may exceed the minimum. Tender at the high end of the range.")
	}
	if d.IsPartial() {
		lines = append(lines, "**Note: this is a partial acquisition with very high proration risk.** Most tendered shares may not be accepted.")
	}
	if days <= urgentAnalysisDays {
		lines = append(lines, fmt.Sprintf("Only %d days until expiry; act promptly.", days))
	}

	out := ""
	for i, line := range lines {
		if i > 0 {
			out += " "
		}
		out += line
	}
	return out
}
