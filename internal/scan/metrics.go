package scan

import (
	"math"
	"time"

	"tenderscan/internal/types"
)

// Lot sizes used for odd-lot profit scenarios.
var oddLotQuantities = []int{99, 50}

// defaultDaysRemaining is assumed when the expiry date cannot be parsed,
// so one bad date never sinks the whole deal.
const defaultDaysRemaining = 30

// expiryLayouts are tried in order when parsing free-text expiry dates.
var expiryLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"01/02/2006",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ComputeMetrics derives spread, time and odd-lot economics for a deal.
// It is a pure function: the input is returned with derived fields added
// and nothing else touched. When current price or the high offer bound is
// unknown the deal is returned unchanged and all metric fields stay absent.
func ComputeMetrics(d types.Deal, now time.Time) types.Deal {
	if d.CurrentPrice == nil || d.OfferPriceHigh == nil {
		return d
	}

	current := *d.CurrentPrice
	offerHigh := *d.OfferPriceHigh
	if current == 0 {
		return d
	}

	spreadAbs := round2(offerHigh - current)
	spreadPct := round2((offerHigh - current) / current * 100)
	d.SpreadAbs = &spreadAbs
	d.SpreadPct = &spreadPct

	// Dutch auctions carry a distinct low bound; fixed-price offers reuse
	// the high-end values so no separate rounding artifact appears.
	if d.OfferPriceLow != nil && *d.OfferPriceLow != offerHigh {
		offerLow := *d.OfferPriceLow
		spreadAbsLow := round2(offerLow - current)
		spreadPctLow := round2((offerLow - current) / current * 100)
		d.SpreadAbsLow = &spreadAbsLow
		d.SpreadPctLow = &spreadPctLow
	} else {
		d.SpreadAbsLow = &spreadAbs
		d.SpreadPctLow = &spreadPct
	}

	days := daysRemaining(d.ExpiryDate, now)
	d.DaysRemaining = &days

	annualized := 0.0
	if days > 0 {
		annualized = round1(spreadPct * 365 / float64(days))
	}
	d.AnnualizedReturn = &annualized

	if d.OddLotPriority {
		d.OddLots = make([]types.OddLotScenario, 0, len(oddLotQuantities))
		for _, qty := range oddLotQuantities {
			q := float64(qty)
			d.OddLots = append(d.OddLots, types.OddLotScenario{
				Qty:     qty,
				Cost:    round2(current * q),
				Revenue: round2(offerHigh * q),
				Profit:  round2((offerHigh - current) * q),
			})
		}
	}

	return d
}

// daysRemaining returns whole days between now and the expiry date, floored
// at 1 so annualization never divides by zero. An unparseable date defaults
// to 30 days.
func daysRemaining(expiry string, now time.Time) int {
	t, err := parseExpiry(expiry)
	if err != nil {
		return defaultDaysRemaining
	}
	days := int(t.Sub(now).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

func parseExpiry(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range expiryLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
