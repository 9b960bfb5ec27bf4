package scan

import (
	"context"

	"tenderscan/internal/logger"
	"tenderscan/internal/types"
)

// Criteria is the post-metrics eligibility filter configuration.
type Criteria struct {
	MinSpreadPct    float64
	MaxDaysToExpiry int
	OddLotOnly      bool
}

// FilterEligible applies the configured eligibility rules after metrics.
// Deals with no spread data (offer price still unknown) are kept and
// flagged for verification rather than discarded: the filing may hold the
// terms the discovery sources lacked.
func FilterEligible(ctx context.Context, deals []types.Deal, c Criteria) []types.Deal {
	filtered := make([]types.Deal, 0, len(deals))

	for _, d := range deals {
		hasSpread := d.HasSpread()

		if hasSpread && c.MinSpreadPct > 0 && *d.SpreadPct < c.MinSpreadPct {
			logger.Info(ctx, "Skipping deal below spread threshold",
				"ticker", d.Ticker, "spread_pct", *d.SpreadPct, "min_spread_pct", c.MinSpreadPct)
			continue
		}
		if hasSpread && c.MaxDaysToExpiry > 0 && daysOrFar(&d) > c.MaxDaysToExpiry {
			continue
		}
		if c.OddLotOnly && !d.OddLotPriority {
			continue
		}

		if !hasSpread {
			d.NeedsVerification = true
			if d.OfferType == "" {
				d.OfferType = "Pending Verification"
			}
			if d.OfferTypeDetail == "" {
				d.OfferTypeDetail = "Details pending, needs filing review"
			}
		}

		filtered = append(filtered, d)
	}

	return filtered
}

func daysOrFar(d *types.Deal) int {
	if d.DaysRemaining == nil {
		return 999
	}
	return *d.DaysRemaining
}
