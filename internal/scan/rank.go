package scan

import (
	"sort"
	"strconv"

	"tenderscan/internal/types"
)

// rankLabels decorate the top positions in reports.
var rankLabels = []string{"⭐1", "⭐2", "🥉", "4", "5", "6", "7", "8", "9", "10"}

// ScoreDeal computes the composite attractiveness score for one deal.
//
// An unknown spread contributes 0 to the bonus term but still trips the
// non-positive-spread penalty: unknown is substituted as zero before
// scoring. Unknown days-remaining behaves as a far-future 999 and earns no
// time bonus. These asymmetries are deliberate and pinned by tests.
func ScoreDeal(d *types.Deal) float64 {
	spread := 0.0
	if d.SpreadPct != nil {
		spread = *d.SpreadPct
	}
	days := 999
	if d.DaysRemaining != nil {
		days = *d.DaysRemaining
	}

	score := 0.0

	if spread > 0 {
		score += spread * 10
	}
	if d.OddLotPriority {
		score += 50
	}
	if days <= 30 {
		score += 20
	} else if days <= 60 {
		score += 10
	}

	// Partial acquisitions carry the worst proration risk.
	if d.IsPartial() {
		score -= 30
	}
	if spread <= 0 {
		score -= 50
	}

	return score
}

// RankDeals scores every deal, sorts descending by score and assigns
// 1-based ranks, rank labels and the 1-5 rating tier. The sort is stable:
// equal scores keep their original relative order, so identical input
// always produces identical output.
func RankDeals(deals []types.Deal) []types.Deal {
	for i := range deals {
		deals[i].Score = ScoreDeal(&deals[i])
	}

	sort.SliceStable(deals, func(i, j int) bool {
		return deals[i].Score > deals[j].Score
	})

	for i := range deals {
		deals[i].Rank = i + 1
		if i < len(rankLabels) {
			deals[i].RankLabel = rankLabels[i]
		} else {
			deals[i].RankLabel = strconv.Itoa(i + 1)
		}
		deals[i].Rating = ratingTier(deals[i].Score)
	}

	return deals
}

// ratingTier maps a score to a bounded 1-5 star tier, never 0 and never
// above 5 regardless of how negative or large the score is.
func ratingTier(score float64) int {
	tier := int(score / 20)
	if tier < 1 {
		return 1
	}
	if tier > 5 {
		return 5
	}
	return tier
}
