package scan

import (
	"context"
	"time"

	"tenderscan/internal/interfaces"
	"tenderscan/internal/logger"
	"tenderscan/internal/types"
)

// Scanner runs the discovery half of the pipeline: fetch stubs from every
// source, merge, enrich with quotes, compute metrics and annotations,
// filter, rank.
type Scanner struct {
	criteria Criteria
	sources  []interfaces.DealSource
	quotes   interfaces.QuoteProvider
	now      func() time.Time
}

// NewScanner creates a scanner over the given discovery sources, in trust
// order (the first source wins merges). quotes may be nil to skip market
// enrichment.
func NewScanner(criteria Criteria, quotes interfaces.QuoteProvider, sources ...interfaces.DealSource) *Scanner {
	return &Scanner{
		criteria: criteria,
		sources:  sources,
		quotes:   quotes,
		now:      time.Now,
	}
}

// WithClock overrides the scanner's clock, for tests.
func (s *Scanner) WithClock(now func() time.Time) *Scanner {
	s.now = now
	return s
}

// Scan produces the ranked, annotated deal collection. Source failures are
// logged and skipped; the scan only fails when it cannot produce anything
// at all.
func (s *Scanner) Scan(ctx context.Context) ([]types.Deal, error) {
	timer := logger.StartOperation(ctx, "scan", "sources", len(s.sources))
	ctx = timer.GetContext()

	lists := make([][]types.Deal, 0, len(s.sources))
	for _, src := range s.sources {
		stubs, err := src.FetchDeals(ctx)
		if err != nil {
			logger.ErrorWithErr(ctx, "Discovery source failed", err, "source", src.Name())
			continue
		}
		logger.Info(ctx, "Discovery source fetched", "source", src.Name(), "stubs", len(stubs))
		lists = append(lists, stubs)
	}

	deals := MergeSources(lists...)
	logger.Info(ctx, "Merged to unique deals", "count", len(deals))

	s.enrichQuotes(ctx, deals)

	now := s.now()
	for i := range deals {
		deals[i] = ComputeMetrics(deals[i], now)
		deals[i].Risks = RiskFlags(&deals[i])
		deals[i].Analysis = AnalysisText(&deals[i])
	}

	filtered := FilterEligible(ctx, deals, s.criteria)
	ranked := RankDeals(filtered)

	for i := range ranked {
		spread := 0.0
		if ranked[i].SpreadPct != nil {
			spread = *ranked[i].SpreadPct
		}
		logger.Opportunity(ctx, ranked[i].Ticker, ranked[i].Rank, ranked[i].Score, spread)
	}

	timer.End("opportunities", len(ranked))
	return ranked, nil
}

// enrichQuotes overlays live market data on each deal with a ticker.
// Quote failures degrade to the data the discovery sources already carry.
func (s *Scanner) enrichQuotes(ctx context.Context, deals []types.Deal) {
	if s.quotes == nil {
		return
	}
	for i := range deals {
		if deals[i].Ticker == "" {
			continue
		}
		quote, err := s.quotes.FetchQuote(ctx, deals[i].Ticker)
		if err != nil {
			logger.Warn(ctx, "Could not fetch quote", "ticker", deals[i].Ticker, "error", err)
			continue
		}
		ApplyQuote(&deals[i], quote)
	}
}
