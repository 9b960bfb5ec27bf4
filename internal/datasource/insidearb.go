package datasource

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"tenderscan/internal/logger"
	"tenderscan/internal/types"
)

const insideArbitrageURL = "https://www.insidearbitrage.com/tender-offers/"

var offerPriceRe = regexp.MustCompile(`\$?\s*(\d+(?:\.\d+)?)(?:\s*(?:-|to)\s*\$?\s*(\d+(?:\.\d+)?))?`)

// InsideArbitrageSource scrapes the InsideArbitrage active tender offer
// list. It supplements EDGAR with offer prices and expiry dates that the
// filing metadata alone does not carry.
type InsideArbitrageSource struct {
	timeout time.Duration
}

// NewInsideArbitrageSource creates the scraper with the given request timeout.
func NewInsideArbitrageSource(timeout time.Duration) *InsideArbitrageSource {
	return &InsideArbitrageSource{timeout: timeout}
}

// Name implements interfaces.DealSource.
func (s *InsideArbitrageSource) Name() string { return "insidearbitrage" }

// FetchDeals scrapes the tender offer table. One stub per row; rows without
// a ticker are skipped.
func (s *InsideArbitrageSource) FetchDeals(ctx context.Context) ([]types.Deal, error) {
	deals := []types.Deal{}

	c := colly.NewCollector(
		colly.AllowedDomains("www.insidearbitrage.com", "insidearbitrage.com"),
		colly.MaxDepth(1),
		colly.Async(false),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	})

	c.OnHTML("table tr", func(e *colly.HTMLElement) {
		cols := e.DOM.Find("td")
		if cols.Length() < 6 {
			return
		}
		ticker := strings.TrimSpace(cols.Eq(0).Text())
		if ticker == "" {
			return
		}
		deal := types.Deal{
			Ticker:      ticker,
			CompanyName: strings.TrimSpace(cols.Eq(1).Text()),
			OfferPrice:  strings.TrimSpace(cols.Eq(2).Text()),
			ExpiryDate:  strings.TrimSpace(cols.Eq(3).Text()),
			FilingType:  strings.TrimSpace(cols.Eq(4).Text()),
		}
		if deal.FilingType == "" {
			deal.FilingType = "Unknown"
		}
		parseOfferPrice(&deal)
		deals = append(deals, deal)
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.Warn(ctx, "InsideArbitrage request failed", "status", r.StatusCode, "error", err)
	})

	if err := c.Visit(insideArbitrageURL); err != nil {
		return nil, err
	}
	c.Wait()

	logger.Info(ctx, "InsideArbitrage scrape completed", "listings", len(deals))
	return deals, nil
}

// parseOfferPrice turns a display price like "$20.40" or "$5.75 - $6.50"
// into numeric low/high bounds. Unparseable prices leave the bounds unset.
func parseOfferPrice(deal *types.Deal) {
	m := offerPriceRe.FindStringSubmatch(deal.OfferPrice)
	if m == nil {
		return
	}
	low, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return
	}
	high := low
	if m[2] != "" {
		if h, err := strconv.ParseFloat(m[2], 64); err == nil {
			high = h
		}
	}
	deal.OfferPriceLow = &low
	deal.OfferPriceHigh = &high
}
