package datasource

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"time"

	"tenderscan/internal/api"
	"tenderscan/internal/types"
)

const yahooQuoteURL = "https://query1.finance.yahoo.com/v7/finance/quote"

// yahooQuoteResponse is the top-level Yahoo Finance API response.
type yahooQuoteResponse struct {
	QuoteResponse struct {
		Result []yahooQuoteResult `json:"result"`
	} `json:"quoteResponse"`
}

// yahooQuoteResult is a single quote result from Yahoo Finance.
type yahooQuoteResult struct {
	Symbol             string  `json:"symbol"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	SharesOutstanding  int64   `json:"sharesOutstanding"`
	MarketCap          int64   `json:"marketCap"`
	ShortName          string  `json:"shortName"`
	LongName           string  `json:"longName"`
}

// YahooQuotes fetches market snapshots from the Yahoo Finance quote API.
type YahooQuotes struct {
	client  *api.Client
	baseURL string
}

// NewYahooQuotes creates the quote provider.
func NewYahooQuotes() *YahooQuotes {
	opts := []api.ClientOption{
		api.WithTimeout(15 * time.Second),
	}
	for k, v := range api.YahooFinanceHeaders() {
		opts = append(opts, api.WithHeader(k, v))
	}
	return &YahooQuotes{
		client:  api.NewClient(opts...),
		baseURL: yahooQuoteURL,
	}
}

// FetchQuote implements interfaces.QuoteProvider.
func (y *YahooQuotes) FetchQuote(ctx context.Context, ticker string) (*types.Quote, error) {
	params := url.Values{}
	params.Set("symbols", ticker)

	resp, err := y.client.GET(ctx, y.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var body yahooQuoteResponse
	if err := resp.ParseJSON(&body); err != nil {
		return nil, err
	}
	if len(body.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("no quote data for %s", ticker)
	}

	r := body.QuoteResponse.Result[0]
	quote := &types.Quote{
		Ticker:            ticker,
		SharesOutstanding: r.SharesOutstanding,
		MarketCap:         r.MarketCap,
	}
	if r.RegularMarketPrice != 0 {
		price := math.Round(r.RegularMarketPrice*100) / 100
		quote.CurrentPrice = &price
	}
	if r.ShortName != "" {
		quote.Name = r.ShortName
	} else {
		quote.Name = r.LongName
	}
	return quote, nil
}
