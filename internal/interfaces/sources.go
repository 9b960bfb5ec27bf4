package interfaces

import (
	"context"

	"tenderscan/internal/types"
)

// DealSource is a discovery source producing partial deal stubs.
// Implementations are best-effort: a failed fetch returns an error, never a
// partial panic, and the scanner continues with the remaining sources.
type DealSource interface {
	// Name identifies the source in logs.
	Name() string

	// FetchDeals returns the source's current deal stubs.
	FetchDeals(ctx context.Context) ([]types.Deal, error)
}

// QuoteProvider supplies market data for enriching scanned deals.
type QuoteProvider interface {
	// FetchQuote returns a snapshot for the ticker, or an error when the
	// ticker cannot be quoted. A nil quote with nil error means "no data".
	FetchQuote(ctx context.Context, ticker string) (*types.Quote, error)
}

// FilingRef points at a located regulatory filing.
type FilingRef struct {
	FilingType  string `json:"filing_type"`
	Description string `json:"description,omitempty"`
	FiledDate   string `json:"filed_date,omitempty"`
	FilingURL   string `json:"filing_url,omitempty"`
}

// FilingSource locates and retrieves filing documents for verification.
type FilingSource interface {
	// SearchFilings returns filings of the given type for a ticker, most
	// recent first.
	SearchFilings(ctx context.Context, ticker, filingType string) ([]FilingRef, error)

	// DownloadFilingText retrieves the filing document behind an index URL
	// as plain text (HTML already stripped). An empty string signals that
	// the document could not be retrieved.
	DownloadFilingText(ctx context.Context, filingURL string) (string, error)
}
