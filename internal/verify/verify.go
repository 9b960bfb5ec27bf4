// Package verify cross-checks scanned deals against their source filings on
// SEC EDGAR: find the filing, download its text, extract the offer terms,
// and reconcile them with the scanned record.
package verify

import (
	"context"
	"fmt"
	"strings"

	"tenderscan/internal/extract"
	"tenderscan/internal/interfaces"
	"tenderscan/internal/logger"
	"tenderscan/internal/types"
)

const defaultFilingType = "SC TO-I"

// Verifier checks deals against a filing source.
type Verifier struct {
	filings interfaces.FilingSource
}

// NewVerifier returns a verifier backed by the given filing source.
func NewVerifier(filings interfaces.FilingSource) *Verifier {
	return &Verifier{filings: filings}
}

// VerifyDeal locates the deal's filing, downloads its text, and reconciles
// the extracted terms into the deal. It always returns a deal with exactly
// one verification status set; lookup and download errors degrade to the
// no_filing_found and filing_not_downloadable statuses rather than failing.
func (v *Verifier) VerifyDeal(ctx context.Context, deal types.Deal) types.Deal {
	filingType := deal.FilingType
	if filingType == "" {
		filingType = defaultFilingType
	}

	logger.Info(ctx, "Verifying deal", "ticker", deal.Ticker, "filing_type", filingType)

	filings, err := v.filings.SearchFilings(ctx, deal.Ticker, filingType)
	if err != nil {
		logger.Warn(ctx, "Filing search failed", "ticker", deal.Ticker, "error", err)
	}
	if len(filings) == 0 {
		alt := alternateFilingType(filingType)
		filings, err = v.filings.SearchFilings(ctx, deal.Ticker, alt)
		if err != nil {
			logger.Warn(ctx, "Filing search failed", "ticker", deal.Ticker, "filing_type", alt, "error", err)
		}
	}

	if len(filings) == 0 {
		deal.VerificationStatus = types.StatusNoFilingFound
		deal.VerificationNotes = fmt.Sprintf("No %s filing found on EDGAR for %s", filingType, deal.Ticker)
		return deal
	}

	// Most recent filing first.
	latest := filings[0]
	if latest.FilingURL != "" {
		deal.FilingURL = latest.FilingURL
	}
	deal.FiledDate = latest.FiledDate

	var text string
	if latest.FilingURL != "" {
		text, err = v.filings.DownloadFilingText(ctx, latest.FilingURL)
		if err != nil {
			logger.Warn(ctx, "Filing download failed", "ticker", deal.Ticker, "url", latest.FilingURL, "error", err)
		}
	}
	if text == "" {
		deal.VerificationStatus = types.StatusFilingNotDownloadable
		deal.VerificationNotes = "Filing found but could not download document text"
		return deal
	}

	return Reconcile(deal, extract.ExtractTerms(text))
}

// Reconcile folds extracted filing terms into a deal, recording what the
// filing confirmed and flagging mismatches in the verification notes.
func Reconcile(deal types.Deal, terms *extract.Terms) types.Deal {
	var notes []string

	if len(terms.OfferPrices) > 0 {
		deal.VerifiedOfferPrices = terms.OfferPrices
		notes = append(notes, "Filing price(s): $"+strings.Join(terms.OfferPrices, ", $"))
	}

	if len(terms.ExpiryDates) > 0 {
		deal.VerifiedExpiryDates = terms.ExpiryDates
		notes = append(notes, "Filing expiry: "+strings.Join(terms.ExpiryDates, ", "))
	}

	if terms.HasOddLotPriority {
		deal.OddLotPriority = true
		deal.OddLotVerified = true
		notes = append(notes, "Odd-lot priority CONFIRMED in filing")
	} else if deal.OddLotPriority {
		notes = append(notes, "Odd-lot priority was expected but NOT found in filing text - manual check recommended")
	}

	if terms.HasProration {
		deal.ProrationConfirmed = true
		notes = append(notes, "Proration provisions confirmed")
	}

	if terms.OddLotExcerpt != "" {
		deal.OddLotExcerpt = terms.OddLotExcerpt
	}

	deal.VerificationStatus = types.StatusVerified
	if len(notes) > 0 {
		deal.VerificationNotes = strings.Join(notes, " | ")
	} else {
		deal.VerificationNotes = "Filing parsed, no additional details extracted"
	}
	deal.VerifiedConditions = terms.Conditions

	return deal
}

// VerifyAll runs VerifyDeal over every deal. A non-empty onlyTicker limits
// verification to that ticker and passes the rest through untouched.
func (v *Verifier) VerifyAll(ctx context.Context, deals []types.Deal, onlyTicker string) []types.Deal {
	out := make([]types.Deal, 0, len(deals))
	for _, d := range deals {
		if onlyTicker != "" && d.Ticker != onlyTicker {
			out = append(out, d)
			continue
		}
		out = append(out, v.VerifyDeal(ctx, d))
	}
	return out
}

func alternateFilingType(filingType string) string {
	if filingType == "SC TO-I" {
		return "SC TO-T"
	}
	return "SC TO-I"
}
