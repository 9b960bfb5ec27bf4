// Package datasource implements the concrete deal, quote, and filing
// providers behind the scanner's source interfaces.
package datasource

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"tenderscan/internal/api"
	"tenderscan/internal/interfaces"
	"tenderscan/internal/logger"
	"tenderscan/internal/types"
)

const (
	eftsSearchURL   = "https://efts.sec.gov/LATEST/search-index"
	edgarBrowseURL  = "https://www.sec.gov/cgi-bin/browse-edgar"
	edgarArchiveFmt = "https://www.sec.gov/Archives/edgar/data/%s/%s/%s-index.htm"
)

var (
	tickerParenRe = regexp.MustCompile(`\(([A-Z]{1,5})\)`)
	tickerStripRe = regexp.MustCompile(`\s*\([A-Z]{1,5}\)\s*`)
	cikStripRe    = regexp.MustCompile(`\s*\(CIK\s*\d+\)\s*`)
)

// EdgarSource discovers tender offer filings through SEC EDGAR. It serves
// both discovery (full-text search over recent filings) and verification
// (per-company filing lookup and document download).
type EdgarSource struct {
	client      *api.Client
	filingTypes []string
	daysBack    int
	now         func() time.Time
}

// NewEdgarSource returns an EDGAR source scanning the given filing types
// over the trailing daysBack window.
func NewEdgarSource(filingTypes []string, daysBack int) *EdgarSource {
	opts := []api.ClientOption{
		api.WithTimeout(30 * time.Second),
		api.WithLogging(true),
	}
	for k, v := range api.EdgarHeaders() {
		opts = append(opts, api.WithHeader(k, v))
	}
	return &EdgarSource{
		client:      api.NewClient(opts...),
		filingTypes: filingTypes,
		daysBack:    daysBack,
		now:         time.Now,
	}
}

// Name implements interfaces.DealSource.
func (s *EdgarSource) Name() string { return "edgar" }

// FetchDeals queries EDGAR full-text search for each configured filing type
// and returns one stub per hit. Falls back to the company-browse listing
// when full-text search yields nothing.
func (s *EdgarSource) FetchDeals(ctx context.Context) ([]types.Deal, error) {
	now := s.now()
	startDate := now.AddDate(0, 0, -s.daysBack).Format("2006-01-02")
	endDate := now.Format("2006-01-02")

	var deals []types.Deal
	for _, ftype := range s.filingTypes {
		hits, err := s.searchFullText(ctx, ftype, startDate, endDate)
		if err != nil {
			logger.Warn(ctx, "EDGAR full-text search failed", "filing_type", ftype, "error", err)
			continue
		}
		deals = append(deals, hits...)
	}

	if len(deals) == 0 {
		logger.Info(ctx, "Full-text search returned nothing, trying company browse")
		return s.browseFilings(ctx)
	}
	return deals, nil
}

func (s *EdgarSource) searchFullText(ctx context.Context, filingType, startDate, endDate string) ([]types.Deal, error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("%q", filingType))
	params.Set("forms", filingType)
	params.Set("dateRange", "custom")
	params.Set("startdt", startDate)
	params.Set("enddt", endDate)

	resp, err := s.client.GET(ctx, eftsSearchURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var body eftsResponse
	if err := resp.ParseJSON(&body); err != nil {
		return nil, err
	}

	deals := make([]types.Deal, 0, len(body.Hits.Hits))
	for _, hit := range body.Hits.Hits {
		display := ""
		if len(hit.Source.DisplayNames) > 0 {
			display = hit.Source.DisplayNames[0]
		}
		cik := ""
		if len(hit.Source.CIKs) > 0 {
			cik = hit.Source.CIKs[0]
		}

		ticker := extractTicker(display)
		deal := types.Deal{
			FilingType:  filingType,
			CompanyName: cleanCompanyName(display),
			Ticker:      ticker,
			FiledDate:   hit.Source.FileDate,
			CIK:         cik,
			FilingURL:   filingIndexURL(hit.ID, cik),
		}
		if ticker != "" {
			deal.FilingID = fmt.Sprintf("%s (%s)", filingType, ticker)
		} else {
			deal.FilingID = fmt.Sprintf("%s (%s)", filingType, deal.CompanyName)
		}
		deals = append(deals, deal)
	}
	return deals, nil
}

// browseFilings is the fallback path through the classic EDGAR company
// browse listing. Entries carry no ticker; the merge stage keys them by CIK.
func (s *EdgarSource) browseFilings(ctx context.Context) ([]types.Deal, error) {
	var deals []types.Deal
	for _, ftype := range s.filingTypes {
		params := url.Values{}
		params.Set("action", "getcompany")
		params.Set("type", ftype)
		params.Set("dateb", "")
		params.Set("owner", "include")
		params.Set("count", "40")

		resp, err := s.client.GET(ctx, edgarBrowseURL+"?"+params.Encode())
		if err != nil {
			logger.Warn(ctx, "EDGAR browse failed", "filing_type", ftype, "error", err)
			continue
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
		if err != nil {
			logger.Warn(ctx, "EDGAR browse parse failed", "filing_type", ftype, "error", err)
			continue
		}

		doc.Find("table.tableFile2 tr").Each(func(i int, row *goquery.Selection) {
			if i == 0 {
				return
			}
			cols := row.Find("td")
			if cols.Length() < 5 {
				return
			}
			deal := types.Deal{
				FilingType:  ftype,
				CompanyName: strings.TrimSpace(cols.Eq(1).Text()),
				FiledDate:   strings.TrimSpace(cols.Eq(3).Text()),
				CIK:         strings.TrimSpace(cols.Eq(0).Text()),
			}
			if href, ok := cols.Eq(1).Find("a").Attr("href"); ok {
				deal.FilingURL = "https://www.sec.gov" + href
			}
			deals = append(deals, deal)
		})
	}
	return deals, nil
}

// SearchFilings implements interfaces.FilingSource via the EDGAR company
// browse listing for a single ticker.
func (s *EdgarSource) SearchFilings(ctx context.Context, ticker, filingType string) ([]interfaces.FilingRef, error) {
	params := url.Values{}
	params.Set("action", "getcompany")
	params.Set("company", "")
	params.Set("CIK", ticker)
	params.Set("type", filingType)
	params.Set("dateb", "")
	params.Set("owner", "include")
	params.Set("count", "10")

	resp, err := s.client.GET(ctx, edgarBrowseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, err
	}

	var refs []interfaces.FilingRef
	doc.Find("table.tableFile2 tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cols := row.Find("td")
		if cols.Length() < 4 {
			return
		}
		ref := interfaces.FilingRef{
			FilingType:  strings.TrimSpace(cols.Eq(0).Text()),
			Description: strings.TrimSpace(cols.Eq(2).Text()),
			FiledDate:   strings.TrimSpace(cols.Eq(3).Text()),
		}
		if href, ok := cols.Eq(1).Find("a").Attr("href"); ok {
			ref.FilingURL = "https://www.sec.gov" + href
		}
		refs = append(refs, ref)
	})
	return refs, nil
}

// DownloadFilingText fetches the document behind a filing index page and
// returns its text with HTML stripped and whitespace normalized.
func (s *EdgarSource) DownloadFilingText(ctx context.Context, filingURL string) (string, error) {
	resp, err := s.client.GET(ctx, filingURL)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return "", err
	}

	docURL := s.findDocumentURL(doc)
	if docURL == "" {
		return "", nil
	}

	docResp, err := s.client.GET(ctx, docURL)
	if err != nil {
		return "", err
	}
	return stripHTML(docResp.String()), nil
}

// findDocumentURL locates the primary document link on a filing index page:
// the tableFile row whose type matches a schedule, then any archived HTML
// document as fallback.
func (s *EdgarSource) findDocumentURL(doc *goquery.Document) string {
	docURL := ""
	doc.Find("table.tableFile tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i == 0 {
			return true
		}
		cols := row.Find("td")
		if cols.Length() < 3 {
			return true
		}
		docType := ""
		if cols.Length() > 3 {
			docType = strings.TrimSpace(cols.Eq(3).Text())
		}
		href, ok := cols.Eq(2).Find("a").Attr("href")
		if !ok {
			return true
		}
		known := docType == "SC TO-I" || docType == "SC TO-T" || docType == "SC 14D-9" || docType == ""
		if known || strings.HasSuffix(href, ".htm") || strings.HasSuffix(href, ".html") || strings.HasSuffix(href, ".txt") {
			docURL = "https://www.sec.gov" + href
			return false
		}
		return true
	})
	if docURL != "" {
		return docURL
	}

	doc.Find("a[href]").EachWithBreak(func(i int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		if (strings.HasSuffix(href, ".htm") || strings.HasSuffix(href, ".html")) && strings.Contains(href, "/Archives/") {
			if strings.HasPrefix(href, "/") {
				docURL = "https://www.sec.gov" + href
			} else {
				docURL = href
			}
			return false
		}
		return true
	})
	return docURL
}

// stripHTML converts an HTML document to space-separated plain text.
func stripHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// extractTicker pulls the ticker out of an EDGAR display name like
// "Company Name (TICK) (CIK 0001234567)". CIK parentheticals do not count.
func extractTicker(display string) string {
	for _, m := range tickerParenRe.FindAllStringSubmatch(display, -1) {
		if m[1] != "CIK" {
			return m[1]
		}
	}
	return ""
}

// cleanCompanyName strips ticker and CIK parentheticals from a display name.
func cleanCompanyName(display string) string {
	if display == "" {
		return "Unknown"
	}
	name := tickerStripRe.ReplaceAllString(display, " ")
	name = cikStripRe.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	if name == "" {
		return "Unknown"
	}
	return name
}

// filingIndexURL builds the archive index URL from an EFTS hit id
// ("accession:document") and CIK.
func filingIndexURL(hitID, cik string) string {
	accession, _, found := strings.Cut(hitID, ":")
	if !found || accession == "" || cik == "" {
		return ""
	}
	cikClean := strings.TrimLeft(cik, "0")
	if cikClean == "" {
		cikClean = "0"
	}
	accClean := strings.ReplaceAll(accession, "-", "")
	return fmt.Sprintf(edgarArchiveFmt, cikClean, accClean, accession)
}

type eftsResponse struct {
	Hits struct {
		Hits []struct {
			ID     string `json:"_id"`
			Source struct {
				DisplayNames []string `json:"display_names"`
				CIKs         []string `json:"ciks"`
				FileDate     string   `json:"file_date"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}
