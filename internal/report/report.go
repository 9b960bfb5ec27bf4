// Package report renders scan results as Markdown and JSON documents.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tenderscan/internal/types"
)

// Format specifies the output format for reports
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
)

// urgentDays is the deadline window that triggers the immediate-action
// recommendation.
const urgentDays = 14

// Reporter handles generation and storage of scan reports
type Reporter struct {
	outputDir string
	now       func() time.Time
}

// NewReporter creates a new reporter writing into outputDir
func NewReporter(outputDir string) *Reporter {
	return &Reporter{
		outputDir: outputDir,
		now:       time.Now,
	}
}

// WithClock overrides the reporter's clock, for tests.
func (r *Reporter) WithClock(now func() time.Time) *Reporter {
	r.now = now
	return r
}

// GenerateReport renders the result in the specified format
func (r *Reporter) GenerateReport(result *types.ScanResult, format Format) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	case FormatMarkdown:
		return r.generateMarkdown(result), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// SaveReport renders and writes the report, returning the file path
func (r *Reporter) SaveReport(result *types.ScanResult, format Format, name string) (string, error) {
	content, err := r.GenerateReport(result, format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(r.outputDir, fmt.Sprintf("%s.%s", name, format))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func (r *Reporter) generateMarkdown(result *types.ScanResult) string {
	var b strings.Builder

	b.WriteString("# 🔍 Tender Offer Arbitrage Scan Report\n\n")
	fmt.Fprintf(&b, "> **Generated**: %s\n", r.now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "> **Scan date**: %s\n\n", result.ScanDate)
	b.WriteString("---\n\n")

	b.WriteString("## 📊 Active Opportunities\n\n")
	b.WriteString("| Rank | Ticker | Type | Offer | Current | Spread | Expiry | Odd-Lot | Rating |\n")
	b.WriteString("|------|--------|------|-------|---------|--------|--------|---------|--------|\n")
	for i := range result.Deals {
		d := &result.Deals[i]
		odd := "❌"
		if d.OddLotPriority {
			odd = "✅"
		}
		fmt.Fprintf(&b, "| %d | **%s** | %s | $%s | $%s | %s%% | %s | %s | %s |\n",
			d.Rank, orUnknown(d.Ticker), orUnknown(d.OfferType), orUnknown(d.OfferPrice),
			floatCell(d.CurrentPrice), floatCell(d.SpreadPct), orUnknown(d.ExpiryDate),
			odd, d.RatingStars())
	}
	b.WriteString("\n---\n\n")

	for i := range result.Deals {
		r.writeDealSection(&b, &result.Deals[i])
	}

	b.WriteString("## 🎯 Recommendations\n\n")
	for i, rec := range Recommendations(result.Deals) {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}
	b.WriteString("\n> **Disclaimer**: This report is generated by an automated tool for informational purposes only. It is not investment advice.\n")

	return b.String()
}

func (r *Reporter) writeDealSection(b *strings.Builder, d *types.Deal) {
	fmt.Fprintf(b, "## %s %s (%s)\n\n", d.RankLabel, orUnknown(d.Ticker), orUnknown(d.CompanyName))

	b.WriteString("| Field | Detail |\n")
	b.WriteString("|-------|--------|\n")
	detail := d.OfferTypeDetail
	if detail == "" {
		detail = d.OfferType
	}
	fmt.Fprintf(b, "| **Type** | %s |\n", orUnknown(detail))
	fmt.Fprintf(b, "| **Offer price** | $%s/share |\n", orUnknown(d.OfferPrice))
	fmt.Fprintf(b, "| **Current price** | $%s/share |\n", floatCell(d.CurrentPrice))
	fmt.Fprintf(b, "| **Spread** | %s%% ($%s/share) |\n", floatCell(d.SpreadPct), floatCell(d.SpreadAbs))
	fmt.Fprintf(b, "| **Expiry** | %s (%s days) |\n", orUnknown(d.ExpiryDate), intCell(d.DaysRemaining))
	fmt.Fprintf(b, "| **Annualized return** | %s%% |\n", floatCell(d.AnnualizedReturn))
	fmt.Fprintf(b, "| **Odd-lot priority** | %s |\n", oddLotCell(d))
	if d.VerificationStatus != "" {
		fmt.Fprintf(b, "| **Verification** | %s |\n", d.VerificationStatus)
	}
	b.WriteString("\n")

	if d.Analysis != "" {
		b.WriteString("### Analysis\n\n")
		b.WriteString(d.Analysis)
		b.WriteString("\n\n")
	}

	if len(d.Risks) > 0 {
		b.WriteString("### Risk Factors\n\n")
		for _, risk := range d.Risks {
			fmt.Fprintf(b, "- %s\n", risk)
		}
		b.WriteString("\n")
	}

	if d.OddLotPriority && len(d.OddLots) > 0 {
		b.WriteString("### Odd-Lot Strategy (≤99 shares)\n\n")
		b.WriteString("| Shares | Cost | Revenue | Profit | Return |\n")
		b.WriteString("|--------|------|---------|--------|--------|\n")
		for _, lot := range d.OddLots {
			fmt.Fprintf(b, "| %d | $%.2f | $%.2f | $%.2f | %s%% |\n",
				lot.Qty, lot.Cost, lot.Revenue, lot.Profit, floatCell(d.SpreadPct))
		}
		b.WriteString("\n")
	}

	if d.VerificationNotes != "" {
		b.WriteString("### Verification Notes\n\n")
		fmt.Fprintf(b, "> %s\n\n", d.VerificationNotes)
	}

	b.WriteString("---\n\n")
}

// Recommendations derives action items from the ranked deal list: urgent
// deadlines first, then odd-lot plays, then full-acquisition spreads.
func Recommendations(deals []types.Deal) []string {
	var recs []string

	var urgent []string
	for i := range deals {
		d := &deals[i]
		days := 999
		if d.DaysRemaining != nil {
			days = *d.DaysRemaining
		}
		if days <= urgentDays && d.SpreadPct != nil && *d.SpreadPct > 1 {
			urgent = append(urgent, d.Ticker)
		}
	}
	if len(urgent) > 0 {
		recs = append(recs, fmt.Sprintf("🔴 **Urgent**: %s, less than %d days to deadline, decide immediately whether to participate", strings.Join(urgent, ", "), urgentDays))
	}

	for i := range deals {
		d := &deals[i]
		if !d.OddLotPriority || d.SpreadPct == nil || *d.SpreadPct <= 0 {
			continue
		}
		if lot := d.OddLotScenario(99); lot != nil {
			recs = append(recs, fmt.Sprintf("⭐ **%s odd-lot play**: buy ≤99 shares (cost ~$%.0f), expected profit ~$%.0f (%v%%)",
				d.Ticker, lot.Cost, lot.Profit, *d.SpreadPct))
		}
	}

	for i := range deals {
		d := &deals[i]
		if !strings.Contains(d.OfferType, "Full") || d.SpreadPct == nil || *d.SpreadPct <= 0 {
			continue
		}
		recs = append(recs, fmt.Sprintf("📊 **%s merger arbitrage**: spread %v%%, expected completion in %s days",
			d.Ticker, *d.SpreadPct, intCell(d.DaysRemaining)))
	}

	if len(recs) == 0 {
		recs = append(recs, "No high-conviction arbitrage opportunities found, keep watching.")
	}

	recs = append(recs, "💡 Confirm your broker supports tendering US shares (e.g. Interactive Brokers, Schwab)")
	recs = append(recs, "⚠️ This analysis is for reference only and is not investment advice. Do your own research.")

	return recs
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}

func floatCell(v *float64) string {
	if v == nil {
		return "?"
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", *v), "0"), ".")
}

func intCell(v *int) string {
	if v == nil {
		return "?"
	}
	return fmt.Sprintf("%d", *v)
}

func oddLotCell(d *types.Deal) string {
	switch {
	case d.OddLotVerified:
		return "✅ Confirmed"
	case d.OddLotPriority:
		return "✅ Yes"
	default:
		return "❌ No"
	}
}
