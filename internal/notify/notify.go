// Package notify delivers scan reports to recipients over SMTP.
package notify

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	gomail "gopkg.in/mail.v2"

	"tenderscan/internal/logger"
)

// EmailConfig holds SMTP configuration for sending report emails.
type EmailConfig struct {
	SMTPServer string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	FromEmail  string
	FromName   string
	Recipients []string
	SubjectTag string
}

// EmailSender delivers report messages via SMTP.
type EmailSender struct {
	cfg  EmailConfig
	dial func(m *gomail.Message) error
	now  func() time.Time
}

// NewEmailSender creates a sender with the given SMTP configuration.
func NewEmailSender(cfg EmailConfig) *EmailSender {
	if cfg.FromName == "" {
		cfg.FromName = "Tender Offer Scanner"
	}
	s := &EmailSender{cfg: cfg, now: time.Now}
	s.dial = func(m *gomail.Message) error {
		dialer := gomail.NewDialer(cfg.SMTPServer, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
		dialer.Timeout = 10 * time.Second
		dialer.StartTLSPolicy = gomail.MandatoryStartTLS
		return dialer.DialAndSend(m)
	}
	return s
}

// SendReport emails the Markdown report to every configured recipient, as
// HTML with a plain text alternative plus the raw Markdown attached.
func (s *EmailSender) SendReport(ctx context.Context, reportMD string) error {
	if len(s.cfg.Recipients) == 0 {
		return fmt.Errorf("no recipients configured")
	}
	if s.cfg.SMTPUser == "" || s.cfg.SMTPPass == "" {
		return fmt.Errorf("SMTP credentials are not configured")
	}

	today := s.now().Format("2006-01-02")
	subject := fmt.Sprintf("📊 Tender offer arbitrage daily report, %s", today)
	if s.cfg.SubjectTag != "" {
		subject = s.cfg.SubjectTag + " " + subject
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.FromEmail, s.cfg.FromName))
	m.SetHeader("To", s.cfg.Recipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", reportMD)
	m.AddAlternative("text/html", MarkdownToHTML(reportMD))

	filename := fmt.Sprintf("tender_offer_report_%s.md", today)
	m.AttachReader(filename, strings.NewReader(reportMD))

	if err := s.dial(m); err != nil {
		logger.ErrorWithErr(ctx, "Failed to send report email", err, "recipients", len(s.cfg.Recipients))
		return fmt.Errorf("sending report email: %w", err)
	}

	logger.Info(ctx, "Report sent", "recipients", len(s.cfg.Recipients), "subject", subject)
	return nil
}

var (
	h3Re   = regexp.MustCompile(`(?m)^### (.+)$`)
	h2Re   = regexp.MustCompile(`(?m)^## (.+)$`)
	h1Re   = regexp.MustCompile(`(?m)^# (.+)$`)
	boldRe = regexp.MustCompile(`\*\*(.+?)\*\*`)
	listRe = regexp.MustCompile(`(?m)^- (.+)$`)
)

// MarkdownToHTML converts a Markdown report to simple HTML for email
// bodies. Headers, bold text, and bullet lists only; tables and anything
// fancier stay readable as-is.
func MarkdownToHTML(md string) string {
	html := md
	html = h3Re.ReplaceAllString(html, "<h3>$1</h3>")
	html = h2Re.ReplaceAllString(html, "<h2>$1</h2>")
	html = h1Re.ReplaceAllString(html, "<h1>$1</h1>")
	html = boldRe.ReplaceAllString(html, "<strong>$1</strong>")
	html = listRe.ReplaceAllString(html, "<li>$1</li>")
	html = strings.ReplaceAll(html, "\n\n", "</p><p>")
	html = strings.ReplaceAll(html, "\n", "<br>")
	return "<html><body style='font-family: Arial, sans-serif;'><p>" + html + "</p></body></html>"
}
