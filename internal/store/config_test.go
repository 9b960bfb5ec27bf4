package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing config file must not error: %v", err)
	}
	if len(cfg.Scan.FilingTypes) != 2 || cfg.Scan.FilingTypes[0] != "SC TO-I" {
		t.Errorf("default filing types wrong: %v", cfg.Scan.FilingTypes)
	}
	if cfg.Scan.MinSpreadPct != 0.5 || cfg.Scan.MaxDaysToExpiry != 90 {
		t.Errorf("default thresholds wrong: %+v", cfg.Scan)
	}
	if cfg.Output.ResultsDir != "results" {
		t.Errorf("default results dir wrong: %q", cfg.Output.ResultsDir)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
scan:
  filing_types: ["SC TO-I"]
  days_back: 30
  min_spread_pct: 1.5
  max_days_to_expiry: 45
  include_odd_lot_only: true
email:
  smtp_server: smtp.example.com
  smtp_user: scanner@example.com
  recipients:
    - alerts@example.com
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Scan.DaysBack != 30 || cfg.Scan.MinSpreadPct != 1.5 {
		t.Errorf("overrides not applied: %+v", cfg.Scan)
	}
	if !cfg.Scan.IncludeOddLotOnly {
		t.Error("odd-lot-only flag not applied")
	}
	// Unset fields keep their defaults.
	if cfg.Email.SMTPPort != 587 {
		t.Errorf("default SMTP port should survive, got %d", cfg.Email.SMTPPort)
	}
	if !cfg.EmailEnabled() {
		t.Error("email should be enabled with server, user and recipients set")
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
scan:
  days_back: -5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("negative days_back should fail validation")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}

	cfg.Scan.FilingTypes = nil
	if err := cfg.Validate(); err == nil {
		t.Error("empty filing types should fail")
	}

	cfg = DefaultConfig()
	cfg.Scan.MinSpreadPct = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative min spread should fail")
	}
}

func TestSMTPPassFromEnv(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Email.PassEnvName = "TENDERSCAN_TEST_SMTP_PASS"
	t.Setenv("TENDERSCAN_TEST_SMTP_PASS", "hunter2")

	if got := cfg.SMTPPass(); got != "hunter2" {
		t.Errorf("expected password from env, got %q", got)
	}
}

func TestEmailDisabledWithoutRecipients(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Email.SMTPServer = "smtp.example.com"
	cfg.Email.SMTPUser = "scanner@example.com"

	if cfg.EmailEnabled() {
		t.Error("email must stay disabled without recipients")
	}
}
