package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full configuration for the scanner pipeline, loaded from
// config.yaml. Secrets (SMTP password) come from the environment, not the
// file.
type Config struct {
	Scan struct {
		FilingTypes       []string `yaml:"filing_types"`
		DaysBack          int      `yaml:"days_back"`
		MinSpreadPct      float64  `yaml:"min_spread_pct"`
		MaxDaysToExpiry   int      `yaml:"max_days_to_expiry"`
		IncludeOddLotOnly bool     `yaml:"include_odd_lot_only"`
	} `yaml:"scan"`
	Verify struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"verify"`
	Output struct {
		ResultsDir string `yaml:"results_dir"`
	} `yaml:"output"`
	Email struct {
		SMTPServer  string   `yaml:"smtp_server"`
		SMTPPort    int      `yaml:"smtp_port"`
		SMTPUser    string   `yaml:"smtp_user"`
		FromEmail   string   `yaml:"from_email"`
		Recipients  []string `yaml:"recipients"`
		SubjectTag  string   `yaml:"subject_tag"`
		PassEnvName string   `yaml:"pass_env_name"`
	} `yaml:"email"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Scan.FilingTypes = []string{"SC TO-I", "SC TO-T"}
	cfg.Scan.DaysBack = 60
	cfg.Scan.MinSpreadPct = 0.5
	cfg.Scan.MaxDaysToExpiry = 90
	cfg.Verify.Enabled = true
	cfg.Output.ResultsDir = "results"
	cfg.Email.SMTPPort = 587
	cfg.Email.PassEnvName = "SMTP_PASSWORD"
	return cfg
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if len(c.Scan.FilingTypes) == 0 {
		return fmt.Errorf("scan.filing_types cannot be empty")
	}
	if c.Scan.DaysBack <= 0 {
		return fmt.Errorf("scan.days_back must be positive, got %d", c.Scan.DaysBack)
	}
	if c.Scan.MinSpreadPct < 0 {
		return fmt.Errorf("scan.min_spread_pct cannot be negative, got %.2f", c.Scan.MinSpreadPct)
	}
	if c.Scan.MaxDaysToExpiry <= 0 {
		return fmt.Errorf("scan.max_days_to_expiry must be positive, got %d", c.Scan.MaxDaysToExpiry)
	}
	if c.Email.SMTPPort < 0 || c.Email.SMTPPort > 65535 {
		return fmt.Errorf("email.smtp_port out of range: %d", c.Email.SMTPPort)
	}
	return nil
}

// LoadConfig reads and validates config from the given path. A missing file
// is not an error: the scanner falls back to defaults, mirroring a first run
// before any config has been written.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SMTPPass resolves the SMTP password from the configured environment
// variable.
func (c *Config) SMTPPass() string {
	name := c.Email.PassEnvName
	if name == "" {
		name = "SMTP_PASSWORD"
	}
	return os.Getenv(name)
}

// EmailEnabled reports whether enough email settings are present to send.
func (c *Config) EmailEnabled() bool {
	return c.Email.SMTPServer != "" && c.Email.SMTPUser != "" && len(c.Email.Recipients) > 0
}
