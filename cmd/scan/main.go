// Scan-only entry point: runs discovery and prints or writes the ranked
// result as JSON without verification, reporting, or email.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"tenderscan/internal/datasource"
	"tenderscan/internal/interfaces"
	"tenderscan/internal/logger"
	"tenderscan/internal/scan"
	"tenderscan/internal/store"
	"tenderscan/internal/types"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	output := flag.String("output", "", "output JSON file path (default stdout)")
	dryRun := flag.Bool("dry-run", false, "use sample data (no network)")
	flag.Parse()

	_ = godotenv.Load()
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = logger.Shutdown(ctx)
	}()

	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	criteria := scan.Criteria{
		MinSpreadPct:    cfg.Scan.MinSpreadPct,
		MaxDaysToExpiry: cfg.Scan.MaxDaysToExpiry,
		OddLotOnly:      cfg.Scan.IncludeOddLotOnly,
	}

	var scanner *scan.Scanner
	if *dryRun {
		scanner = scan.NewScanner(criteria, nil, datasource.NewSampleSource())
	} else {
		sources := []interfaces.DealSource{
			datasource.NewEdgarSource(cfg.Scan.FilingTypes, cfg.Scan.DaysBack),
			datasource.NewInsideArbitrageSource(30 * time.Second),
		}
		scanner = scan.NewScanner(criteria, datasource.NewYahooQuotes(), sources...)
	}

	ctx := context.Background()
	deals, err := scanner.Scan(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
		os.Exit(1)
	}

	result := types.ScanResult{
		ScanDate:           time.Now().Format(time.RFC3339),
		TotalOpportunities: len(deals),
		Deals:              deals,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode results: %v\n", err)
		os.Exit(1)
	}

	if *output != "" {
		if dir := filepath.Dir(*output); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to create output dir: %v\n", err)
				os.Exit(1)
			}
		}
		if err := os.WriteFile(*output, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write results: %v\n", err)
			os.Exit(1)
		}
		logger.Info(ctx, "Results saved", "path", *output)
	} else {
		fmt.Println(string(data))
	}
}
