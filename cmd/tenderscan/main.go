package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tenderscan/internal/datasource"
	"tenderscan/internal/interfaces"
	"tenderscan/internal/logger"
	"tenderscan/internal/notify"
	"tenderscan/internal/pipeline"
	"tenderscan/internal/report"
	"tenderscan/internal/scan"
	"tenderscan/internal/sched"
	"tenderscan/internal/store"
	"tenderscan/internal/verify"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	dryRun := flag.Bool("dry-run", false, "use sample data, skip verification")
	skipEmail := flag.Bool("skip-email", false, "skip the email step")
	schedule := flag.Bool("schedule", false, "run on the configured cron schedule instead of once")
	flag.Parse()

	_ = godotenv.Load()
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		cancel()
	}()

	p := buildPipeline(cfg, *dryRun)
	opts := pipeline.Options{DryRun: *dryRun, SkipEmail: *skipEmail}

	if *schedule {
		s := sched.New()
		if err := s.Schedule(ctx, cfg.Schedule.Cron, func(ctx context.Context) error {
			return p.Run(ctx, opts)
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to schedule pipeline: %v\n", err)
			os.Exit(1)
		}
		s.Start(ctx)
		shutdown()
		return
	}

	err = p.Run(ctx, opts)
	shutdown()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Pipeline failed: %v\n", err)
		os.Exit(1)
	}
}

func buildPipeline(cfg *store.Config, dryRun bool) *pipeline.Pipeline {
	criteria := scan.Criteria{
		MinSpreadPct:    cfg.Scan.MinSpreadPct,
		MaxDaysToExpiry: cfg.Scan.MaxDaysToExpiry,
		OddLotOnly:      cfg.Scan.IncludeOddLotOnly,
	}

	var (
		scanner  *scan.Scanner
		verifier *verify.Verifier
	)
	if dryRun {
		scanner = scan.NewScanner(criteria, nil, datasource.NewSampleSource())
	} else {
		edgar := datasource.NewEdgarSource(cfg.Scan.FilingTypes, cfg.Scan.DaysBack)
		sources := []interfaces.DealSource{
			edgar,
			datasource.NewInsideArbitrageSource(30 * time.Second),
		}
		scanner = scan.NewScanner(criteria, datasource.NewYahooQuotes(), sources...)
		verifier = verify.NewVerifier(edgar)
	}

	reporter := report.NewReporter(cfg.Output.ResultsDir)

	var mailer pipeline.Mailer
	if cfg.EmailEnabled() {
		mailer = notify.NewEmailSender(notify.EmailConfig{
			SMTPServer: cfg.Email.SMTPServer,
			SMTPPort:   cfg.Email.SMTPPort,
			SMTPUser:   cfg.Email.SMTPUser,
			SMTPPass:   cfg.SMTPPass(),
			FromEmail:  cfg.Email.FromEmail,
			Recipients: cfg.Email.Recipients,
			SubjectTag: cfg.Email.SubjectTag,
		})
	}

	return pipeline.New(cfg, scanner, verifier, reporter, mailer)
}

func shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = logger.Shutdown(ctx)
}
