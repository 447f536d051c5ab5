package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/indra7777/SpendWise-sub000/internal/categorize"
	"github.com/indra7777/SpendWise-sub000/internal/config"
	"github.com/indra7777/SpendWise-sub000/internal/dedup"
	"github.com/indra7777/SpendWise-sub000/internal/domain"
	"github.com/indra7777/SpendWise-sub000/internal/extract"
	"github.com/indra7777/SpendWise-sub000/internal/logger"
	"github.com/indra7777/SpendWise-sub000/internal/pipeline"
	"github.com/indra7777/SpendWise-sub000/internal/statementfetch"
	"github.com/indra7777/SpendWise-sub000/internal/store"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "notify":
		runNotify(log)
	case "import":
		runImport(log)
	case "inspect":
		runInspect(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("SpendWise CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  spendwise <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  notify    Process one notification body through the pipeline")
	fmt.Println("  import    Import a bank statement (CSV, XLSX or PDF text; local path or gs:// URI)")
	fmt.Println("  inspect   Show stored transactions in a time range")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'spendwise <command> -h' for more information on a command.")
}

func buildPipeline(ctx context.Context, cfg config.Config, log zerolog.Logger) (*pipeline.Pipeline, store.TransactionStore, error) {
	st, err := store.Open(ctx, cfg.StoreBackend, cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}

	cloud := categorize.NewCloudClassifier(cfg.CloudModelName)
	cascade := categorize.NewCascade(
		categorize.NewRules(),
		nil, // no on-device model runtime in the CLI build
		cloud,
		cfg.RuleThreshold,
		cfg.ModelThreshold,
		logger.WithComponent(log, "categorize"),
	)
	caps := categorize.Capabilities{
		OnDeviceEnabled: cfg.OnDeviceEnabled,
		OnDeviceReady:   false,
		CloudEnabled:    cfg.CloudEnabled,
		CloudConfigured: cloud.Configured(),
		Online:          true,
	}

	engine := dedup.NewEngine(st, cfg.DedupWindow, cfg.DedupTolerance)
	recent := dedup.NewRecentCache(cfg.DedupWindow)

	p := pipeline.New(extract.NewRegistry(), recent, engine, cascade, st, caps, logger.WithComponent(log, "pipeline"))
	return p, st, nil
}

func runNotify(log zerolog.Logger) {
	fs := flag.NewFlagSet("notify", flag.ExitOnError)
	body := fs.String("body", "", "notification body text")
	origin := fs.String("origin", "", "origin package or sender id (e.g. com.phonepe.app, AD-HDFCBK)")
	fs.Parse(os.Args[2:])

	if *body == "" || *origin == "" {
		log.Fatal().Msg("Error: -body and -origin are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	cfg := config.Load()
	p, st, err := buildPipeline(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("opening store")
	}
	defer st.Close()

	unit := domain.RawUnit{Body: *body, Origin: *origin, ObservedAt: time.Now()}
	tx, reason, err := p.ProcessNotification(ctx, unit)
	if err != nil {
		log.Fatal().Err(err).Msg("processing notification")
	}
	if tx == nil {
		fmt.Printf("Dropped: %s\n", reason)
		return
	}
	fmt.Printf("Stored %s: %s %s %s → %s (%s, %.2f)\n",
		tx.ID, tx.Direction, tx.Amount.String(), tx.Currency, tx.MerchantClean, tx.Category, tx.Confidence)
}

func runImport(log zerolog.Logger) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	source := fs.String("source", "", "statement file path or gs:// URI")
	password := fs.String("password", "", "password for encrypted statements")
	fs.Parse(os.Args[2:])

	if *source == "" {
		log.Fatal().Msg("Error: -source is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	cfg := config.Load()
	p, st, err := buildPipeline(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("opening store")
	}
	defer st.Close()

	data, err := statementfetch.Fetch(ctx, *source)
	if err != nil {
		log.Fatal().Err(err).Msg("fetching statement")
	}

	opts := pipeline.ImportOptions{
		Password: *password,
		Progress: func(done, total int) {
			fmt.Printf("\rProcessing row %d of %d", done, total)
			if done == total {
				fmt.Println()
			}
		},
	}
	summary, err := p.ImportStatement(ctx, data, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("importing statement")
	}

	fmt.Printf("Format: %s\n", summary.FormatLabel)
	fmt.Printf("Parsed: %d, imported: %d, skipped as duplicates: %d, failed: %d\n",
		summary.Parsed, summary.Imported, summary.SkippedDuplicates, summary.Failed)
	for _, e := range summary.Errors {
		fmt.Printf("  error: %s\n", e)
	}
}

func runInspect(log zerolog.Logger) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	from := fs.String("from", "", "range start, YYYY-MM-DD")
	to := fs.String("to", "", "range end, YYYY-MM-DD (inclusive)")
	fs.Parse(os.Args[2:])

	if *from == "" || *to == "" {
		log.Fatal().Msg("Error: -from and -to are required")
	}
	start, err := time.ParseInLocation("2006-01-02", *from, time.Local)
	if err != nil {
		log.Fatal().Err(err).Msg("parsing -from")
	}
	end, err := time.ParseInLocation("2006-01-02", *to, time.Local)
	if err != nil {
		log.Fatal().Err(err).Msg("parsing -to")
	}
	end = end.Add(24*time.Hour - time.Nanosecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg := config.Load()
	st, err := store.Open(ctx, cfg.StoreBackend, cfg.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Msg("opening store")
	}
	defer st.Close()

	txs, err := st.QueryByTimeRange(ctx, start, end)
	if err != nil {
		log.Fatal().Err(err).Msg("querying store")
	}

	if len(txs) == 0 {
		fmt.Println("No transactions in range.")
		return
	}
	for _, tx := range txs {
		fmt.Printf("%s  %-6s %10s %s  %-30s %s/%s (%s)\n",
			tx.OccurredAt.Format("2006-01-02 15:04"),
			tx.Direction, tx.Amount.String(), tx.Currency,
			tx.MerchantClean, tx.Category, tx.Subcategory, tx.CategorySource)
	}
	fmt.Printf("%d transactions.\n", len(txs))
}
