package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/indra7777/SpendWise-sub000/internal/categorize"
	"github.com/indra7777/SpendWise-sub000/internal/config"
	"github.com/indra7777/SpendWise-sub000/internal/dedup"
	"github.com/indra7777/SpendWise-sub000/internal/extract"
	"github.com/indra7777/SpendWise-sub000/internal/jobs"
	"github.com/indra7777/SpendWise-sub000/internal/jobs/inmemory"
	"github.com/indra7777/SpendWise-sub000/internal/logger"
	"github.com/indra7777/SpendWise-sub000/internal/pipeline"
	"github.com/indra7777/SpendWise-sub000/internal/statementfetch"
	"github.com/indra7777/SpendWise-sub000/internal/store"
)

func main() {
	log := logger.New()
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.Open(ctx, cfg.StoreBackend, cfg.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open transaction store")
	}
	defer st.Close()

	cloud := categorize.NewCloudClassifier(cfg.CloudModelName)
	cascade := categorize.NewCascade(
		categorize.NewRules(),
		nil,
		cloud,
		cfg.RuleThreshold,
		cfg.ModelThreshold,
		logger.WithComponent(log, "categorize"),
	)
	caps := categorize.Capabilities{
		CloudEnabled:    cfg.CloudEnabled,
		CloudConfigured: cloud.Configured(),
		Online:          true,
	}

	p := pipeline.New(
		extract.NewRegistry(),
		dedup.NewRecentCache(cfg.DedupWindow),
		dedup.NewEngine(st, cfg.DedupWindow, cfg.DedupTolerance),
		cascade,
		st,
		caps,
		logger.WithComponent(log, "pipeline"),
	)

	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, 5, jobStore)

	log.Info().Msg("Starting import worker")

	handler := func(ctx context.Context, job jobs.Job) error {
		importJob, ok := job.(*jobs.ImportStatementJob)
		if !ok {
			return fmt.Errorf("unexpected job type: %T", job)
		}

		log.Info().
			Str("job_id", importJob.JobID).
			Str("source", importJob.Source).
			Msg("Processing import job")

		data, err := statementfetch.Fetch(ctx, importJob.Source)
		if err != nil {
			log.Error().Err(err).Str("job_id", importJob.JobID).Msg("Fetching statement failed")
			return err
		}

		summary, err := p.ImportStatement(ctx, data, pipeline.ImportOptions{Password: importJob.Password})
		if err != nil {
			log.Error().Err(err).Str("job_id", importJob.JobID).Msg("Import failed")
			return err
		}

		importJob.Imported = summary.Imported
		importJob.SkippedDuplicates = summary.SkippedDuplicates

		log.Info().
			Str("job_id", importJob.JobID).
			Str("format", summary.FormatLabel).
			Int("imported", summary.Imported).
			Int("skipped_duplicates", summary.SkippedDuplicates).
			Msg("Import job completed")
		return nil
	}

	if err := jobQueue.Start(ctx, handler); err != nil {
		log.Fatal().Err(err).Msg("Failed to start job consumer")
	}

	// Seed jobs from command-line sources, if any.
	for _, source := range os.Args[1:] {
		job := &jobs.ImportStatementJob{Source: source}
		if err := jobQueue.PublishImportStatement(ctx, job); err != nil {
			log.Error().Err(err).Str("source", source).Msg("Failed to enqueue import job")
		}
	}

	log.Info().Msg("Worker started, waiting for jobs...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down worker...")
	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	if err := jobQueue.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Queue shutdown timed out")
	}
	log.Info().Msg("Worker stopped")
}
