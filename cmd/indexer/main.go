package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/krakend/docsite/internal/config"
	"github.com/krakend/docsite/internal/indexing"
	"github.com/krakend/docsite/internal/logger"
)

func main() {
	cfg, err := config.Load(".", "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	log.Info().
		Int("schema", indexing.IndexSchemaVersion).
		Str("content", cfg.ContentDir).
		Msg("Docs search indexer starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline := &indexing.Pipeline{
		Indexer: indexing.NewIndexer(indexing.Options{
			Root:          cfg.ContentDir,
			IndexFileName: cfg.IndexFileName,
			URLPrefix:     cfg.URLPrefix,
			Concurrency:   cfg.Concurrency,
		}, log),
		OutputFile:     cfg.OutputFile,
		SearchIndexDir: cfg.SearchIndexDir,
		Logger:         log,
	}

	res, err := pipeline.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Indexing failed")
		stop()
		os.Exit(1)
	}

	log.Info().
		Int("documents", res.Documents).
		Int("headings", res.Headings).
		Str("checksum", res.Checksum).
		Str("output", res.OutputFile).
		Str("search_index", res.SearchIndexDir).
		Dur("elapsed", res.Duration).
		Msg("Index details")
	fmt.Printf("✓ Search index written to %s (%d documents)\n", res.OutputFile, res.Documents)
}
