package main

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/krakend/docsite/internal/config"
	"github.com/krakend/docsite/internal/content"
	"github.com/krakend/docsite/internal/indexing"
	"github.com/krakend/docsite/internal/logger"
	"github.com/krakend/docsite/internal/navigation"
	"github.com/krakend/docsite/tools"
)

const (
	version    = "0.1.0"
	serverName = "docsite-server"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("%s version %s\n", serverName, version)
		os.Exit(0)
	}

	cfg, err := config.Load(".", "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr (MCP uses stdout for protocol)
	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	log.Info().Str("version", version).Msgf("%s starting...", serverName)

	toolkit, err := newToolkit(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up page tools")
	}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    serverName,
			Version: version,
		},
		nil, // Default options
	)
	toolkit.Register(server)

	// An index from a previous run is optional; find_pages opens it lazily
	if err := toolkit.OpenSearchIndex(); err != nil {
		log.Warn().Err(err).Msg("Search index not opened, use rebuild_search_index to build it")
	}

	log.Info().Msg("✓ Server ready and waiting for connections")

	// Set up cleanup on shutdown
	defer func() {
		if err := toolkit.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing search index")
		}
	}()

	// Run server with stdio transport
	ctx := context.Background()
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Error().Err(err).Msg("Server error")
	}
}

// newToolkit wires the content loader, route table and indexing pipeline
func newToolkit(cfg config.Config, log zerolog.Logger) (*tools.Toolkit, error) {
	resolver := content.NewResolver(cfg.ContentDir,
		content.WithExtension(cfg.ContentExt),
		content.WithIndexName(cfg.IndexFileName),
	)
	loader := content.NewLoader(resolver, logger.Component(log, "loader"))

	routes, err := navigation.Load(cfg.RoutesFile)
	if err != nil {
		return nil, err
	}
	log.Info().Int("routes", routes.Len()).Str("file", cfg.RoutesFile).Msg("Route table loaded")

	indexLog := logger.Component(log, "indexer")
	pipeline := &indexing.Pipeline{
		Indexer: indexing.NewIndexer(indexing.Options{
			Root:          cfg.ContentDir,
			IndexFileName: cfg.IndexFileName,
			URLPrefix:     cfg.URLPrefix,
			Concurrency:   cfg.Concurrency,
		}, indexLog),
		OutputFile:     cfg.OutputFile,
		SearchIndexDir: cfg.SearchIndexDir,
		Logger:         indexLog,
	}

	return tools.NewToolkit(loader, routes, pipeline, cfg.URLPrefix, logger.Component(log, "tools")), nil
}
