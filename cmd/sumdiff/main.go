// Package main provides the entry point for the sumdiff CLI.
//
// Sumdiff runs the same summarisation prompt against several LLMs and
// produces HTML comparison reports with the words unique to each model
// highlighted.
//
// Usage:
//
//	sumdiff                 interactive menu
//	sumdiff web <url>       summarise one web page
//	sumdiff email           summarise newsletter articles
//
// See --help for all available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driven/fetch/web"
	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driven/mailbox/oeclassic"
	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driven/report/htmlreport"
	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driven/storage/csvlog"
	"github.com/custodia-labs/sumdiff-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/sumdiff-cli/internal/core/services"
	"github.com/custodia-labs/sumdiff-cli/internal/normalisers/newsletter"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	// API keys may live in a local .env during development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	cli.SetVersion(version)
	cli.SetWireFunc(wire)

	if err := cli.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// wire builds the full service graph once the persistent flags are
// parsed. Empty config dir means ~/.sumdiff.
func wire(opts cli.GlobalOptions) (*cli.Services, error) {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("open config store: %w", err)
	}

	promptStore, err := file.NewPromptStore("")
	if err != nil {
		return nil, fmt.Errorf("open prompt store: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	outputDir := settings.Output.Directory
	if opts.OutputDir != "" {
		outputDir = opts.OutputDir
	}

	factory := ai.NewFactory(settings)
	highlight := services.NewHighlightService(settings.ResultColumns)
	actions := services.NewActionService()

	builder := htmlreport.NewBuilder(htmlreport.WithResultColumns(settings.ResultColumns))
	reports := htmlreport.NewStore(outputDir)

	articlesCSV := settings.Output.ArticlesCSV
	if !filepath.IsAbs(articlesCSV) {
		articlesCSV = filepath.Join(outputDir, articlesCSV)
	}

	mailbox := oeclassic.NewReader(settings.Mail.ArchivePath, settings.Mail.IndexPath)
	extractor := newsletter.New()
	articles := csvlog.NewLog(articlesCSV)

	fetcher := web.NewFetcher(web.Config{
		Timeout:           time.Duration(settings.Web.TimeoutSeconds) * time.Second,
		RequestsPerSecond: settings.Web.RequestsPerSecond,
	})

	evaluation := services.NewEvaluationService(
		settingsService, promptStore, factory,
		mailbox, extractor, articles,
		fetcher, builder, reports, highlight, actions,
	)

	return &cli.Services{
		Evaluation: evaluation,
		Highlight:  highlight,
		Bench:      services.NewBenchmarkService(settingsService, promptStore, factory, reports),
		Models:     services.NewModelService(settingsService, factory),
		Settings:   settingsService,
		Actions:    actions,
		Watch:      services.NewWatchService(settingsService, evaluation),
		Reports:    reports,
	}, nil
}
