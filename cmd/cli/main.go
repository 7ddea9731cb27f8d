package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/assetbrowser/internal/client/archive"
	"github.com/dmitrijs2005/assetbrowser/internal/client/auth"
	"github.com/dmitrijs2005/assetbrowser/internal/client/bucket"
	"github.com/dmitrijs2005/assetbrowser/internal/client/cli"
	"github.com/dmitrijs2005/assetbrowser/internal/client/client"
	"github.com/dmitrijs2005/assetbrowser/internal/client/config"
	"github.com/dmitrijs2005/assetbrowser/internal/client/query"
	"github.com/dmitrijs2005/assetbrowser/internal/client/services"
	"github.com/dmitrijs2005/assetbrowser/internal/client/sink"
	"github.com/dmitrijs2005/assetbrowser/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(cfg.LogLevel, os.Stderr)

	b, err := bucket.Parse(cfg.Bucket)
	if err != nil {
		return err
	}
	baseURL := b.BaseURL()
	if cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}

	initial := cfg.AccessToken
	tokens := &auth.CachedProvider{
		Source: func(ctx context.Context) (string, error) {
			if tok := initial; tok != "" {
				initial = ""
				return tok, nil
			}
			return cli.PromptToken(os.Stderr)
		},
	}

	httpClient := &http.Client{}

	staging, err := sink.NewStaging(cfg.StagingDir)
	if err != nil {
		return err
	}

	var downloads sink.Sink
	switch cfg.SinkKind {
	case config.SinkS3:
		downloads, err = sink.NewS3Sink(ctx, cfg.S3, httpClient, staging)
	default:
		downloads, err = sink.NewFileSink(cfg.DownloadDir, httpClient, staging)
	}
	if err != nil {
		return err
	}

	api, err := client.New(client.Config{
		BaseURL:    baseURL,
		APIKey:     b.APIKey(),
		Tokens:     tokens,
		HTTPClient: httpClient,
		Logger:     logger,
		ObjectURLs: staging,
		Sink:       downloads,
	})
	if err != nil {
		return err
	}

	repos, err := client.InitDatabase(ctx, cfg.CacheDSN)
	if err != nil {
		return err
	}
	defer repos.Close()

	poller := archive.New(api, downloads,
		archive.WithInterval(cfg.PollInterval),
		archive.WithMaxRetries(cfg.PollMaxRetries),
		archive.WithLogger(logger),
	)

	compiler := query.NewCompiler(b.IndexName, b.CollectionsIndex(), nil)
	assets := services.NewAssetService(api, compiler, logger)
	cart := services.NewCartService(api, repos.Previews, poller, cfg.PreviewWidth, nil, logger)

	logger.Info(ctx, "asset browser ready", "bucket", b.ID, "base_url", baseURL, "sink", cfg.SinkKind)

	cli.NewApp(assets, cart, poller, cfg.HitsPerPage, logger).Run(ctx)
	return nil
}
