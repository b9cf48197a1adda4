package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docprox/internal/api"
	"github.com/dgallion1/docprox/internal/config"
	"github.com/dgallion1/docprox/internal/parser"
	"github.com/dgallion1/docprox/internal/pipeline"
	"github.com/dgallion1/docprox/internal/source"
)

func main() {
	cfg := config.Load()
	log, _ := config.NewLogger(os.Stdout, cfg.LogLevel, true)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize corpus retrieval.
	srcCfg := source.Config{
		Files:    cfg.CorpusRoot != "",
		FileRoot: cfg.CorpusRoot,
		HTTP: source.HTTPConfig{
			Timeout:    cfg.HTTPTimeout,
			MaxRetries: uint64(cfg.HTTPMaxRetries),
			Backoff:    cfg.HTTPBackoff,
			MaxBytes:   cfg.MaxDocBytes,
		},
	}
	if cfg.BlobEnabled() {
		srcCfg.Blob = &source.BlobConfig{
			Endpoint:  cfg.BlobEndpoint,
			Region:    cfg.BlobRegion,
			AccessKey: cfg.BlobAccessKey,
			SecretKey: cfg.BlobSecretKey,
			Bucket:    cfg.BlobBucket,
			PathStyle: cfg.BlobPathStyle,
			MaxBytes:  cfg.MaxDocBytes,
		}
	}
	src := source.New(srcCfg, log)

	// Initialize pipeline.
	agg := &pipeline.Aggregator{
		Source:      src,
		Parsers:     parser.Options{FallbackPdftotext: cfg.PDFFallbackPdftotext},
		Concurrency: cfg.MaxConcurrentDocs,
	}
	orch := pipeline.NewOrchestrator(cfg, agg, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		// Stop accepting requests before the job queue closes.
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()

		if h, ok := src.HTTP.(*source.HTTPOpener); ok {
			h.Close()
		}
	}()

	log.Info("starting docprox",
		"port", cfg.Port,
		"corpus_root", cfg.CorpusRoot,
		"blob", cfg.BlobEnabled(),
		"workers", cfg.WorkerCount,
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
