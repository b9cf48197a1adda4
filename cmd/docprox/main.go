// Command docprox runs one proximity query over a corpus and writes the
// ranked result.
//
//	docprox -query queries/accident.yml -corpus corpus.txt -out results.yml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/docprox/internal/config"
	"github.com/dgallion1/docprox/internal/parser"
	"github.com/dgallion1/docprox/internal/pipeline"
	"github.com/dgallion1/docprox/internal/report"
	"github.com/dgallion1/docprox/internal/source"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("docprox", flag.ContinueOnError)
	fs.SetOutput(stderr)
	queryPath := fs.String("query", "", "YAML query file (required)")
	corpusPath := fs.String("corpus", "", "file listing one document per line (required)")
	outPath := fs.String("out", "", "output file (default stdout)")
	format := fs.String("format", "yaml", "output format: yaml or json")
	workers := fs.Int("workers", 0, "documents processed concurrently (default MAX_CONCURRENT_DOCS)")
	root := fs.String("root", "", "resolve local paths under this directory")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *queryPath == "" || *corpusPath == "" {
		fmt.Fprintln(stderr, "docprox: -query and -corpus are required")
		fs.Usage()
		return 2
	}

	cfg := config.Load()
	log, _ := config.NewLogger(stderr, cfg.LogLevel, false)

	outFormat, err := report.ParseFormat(*format)
	if err != nil {
		log.Error("invalid flags", "error", err)
		return 2
	}
	q, err := config.LoadQuery(*queryPath)
	if err != nil {
		log.Error("invalid query", "error", err)
		return 1
	}
	ids, err := source.ReadListFile(*corpusPath)
	if err != nil {
		log.Error("invalid corpus", "error", err)
		return 1
	}

	srcCfg := source.Config{
		Files:    true,
		FileRoot: *root,
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

	concurrency := cfg.MaxConcurrentDocs
	if *workers > 0 {
		concurrency = *workers
	}
	agg := &pipeline.Aggregator{
		Source:      source.New(srcCfg, log),
		Parsers:     parser.Options{FallbackPdftotext: cfg.PDFFallbackPdftotext},
		Concurrency: concurrency,
		Logger:      log,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("running query", "documents", len(ids), "strategy", q.Matcher.Strategy, "workers", concurrency)
	res, err := agg.Run(ctx, ids, q)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("interrupted")
		} else {
			log.Error("query failed", "error", err)
		}
		return 1
	}

	rep := report.Build(res, report.Options{Excerpts: q.Excerpts})
	if err := writeReport(*outPath, stdout, rep, outFormat); err != nil {
		log.Error("write output", "error", err)
		return 1
	}

	if n := len(res.Failures); n > 0 {
		log.Warn("some documents failed", "failed", n, "documents", len(ids))
	}
	return 0
}

// writeReport writes rep to path, or to stdout when path is empty. The file
// is closed before returning so a failed flush is reported.
func writeReport(path string, stdout io.Writer, rep *report.Report, format report.Format) error {
	if path == "" {
		return report.Write(stdout, rep, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := report.Write(f, rep, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}
