package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Worker pool
	WorkerCount       int
	MaxQueueSize      int
	MaxConcurrentDocs int

	// Request limits
	MaxRequestBytes int64
	MaxCorpusSize   int

	// Job state
	JobTTL time.Duration

	// Corpus retrieval
	CorpusRoot     string
	HTTPTimeout    time.Duration
	HTTPMaxRetries int
	HTTPBackoff    time.Duration
	MaxDocBytes    int64

	// Blob storage (S3-compatible)
	BlobEndpoint  string
	BlobRegion    string
	BlobAccessKey string
	BlobSecretKey string
	BlobBucket    string
	BlobPathStyle bool

	// Logging
	LogLevel string

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("DOCPROX_API_KEY"),

		WorkerCount:       envInt("WORKER_COUNT", 2),
		MaxQueueSize:      envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentDocs: envInt("MAX_CONCURRENT_DOCS", 16),

		MaxRequestBytes: envInt64("MAX_REQUEST_BYTES", 10485760), // 10MB
		MaxCorpusSize:   envInt("MAX_CORPUS_SIZE", 100000),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		CorpusRoot:     os.Getenv("CORPUS_ROOT"),
		HTTPTimeout:    envDuration("HTTP_TIMEOUT", 30*time.Second),
		HTTPMaxRetries: envInt("HTTP_MAX_RETRIES", 3),
		HTTPBackoff:    envDuration("HTTP_BACKOFF", 1*time.Second),
		MaxDocBytes:    envInt64("MAX_DOC_BYTES", 67108864), // 64MB

		BlobEndpoint:  os.Getenv("BLOB_ENDPOINT"),
		BlobRegion:    envOr("BLOB_REGION", "us-east-1"),
		BlobAccessKey: os.Getenv("BLOB_ACCESS_KEY"),
		BlobSecretKey: os.Getenv("BLOB_SECRET_KEY"),
		BlobBucket:    os.Getenv("BLOB_BUCKET"),
		BlobPathStyle: envBool("BLOB_PATH_STYLE", true),

		LogLevel: envOr("DOCPROX_LOG_LEVEL", "INFO"),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentDocs <= 0 {
		cfg.MaxConcurrentDocs = 16
	}
	if cfg.MaxRequestBytes <= 0 {
		cfg.MaxRequestBytes = 10485760
	}
	if cfg.MaxCorpusSize <= 0 {
		cfg.MaxCorpusSize = 100000
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.HTTPMaxRetries < 0 {
		cfg.HTTPMaxRetries = 0
	}
	if cfg.HTTPBackoff <= 0 {
		cfg.HTTPBackoff = 1 * time.Second
	}
	if cfg.MaxDocBytes <= 0 {
		cfg.MaxDocBytes = 67108864
	}

	return cfg
}

// Validate checks the settings the query service cannot run without.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("DOCPROX_API_KEY is required")
	}
	if (c.BlobAccessKey == "") != (c.BlobSecretKey == "") {
		return fmt.Errorf("BLOB_ACCESS_KEY and BLOB_SECRET_KEY must be set together")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// BlobEnabled reports whether blob: and s3:// identifiers can be served.
func (c Config) BlobEnabled() bool {
	return c.BlobEndpoint != "" || c.BlobBucket != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
