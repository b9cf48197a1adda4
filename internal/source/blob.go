package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BlobConfig locates the object store. Endpoint may point at MinIO or any
// other S3-compatible server.
type BlobConfig struct {
	Endpoint  string // "http://127.0.0.1:9000"
	Region    string // "us-east-1"
	AccessKey string
	SecretKey string
	Bucket    string // Default bucket for blob: identifiers
	PathStyle bool
	MaxBytes  int64 // Per-object limit; 0 means unlimited
}

// NewS3Client builds an S3 client with static credentials.
func NewS3Client(cfg BlobConfig) *s3.Client {
	return s3.NewFromConfig(aws.Config{Region: cfg.Region}, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.AccessKey != "" {
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		}
		o.UsePathStyle = cfg.PathStyle
	})
}

// ErrObjectTooLarge is returned when an object exceeds BlobOpener.MaxBytes.
var ErrObjectTooLarge = errors.New("object exceeds size limit")

// BlobOpener downloads objects named by "blob:<key>" (default bucket) or
// "s3://<bucket>/<key>".
type BlobOpener struct {
	// MaxBytes aborts downloads larger than this many bytes. Zero disables
	// the check.
	MaxBytes int64

	downloader *manager.Downloader
	bucket     string
}

// NewBlobOpener wraps any GetObject client, normally *s3.Client.
func NewBlobOpener(client manager.DownloadAPIClient, bucket string) *BlobOpener {
	return &BlobOpener{
		downloader: manager.NewDownloader(client, func(d *manager.Downloader) {
			d.Concurrency = 1
		}),
		bucket: bucket,
	}
}

func (b *BlobOpener) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	bucket, key, err := b.locate(id)
	if err != nil {
		return nil, &RetrievalError{ID: id, Err: err}
	}
	buf := manager.NewWriteAtBuffer([]byte{})
	var w io.WriterAt = buf
	if b.MaxBytes > 0 {
		w = &limitedWriterAt{w: buf, max: b.MaxBytes}
	}
	if _, err := b.downloader.Download(ctx, w, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return nil, &RetrievalError{ID: id, Err: fmt.Errorf("download s3://%s/%s: %w", bucket, key, err)}
	}
	return io.NopCloser(bytes.NewReader(buf.Bytes())), nil
}

func (b *BlobOpener) locate(id string) (bucket, key string, err error) {
	switch {
	case strings.HasPrefix(id, "s3://"):
		rest := strings.TrimPrefix(id, "s3://")
		bucket, key, _ = strings.Cut(rest, "/")
	case strings.HasPrefix(id, "blob:"):
		bucket = b.bucket
		key = strings.TrimPrefix(strings.TrimPrefix(id, "blob:"), "/")
		if bucket == "" {
			return "", "", fmt.Errorf("no default bucket configured")
		}
	default:
		return "", "", fmt.Errorf("not a blob identifier")
	}
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("identifier must name a bucket and a key")
	}
	return bucket, key, nil
}

// limitedWriterAt fails any write that would extend past max.
type limitedWriterAt struct {
	w   io.WriterAt
	max int64
}

func (l *limitedWriterAt) WriteAt(p []byte, off int64) (int, error) {
	if off+int64(len(p)) > l.max {
		return 0, fmt.Errorf("%w (%d bytes)", ErrObjectTooLarge, l.max)
	}
	return l.w.WriteAt(p, off)
}
