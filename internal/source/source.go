// Package source retrieves raw document bytes for corpus identifiers.
//
// Identifiers take three shapes:
//
//	/data/issue/0001.xml             local file (optionally under a root)
//	https://host/issue/0001.xml      HTTP(S)
//	blob:issue/0001.xml              object in the default bucket
//	s3://bucket/issue/0001.xml       object in a named bucket
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Opener returns a byte stream for one corpus identifier. Callers close it.
type Opener interface {
	Open(ctx context.Context, id string) (io.ReadCloser, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, id string) (io.ReadCloser, error)

func (f OpenerFunc) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	return f(ctx, id)
}

// Router dispatches on the identifier's scheme. A nil Blob or HTTP opener
// makes identifiers of that kind fail with a RetrievalError.
type Router struct {
	Files Opener
	HTTP  Opener
	Blob  Opener
}

func (r *Router) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	var o Opener
	switch {
	case strings.HasPrefix(id, "http://"), strings.HasPrefix(id, "https://"):
		o = r.HTTP
	case strings.HasPrefix(id, "blob:"), strings.HasPrefix(id, "s3://"):
		o = r.Blob
	default:
		o = r.Files
	}
	if o == nil {
		return nil, &RetrievalError{ID: id, Err: errors.New("no retriever configured for this identifier")}
	}

	rc, err := o.Open(ctx, id)
	if err != nil {
		var re *RetrievalError
		if errors.As(err, &re) {
			return nil, err
		}
		return nil, &RetrievalError{ID: id, Err: err}
	}
	return rc, nil
}

// RetrievalError reports that a document's bytes could not be obtained.
type RetrievalError struct {
	ID  string
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve %s: %v", e.ID, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// IsRetrievalError reports whether err wraps a *RetrievalError.
func IsRetrievalError(err error) bool {
	var re *RetrievalError
	return errors.As(err, &re)
}

// Config selects the retrievers New wires into a Router.
type Config struct {
	Files    bool   // Serve local paths
	FileRoot string // Confine local paths to this directory
	HTTP     HTTPConfig
	Blob     *BlobConfig // nil disables blob: and s3:// identifiers
}

// New builds a Router from cfg.
func New(cfg Config, logger *slog.Logger) *Router {
	r := &Router{HTTP: NewHTTPOpener(cfg.HTTP, logger)}
	if cfg.Files {
		r.Files = &FileOpener{Root: cfg.FileRoot}
	}
	if cfg.Blob != nil {
		b := NewBlobOpener(NewS3Client(*cfg.Blob), cfg.Blob.Bucket)
		b.MaxBytes = cfg.Blob.MaxBytes
		r.Blob = b
	}
	return r
}
