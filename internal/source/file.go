package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FileOpener reads identifiers from the local filesystem. When Root is set
// every identifier, absolute or not, is resolved inside it.
type FileOpener struct {
	Root string
}

func (f *FileOpener) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := strings.TrimPrefix(id, "file://")
	if f.Root != "" {
		p = filepath.Join(f.Root, filepath.FromSlash(path.Clean("/"+filepath.ToSlash(p))))
	}
	file, err := os.Open(p)
	if err != nil {
		return nil, &RetrievalError{ID: id, Err: err}
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, &RetrievalError{ID: id, Err: err}
	}
	if info.IsDir() {
		file.Close()
		return nil, &RetrievalError{ID: id, Err: fmt.Errorf("%s is a directory", p)}
	}
	return file, nil
}
