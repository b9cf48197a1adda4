package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadList reads a corpus list: one identifier per line. Blank lines and
// lines starting with '#' are ignored.
func ReadList(r io.Reader) ([]string, error) {
	var ids []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read corpus list: %w", err)
	}
	return ids, nil
}

// ReadListFile reads a corpus list from path.
func ReadListFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus list: %w", err)
	}
	defer f.Close()
	return ReadList(f)
}
