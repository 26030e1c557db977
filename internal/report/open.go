// internal/report/open.go
package report

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Open returns a reader for path. "-" reads stdin; a ".gz" suffix is
// decompressed transparently. The caller must Close the result.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	if st, err := fh.Stat(); err == nil && st.IsDir() {
		fh.Close()
		return nil, fmt.Errorf("open report: %s is a directory", path)
	}
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, fmt.Errorf("open report %s: %w", path, err)
		}
		return struct {
			io.Reader
			io.Closer
		}{Reader: gr, Closer: fh}, nil
	}
	return fh, nil
}
