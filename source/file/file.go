// Package file opens annotation files from a local directory.
package file

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// The extensions probed, in order, when an ID does not name a file directly.
var extensions = []string{"", ".gff", ".gff3", ".gtf", ".gff.gz", ".gff3.gz", ".gtf.gz"}

// gzipReadCloser decompresses a file's contents and closes both the
// decompressor and the underlying file.
type gzipReadCloser struct {
	*gzip.Reader
	file *os.File
}

func (r gzipReadCloser) Close() error {
	if err := r.Reader.Close(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}

// Open resolves id against directory and returns a reader over the file's
// text.  Files ending in ".gz" are decompressed transparently.
func Open(directory, id string) (io.ReadCloser, error) {
	if filepath.Base(id) != id {
		return nil, fmt.Errorf("invalid ID %q", id)
	}

	for _, ext := range extensions {
		name := filepath.Join(directory, id+ext)
		f, err := os.Open(name)
		if err != nil {
			continue
		}
		if !strings.HasSuffix(name, ".gz") {
			return f, nil
		}
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening archive: %v", err)
		}
		return gzipReadCloser{gz, f}, nil
	}
	return nil, fmt.Errorf("no annotation file for ID %q", id)
}
