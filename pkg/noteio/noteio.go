// Package noteio handles reading and writing release-notes files: stdin,
// transparent gzip/zstd decompression, and atomic in-place rewrites.
package noteio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// StdinName is the path argument that selects standard input.
const StdinName = "-"

// Open returns a reader for the given path, decompressing ".gz" and ".zst"
// sources. The returned name is the logical file name with any compression
// suffix stripped, suitable for diagnostics.
func Open(path string) (io.ReadCloser, string, error) {
	if path == StdinName {
		return io.NopCloser(os.Stdin), "<stdin>", nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()

			return nil, "", fmt.Errorf("open %s: %w", path, err)
		}

		return &wrappedCloser{Reader: zr, close: func() error {
			zerr := zr.Close()
			ferr := f.Close()
			if zerr != nil {
				return zerr
			}

			return ferr
		}}, strings.TrimSuffix(path, ".gz"), nil

	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			_ = f.Close()

			return nil, "", fmt.Errorf("open %s: %w", path, err)
		}

		return &wrappedCloser{Reader: zr.IOReadCloser(), close: func() error {
			zr.Close()

			return f.Close()
		}}, strings.TrimSuffix(path, ".zst"), nil
	}

	return f, path, nil
}

type wrappedCloser struct {
	io.Reader
	close func() error
}

func (w *wrappedCloser) Close() error {
	return w.close()
}

// WriteAtomic writes data to path through a uniquely named temp file in the
// same directory, then renames it into place, so readers never observe a
// half-written document.
func WriteAtomic(path string, data []byte) error {
	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Errorf("failed to generate uuid: %w", err)
	}

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+id.String())

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)

		return fmt.Errorf("rename %s: %w", tmp, err)
	}

	return nil
}
