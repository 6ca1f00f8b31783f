package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// tempPrefix marks in-flight writes; CleanStaleTemp removes leftovers.
const tempPrefix = ".tmp-"

// EnsureDir creates directory structure with proper permissions.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// AtomicWrite writes data to path atomically using a temp file in the same
// directory. It returns the number of bytes written.
func AtomicWrite(path string, data io.Reader) (int64, error) {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return 0, fmt.Errorf("ensure dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, tempPrefix+"*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	// ensure cleanup of tmp on error
	defer func() {
		tmp.Close()
		os.Remove(tmpName)
	}()

	n, err := io.Copy(tmp, data)
	if err != nil {
		return 0, fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		return 0, fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return 0, fmt.Errorf("rename temp to final: %w", err)
	}

	return n, nil
}
