package storage

import (
	"bytes"
	"fmt"
	"time"
)

// Storage writes resized derivatives under BaseDir.
type Storage struct {
	BaseDir string
}

// New creates a new Storage instance with the provided base directory.
func New(baseDir string) *Storage {
	return &Storage{BaseDir: baseDir}
}

// Save atomically writes data as the derivative of name at width x height
// and returns its path.
func (s *Storage) Save(name string, width, height int, format string, data []byte) (string, error) {
	path := OutputPath(s.BaseDir, name, width, height, format)
	if _, err := AtomicWrite(path, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

// Clean removes stale temp files from BaseDir.
func (s *Storage) Clean(maxAge time.Duration) (int, error) {
	return CleanStaleTemp(s.BaseDir, maxAge)
}
