package storage

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOutputPath(t *testing.T) {
	tmp := t.TempDir()
	tests := []struct {
		name, format, want string
	}{
		{"photos/IMG_0001.JPG", "webp", "IMG_0001_50x25.webp"},
		{"cat.png", "jpeg", "cat_50x25.jpg"},
		{"noext", ".png", "noext_50x25.png"},
		{"", "avif", "image_50x25.avif"},
	}
	for _, tt := range tests {
		got := OutputPath(tmp, tt.name, 50, 25, tt.format)
		if got != filepath.Join(tmp, tt.want) {
			t.Errorf("OutputPath(%q, %q) = %s, want %s", tt.name, tt.format, got, tt.want)
		}
	}
}

func TestEnsureDir(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "out", "2026", "01")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat dir: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected dir, got file")
	}
}

func TestAtomicWrite(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "file.bin")
	data := []byte("resized bytes")

	n, err := AtomicWrite(path, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("AtomicWrite: %v", err)
	}
	if n != int64(len(data)) {
		t.Fatalf("expected %d bytes written, got %d", len(data), n)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("contents differ")
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("expected only the final file, found %d entries", len(entries))
	}
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) { return 0, errors.New("boom") }

func TestAtomicWrite_ReaderFailureLeavesNothing(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "file.bin")
	if _, err := AtomicWrite(path, io.MultiReader(bytes.NewReader([]byte("x")), failingReader{})); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no final file, stat err: %v", err)
	}
	entries, _ := os.ReadDir(tmp)
	if len(entries) != 0 {
		t.Fatalf("expected temp file removed, found %d entries", len(entries))
	}
}

func TestStorageSave(t *testing.T) {
	s := New(t.TempDir())
	path, err := s.Save("in/photo.jpg", 10, 20, "png", []byte("png"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "photo_10x20.png" {
		t.Fatalf("unexpected path %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}
}

func TestCleanStaleTemp(t *testing.T) {
	tmp := t.TempDir()
	old := filepath.Join(tmp, tempPrefix+"old")
	fresh := filepath.Join(tmp, tempPrefix+"new")
	keep := filepath.Join(tmp, "result_1x1.png")
	for _, p := range []string{old, fresh, keep} {
		if err := os.WriteFile(p, []byte("x"), 0o600); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
	past := time.Now().Add(-time.Hour)
	for _, p := range []string{old, keep} {
		if err := os.Chtimes(p, past, past); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}

	n, err := New(tmp).Clean(15 * time.Minute)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 file removed, got %d", n)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatalf("expected stale temp removed, stat err: %v", err)
	}
	for _, p := range []string{fresh, keep} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected %s kept: %v", p, err)
		}
	}

	if n, err := CleanStaleTemp(filepath.Join(tmp, "missing"), time.Minute); err != nil || n != 0 {
		t.Fatalf("missing dir: n=%d err=%v", n, err)
	}
}
