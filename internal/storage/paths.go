package storage

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputPath returns the path for a resized derivative of name using
// layout: {baseDir}/{stem}_{w}x{h}.{ext}, where stem is name without
// directory or extension.
func OutputPath(baseDir, name string, width, height int, format string) string {
	stem := filepath.Base(name)
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		stem = "image"
	}
	ext := strings.ToLower(strings.TrimPrefix(format, "."))
	if ext == "jpeg" {
		ext = "jpg"
	}
	return filepath.Join(baseDir, fmt.Sprintf("%s_%dx%d.%s", stem, width, height, ext))
}
