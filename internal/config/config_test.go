package config_test

import (
	"testing"

	"upright/internal/config"
)

func TestLoad_WithEnvVars(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9999")
	t.Setenv("DATA_DIR", "./tmp/data")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("OUTPUT_FORMAT", "AVIF")
	t.Setenv("WEBP_QUALITY", "70")
	t.Setenv("AVIF_QUALITY", "45")
	t.Setenv("AVIF_SPEED", "8")
	t.Setenv("RATE_LIMIT_RESIZE", "5")
	t.Setenv("TRUSTED_PROXY_CIDRS", "10.0.0.0/8")
	t.Setenv("WORKERS", "2")

	cfg := config.Load()
	if cfg.ServerAddr != ":9999" {
		t.Fatalf("expected SERVER_ADDR :9999, got %s", cfg.ServerAddr)
	}
	if cfg.DataDir != "./tmp/data" {
		t.Fatalf("expected DATA_DIR ./tmp/data, got %s", cfg.DataDir)
	}
	if cfg.MaxUploadBytes != 1<<20 {
		t.Fatalf("expected MAX_UPLOAD_BYTES 1048576, got %d", cfg.MaxUploadBytes)
	}
	if cfg.OutputFormat != "avif" {
		t.Fatalf("expected lowercased OUTPUT_FORMAT avif, got %s", cfg.OutputFormat)
	}
	if cfg.WebPQuality != 70 || cfg.AVIFQuality != 45 || cfg.AVIFSpeed != 8 {
		t.Fatalf("unexpected encoder settings: %+v", cfg)
	}
	if cfg.RateLimitResize != 5 {
		t.Fatalf("expected RATE_LIMIT_RESIZE 5, got %d", cfg.RateLimitResize)
	}
	if cfg.TrustedProxies != "10.0.0.0/8" {
		t.Fatalf("expected TRUSTED_PROXY_CIDRS 10.0.0.0/8, got %s", cfg.TrustedProxies)
	}
	if cfg.Workers != 2 {
		t.Fatalf("expected WORKERS 2, got %d", cfg.Workers)
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"SERVER_ADDR", "DATA_DIR", "MAX_UPLOAD_BYTES", "OUTPUT_FORMAT", "WORKERS", "RATE_LIMIT_RESIZE"} {
		t.Setenv(k, "")
	}

	cfg := config.Load()
	if cfg.ServerAddr == "" {
		t.Fatalf("expected default SERVER_ADDR, got empty")
	}
	if cfg.DataDir == "" {
		t.Fatalf("expected default DATA_DIR, got empty")
	}
	if cfg.MaxUploadBytes != 32<<20 {
		t.Fatalf("expected default MAX_UPLOAD_BYTES, got %d", cfg.MaxUploadBytes)
	}
	if cfg.OutputFormat != "webp" {
		t.Fatalf("expected default OUTPUT_FORMAT webp, got %s", cfg.OutputFormat)
	}
	if cfg.Workers != 4 || cfg.RateLimitResize != 60 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("WORKERS", "many")
	t.Setenv("WEBP_QUALITY", "-3")

	cfg := config.Load()
	if cfg.Workers != 4 {
		t.Fatalf("expected fallback WORKERS 4, got %d", cfg.Workers)
	}
	if cfg.WebPQuality != 80 {
		t.Fatalf("expected fallback WEBP_QUALITY 80, got %d", cfg.WebPQuality)
	}
}
