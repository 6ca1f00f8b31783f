package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	ServerAddr string
	DataDir    string

	// MaxUploadBytes caps request bodies and input files.
	MaxUploadBytes int64
	OutputFormat   string
	WebPQuality    int
	AVIFQuality    int
	AVIFSpeed      int

	// RateLimitResize is requests per minute per client on /resize.
	RateLimitResize int
	// TrustedProxies is a comma-separated CIDR list whose forwarded
	// headers are honored when identifying clients.
	TrustedProxies string
	Workers        int
}

func Load() *Config {
	return &Config{
		ServerAddr:      getEnv("SERVER_ADDR", ":8080"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		MaxUploadBytes:  int64(getEnvInt("MAX_UPLOAD_BYTES", 32<<20)),
		OutputFormat:    strings.ToLower(getEnv("OUTPUT_FORMAT", "webp")),
		WebPQuality:     getEnvInt("WEBP_QUALITY", 80),
		AVIFQuality:     getEnvInt("AVIF_QUALITY", 60),
		AVIFSpeed:       getEnvInt("AVIF_SPEED", 6),
		RateLimitResize: getEnvInt("RATE_LIMIT_RESIZE", 60),
		TrustedProxies:  getEnv("TRUSTED_PROXY_CIDRS", ""),
		Workers:         getEnvInt("WORKERS", 4),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt falls back to defaultValue when key is unset or not a
// positive integer.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		log.Printf("config: ignoring %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
