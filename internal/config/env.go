package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first, if present; real environment
// variables win over .env values (godotenv does not override existing vars).
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	setString(&cfg.HTTPAddr, "HTTP_ADDR")
	setString(&cfg.DatabaseDSN, "DATABASE_DSN")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.S3User, "S3_USER")
	setString(&cfg.S3Password, "S3_PASSWORD")
	setString(&cfg.S3Bucket, "S3_BUCKET")
	setString(&cfg.S3Region, "S3_REGION")
	setString(&cfg.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	setString(&cfg.SharedStorageKey, "SHARED_STORAGE_KEY")

	if v, ok := os.LookupEnv("UPLOAD_TIMEOUT"); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.UploadTimeout = d
		}
	}

	if v, ok := os.LookupEnv("ADMIN_EMAILS"); ok && v != "" {
		cfg.AdminEmails = splitList(v)
	}
}

// splitList splits a comma-separated list, trimming blanks.
func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
