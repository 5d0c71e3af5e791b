package config

import (
	"encoding/json"
	"flag"
	"io"
	"os"
	"time"
)

// jsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Durations are accepted as strings ("2m", "90s"). After
// unmarshalling, non-zero fields are copied into the runtime Config.
type jsonConfig struct {
	HTTPAddr         string   `json:"http_addr"`
	DatabaseDSN      string   `json:"database_dsn"`
	JWTSecret        string   `json:"jwt_secret"`
	S3User           string   `json:"s3_user"`
	S3Password       string   `json:"s3_password"`
	S3Bucket         string   `json:"s3_bucket"`
	S3Region         string   `json:"s3_region"`
	S3BaseEndpoint   string   `json:"s3_base_endpoint"`
	UploadTimeout    string   `json:"upload_timeout"`
	AdminEmails      []string `json:"admin_emails"`
	SharedStorageKey string   `json:"shared_storage_key"`
}

// jsonConfigPath extracts the -c flag without consuming the rest of the
// command line, so parseFlags can still see every other flag.
func jsonConfigPath(args []string) string {
	fs := flag.NewFlagSet("json-config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	path := fs.String("c", "", "path to a JSON config file")
	for i, a := range args {
		if a == "-c" || a == "--c" {
			_ = fs.Parse(args[i:])
			break
		}
	}
	return *path
}

// parseJSON loads configuration values from the JSON file named by the -c
// flag, if any. Missing flag means no JSON overlay. An unreadable or invalid
// file panics: a config file that was explicitly requested must be usable.
func parseJSON(cfg *Config) {
	path := jsonConfigPath(os.Args[1:])
	if path == "" {
		return
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &jsonConfig{}
	if err := json.Unmarshal(raw, c); err != nil {
		panic(err)
	}

	applyJSON(cfg, c)
}

func applyJSON(cfg *Config, c *jsonConfig) {
	if c.HTTPAddr != "" {
		cfg.HTTPAddr = c.HTTPAddr
	}
	if c.DatabaseDSN != "" {
		cfg.DatabaseDSN = c.DatabaseDSN
	}
	if c.JWTSecret != "" {
		cfg.JWTSecret = c.JWTSecret
	}
	if c.S3User != "" {
		cfg.S3User = c.S3User
	}
	if c.S3Password != "" {
		cfg.S3Password = c.S3Password
	}
	if c.S3Bucket != "" {
		cfg.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		cfg.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = c.S3BaseEndpoint
	}
	if c.UploadTimeout != "" {
		if d, err := time.ParseDuration(c.UploadTimeout); err == nil && d > 0 {
			cfg.UploadTimeout = d
		}
	}
	if len(c.AdminEmails) > 0 {
		cfg.AdminEmails = c.AdminEmails
	}
	if c.SharedStorageKey != "" {
		cfg.SharedStorageKey = c.SharedStorageKey
	}
}
