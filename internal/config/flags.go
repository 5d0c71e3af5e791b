package config

import (
	"flag"
	"os"
	"strings"
	"time"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-u string   S3 user
//	-p string   S3 password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-t int      upload timeout, minutes
//	-m string   comma-separated admin e-mail allow-list
//	-k string   shared storage key for the allow-list
//	-c string   JSON config file (handled by parseJSON, declared here so
//	            the flag set accepts it)
func parseFlags(config *Config) {
	fs := flag.NewFlagSet("studyvault", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.JWTSecret, "s", config.JWTSecret, "secret key")

	fs.StringVar(&config.S3User, "u", config.S3User, "S3 user")
	fs.StringVar(&config.S3Password, "p", config.S3Password, "S3 password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	uploadTimeout := fs.Int("t", int(config.UploadTimeout.Minutes()), "upload timeout (in minutes)")
	adminEmails := fs.String("m", strings.Join(config.AdminEmails, ","), "admin e-mail allow-list (comma-separated)")

	fs.StringVar(&config.SharedStorageKey, "k", config.SharedStorageKey, "shared storage key")
	fs.String("c", "", "path to a JSON config file")

	if err := fs.Parse(os.Args[1:]); err != nil {
		panic(err)
	}

	config.UploadTimeout = time.Duration(*uploadTimeout) * time.Minute
	config.AdminEmails = splitList(*adminEmails)
}
