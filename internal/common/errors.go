// Package common defines shared constants and sentinel errors used across
// the storage, transfer and API layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Tenant addressing errors. Document reads and writes degrade to
	// no-ops when the tenant path is unresolved; the upload pipeline
	// fails with this error instead.
	ErrPathUnresolved = errors.New("tenant path unresolved")

	// Blob-transfer errors.
	ErrUploadTimeout    = errors.New("upload timed out")
	ErrPermissionDenied = errors.New("permission denied")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Catalog seeding on a non-empty term.
	ErrAlreadySeeded = errors.New("catalog already seeded")
)
