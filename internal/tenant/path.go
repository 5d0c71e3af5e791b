// Package tenant derives the addressing tuple under which a user's
// collections live: the identity-derived storage key plus the subject
// identifier taken from the page the caller is on.
package tenant

import "fmt"

// Path is the immutable addressing tuple (storage key, subject id).
// A zero Path is unresolved; document operations against it degrade to
// no-ops rather than writing to a guessable location.
type Path struct {
	storageKey string
	subjectID  string
}

// NewPath builds a Path. Either component may be empty, in which case the
// Path reports itself unresolved.
func NewPath(storageKey, subjectID string) Path {
	return Path{storageKey: storageKey, subjectID: subjectID}
}

// Resolved reports whether both components are present.
func (p Path) Resolved() bool {
	return p.storageKey != "" && p.subjectID != ""
}

// StorageKey returns the identity-derived namespace selector.
func (p Path) StorageKey() string { return p.storageKey }

// SubjectID returns the subject segment, verbatim as resolved.
func (p Path) SubjectID() string { return p.subjectID }

// DocPrefix renders the document-store prefix for this tenant.
func (p Path) DocPrefix() string {
	return fmt.Sprintf("users/%s/subjects/%s", p.storageKey, p.subjectID)
}
