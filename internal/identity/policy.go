// Package identity maps an authenticated principal to the storage key that
// selects its namespace in the document and blob stores.
package identity

import "strings"

// Policy decides which storage key an account writes under. Accounts whose
// e-mail is on the admin roster all alias to one shared key, so several
// human accounts intentionally read and write the same data. Everyone else
// gets their own principal id.
//
// The roster is configuration data, not resolver branching: build one Policy
// from config and inject it wherever a key is derived.
type Policy struct {
	sharedKey string
	roster    map[string]struct{}
}

// NewPolicy builds a Policy from the shared key and the admin e-mail roster.
// Roster matching is case-insensitive.
func NewPolicy(sharedKey string, adminEmails []string) Policy {
	roster := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			roster[e] = struct{}{}
		}
	}
	return Policy{sharedKey: sharedKey, roster: roster}
}

// StorageKey returns the namespace key for the given account.
func (p Policy) StorageKey(principalID, email string) string {
	if _, ok := p.roster[strings.ToLower(strings.TrimSpace(email))]; ok {
		return p.sharedKey
	}
	return principalID
}
