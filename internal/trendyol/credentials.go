package trendyol

import (
	"encoding/base64"
	"sync/atomic"
)

// Credentials is the secret tuple required to talk to the marketplace.
// All three fields must be set for the client to be considered ready.
type Credentials struct {
	APIKey     string
	APISecret  string
	SupplierID string
}

// Ready reports whether every field of the tuple is set.
func (c Credentials) Ready() bool {
	return c.APIKey != "" && c.APISecret != "" && c.SupplierID != ""
}

// CredentialStore holds the current credentials and supports hot
// replacement at runtime. Replacement is atomic: a concurrent reader sees
// either the old tuple or the new one, never a mix. Requests snapshot the
// tuple once at request start, so a replacement takes effect on the next
// request and never mid-flight.
type CredentialStore struct {
	cur atomic.Pointer[Credentials]
}

// NewCredentialStore creates a store seeded with the given credentials.
// Zero-value credentials are fine; the store just reports not ready.
func NewCredentialStore(c Credentials) *CredentialStore {
	s := &CredentialStore{}
	s.cur.Store(&c)
	return s
}

// Get returns a snapshot of the current credentials.
func (s *CredentialStore) Get() Credentials {
	return *s.cur.Load()
}

// Replace swaps in a new credential tuple.
func (s *CredentialStore) Replace(c Credentials) {
	s.cur.Store(&c)
}

// Ready reports whether the current tuple is complete.
func (s *CredentialStore) Ready() bool {
	return s.cur.Load().Ready()
}

// BasicAuth derives the Authorization header value for the given
// credentials. Recomputed per request from a fresh snapshot so a credential
// replacement is never signed with revoked secrets.
func BasicAuth(c Credentials) string {
	raw := c.APIKey + ":" + c.APISecret
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}
