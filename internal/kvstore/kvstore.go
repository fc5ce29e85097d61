// Package kvstore defines the key-value persistence interface and its
// implementations. Any read fault is reported as an absent key, and
// writes are best-effort: callers must treat a failed Set as lost durability,
// not as a fatal error.
package kvstore

import "context"

// Persisted keys. Each component owns the keys it reads and writes.
const (
	KeyUpvotes    = "userUpvotes"
	KeyLibrary    = "libraryItems"
	KeyArticles   = "thetechtimes_v2" // versioned: a format change bumps the key
	KeyNewsletter = "newsletterEmails"
	KeyContact    = "contactMessages"
)

// Store is a string-keyed store of JSON-encoded text values.
//
// Get never fails: a missing key, a closed store, or any underlying fault
// all read as absent. Set reports success; on a capacity failure the
// implementation may evict one known-large, lower-priority key and retry
// once before reporting false.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) bool
}
