// Package cache provides result caching for preprocessing runs.
//
// Preprocessing an instance is deterministic in (instance, k, m), so
// reports are memoized under keys derived from the instance hash and the
// requested guarantees. Backends implement the Cache interface; the CLI
// uses the file backend, tests and cache-disabled runs use the null one.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any backend resources.
	Close() error
}

// Keyer derives cache keys from domain values.
type Keyer interface {
	// InstanceKey identifies an instance by its serialized form.
	InstanceKey(serialized string) string

	// PreprocessKey identifies a preprocessing run over one instance for
	// one (k, m) pair.
	PreprocessKey(instanceHash string, k, m int) string
}

// DefaultKeyer hashes all key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// InstanceKey hashes the full serialized instance, so instances with equal
// parameters but different edges get distinct keys.
func (k *DefaultKeyer) InstanceKey(serialized string) string {
	return Hash([]byte(serialized))
}

// PreprocessKey combines the instance hash with the requested guarantees.
func (k *DefaultKeyer) PreprocessKey(instanceHash string, kCov, mConn int) string {
	return hashKey("preprocess", instanceHash, kCov, mConn)
}
