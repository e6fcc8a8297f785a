// Package cache memoizes per-column inference results. Identical
// column names recur constantly across tables, and their analysis is
// deterministic, so cached results are always valid for the lifetime
// of one knowledge base.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for result caching.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a column name.
func Key(columnName string) string {
	hash := sha256.Sum256([]byte(columnName))
	return "columella:v1:" + hex.EncodeToString(hash[:])
}
