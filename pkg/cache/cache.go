// Package cache provides byte-level caching used for resized portrait
// images.
//
// The cache is a pure performance optimization: entries are rebuilt on
// miss and the backing directory is always safe to delete. Two
// implementations are provided: FileCache (a directory of files) and
// NullCache (caching disabled).
package cache

import "context"

// Cache stores opaque byte blobs by key.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. Writing the same key twice is idempotent.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// NullCache is a no-op cache that never stores anything.
// Useful for testing or when caching should be disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always returns a cache miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, key string, data []byte) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
