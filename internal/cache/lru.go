// Package cache memoizes generated declarations.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DeclarationCache provides thread-safe LRU caching of rendered declarations
// keyed by a digest of the sample and the rendering options.
type DeclarationCache struct {
	cache  *lru.Cache[string, string]
	flight singleflight.Group
}

// NewDeclarationCache creates a new LRU cache with the specified maximum number of items.
func NewDeclarationCache(maxItems int) (*DeclarationCache, error) {
	c, err := lru.New[string, string](maxItems)
	if err != nil {
		return nil, err
	}
	return &DeclarationCache{cache: c}, nil
}

// Key derives the cache key for a sample rendered under name with the given
// options. parts are appended verbatim, so callers must pass every option
// that changes the output.
func Key(data []byte, name string, parts ...string) string {
	h := sha256.New()
	h.Write([]byte(strconv.Itoa(len(data))))
	h.Write([]byte{0})
	h.Write(data)
	h.Write([]byte{0})
	h.Write([]byte(name))
	for _, p := range parts {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves a declaration by key.
func (c *DeclarationCache) Get(key string) (string, bool) {
	return c.cache.Get(key)
}

// Put adds or updates a declaration.
func (c *DeclarationCache) Put(key, decl string) {
	c.cache.Add(key, decl)
}

// GetOrGenerate returns the cached declaration for key, or runs generate and
// caches its result. Concurrent calls for the same key share one generate call.
// Failed generations are not cached. The bool reports a cache hit.
func (c *DeclarationCache) GetOrGenerate(key string, generate func() (string, error)) (string, bool, error) {
	if decl, ok := c.cache.Get(key); ok {
		return decl, true, nil
	}

	v, err, _ := c.flight.Do(key, func() (any, error) {
		decl, err := generate()
		if err != nil {
			return "", err
		}
		c.cache.Add(key, decl)
		return decl, nil
	})
	if err != nil {
		return "", false, err
	}
	return v.(string), false, nil
}

// Len returns the current number of items in the cache.
func (c *DeclarationCache) Len() int {
	return c.cache.Len()
}
