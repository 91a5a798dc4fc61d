package chitai

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// CacheEntry is the on-disk token cache format.
type CacheEntry struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	CachedAt    time.Time `json:"cached_at"`
}

// TokenCache reads and writes a single token cache file.
type TokenCache struct {
	path string
}

// NewTokenCache creates a cache backed by path.
func NewTokenCache(path string) *TokenCache {
	return &TokenCache{path: path}
}

// Path returns the cache file path.
func (c *TokenCache) Path() string {
	return c.path
}

// Load reads the cache file. A missing file is not an error and yields a
// nil entry.
func (c *TokenCache) Load() (*CacheEntry, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token cache: %w", err)
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("parsing token cache: %w", err)
	}
	if entry.AccessToken == "" {
		return nil, nil
	}
	return &entry, nil
}

// Save writes entry to the cache file, readable only by the owner.
func (c *TokenCache) Save(entry *CacheEntry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding token cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("writing token cache: %w", err)
	}
	return nil
}

// Clear removes the cache file if it exists.
func (c *TokenCache) Clear() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing token cache: %w", err)
	}
	return nil
}
