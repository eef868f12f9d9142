// Package summary generates and caches short AI labels for conversations.
package summary

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Cache is the persisted conversation-id -> summary map. Entries never
// expire; a summary stays valid for the life of its transcript.
type Cache struct {
	path    string
	entries map[string]string
	mu      sync.RWMutex
}

// LoadCache reads the cache file, starting empty on any error.
func LoadCache(path string) *Cache {
	c := &Cache{
		path:    path,
		entries: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		c.entries = make(map[string]string)
	}
	return c
}

// Get retrieves a cached summary.
func (c *Cache) Get(id string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.entries[id]
	return s, ok
}

// Merge folds a batch of results into the cache. Existing entries for other
// conversations are untouched.
func (c *Cache) Merge(results map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, s := range results {
		if s != "" {
			c.entries[id] = s
		}
	}
}

// Len returns the number of cached summaries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Save writes the whole cache, replacing the file. Never a partial edit, so
// an interrupted run cannot corrupt previously cached entries.
func (c *Cache) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return err
	}
	data, err := json.Marshal(c.entries)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0644)
}
