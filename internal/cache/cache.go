// Package cache provides a two-tier response cache: a bounded in-memory map
// in front of best-effort files on disk, keyed by an md5 of the lookup key.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const defaultMaxMemoryEntries = 1000

// Cache stores string responses for repeated prompts. Safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	dir        string
	memory     map[string]string
	maxEntries int
}

// New creates a cache persisting under dir, creating it if needed.
// maxMemoryEntries bounds the in-memory tier; 0 uses the default.
func New(dir string, maxMemoryEntries int) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	if maxMemoryEntries <= 0 {
		maxMemoryEntries = defaultMaxMemoryEntries
	}
	return &Cache{
		dir:        dir,
		memory:     make(map[string]string),
		maxEntries: maxMemoryEntries,
	}, nil
}

// Get returns the cached response for key. Disk hits are promoted to the
// memory tier while it has room.
func (c *Cache) Get(key string) (string, bool) {
	hash := keyHash(key)

	c.mu.RLock()
	value, ok := c.memory[hash]
	c.mu.RUnlock()
	if ok {
		return value, true
	}

	data, err := os.ReadFile(c.filePath(hash))
	if err != nil {
		return "", false
	}
	value = string(data)

	c.mu.Lock()
	if len(c.memory) < c.maxEntries {
		c.memory[hash] = value
	}
	c.mu.Unlock()
	return value, true
}

// Set stores the response in memory and best-effort on disk.
func (c *Cache) Set(key, value string) {
	hash := keyHash(key)

	c.mu.Lock()
	if len(c.memory) < c.maxEntries {
		c.memory[hash] = value
	}
	c.mu.Unlock()

	if err := os.WriteFile(c.filePath(hash), []byte(value), 0o644); err != nil {
		log.Printf("[cache] failed to persist entry: %v", err)
	}
}

// Len reports the memory-tier entry count, exposed for stats reporting.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.memory)
}

func (c *Cache) filePath(hash string) string {
	return filepath.Join(c.dir, hash+".txt")
}

func keyHash(key string) string {
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}
