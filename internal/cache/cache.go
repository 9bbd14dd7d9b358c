// Package cache memoizes tutor responses in a JSON file.
//
// The whole mapping is rewritten on every new entry. Writes go through a
// temporary file and a rename, so a crash can lose the newest entry but never
// leaves a half-written file behind.
package cache

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/moby/sys/atomicwriter"
)

// QuestionPrefixLen is the number of question characters that take part in a key.
// Longer questions sharing this prefix map to the same entry.
const QuestionPrefixLen = 50

// Key builds the cache key for a persona, class level and question.
// Underscores in the class level become hyphens so the level cannot absorb
// part of the question: level "10_a" with "b" and level "10" with "a_b" stay
// distinct.
func Key(personaName, classLevel, question string) string {
	prefix := question
	if r := []rune(question); len(r) > QuestionPrefixLen {
		prefix = string(r[:QuestionPrefixLen])
	}
	return personaName + "_" + strings.ReplaceAll(classLevel, "_", "-") + "_" + prefix
}

// Cache is a file-backed key to response mapping.
type Cache struct {
	path    string
	logger  *slog.Logger
	mu      sync.Mutex
	entries map[string]string
}

// Load reads the cache file at path. A missing or malformed file yields an
// empty cache.
func Load(path string, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Cache{
		path:    path,
		logger:  logger,
		entries: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("cache file unreadable, starting empty", "path", path, "error", err)
		}
		return c
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		logger.Warn("cache file malformed, starting empty", "path", path, "error", err)
		return c
	}
	if entries != nil {
		c.entries = entries
	}

	logger.Debug("response cache loaded", "path", path, "entries", len(c.entries))
	return c
}

// GetOrGenerate returns the cached value for key. On a miss it calls generate,
// stores the result, persists the full mapping and reports hit=false.
func (c *Cache) GetOrGenerate(key string, generate func() string) (value string, hit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.entries[key]; ok {
		return v, true
	}

	value = generate()
	c.entries[key] = value

	if err := c.persist(); err != nil {
		c.logger.Warn("failed to persist response cache", "error", err)
	}
	return value, false
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Path returns the backing file path.
func (c *Cache) Path() string {
	return c.path
}

// persist must be called with mu held.
func (c *Cache) persist() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal cache", goerr.V("entries", len(c.entries)))
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return goerr.Wrap(err, "failed to create cache directory", goerr.V("path", c.path))
	}

	if err := atomicwriter.WriteFile(c.path, data, 0644); err != nil {
		return goerr.Wrap(err, "failed to write cache file", goerr.V("path", c.path))
	}
	return nil
}
