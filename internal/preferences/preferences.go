// Package preferences persists the learner's settings between runs.
package preferences

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ashureev/learnzverse/internal/domain"
	"github.com/m-mizutani/goerr/v2"
	"github.com/moby/sys/atomicwriter"
	"gopkg.in/yaml.v3"
)

// Store holds the current preferences and the file they are saved to.
type Store struct {
	path  string
	mu    sync.Mutex
	prefs domain.Preferences
}

// Load reads preferences from path, falling back to defaults when the file
// is missing or cannot be parsed.
func Load(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{path: path, prefs: domain.DefaultPreferences()}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("preferences unreadable, using defaults", "path", path, "error", err)
		}
		return s
	}

	prefs := domain.DefaultPreferences()
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		logger.Warn("preferences malformed, using defaults", "path", path, "error", err)
		return s
	}
	if strings.TrimSpace(prefs.ClassLevel) == "" {
		prefs.ClassLevel = domain.DefaultClassLevel
	}
	if _, ok := domain.PersonaBySlug(prefs.PreferredPersona); !ok {
		prefs.PreferredPersona = ""
	}

	s.prefs = prefs
	return s
}

// Get returns a copy of the current preferences.
func (s *Store) Get() domain.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// Update applies fn and rewrites the preferences file. The in-memory value
// is updated even when the write fails.
func (s *Store) Update(fn func(*domain.Preferences)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.prefs)

	data, err := yaml.Marshal(s.prefs)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal preferences")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return goerr.Wrap(err, "failed to create preferences directory", goerr.V("path", s.path))
	}
	if err := atomicwriter.WriteFile(s.path, data, 0644); err != nil {
		return goerr.Wrap(err, "failed to write preferences", goerr.V("path", s.path))
	}
	return nil
}
