// Package transcript writes an NDJSON record of every tutoring exchange.
package transcript

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// Event types.
const (
	EventQuestion = "question"
	EventResponse = "response"
)

// Config controls transcript logging.
type Config struct {
	Enabled bool
	Dir     string
}

// Event is one line of the transcript.
type Event struct {
	Timestamp  string         `json:"ts"`
	RunID      string         `json:"run_id"`
	Channel    string         `json:"channel"`
	EventType  string         `json:"event_type"`
	Persona    string         `json:"persona,omitempty"`
	Subject    string         `json:"subject,omitempty"`
	ClassLevel string         `json:"class_level,omitempty"`
	Content    string         `json:"content"`
	Meta       map[string]any `json:"meta,omitempty"`
}

// Logger appends events to <dir>/<run-id>.ndjson. A disabled Logger drops everything.
type Logger struct {
	runID  string
	path   string
	logger *slog.Logger

	mu  sync.Mutex
	f   *os.File
	enc *json.Encoder
}

// New opens the transcript file for a fresh run ID.
func New(cfg Config, logger *slog.Logger) (*Logger, error) {
	if logger == nil {
		logger = slog.Default()
	}

	l := &Logger{
		runID:  uuid.NewString(),
		logger: logger,
	}
	if !cfg.Enabled {
		return l, nil
	}

	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create transcript directory", goerr.V("dir", cfg.Dir))
	}

	l.path = filepath.Join(cfg.Dir, l.runID+".ndjson")
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open transcript file", goerr.V("path", l.path))
	}
	l.f = f
	l.enc = json.NewEncoder(f)

	return l, nil
}

// RunID identifies this process's transcript.
func (l *Logger) RunID() string {
	return l.runID
}

// Path returns the transcript file, or "" when disabled.
func (l *Logger) Path() string {
	return l.path
}

// Log writes ev. Failures are logged and otherwise ignored.
func (l *Logger) Log(ev Event) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.enc == nil {
		return
	}

	if ev.Timestamp == "" {
		ev.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}
	ev.RunID = l.runID

	if err := l.enc.Encode(ev); err != nil {
		l.logger.Warn("failed to write transcript event", "path", l.path, "event_type", ev.EventType, "error", err)
	}
}

// Close releases the transcript file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	l.enc = nil
	if err != nil {
		return goerr.Wrap(err, "failed to close transcript", goerr.V("path", l.path))
	}
	return nil
}
