package transcript

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestLoggerWritesOneLinePerEvent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	logger, err := New(Config{Enabled: true, Dir: dir}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Log(Event{Channel: "cli", EventType: EventQuestion, Persona: "Mr. Newton", Content: "What is force?"})
	logger.Log(Event{Channel: "cli", EventType: EventResponse, Persona: "Mr. Newton", Content: "Force is...", Meta: map[string]any{"cached": false}})

	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(logger.Path())
	if err != nil {
		t.Fatalf("failed to read transcript: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), data)
	}

	var got Event
	if err := json.Unmarshal([]byte(lines[0]), &got); err != nil {
		t.Fatalf("failed to unmarshal line: %v", err)
	}
	if got.RunID != logger.RunID() {
		t.Fatalf("unexpected run id: %q", got.RunID)
	}
	if got.EventType != EventQuestion || got.Content != "What is force?" {
		t.Fatalf("unexpected event: %+v", got)
	}
	if got.Timestamp == "" {
		t.Fatal("expected timestamp to be filled")
	}
}

func TestDisabledLoggerIsNoop(t *testing.T) {
	t.Parallel()

	logger, err := New(Config{Enabled: false, Dir: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if logger.Path() != "" {
		t.Fatalf("expected no path for disabled logger, got %q", logger.Path())
	}
	if logger.RunID() == "" {
		t.Fatal("expected run id even when disabled")
	}

	logger.Log(Event{EventType: EventQuestion, Content: "ignored"})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestLogAfterCloseIsDropped(t *testing.T) {
	t.Parallel()

	logger, err := New(Config{Enabled: true, Dir: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	logger.Log(Event{EventType: EventQuestion, Content: "late"})

	data, err := os.ReadFile(logger.Path())
	if err != nil {
		t.Fatalf("failed to read transcript: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty transcript, got %q", data)
	}
}
