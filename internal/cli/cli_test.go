package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ashureev/learnzverse/internal/domain"
	"github.com/ashureev/learnzverse/internal/store"
	"github.com/m-mizutani/gt"
)

// isolate points every data path at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "learnzverse.db"))
	t.Setenv("CACHE_PATH", filepath.Join(dir, "cache.json"))
	t.Setenv("PREFS_PATH", filepath.Join(dir, "prefs.yaml"))
	t.Setenv("TRANSCRIPT_ENABLED", "true")
	t.Setenv("TRANSCRIPT_DIR", filepath.Join(dir, "transcripts"))
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("CORS_ORIGINS", "*")
	return dir
}

func seed(t *testing.T, dbPath string, questions ...string) {
	t.Helper()
	repo, err := store.NewSQLite(dbPath)
	gt.NoError(t, err)
	defer func() { gt.NoError(t, repo.Close()) }()

	p, ok := domain.PersonaBySlug("physics")
	gt.True(t, ok)
	for _, q := range questions {
		gt.NoError(t, repo.SaveSession(context.Background(), domain.NewSessionRecord(p, "10", q, "answer")))
	}
}

func TestHistoryCommand(t *testing.T) {
	dir := isolate(t)
	seed(t, filepath.Join(dir, "learnzverse.db"), "first", "second", "third")

	var buf bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &buf

	gt.NoError(t, cmd.Run(context.Background(), []string{"learnzverse", "--env-file", filepath.Join(dir, "missing.env"), "history", "-n", "2"}))

	out := buf.String()
	gt.S(t, out).Contains("third")
	gt.S(t, out).Contains("second")
	gt.S(t, out).NotContains("first")
	gt.S(t, out).Contains("Physics\t3 sessions")
	gt.True(t, strings.Index(out, "third") < strings.Index(out, "second"))
}

func TestHistoryCommandEmpty(t *testing.T) {
	dir := isolate(t)

	var buf bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &buf

	gt.NoError(t, cmd.Run(context.Background(), []string{"learnzverse", "--env-file", filepath.Join(dir, "missing.env"), "history"}))
	gt.S(t, buf.String()).Contains("No sessions yet.")
}

func TestHistoryCommandRejectsBadLimit(t *testing.T) {
	dir := isolate(t)

	cmd := newCommand()
	cmd.Writer = &bytes.Buffer{}

	err := cmd.Run(context.Background(), []string{"learnzverse", "--env-file", filepath.Join(dir, "missing.env"), "history", "-n", "0"})
	gt.Error(t, err)
}

func TestOpenFailsOnInvalidConfig(t *testing.T) {
	dir := isolate(t)
	t.Setenv("PORT", "not-a-port")

	opts := options{envFile: filepath.Join(dir, "missing.env")}
	_, err := opts.open(context.Background())
	gt.Error(t, err)
}

func TestRouter(t *testing.T) {
	dir := isolate(t)

	opts := options{envFile: filepath.Join(dir, "missing.env")}
	a, err := opts.open(context.Background())
	gt.NoError(t, err)
	defer a.Close()

	h := newRouter(a)

	testCases := []struct {
		path string
		code int
	}{
		{path: "/health", code: http.StatusOK},
		{path: "/api/health", code: http.StatusOK},
		{path: "/api/personas", code: http.StatusOK},
		{path: "/", code: http.StatusOK},
		{path: "/tutors", code: http.StatusOK},
		{path: "/does-not-exist", code: http.StatusNotFound},
	}
	for _, tc := range testCases {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		gt.Equal(t, w.Code, tc.code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"tutor":"math","message":"What is pi?","class_level":"7"}`))
	h.ServeHTTP(w, req)
	gt.Equal(t, w.Code, http.StatusOK)
	gt.S(t, w.Body.String()).Contains("Prof. Euler")

	sessions, err := a.repo.RecentSessions(context.Background(), 5)
	gt.NoError(t, err)
	gt.A(t, sessions).Length(1)
}
