// Package web embeds the landing page, the tutor chat page and their assets
// (dist/) and serves them over HTTP.
package web

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
)

//go:embed all:dist
var distFS embed.FS

// pages maps clean URLs to their embedded HTML files.
var pages = map[string]string{
	"":        "index.html",
	"tutors":  "tutors.html",
	"learn":   "tutors.html",
	"landing": "index.html",
}

// StaticHandler returns an http.Handler that serves the embedded frontend.
// Paths that match neither a page nor a file get 404.
func StaticHandler() http.Handler {
	subFS, err := fs.Sub(distFS, "dist")
	if err != nil {
		panic("web: failed to create sub filesystem: " + err.Error())
	}

	fileServer := http.FileServer(http.FS(subFS))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.Trim(path.Clean("/"+r.URL.Path), "/")
		if page, ok := pages[name]; ok {
			serveFile(w, r, subFS, page)
			return
		}

		f, err := subFS.Open(name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		info, statErr := f.Stat()
		if closeErr := f.Close(); closeErr != nil {
			slog.Debug("web: failed to close embedded file", "path", name, "error", closeErr)
		}
		if statErr != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}

		fileServer.ServeHTTP(w, r)
	})
}

func serveFile(w http.ResponseWriter, r *http.Request, fsys fs.FS, name string) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		slog.Error("web: embedded page missing", "path", name, "error", err)
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(data); err != nil {
		slog.Debug("web: failed to write page", "path", name, "error", err)
	}
}
